package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

// StudentBackend is the slice of the backend client used by the student pages.
type StudentBackend interface {
	Profile(ctx context.Context, token string) (models.Student, error)
	UpdateProfile(ctx context.Context, token string, payload dto.ProfileUpdatePayload) (dto.StudentEnvelope, error)
	ChangePassword(ctx context.Context, token string, payload dto.ChangePasswordPayload) (dto.AckResponse, error)
}

// StudentService covers the student's own profile and credentials.
type StudentService interface {
	Profile(ctx context.Context, token string) (models.Student, error)
	UpdateProfile(ctx context.Context, token string, form validation.ProfileForm) (models.Student, error)
	ChangePassword(ctx context.Context, token string, form validation.PasswordChangeForm) error
}

type studentService struct {
	backend  StudentBackend
	payloads *validation.Payloads
	logger   zerolog.Logger
}

// NewStudentService wires the student self-service use cases.
func NewStudentService(backend StudentBackend, payloads *validation.Payloads, logger zerolog.Logger) StudentService {
	return &studentService{
		backend:  backend,
		payloads: payloads,
		logger:   logger.With().Str("component", "student_service").Logger(),
	}
}

func (s *studentService) Profile(ctx context.Context, token string) (models.Student, error) {
	profile, err := s.backend.Profile(ctx, token)
	if err != nil {
		return models.Student{}, actionFailed("get_profile", "Failed to load profile", err)
	}
	return profile, nil
}

func (s *studentService) UpdateProfile(ctx context.Context, token string, form validation.ProfileForm) (models.Student, error) {
	if err := form.Validate().Err(); err != nil {
		return models.Student{}, err
	}
	payload := form.Payload()
	if err := s.payloads.Check(payload); err != nil {
		return models.Student{}, err
	}

	resp, err := s.backend.UpdateProfile(ctx, token, payload)
	if err != nil {
		return models.Student{}, actionFailed("update_profile", "Failed to update profile", err)
	}
	return resp.Student, nil
}

func (s *studentService) ChangePassword(ctx context.Context, token string, form validation.PasswordChangeForm) error {
	if err := form.Validate().Err(); err != nil {
		return err
	}
	payload := form.Payload()
	if err := s.payloads.Check(payload); err != nil {
		return err
	}

	resp, err := s.backend.ChangePassword(ctx, token, payload)
	if err != nil {
		return actionFailed("change_password", "Failed to change password", err)
	}
	if !resp.Success {
		return rejected("change_password", resp.Message, "Failed to change password")
	}
	s.logger.Info().Msg("password changed")
	return nil
}
