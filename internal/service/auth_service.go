package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/session"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

// AuthBackend is the slice of the backend client used for authentication.
type AuthBackend interface {
	AdminLogin(ctx context.Context, email, password string) (dto.AdminLoginResponse, error)
	StudentLoginByEmail(ctx context.Context, email string) (dto.StudentLoginResponse, error)
	StudentSignup(ctx context.Context, payload dto.SignupPayload) (dto.SignupResponse, error)
}

// SignupCommand is one wizard action posted by the browser.
type SignupCommand struct {
	Step   validation.Step       `json:"step"`
	Action string                `json:"action"`
	Form   validation.SignupForm `json:"form"`
}

// Wizard actions.
const (
	SignupNext   = "next"
	SignupBack   = "back"
	SignupSubmit = "submit"
)

// ErrUnknownSignupAction is returned for actions other than next, back and submit.
var ErrUnknownSignupAction = errors.New("unknown signup action")

// AuthService signs principals in and out of a browser session.
type AuthService interface {
	AdminLogin(ctx context.Context, manager *session.Manager, form validation.AdminLoginForm) (models.Identity, error)
	StudentLogin(ctx context.Context, manager *session.Manager, form validation.StudentLoginForm) (models.Identity, error)
	Signup(ctx context.Context, cmd SignupCommand) (*validation.SignupWizard, error)
	Logout(ctx context.Context, manager *session.Manager)
}

type authService struct {
	backend  AuthBackend
	payloads *validation.Payloads
	logger   zerolog.Logger
}

// NewAuthService wires the authentication use cases.
func NewAuthService(backend AuthBackend, payloads *validation.Payloads, logger zerolog.Logger) AuthService {
	return &authService{
		backend:  backend,
		payloads: payloads,
		logger:   logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) AdminLogin(ctx context.Context, manager *session.Manager, form validation.AdminLoginForm) (models.Identity, error) {
	if err := form.Validate().Err(); err != nil {
		return models.Identity{}, err
	}

	resp, err := s.backend.AdminLogin(ctx, form.Email, form.Password)
	if err != nil {
		return models.Identity{}, actionFailed("admin_login", "Login failed. Please try again.", err)
	}
	if !resp.Success || resp.Token == "" {
		return models.Identity{}, rejected("admin_login", resp.Message, "Login failed. Please try again.")
	}

	identity := models.Identity{
		ID:       resp.Admin.ID,
		Role:     models.RoleAdmin,
		Email:    resp.Admin.Email,
		Username: resp.Admin.Username,
		FullName: resp.Admin.FullName,
	}
	s.establish(ctx, manager, resp.Token, identity)
	return identity, nil
}

func (s *authService) StudentLogin(ctx context.Context, manager *session.Manager, form validation.StudentLoginForm) (models.Identity, error) {
	if err := form.Validate().Err(); err != nil {
		return models.Identity{}, err
	}

	resp, err := s.backend.StudentLoginByEmail(ctx, form.Email)
	if err != nil {
		return models.Identity{}, actionFailed("student_login", "Login failed. Please check your email address.", err)
	}
	if !resp.Success || resp.Token == "" {
		return models.Identity{}, rejected("student_login", resp.Message, "Login failed. Please check your email address.")
	}

	identity := models.Identity{
		ID:        resp.Student.ID,
		Role:      models.RoleStudent,
		Email:     resp.Student.Email,
		Name:      resp.Student.Name,
		StudentID: resp.Student.StudentID,
		Class:     resp.Student.Class,
		Section:   resp.Student.Section,
	}
	s.establish(ctx, manager, resp.Token, identity)
	return identity, nil
}

// establish keeps the in-memory login even when persisting fails; the browser
// simply loses the session on the next restart.
func (s *authService) establish(ctx context.Context, manager *session.Manager, token string, identity models.Identity) {
	if err := manager.Login(ctx, token, identity); err != nil {
		s.logger.Error().Err(err).Str("session_id", manager.ID()).Str("role", string(identity.Role)).Msg("session not persisted")
	}
	s.logger.Info().Str("role", string(identity.Role)).Str("user_id", identity.ID).Msg("login succeeded")
}

func (s *authService) Signup(ctx context.Context, cmd SignupCommand) (*validation.SignupWizard, error) {
	wizard := validation.ResumeSignupWizard(cmd.Step, cmd.Form)

	switch cmd.Action {
	case SignupNext:
		wizard.Next()
		return wizard, nil
	case SignupBack:
		wizard.Back()
		return wizard, nil
	case SignupSubmit:
		if err := wizard.Submit(ctx, registrar{s}); err != nil {
			var validationErr *validation.Error
			if !errors.As(err, &validationErr) && !errors.Is(err, validation.ErrSubmitOutOfStep) {
				s.logger.Warn().Err(err).Msg("signup rejected")
			}
			return wizard, nil
		}
		s.logger.Info().Str("student_id", wizard.StudentID()).Msg("student registered")
		return wizard, nil
	default:
		return wizard, ErrUnknownSignupAction
	}
}

func (s *authService) Logout(ctx context.Context, manager *session.Manager) {
	manager.Logout(ctx)
}

type registrar struct {
	s *authService
}

func (r registrar) Signup(ctx context.Context, payload dto.SignupPayload) (string, error) {
	if err := r.s.payloads.Check(payload); err != nil {
		return "", err
	}

	resp, err := r.s.backend.StudentSignup(ctx, payload)
	if err != nil {
		return "", actionFailed("student_signup", validation.DefaultSignupFailure, err)
	}
	if !resp.Success {
		return "", rejected("student_signup", resp.Message, validation.DefaultSignupFailure)
	}
	return resp.StudentID, nil
}

func rejected(action, message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return &ActionError{Action: action, Message: message, Err: errors.New("backend reported failure")}
}
