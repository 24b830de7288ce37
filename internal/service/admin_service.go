package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/display"
	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

const (
	defaultStudentPageSize = 10
	defaultMarksPageSize   = 15
)

// AdminBackend is the slice of the backend client used by admin pages.
type AdminBackend interface {
	ListStudents(ctx context.Context, token string, filter dto.StudentFilter) (dto.StudentPage, error)
	GetStudent(ctx context.Context, token, id string) (models.Student, error)
	AddStudent(ctx context.Context, token string, payload dto.StudentCreatePayload) (dto.StudentEnvelope, error)
	UpdateStudent(ctx context.Context, token, id string, payload dto.StudentUpdatePayload) (dto.StudentEnvelope, error)
	DeleteStudent(ctx context.Context, token, id string) (dto.AckResponse, error)
	ListMarks(ctx context.Context, token string, filter dto.MarksFilter) (dto.MarksPage, error)
	AddMarks(ctx context.Context, token string, payload dto.MarksPayload) (dto.MarksEnvelope, error)
	UpdateMarks(ctx context.Context, token, id string, payload dto.MarksPayload) (dto.MarksEnvelope, error)
	DeleteMarks(ctx context.Context, token, id string) (dto.AckResponse, error)
	BulkUploadMarks(ctx context.Context, token string, entries []dto.MarksPayload) (dto.BulkMarksResponse, error)
	ListAnnouncements(ctx context.Context, token string) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, token string, payload dto.AnnouncementPayload) (dto.AnnouncementEnvelope, error)
	UpdateAnnouncement(ctx context.Context, token, id string, payload dto.AnnouncementPayload) (dto.AnnouncementEnvelope, error)
	DeleteAnnouncement(ctx context.Context, token, id string) (dto.AckResponse, error)
	DashboardStats(ctx context.Context, token string) (models.DashboardStats, error)
}

// AdminService implements the student, marks and announcement management pages.
type AdminService interface {
	ListStudents(ctx context.Context, token string, filter dto.StudentFilter) (dto.StudentListView, error)
	GetStudent(ctx context.Context, token, id string) (models.Student, error)
	AddStudent(ctx context.Context, token string, form validation.StudentForm) (models.Student, error)
	UpdateStudent(ctx context.Context, token, id string, form validation.StudentForm) (models.Student, error)
	DeleteStudent(ctx context.Context, token, id string, confirmed bool) error

	ListMarks(ctx context.Context, token string, filter dto.MarksFilter) (dto.MarksListView, error)
	AddMarks(ctx context.Context, token string, form validation.MarksForm) (models.MarksEntry, error)
	UpdateMarks(ctx context.Context, token, id string, form validation.MarksForm) (models.MarksEntry, error)
	DeleteMarks(ctx context.Context, token, id string, confirmed bool) error
	PreviewPercentage(marks, total string) dto.PercentagePreview

	ListAnnouncements(ctx context.Context, token string) ([]models.Announcement, error)
	CreateAnnouncement(ctx context.Context, token string, form validation.AnnouncementForm) (models.Announcement, error)
	UpdateAnnouncement(ctx context.Context, token, id string, form validation.AnnouncementForm) (models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, token, id string, confirmed bool) error
}

type adminService struct {
	backend  AdminBackend
	payloads *validation.Payloads
	logger   zerolog.Logger
}

// NewAdminService wires the admin management use cases.
func NewAdminService(backend AdminBackend, payloads *validation.Payloads, logger zerolog.Logger) AdminService {
	return &adminService{
		backend:  backend,
		payloads: payloads,
		logger:   logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) ListStudents(ctx context.Context, token string, filter dto.StudentFilter) (dto.StudentListView, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultStudentPageSize
	}

	page, err := s.backend.ListStudents(ctx, token, filter)
	if err != nil {
		return dto.StudentListView{}, actionFailed("list_students", "Failed to load students", err)
	}

	students := page.Students
	if students == nil {
		students = []models.Student{}
	}
	return dto.StudentListView{
		Students:   students,
		Pagination: pagination(filter.Page, filter.Limit, page.Total, page.TotalPages),
	}, nil
}

func (s *adminService) GetStudent(ctx context.Context, token, id string) (models.Student, error) {
	if strings.TrimSpace(id) == "" {
		return models.Student{}, ErrMissingID
	}
	student, err := s.backend.GetStudent(ctx, token, id)
	if err != nil {
		return models.Student{}, actionFailed("get_student", "Failed to load student", err)
	}
	return student, nil
}

func (s *adminService) AddStudent(ctx context.Context, token string, form validation.StudentForm) (models.Student, error) {
	if err := form.Validate().Err(); err != nil {
		return models.Student{}, err
	}
	payload := form.CreatePayload()
	if err := s.payloads.Check(payload); err != nil {
		return models.Student{}, err
	}

	resp, err := s.backend.AddStudent(ctx, token, payload)
	if err != nil {
		return models.Student{}, actionFailed("add_student", "Failed to add student", err)
	}
	s.logger.Info().Str("student_id", resp.Student.StudentID).Msg("student added")
	return resp.Student, nil
}

func (s *adminService) UpdateStudent(ctx context.Context, token, id string, form validation.StudentForm) (models.Student, error) {
	if strings.TrimSpace(id) == "" {
		return models.Student{}, ErrMissingID
	}
	if err := form.Validate().Err(); err != nil {
		return models.Student{}, err
	}
	payload := form.UpdatePayload()
	if err := s.payloads.Check(payload); err != nil {
		return models.Student{}, err
	}

	resp, err := s.backend.UpdateStudent(ctx, token, id, payload)
	if err != nil {
		return models.Student{}, actionFailed("update_student", "Failed to update student", err)
	}
	return resp.Student, nil
}

func (s *adminService) DeleteStudent(ctx context.Context, token, id string, confirmed bool) error {
	if err := guardDelete(id, confirmed); err != nil {
		return err
	}
	if _, err := s.backend.DeleteStudent(ctx, token, id); err != nil {
		return actionFailed("delete_student", "Failed to delete student", err)
	}
	s.logger.Info().Str("id", id).Msg("student deleted")
	return nil
}

func (s *adminService) ListMarks(ctx context.Context, token string, filter dto.MarksFilter) (dto.MarksListView, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultMarksPageSize
	}

	page, err := s.backend.ListMarks(ctx, token, filter)
	if err != nil {
		return dto.MarksListView{}, actionFailed("list_marks", "Failed to load marks", err)
	}

	return dto.MarksListView{
		Marks:      marksRows(page.Marks),
		Pagination: pagination(filter.Page, filter.Limit, page.Total, page.TotalPages),
	}, nil
}

func (s *adminService) AddMarks(ctx context.Context, token string, form validation.MarksForm) (models.MarksEntry, error) {
	payload, err := s.marksPayload(form)
	if err != nil {
		return models.MarksEntry{}, err
	}

	resp, err := s.backend.AddMarks(ctx, token, payload)
	if err != nil {
		return models.MarksEntry{}, actionFailed("add_marks", "Failed to add marks", err)
	}
	return resp.Marks, nil
}

func (s *adminService) UpdateMarks(ctx context.Context, token, id string, form validation.MarksForm) (models.MarksEntry, error) {
	if strings.TrimSpace(id) == "" {
		return models.MarksEntry{}, ErrMissingID
	}
	payload, err := s.marksPayload(form)
	if err != nil {
		return models.MarksEntry{}, err
	}

	resp, err := s.backend.UpdateMarks(ctx, token, id, payload)
	if err != nil {
		return models.MarksEntry{}, actionFailed("update_marks", "Failed to update marks", err)
	}
	return resp.Marks, nil
}

func (s *adminService) marksPayload(form validation.MarksForm) (dto.MarksPayload, error) {
	if err := form.Validate().Err(); err != nil {
		return dto.MarksPayload{}, err
	}
	payload := form.Payload()
	if err := s.payloads.Check(payload); err != nil {
		return dto.MarksPayload{}, err
	}
	return payload, nil
}

func (s *adminService) DeleteMarks(ctx context.Context, token, id string, confirmed bool) error {
	if err := guardDelete(id, confirmed); err != nil {
		return err
	}
	if _, err := s.backend.DeleteMarks(ctx, token, id); err != nil {
		return actionFailed("delete_marks", "Failed to delete marks", err)
	}
	return nil
}

func (s *adminService) PreviewPercentage(marks, total string) dto.PercentagePreview {
	percentage, ok := display.PercentagePreview(marks, total)
	return dto.PercentagePreview{Visible: ok, Percentage: percentage}
}

func (s *adminService) ListAnnouncements(ctx context.Context, token string) ([]models.Announcement, error) {
	items, err := s.backend.ListAnnouncements(ctx, token)
	if err != nil {
		return nil, actionFailed("list_announcements", "Failed to load announcements", err)
	}
	if items == nil {
		items = []models.Announcement{}
	}
	return items, nil
}

func (s *adminService) CreateAnnouncement(ctx context.Context, token string, form validation.AnnouncementForm) (models.Announcement, error) {
	payload, err := s.announcementPayload(form)
	if err != nil {
		return models.Announcement{}, err
	}

	resp, err := s.backend.CreateAnnouncement(ctx, token, payload)
	if err != nil {
		return models.Announcement{}, actionFailed("create_announcement", "Failed to create announcement", err)
	}
	return resp.Announcement, nil
}

func (s *adminService) UpdateAnnouncement(ctx context.Context, token, id string, form validation.AnnouncementForm) (models.Announcement, error) {
	if strings.TrimSpace(id) == "" {
		return models.Announcement{}, ErrMissingID
	}
	payload, err := s.announcementPayload(form)
	if err != nil {
		return models.Announcement{}, err
	}

	resp, err := s.backend.UpdateAnnouncement(ctx, token, id, payload)
	if err != nil {
		return models.Announcement{}, actionFailed("update_announcement", "Failed to update announcement", err)
	}
	return resp.Announcement, nil
}

func (s *adminService) announcementPayload(form validation.AnnouncementForm) (dto.AnnouncementPayload, error) {
	if err := form.Validate().Err(); err != nil {
		return dto.AnnouncementPayload{}, err
	}
	payload := form.Payload()
	if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Content) == "" {
		return dto.AnnouncementPayload{}, validation.Invalid(validation.MsgAnnouncementRequired).Err()
	}
	if err := s.payloads.Check(payload); err != nil {
		return dto.AnnouncementPayload{}, err
	}
	return payload, nil
}

func (s *adminService) DeleteAnnouncement(ctx context.Context, token, id string, confirmed bool) error {
	if err := guardDelete(id, confirmed); err != nil {
		return err
	}
	if _, err := s.backend.DeleteAnnouncement(ctx, token, id); err != nil {
		return actionFailed("delete_announcement", "Failed to delete announcement", err)
	}
	return nil
}

func guardDelete(id string, confirmed bool) error {
	if strings.TrimSpace(id) == "" {
		return ErrMissingID
	}
	if !confirmed {
		return ErrConfirmationRequired
	}
	return nil
}

func pagination(page, limit int, total int64, totalPages int) dto.PaginationMeta {
	if totalPages <= 0 {
		totalPages = 1
	}
	return dto.PaginationMeta{Page: page, PageSize: limit, TotalItems: total, TotalPages: totalPages}
}

func marksRows(entries []models.MarksEntry) []dto.MarksRow {
	rows := make([]dto.MarksRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, dto.MarksRow{
			MarksEntry:    entry,
			ExamDateLabel: display.FormatDate(entry.ExamDate),
			Tone:          string(display.PercentageTone(entry.Percentage)),
		})
	}
	return rows
}
