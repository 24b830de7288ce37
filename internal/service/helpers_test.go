package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
)

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

// backendStub satisfies every backend slice the services depend on. Unset
// responses are zero values; errs is keyed by method name.
type backendStub struct {
	mu    sync.Mutex
	calls []string
	errs  map[string]error

	adminLogin    dto.AdminLoginResponse
	studentLogin  dto.StudentLoginResponse
	signup        dto.SignupResponse
	signupPayload *dto.SignupPayload

	studentPage    dto.StudentPage
	student        models.Student
	studentCreated *dto.StudentCreatePayload
	studentUpdated *dto.StudentUpdatePayload
	studentFilter  dto.StudentFilter

	marksPage   dto.MarksPage
	marksFilter dto.MarksFilter
	marksSent   *dto.MarksPayload
	bulk        []dto.MarksPayload
	bulkResp    dto.BulkMarksResponse

	announcements    []models.Announcement
	announcementSent *dto.AnnouncementPayload

	stats   models.DashboardStats
	summary models.ResultsSummary

	profileSent  *dto.ProfileUpdatePayload
	passwordSent *dto.ChangePasswordPayload
	passwordAck  dto.AckResponse
}

func newBackendStub() *backendStub {
	return &backendStub{errs: map[string]error{}, passwordAck: dto.AckResponse{Success: true}}
}

func (b *backendStub) record(name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = append(b.calls, name)
	return b.errs[name]
}

func (b *backendStub) called(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	count := 0
	for _, call := range b.calls {
		if call == name {
			count++
		}
	}
	return count
}

func (b *backendStub) AdminLogin(_ context.Context, _, _ string) (dto.AdminLoginResponse, error) {
	return b.adminLogin, b.record("AdminLogin")
}

func (b *backendStub) StudentLoginByEmail(_ context.Context, _ string) (dto.StudentLoginResponse, error) {
	return b.studentLogin, b.record("StudentLoginByEmail")
}

func (b *backendStub) StudentSignup(_ context.Context, payload dto.SignupPayload) (dto.SignupResponse, error) {
	b.signupPayload = &payload
	return b.signup, b.record("StudentSignup")
}

func (b *backendStub) ListStudents(_ context.Context, _ string, filter dto.StudentFilter) (dto.StudentPage, error) {
	b.studentFilter = filter
	return b.studentPage, b.record("ListStudents")
}

func (b *backendStub) GetStudent(_ context.Context, _, _ string) (models.Student, error) {
	return b.student, b.record("GetStudent")
}

func (b *backendStub) AddStudent(_ context.Context, _ string, payload dto.StudentCreatePayload) (dto.StudentEnvelope, error) {
	b.studentCreated = &payload
	return dto.StudentEnvelope{Success: true, Student: models.Student{StudentID: "STU001", Name: payload.Name}}, b.record("AddStudent")
}

func (b *backendStub) UpdateStudent(_ context.Context, _, id string, payload dto.StudentUpdatePayload) (dto.StudentEnvelope, error) {
	b.studentUpdated = &payload
	return dto.StudentEnvelope{Success: true, Student: models.Student{ID: id, Name: payload.Name}}, b.record("UpdateStudent")
}

func (b *backendStub) DeleteStudent(_ context.Context, _, _ string) (dto.AckResponse, error) {
	return dto.AckResponse{Success: true}, b.record("DeleteStudent")
}

func (b *backendStub) ListMarks(_ context.Context, _ string, filter dto.MarksFilter) (dto.MarksPage, error) {
	b.marksFilter = filter
	return b.marksPage, b.record("ListMarks")
}

func (b *backendStub) AddMarks(_ context.Context, _ string, payload dto.MarksPayload) (dto.MarksEnvelope, error) {
	b.marksSent = &payload
	return dto.MarksEnvelope{Success: true, Marks: models.MarksEntry{ID: "m1", Subject: payload.Subject}}, b.record("AddMarks")
}

func (b *backendStub) UpdateMarks(_ context.Context, _, id string, payload dto.MarksPayload) (dto.MarksEnvelope, error) {
	b.marksSent = &payload
	return dto.MarksEnvelope{Success: true, Marks: models.MarksEntry{ID: id}}, b.record("UpdateMarks")
}

func (b *backendStub) DeleteMarks(_ context.Context, _, _ string) (dto.AckResponse, error) {
	return dto.AckResponse{Success: true}, b.record("DeleteMarks")
}

func (b *backendStub) BulkUploadMarks(_ context.Context, _ string, entries []dto.MarksPayload) (dto.BulkMarksResponse, error) {
	b.bulk = entries
	return b.bulkResp, b.record("BulkUploadMarks")
}

func (b *backendStub) ListAnnouncements(_ context.Context, _ string) ([]models.Announcement, error) {
	return b.announcements, b.record("ListAnnouncements")
}

func (b *backendStub) CreateAnnouncement(_ context.Context, _ string, payload dto.AnnouncementPayload) (dto.AnnouncementEnvelope, error) {
	b.announcementSent = &payload
	return dto.AnnouncementEnvelope{Success: true, Announcement: models.Announcement{ID: "a1", Title: payload.Title}}, b.record("CreateAnnouncement")
}

func (b *backendStub) UpdateAnnouncement(_ context.Context, _, id string, payload dto.AnnouncementPayload) (dto.AnnouncementEnvelope, error) {
	b.announcementSent = &payload
	return dto.AnnouncementEnvelope{Success: true, Announcement: models.Announcement{ID: id}}, b.record("UpdateAnnouncement")
}

func (b *backendStub) DeleteAnnouncement(_ context.Context, _, _ string) (dto.AckResponse, error) {
	return dto.AckResponse{Success: true}, b.record("DeleteAnnouncement")
}

func (b *backendStub) DashboardStats(_ context.Context, _ string) (models.DashboardStats, error) {
	return b.stats, b.record("DashboardStats")
}

func (b *backendStub) Profile(_ context.Context, _ string) (models.Student, error) {
	return b.student, b.record("Profile")
}

func (b *backendStub) UpdateProfile(_ context.Context, _ string, payload dto.ProfileUpdatePayload) (dto.StudentEnvelope, error) {
	b.profileSent = &payload
	student := b.student
	student.ContactNumber = payload.ContactNumber
	student.Address = payload.Address
	return dto.StudentEnvelope{Success: true, Student: student}, b.record("UpdateProfile")
}

func (b *backendStub) ChangePassword(_ context.Context, _ string, payload dto.ChangePasswordPayload) (dto.AckResponse, error) {
	b.passwordSent = &payload
	return b.passwordAck, b.record("ChangePassword")
}

func (b *backendStub) StudentMarks(_ context.Context, _ string, filter dto.MarksFilter) (dto.MarksPage, error) {
	b.mu.Lock()
	b.marksFilter = filter
	b.mu.Unlock()
	return b.marksPage, b.record("StudentMarks")
}

func (b *backendStub) ResultsSummary(_ context.Context, _ string) (models.ResultsSummary, error) {
	return b.summary, b.record("ResultsSummary")
}

func (b *backendStub) StudentAnnouncements(_ context.Context, _ string) ([]models.Announcement, error) {
	return b.announcements, b.record("StudentAnnouncements")
}
