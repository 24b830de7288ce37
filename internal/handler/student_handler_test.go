package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/handler"
	"github.com/noah-isme/successpath-portal/internal/models"
	"github.com/noah-isme/successpath-portal/internal/service"
	"github.com/noah-isme/successpath-portal/internal/validation"
)

type mockStudentService struct {
	profile         models.Student
	passwordChanged bool
	err             error
}

func (m *mockStudentService) Profile(context.Context, string) (models.Student, error) {
	return m.profile, m.err
}

func (m *mockStudentService) UpdateProfile(_ context.Context, _ string, form validation.ProfileForm) (models.Student, error) {
	if err := form.Validate().Err(); err != nil {
		return models.Student{}, err
	}
	updated := m.profile
	updated.ContactNumber = form.ContactNumber
	updated.Address = form.Address
	return updated, m.err
}

func (m *mockStudentService) ChangePassword(_ context.Context, _ string, form validation.PasswordChangeForm) error {
	if err := form.Validate().Err(); err != nil {
		return err
	}
	m.passwordChanged = true
	return m.err
}

func newStudentPortal(t *testing.T, student *mockStudentService, dashboard *mockDashboardService) *portal {
	t.Helper()
	p := newPortal(t)
	handler.NewStudentHandler(student, dashboard, zerolog.Nop()).Register(p.app.Group("/student"))
	return p
}

func TestStudentRoutesRejectAdmins(t *testing.T) {
	p := newStudentPortal(t, &mockStudentService{}, &mockDashboardService{})

	resp := p.do(t, http.MethodGet, "/student/results", nil, p.login(t, models.RoleAdmin))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))

	resp = p.do(t, http.MethodGet, "/student/results", nil, nil)
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/student/login", resp.Header.Get("Location"))
}

func TestStudentDashboard(t *testing.T) {
	dashboard := &mockDashboardService{student: dto.StudentDashboardView{
		Profile:     &models.Student{ID: "s1", Name: "Ravi Kumar"},
		Initials:    "RK",
		RecentMarks: []dto.MarksRow{},
		Summary:     &models.ResultsSummary{OverallGrade: "A"},
	}}
	p := newStudentPortal(t, &mockStudentService{}, dashboard)

	resp := p.do(t, http.MethodGet, "/student/dashboard", nil, p.login(t, models.RoleStudent))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view dto.StudentDashboardView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &view))
	require.Equal(t, "RK", view.Initials)
	require.Equal(t, "A", view.Summary.OverallGrade)
}

func TestStudentResults(t *testing.T) {
	dashboard := &mockDashboardService{results: dto.ResultsView{
		Marks: []dto.MarksRow{{MarksEntry: models.MarksEntry{Subject: "Mathematics"}, Tone: "good"}},
	}}
	p := newStudentPortal(t, &mockStudentService{}, dashboard)

	resp := p.do(t, http.MethodGet, "/student/results", nil, p.login(t, models.RoleStudent))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view dto.ResultsView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &view))
	require.Len(t, view.Marks, 1)
	require.Equal(t, "good", view.Marks[0].Tone)
}

func TestStudentUpdateProfile(t *testing.T) {
	student := &mockStudentService{profile: models.Student{ID: "s1", Name: "Ravi Kumar", ContactNumber: "9876543210"}}
	p := newStudentPortal(t, student, &mockDashboardService{})
	cookie := p.login(t, models.RoleStudent)

	resp := p.do(t, http.MethodPut, "/student/profile", map[string]string{"contactNumber": "12345"}, cookie)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, validation.MsgSignupContactDigits, decodeEnvelope(t, resp).Message)

	resp = p.do(t, http.MethodPut, "/student/profile", map[string]string{"contactNumber": "9123456780", "address": "12 MG Road"}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeEnvelope(t, resp)
	require.Equal(t, service.MsgProfileUpdated, body.Message)

	var updated models.Student
	require.NoError(t, json.Unmarshal(body.Data, &updated))
	require.Equal(t, "9123456780", updated.ContactNumber)
	require.Equal(t, "Ravi Kumar", updated.Name)
}

func TestStudentChangePassword(t *testing.T) {
	student := &mockStudentService{}
	p := newStudentPortal(t, student, &mockDashboardService{})
	cookie := p.login(t, models.RoleStudent)

	resp := p.do(t, http.MethodPost, "/student/change-password", map[string]string{
		"currentPassword": "old-secret",
		"newPassword":     "new-secret",
		"confirmPassword": "different",
	}, cookie)
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, validation.MsgPasswordsDoNotMatch, decodeEnvelope(t, resp).Message)
	require.False(t, student.passwordChanged)

	resp = p.do(t, http.MethodPost, "/student/change-password", map[string]string{
		"currentPassword": "old-secret",
		"newPassword":     "new-secret",
		"confirmPassword": "new-secret",
	}, cookie)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, service.MsgPasswordChanged, decodeEnvelope(t, resp).Message)
	require.True(t, student.passwordChanged)
}
