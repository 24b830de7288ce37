package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
)

// ListStudents returns one page of students.
func (c *Client) ListStudents(ctx context.Context, token string, filter dto.StudentFilter) (dto.StudentPage, error) {
	query := pageQuery(filter.Page, filter.Limit)
	setIf(query, "search", filter.Search)
	setIf(query, "class", filter.Class)
	setIf(query, "section", filter.Section)

	var resp dto.StudentPage
	err := c.do(ctx, call{operation: "list_students", method: http.MethodGet, path: "/admin/students", token: token, query: query}, &resp)
	return resp, err
}

// GetStudent returns one student record.
func (c *Client) GetStudent(ctx context.Context, token, id string) (models.Student, error) {
	var resp dto.StudentEnvelope
	err := c.do(ctx, call{operation: "get_student", method: http.MethodGet, path: "/admin/students/" + url.PathEscape(id), token: token}, &resp)
	return resp.Student, err
}

// AddStudent creates a student.
func (c *Client) AddStudent(ctx context.Context, token string, payload dto.StudentCreatePayload) (dto.StudentEnvelope, error) {
	var resp dto.StudentEnvelope
	err := c.do(ctx, call{operation: "add_student", method: http.MethodPost, path: "/admin/students", token: token, body: payload}, &resp)
	return resp, err
}

// UpdateStudent edits a student.
func (c *Client) UpdateStudent(ctx context.Context, token, id string, payload dto.StudentUpdatePayload) (dto.StudentEnvelope, error) {
	var resp dto.StudentEnvelope
	err := c.do(ctx, call{operation: "update_student", method: http.MethodPut, path: "/admin/students/" + url.PathEscape(id), token: token, body: payload}, &resp)
	return resp, err
}

// DeleteStudent removes a student.
func (c *Client) DeleteStudent(ctx context.Context, token, id string) (dto.AckResponse, error) {
	var resp dto.AckResponse
	err := c.do(ctx, call{operation: "delete_student", method: http.MethodDelete, path: "/admin/students/" + url.PathEscape(id), token: token}, &resp)
	return resp, err
}

// ListMarks returns one page of marks entries.
func (c *Client) ListMarks(ctx context.Context, token string, filter dto.MarksFilter) (dto.MarksPage, error) {
	var resp dto.MarksPage
	err := c.do(ctx, call{operation: "list_marks", method: http.MethodGet, path: "/admin/marks", token: token, query: marksQuery(filter)}, &resp)
	return resp, err
}

// AddMarks records a marks entry.
func (c *Client) AddMarks(ctx context.Context, token string, payload dto.MarksPayload) (dto.MarksEnvelope, error) {
	var resp dto.MarksEnvelope
	err := c.do(ctx, call{operation: "add_marks", method: http.MethodPost, path: "/admin/marks", token: token, body: payload}, &resp)
	return resp, err
}

// UpdateMarks edits a marks entry.
func (c *Client) UpdateMarks(ctx context.Context, token, id string, payload dto.MarksPayload) (dto.MarksEnvelope, error) {
	var resp dto.MarksEnvelope
	err := c.do(ctx, call{operation: "update_marks", method: http.MethodPut, path: "/admin/marks/" + url.PathEscape(id), token: token, body: payload}, &resp)
	return resp, err
}

// DeleteMarks removes a marks entry.
func (c *Client) DeleteMarks(ctx context.Context, token, id string) (dto.AckResponse, error) {
	var resp dto.AckResponse
	err := c.do(ctx, call{operation: "delete_marks", method: http.MethodDelete, path: "/admin/marks/" + url.PathEscape(id), token: token}, &resp)
	return resp, err
}

// BulkUploadMarks records many entries at once.
func (c *Client) BulkUploadMarks(ctx context.Context, token string, entries []dto.MarksPayload) (dto.BulkMarksResponse, error) {
	var resp dto.BulkMarksResponse
	err := c.do(ctx, call{operation: "bulk_upload_marks", method: http.MethodPost, path: "/admin/marks/bulk", token: token, body: dto.BulkMarksPayload{Marks: entries}}, &resp)
	return resp, err
}

// ListAnnouncements returns every announcement visible to admins.
func (c *Client) ListAnnouncements(ctx context.Context, token string) ([]models.Announcement, error) {
	var resp dto.AnnouncementList
	err := c.do(ctx, call{operation: "list_announcements", method: http.MethodGet, path: "/admin/announcements", token: token}, &resp)
	return resp.Announcements, err
}

// CreateAnnouncement publishes an announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, token string, payload dto.AnnouncementPayload) (dto.AnnouncementEnvelope, error) {
	var resp dto.AnnouncementEnvelope
	err := c.do(ctx, call{operation: "create_announcement", method: http.MethodPost, path: "/admin/announcements", token: token, body: payload}, &resp)
	return resp, err
}

// UpdateAnnouncement edits an announcement.
func (c *Client) UpdateAnnouncement(ctx context.Context, token, id string, payload dto.AnnouncementPayload) (dto.AnnouncementEnvelope, error) {
	var resp dto.AnnouncementEnvelope
	err := c.do(ctx, call{operation: "update_announcement", method: http.MethodPut, path: "/admin/announcements/" + url.PathEscape(id), token: token, body: payload}, &resp)
	return resp, err
}

// DeleteAnnouncement removes an announcement.
func (c *Client) DeleteAnnouncement(ctx context.Context, token, id string) (dto.AckResponse, error) {
	var resp dto.AckResponse
	err := c.do(ctx, call{operation: "delete_announcement", method: http.MethodDelete, path: "/admin/announcements/" + url.PathEscape(id), token: token}, &resp)
	return resp, err
}

// DashboardStats returns the admin aggregate counts.
func (c *Client) DashboardStats(ctx context.Context, token string) (models.DashboardStats, error) {
	var raw rawBody
	if err := c.do(ctx, call{operation: "dashboard_stats", method: http.MethodGet, path: "/admin/dashboard/stats", token: token}, &raw); err != nil {
		return models.DashboardStats{}, err
	}

	var stats models.DashboardStats
	if err := decodeAggregate(raw.bytes, &stats); err != nil {
		return models.DashboardStats{}, undecodable("dashboard_stats", err)
	}
	return stats, nil
}

func marksQuery(filter dto.MarksFilter) url.Values {
	query := pageQuery(filter.Page, filter.Limit)
	setIf(query, "class", filter.Class)
	setIf(query, "examType", filter.ExamType)
	setIf(query, "subject", filter.Subject)
	setIf(query, "studentId", filter.StudentID)
	return query
}
