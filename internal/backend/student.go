package backend

import (
	"context"
	"net/http"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
)

// Profile returns the signed-in student's record.
func (c *Client) Profile(ctx context.Context, token string) (models.Student, error) {
	var resp dto.StudentEnvelope
	err := c.do(ctx, call{operation: "student_profile", method: http.MethodGet, path: "/student/profile", token: token}, &resp)
	return resp.Student, err
}

// UpdateProfile changes contact number and address.
func (c *Client) UpdateProfile(ctx context.Context, token string, payload dto.ProfileUpdatePayload) (dto.StudentEnvelope, error) {
	var resp dto.StudentEnvelope
	err := c.do(ctx, call{operation: "update_profile", method: http.MethodPut, path: "/student/profile", token: token, body: payload}, &resp)
	return resp, err
}

// ChangePassword replaces the student's password.
func (c *Client) ChangePassword(ctx context.Context, token string, payload dto.ChangePasswordPayload) (dto.AckResponse, error) {
	var resp dto.AckResponse
	err := c.do(ctx, call{operation: "change_password", method: http.MethodPut, path: "/student/change-password", token: token, body: payload}, &resp)
	return resp, err
}

// StudentMarks returns the signed-in student's marks.
func (c *Client) StudentMarks(ctx context.Context, token string, filter dto.MarksFilter) (dto.MarksPage, error) {
	var resp dto.MarksPage
	err := c.do(ctx, call{operation: "student_marks", method: http.MethodGet, path: "/student/marks", token: token, query: marksQuery(filter)}, &resp)
	return resp, err
}

// ResultsSummary returns the overall results. The summary is read from the top
// level of the body unless the body nests it under a "data" object.
func (c *Client) ResultsSummary(ctx context.Context, token string) (models.ResultsSummary, error) {
	var raw rawBody
	if err := c.do(ctx, call{operation: "results_summary", method: http.MethodGet, path: "/student/results/summary", token: token}, &raw); err != nil {
		return models.ResultsSummary{}, err
	}

	var summary models.ResultsSummary
	if err := decodeAggregate(raw.bytes, &summary); err != nil {
		return models.ResultsSummary{}, undecodable("results_summary", err)
	}
	return summary, nil
}

// StudentAnnouncements returns the announcements targeted at the student.
func (c *Client) StudentAnnouncements(ctx context.Context, token string) ([]models.Announcement, error) {
	var resp dto.AnnouncementList
	err := c.do(ctx, call{operation: "student_announcements", method: http.MethodGet, path: "/student/announcements", token: token}, &resp)
	return resp.Announcements, err
}
