package dto

import "github.com/noah-isme/successpath-portal/internal/models"

// AnnouncementPayload is the body of POST/PUT /admin/announcements.
type AnnouncementPayload struct {
	Title         string          `json:"title" validate:"required"`
	Content       string          `json:"content" validate:"required"`
	Priority      models.Priority `json:"priority" validate:"required,oneof=High Medium Low"`
	TargetClass   string          `json:"targetClass,omitempty"`
	TargetSection string          `json:"targetSection,omitempty"`
	ExpiryDate    string          `json:"expiryDate,omitempty"`
}

// AnnouncementList is the GET announcements body.
type AnnouncementList struct {
	Success       bool                  `json:"success"`
	Announcements []models.Announcement `json:"announcements"`
}

// AnnouncementEnvelope wraps a single announcement.
type AnnouncementEnvelope struct {
	Success      bool                `json:"success"`
	Message      string              `json:"message,omitempty"`
	Announcement models.Announcement `json:"announcement"`
}
