package models

import "time"

// Priority of an announcement.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Valid reports whether p is one of the three enumerated priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// AnnouncementAuthor is the populated creator reference.
type AnnouncementAuthor struct {
	FullName string `json:"fullName,omitempty"`
	Username string `json:"username,omitempty"`
}

// Announcement is a broadcast message. Empty target class/section means everyone.
type Announcement struct {
	ID            string              `json:"_id"`
	Title         string              `json:"title"`
	Content       string              `json:"content"`
	Priority      Priority            `json:"priority"`
	TargetClass   string              `json:"targetClass,omitempty"`
	TargetSection string              `json:"targetSection,omitempty"`
	IsActive      bool                `json:"isActive"`
	ExpiryDate    string              `json:"expiryDate,omitempty"`
	CreatedBy     *AnnouncementAuthor `json:"createdBy,omitempty"`
	CreatedAt     *time.Time          `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time          `json:"updatedAt,omitempty"`
}
