package dto

import "github.com/noah-isme/successpath-portal/internal/models"

// PaginationMeta captures pagination metadata for list views.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// MenuItem is one entry of the role-specific navigation.
type MenuItem struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// SessionView describes the current browser session.
type SessionView struct {
	Authenticated bool             `json:"authenticated"`
	Loading       bool             `json:"loading"`
	Role          models.Role      `json:"role,omitempty"`
	DisplayName   string           `json:"display_name,omitempty"`
	Initials      string           `json:"initials,omitempty"`
	Identity      *models.Identity `json:"identity,omitempty"`
	Menu          []MenuItem       `json:"menu"`
}

// SliceError reports a dashboard slice that failed to load.
type SliceError struct {
	Slice   string `json:"slice"`
	Message string `json:"message"`
}

// AdminDashboardView aggregates the admin landing page.
type AdminDashboardView struct {
	Stats         *models.DashboardStats `json:"stats,omitempty"`
	Announcements []models.Announcement  `json:"announcements"`
	Errors        []SliceError           `json:"errors,omitempty"`
}

// MarksRow is a marks entry decorated with display values.
type MarksRow struct {
	models.MarksEntry
	ExamDateLabel string `json:"examDateLabel"`
	Tone          string `json:"tone"`
}

// StudentDashboardView aggregates the student landing page.
type StudentDashboardView struct {
	Profile       *models.Student        `json:"profile,omitempty"`
	Initials      string                 `json:"initials"`
	RecentMarks   []MarksRow             `json:"recentMarks"`
	Announcements []models.Announcement  `json:"announcements"`
	Summary       *models.ResultsSummary `json:"summary,omitempty"`
	Errors        []SliceError           `json:"errors,omitempty"`
}

// ResultsView aggregates the "my results" page.
type ResultsView struct {
	Marks   []MarksRow             `json:"marks"`
	Summary *models.ResultsSummary `json:"summary,omitempty"`
	Errors  []SliceError           `json:"errors,omitempty"`
}

// StudentListView is the admin students page.
type StudentListView struct {
	Students   []models.Student `json:"students"`
	Pagination PaginationMeta   `json:"pagination"`
}

// MarksListView is the admin marks page.
type MarksListView struct {
	Marks      []MarksRow     `json:"marks"`
	Pagination PaginationMeta `json:"pagination"`
}

// PercentagePreview is the live preview shown while entering marks.
type PercentagePreview struct {
	Visible    bool   `json:"visible"`
	Percentage string `json:"percentage,omitempty"`
}

// SignupView is the state of the signup wizard after an action.
type SignupView struct {
	Step      int    `json:"step"`
	Error     string `json:"error,omitempty"`
	StudentID string `json:"studentId,omitempty"`
	Strength  string `json:"passwordStrength,omitempty"`
}

// ImportRowError reports a rejected row of a bulk marks sheet.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// MarksImportResult summarises a bulk marks upload.
type MarksImportResult struct {
	Accepted int              `json:"accepted"`
	Inserted int              `json:"inserted"`
	Rejected []ImportRowError `json:"rejected"`
}

// LandingView is the public entry page.
type LandingView struct {
	Title   string     `json:"title"`
	Entries []MenuItem `json:"entries"`
}

// LoginView describes a login form.
type LoginView struct {
	Role       models.Role `json:"role"`
	SubmitPath string      `json:"submitPath"`
	Email      string      `json:"email,omitempty"`
}

// LoginResult tells the browser where to go after signing in.
type LoginResult struct {
	Redirect string      `json:"redirect"`
	Session  SessionView `json:"session"`
}
