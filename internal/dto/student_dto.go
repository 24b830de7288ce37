package dto

import "github.com/noah-isme/successpath-portal/internal/models"

// StudentCreatePayload is the body of POST /admin/students. Required fields are
// always present; optional ones are dropped when empty.
type StudentCreatePayload struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,portal_email"`
	Class         string `json:"class" validate:"required"`
	RollNo        string `json:"rollNo" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required,contact_number"`
	Password      string `json:"password" validate:"required"`
	Section       string `json:"section,omitempty"`
	Gender        string `json:"gender,omitempty"`
	BloodGroup    string `json:"bloodGroup,omitempty"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
	ParentName    string `json:"parentName,omitempty"`
	ParentContact string `json:"parentContact,omitempty" validate:"omitempty,contact_number"`
	Address       string `json:"address,omitempty"`
}

// StudentUpdatePayload is the body of PUT /admin/students/:id.
type StudentUpdatePayload struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,portal_email"`
	Class         string `json:"class" validate:"required"`
	RollNo        string `json:"rollNo" validate:"required"`
	ContactNumber string `json:"contactNumber" validate:"required,contact_number"`
	Section       string `json:"section,omitempty"`
	Gender        string `json:"gender,omitempty"`
	BloodGroup    string `json:"bloodGroup,omitempty"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
	ParentName    string `json:"parentName,omitempty"`
	ParentContact string `json:"parentContact,omitempty" validate:"omitempty,contact_number"`
	Address       string `json:"address,omitempty"`
	IsActive      *bool  `json:"isActive,omitempty"`
}

// ProfileUpdatePayload is the student self-edit body; only contact and address.
type ProfileUpdatePayload struct {
	ContactNumber string `json:"contactNumber" validate:"required,contact_number"`
	Address       string `json:"address"`
}

// StudentFilter narrows GET /admin/students.
type StudentFilter struct {
	Page    int
	Limit   int
	Search  string
	Class   string
	Section string
}

// StudentPage is the paginated GET /admin/students body.
type StudentPage struct {
	Success     bool             `json:"success"`
	Students    []models.Student `json:"students"`
	TotalPages  int              `json:"totalPages"`
	CurrentPage int              `json:"currentPage"`
	Total       int64            `json:"total"`
}

// StudentEnvelope wraps a single student record.
type StudentEnvelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Student models.Student `json:"student"`
}
