package models

import "time"

// Gender values accepted by the backend.
var Genders = []string{"Male", "Female", "Other"}

// Classes, sections and blood groups offered by the admission forms.
var (
	Classes     = []string{"6th", "7th", "8th", "9th", "10th", "11th", "12th"}
	Sections    = []string{"A", "B", "C", "D"}
	BloodGroups = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}
)

// Student represents one enrolled learner as returned by the backend.
type Student struct {
	ID            string     `json:"_id"`
	StudentID     string     `json:"studentId"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Class         string     `json:"class"`
	Section       string     `json:"section,omitempty"`
	RollNo        string     `json:"rollNo"`
	ContactNumber string     `json:"contactNumber"`
	ParentName    string     `json:"parentName,omitempty"`
	ParentContact string     `json:"parentContact,omitempty"`
	DateOfBirth   string     `json:"dateOfBirth,omitempty"`
	Gender        string     `json:"gender,omitempty"`
	BloodGroup    string     `json:"bloodGroup,omitempty"`
	Address       string     `json:"address,omitempty"`
	ProfilePhoto  string     `json:"profilePhoto,omitempty"`
	AdmissionDate string     `json:"admissionDate,omitempty"`
	IsActive      bool       `json:"isActive"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}
