package models

import (
	"encoding/json"
	"time"
)

// ExamTypes is the fixed enumeration of exam kinds.
var ExamTypes = []string{"Unit Test", "Mid Term", "Final", "Monthly Test", "Weekly Test"}

// Subjects is the fixed enumeration of subjects marks can be entered for.
var Subjects = []string{
	"Mathematics",
	"Physics",
	"Chemistry",
	"Biology",
	"English",
	"Hindi",
	"Social Science",
	"Computer Science",
}

// StudentRef is either a bare student id or the populated student document.
type StudentRef struct {
	ID      string
	Student *Student
}

// UnmarshalJSON accepts both the string and the populated object form.
func (r *StudentRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		r.Student = nil
		return nil
	}

	var student Student
	if err := json.Unmarshal(data, &student); err != nil {
		return err
	}
	r.ID = student.ID
	r.Student = &student
	return nil
}

// MarshalJSON writes the reference back as a bare id.
func (r StudentRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ID)
}

// MarksEntry is one exam-subject score. Percentage and grade come from the backend.
type MarksEntry struct {
	ID            string     `json:"_id"`
	Student       StudentRef `json:"studentId"`
	StudentName   string     `json:"studentName"`
	Class         string     `json:"class"`
	ExamType      string     `json:"examType"`
	ExamName      string     `json:"examName"`
	ExamDate      string     `json:"examDate"`
	Subject       string     `json:"subject"`
	MarksObtained float64    `json:"marksObtained"`
	TotalMarks    float64    `json:"totalMarks"`
	Percentage    float64    `json:"percentage"`
	Grade         string     `json:"grade"`
	Remarks       string     `json:"remarks,omitempty"`
	CreatedAt     *time.Time `json:"createdAt,omitempty"`
	UpdatedAt     *time.Time `json:"updatedAt,omitempty"`
}
