package dto

import "github.com/noah-isme/successpath-portal/internal/models"

// MarksPayload is the body of POST/PUT /admin/marks.
type MarksPayload struct {
	StudentID     string  `json:"studentId" validate:"required"`
	StudentName   string  `json:"studentName,omitempty"`
	Class         string  `json:"class" validate:"required"`
	ExamType      string  `json:"examType" validate:"required"`
	ExamName      string  `json:"examName" validate:"required"`
	ExamDate      string  `json:"examDate" validate:"required"`
	Subject       string  `json:"subject" validate:"required"`
	MarksObtained float64 `json:"marksObtained" validate:"gte=0,ltefield=TotalMarks"`
	TotalMarks    float64 `json:"totalMarks" validate:"gte=1"`
	Remarks       string  `json:"remarks,omitempty"`
}

// BulkMarksPayload is the body of POST /admin/marks/bulk.
type BulkMarksPayload struct {
	Marks []MarksPayload `json:"marks" validate:"required,min=1,dive"`
}

// BulkMarksResponse reports how many entries the backend stored.
type BulkMarksResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Inserted int    `json:"inserted"`
}

// MarksFilter narrows GET /admin/marks and GET /student/marks.
type MarksFilter struct {
	Page      int
	Limit     int
	Class     string
	ExamType  string
	Subject   string
	StudentID string
}

// MarksPage is the paginated marks body.
type MarksPage struct {
	Success     bool                `json:"success"`
	Marks       []models.MarksEntry `json:"marks"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	Total       int64               `json:"total"`
}

// MarksEnvelope wraps a single marks entry.
type MarksEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Marks   models.MarksEntry `json:"marks"`
}
