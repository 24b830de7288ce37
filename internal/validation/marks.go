package validation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/noah-isme/successpath-portal/internal/dto"
	"github.com/noah-isme/successpath-portal/internal/models"
)

// NumberField keeps a numeric input as typed so that an empty field can be told
// apart from zero. It accepts JSON numbers as well as strings.
type NumberField string

// UnmarshalJSON accepts "12", 12 and null.
func (n *NumberField) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*n = NumberField(text)
		return nil
	}
	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*n = NumberField(number.String())
	return nil
}

// Empty reports whether nothing was entered.
func (n NumberField) Empty() bool {
	return n == ""
}

// Float parses the entered value. NaN and infinities are not numbers a form
// can carry to the backend.
func (n NumberField) Float() (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(string(n)), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// MarksForm is the admin marks entry form.
type MarksForm struct {
	StudentID     string      `json:"studentId" form:"studentId"`
	StudentName   string      `json:"studentName" form:"studentName"`
	Class         string      `json:"class" form:"class"`
	ExamType      string      `json:"examType" form:"examType"`
	ExamName      string      `json:"examName" form:"examName"`
	ExamDate      string      `json:"examDate" form:"examDate"`
	Subject       string      `json:"subject" form:"subject"`
	MarksObtained NumberField `json:"marksObtained" form:"marksObtained"`
	TotalMarks    NumberField `json:"totalMarks" form:"totalMarks"`
	Remarks       string      `json:"remarks" form:"remarks"`
}

// Rules returns the marks rules. The "cannot exceed" rule runs before the range
// rules so that an over-total entry always reports that specific message.
func (f MarksForm) Rules() []Rule {
	obtained, obtainedOK := f.MarksObtained.Float()
	total, totalOK := f.TotalMarks.Float()

	return []Rule{
		{Message: MsgRequiredFields, Check: func() bool {
			return Present(f.StudentID, f.Class, f.ExamType, f.ExamName, f.Subject, f.ExamDate) &&
				!f.MarksObtained.Empty() && !f.TotalMarks.Empty()
		}},
		{Message: MsgMarksNotNumeric, Check: func() bool { return obtainedOK && totalOK }},
		{Message: MsgMarksExceedTotal, Check: func() bool { return obtained <= total }},
		{Message: MsgMarksNegative, Check: func() bool { return obtained >= 0 }},
		{Message: MsgTotalMarksTooSmall, Check: func() bool { return total >= 1 }},
		{Message: MsgInvalidExamType, Check: func() bool { return OneOf(f.ExamType, models.ExamTypes) }},
		{Message: MsgInvalidSubject, Check: func() bool { return OneOf(f.Subject, models.Subjects) }},
	}
}

// Validate evaluates Rules.
func (f MarksForm) Validate() Result {
	return Evaluate(f.Rules()...)
}

// Payload converts a validated form into the wire body.
func (f MarksForm) Payload() dto.MarksPayload {
	obtained, _ := f.MarksObtained.Float()
	total, _ := f.TotalMarks.Float()

	return dto.MarksPayload{
		StudentID:     f.StudentID,
		StudentName:   f.StudentName,
		Class:         f.Class,
		ExamType:      f.ExamType,
		ExamName:      f.ExamName,
		ExamDate:      f.ExamDate,
		Subject:       f.Subject,
		MarksObtained: obtained,
		TotalMarks:    total,
		Remarks:       f.Remarks,
	}
}

// FillStudent copies name and class of the selected student into the form, the
// way the entry form auto-fills them on selection.
func (f *MarksForm) FillStudent(student models.Student) {
	if student.ID == "" || student.ID != f.StudentID {
		return
	}
	f.StudentName = student.Name
	f.Class = student.Class
}
