package validation

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/successpath-portal/internal/dto"
)

func TestPayloadsAcceptFormOutput(t *testing.T) {
	payloads := NewPayloads()
	require.NoError(t, payloads.Check(validStudentForm().CreatePayload()))
	require.NoError(t, payloads.Check(validMarksForm().Payload()))
	require.NoError(t, payloads.Check(completeSignupForm().Payload()))
	require.NoError(t, payloads.Check(AnnouncementForm{Title: "t", Content: "c"}.Payload()))
}

func TestPayloadsReportTranslatedMessage(t *testing.T) {
	payloads := NewPayloads()

	payload := validStudentForm().CreatePayload()
	payload.ContactNumber = "123"
	err := payloads.Check(payload)
	var validationErr *Error
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "contactNumber must be exactly 10 digits", validationErr.UserMessage())

	err = payloads.Check(dto.StudentLoginRequest{Email: "a@b"})
	require.EqualError(t, err, MsgInvalidEmailAddress)

	err = payloads.Check(dto.MarksPayload{StudentID: "s", Class: "c", ExamType: "Final", ExamName: "n", ExamDate: "d", Subject: "English", MarksObtained: 80, TotalMarks: 50})
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Message, "marksObtained")
}
