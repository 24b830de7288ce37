package service

import (
	"errors"
	"fmt"

	"github.com/noah-isme/successpath-portal/internal/backend"
)

var (
	// ErrConfirmationRequired guards destructive actions sent without confirmation.
	ErrConfirmationRequired = errors.New("confirmation required")
	// ErrMissingID is returned when an update or delete names no record.
	ErrMissingID = errors.New("record id is required")
)

// ActionError is a failed backend action with the message shown to the user.
type ActionError struct {
	Action  string
	Message string
	Err     error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("%s: %v", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// UserMessage is the backend message or the action's fallback text.
func (e *ActionError) UserMessage() string {
	return e.Message
}

// Status is the backend status, 0 for transport failures.
func (e *ActionError) Status() int {
	return backend.StatusOf(e.Err)
}

func actionFailed(action, fallback string, err error) error {
	return &ActionError{Action: action, Message: backend.MessageOf(err, fallback), Err: err}
}

// Acknowledgement messages for successful actions.
const (
	MsgStudentAdded         = "Student added successfully!"
	MsgStudentUpdated       = "Student updated successfully!"
	MsgStudentDeleted       = "Student deleted successfully!"
	MsgMarksAdded           = "Marks added successfully!"
	MsgMarksUpdated         = "Marks updated successfully!"
	MsgMarksDeleted         = "Marks deleted successfully!"
	MsgAnnouncementCreated  = "Announcement created successfully!"
	MsgAnnouncementUpdated  = "Announcement updated successfully!"
	MsgAnnouncementDeleted  = "Announcement deleted successfully!"
	MsgProfileUpdated       = "Profile updated successfully!"
	MsgPasswordChanged      = "Password changed successfully!"
	MsgRegistrationComplete = "Registration successful"
	MsgLoggedIn             = "Logged in"
	MsgLoggedOut            = "Logged out"
)
