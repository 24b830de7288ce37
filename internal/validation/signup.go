package validation

import (
	"context"
	"errors"

	"github.com/noah-isme/successpath-portal/internal/dto"
)

// Step is a position in the signup wizard.
type Step int

const (
	StepPersonal Step = iota + 1
	StepContact
	StepAccount
	StepDone
)

// DefaultSignupFailure is shown when the backend rejects a signup without a message.
const DefaultSignupFailure = "Registration failed"

// SignupForm accumulates the fields of every wizard step.
type SignupForm struct {
	Name            string `json:"name" form:"name"`
	Class           string `json:"class" form:"class"`
	Section         string `json:"section" form:"section"`
	RollNo          string `json:"rollNo" form:"rollNo"`
	DateOfBirth     string `json:"dateOfBirth" form:"dateOfBirth"`
	Gender          string `json:"gender" form:"gender"`
	BloodGroup      string `json:"bloodGroup" form:"bloodGroup"`
	Email           string `json:"email" form:"email"`
	ContactNumber   string `json:"contactNumber" form:"contactNumber"`
	ParentName      string `json:"parentName" form:"parentName"`
	ParentContact   string `json:"parentContact" form:"parentContact"`
	Address         string `json:"address" form:"address"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// StepRules returns the rules guarding the transition out of step.
func (f SignupForm) StepRules(step Step) []Rule {
	switch step {
	case StepPersonal:
		return []Rule{
			{Message: MsgSignupRequiredFields, Check: func() bool { return Present(f.Name, f.Class, f.RollNo) }},
		}
	case StepContact:
		return []Rule{
			{Message: MsgSignupRequiredFields, Check: func() bool { return Present(f.Email, f.ContactNumber) }},
			{Message: MsgInvalidEmail, Check: func() bool { return IsEmail(f.Email) }},
			{Message: MsgSignupContactDigits, Check: func() bool { return IsContactNumber(f.ContactNumber) }},
			{Message: MsgSignupParentDigits, Check: func() bool {
				return f.ParentContact == "" || IsContactNumber(f.ParentContact)
			}},
		}
	case StepAccount:
		return []Rule{
			{Message: MsgAllFields, Check: func() bool { return Present(f.Password, f.ConfirmPassword) }},
			{Message: MsgPasswordTooShort, Check: func() bool { return LongEnough(f.Password) }},
			{Message: MsgPasswordsDoNotMatch, Check: func() bool { return f.Password == f.ConfirmPassword }},
		}
	default:
		return nil
	}
}

// Validate runs the rules of every step, in step order.
func (f SignupForm) Validate() Result {
	return Evaluate(Chain(f.StepRules(StepPersonal), f.StepRules(StepContact), f.StepRules(StepAccount))...)
}

// Payload builds the signup body; the confirmation never leaves the portal.
func (f SignupForm) Payload() dto.SignupPayload {
	return dto.SignupPayload{
		Name:          f.Name,
		Email:         f.Email,
		Password:      f.Password,
		ContactNumber: f.ContactNumber,
		Class:         f.Class,
		RollNo:        f.RollNo,
		Section:       f.Section,
		ParentName:    f.ParentName,
		ParentContact: f.ParentContact,
		DateOfBirth:   f.DateOfBirth,
		Gender:        f.Gender,
		BloodGroup:    f.BloodGroup,
		Address:       f.Address,
	}
}

// Registrar creates the student account and returns the assigned student id.
type Registrar interface {
	Signup(ctx context.Context, payload dto.SignupPayload) (string, error)
}

// SignupWizard is the four-step signup state machine. Forward moves are gated by
// the current step's rules, backward moves are unconditional, and StepDone is
// terminal.
type SignupWizard struct {
	step      Step
	form      SignupForm
	studentID string
	err       string
}

// NewSignupWizard starts an empty wizard at the first step.
func NewSignupWizard() *SignupWizard {
	return &SignupWizard{step: StepPersonal}
}

// ResumeSignupWizard rebuilds a wizard from a client-held step and form. The
// terminal step cannot be resumed: it is only reachable through Submit.
func ResumeSignupWizard(step Step, form SignupForm) *SignupWizard {
	if step < StepPersonal {
		step = StepPersonal
	}
	if step > StepAccount {
		step = StepAccount
	}
	return &SignupWizard{step: step, form: form}
}

// Step is the current wizard position.
func (w *SignupWizard) Step() Step { return w.step }

// Form returns the accumulated form.
func (w *SignupWizard) Form() SignupForm { return w.form }

// StudentID is the id assigned by the backend once the wizard is done.
func (w *SignupWizard) StudentID() string { return w.studentID }

// Error is the message of the last failed transition.
func (w *SignupWizard) Error() string { return w.err }

// Done reports whether the wizard reached its terminal step.
func (w *SignupWizard) Done() bool { return w.step == StepDone }

// Update replaces the form contents and clears the current error.
func (w *SignupWizard) Update(form SignupForm) {
	if w.Done() {
		return
	}
	w.form = form
	w.err = ""
}

// Next advances one step when the current step validates.
func (w *SignupWizard) Next() bool {
	if w.step != StepPersonal && w.step != StepContact {
		return false
	}
	w.err = ""
	result := Evaluate(w.form.StepRules(w.step)...)
	if !result.OK() {
		w.err = result.Message()
		return false
	}
	w.step++
	return true
}

// Back moves one step back. It never leaves the first or the terminal step.
func (w *SignupWizard) Back() {
	if w.step <= StepPersonal || w.Done() {
		return
	}
	w.err = ""
	w.step--
}

// Submit validates the whole form from the account step and registers the
// student. On success the wizard enters StepDone holding the assigned id.
func (w *SignupWizard) Submit(ctx context.Context, registrar Registrar) error {
	if w.step != StepAccount {
		return ErrSubmitOutOfStep
	}
	w.err = ""

	if result := w.form.Validate(); !result.OK() {
		w.err = result.Message()
		return result.Err()
	}

	studentID, err := registrar.Signup(ctx, w.form.Payload())
	if err != nil {
		w.err = userMessage(err, DefaultSignupFailure)
		return err
	}

	w.studentID = studentID
	w.step = StepDone
	return nil
}

// ErrSubmitOutOfStep is returned when Submit is called before the account step
// or after completion.
var ErrSubmitOutOfStep = errors.New("signup can only be submitted from the account step")

type userMessager interface {
	UserMessage() string
}

func userMessage(err error, fallback string) string {
	var messager userMessager
	if errors.As(err, &messager) {
		if message := messager.UserMessage(); message != "" {
			return message
		}
	}
	return fallback
}
