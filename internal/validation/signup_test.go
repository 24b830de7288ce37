package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/successpath-portal/internal/dto"
)

type registrarStub struct {
	studentID string
	err       error
	payload   dto.SignupPayload
	calls     int
}

func (r *registrarStub) Signup(_ context.Context, payload dto.SignupPayload) (string, error) {
	r.calls++
	r.payload = payload
	return r.studentID, r.err
}

type messageErr struct{ message string }

func (e messageErr) Error() string { return "backend: " + e.message }
func (e messageErr) UserMessage() string { return e.message }

func completeSignupForm() SignupForm {
	return SignupForm{
		Name:            "Ravi Kumar",
		Class:           "9th",
		RollNo:          "7",
		Email:           "ravi@school.in",
		ContactNumber:   "9123456780",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestSignupNextBlockedOnEmptyRoll(t *testing.T) {
	wizard := NewSignupWizard()
	form := completeSignupForm()
	form.RollNo = ""
	wizard.Update(form)

	require.False(t, wizard.Next())
	require.Equal(t, StepPersonal, wizard.Step())
	require.Equal(t, MsgSignupRequiredFields, wizard.Error())
}

func TestSignupStepTwoRules(t *testing.T) {
	wizard := ResumeSignupWizard(StepContact, SignupForm{Email: "ravi@school", ContactNumber: "9123456780"})
	require.False(t, wizard.Next())
	require.Equal(t, MsgInvalidEmail, wizard.Error())

	form := completeSignupForm()
	form.ParentContact = "123"
	wizard.Update(form)
	require.Empty(t, wizard.Error())
	require.False(t, wizard.Next())
	require.Equal(t, MsgSignupParentDigits, wizard.Error())
}

func TestSignupStepThreeRules(t *testing.T) {
	form := completeSignupForm()
	form.Password, form.ConfirmPassword = "abc", "abc"
	require.Equal(t, MsgPasswordTooShort, Evaluate(form.StepRules(StepAccount)...).Message())

	form.Password, form.ConfirmPassword = "abcdef", "abcdeg"
	require.Equal(t, MsgPasswordsDoNotMatch, Evaluate(form.StepRules(StepAccount)...).Message())

	form.ConfirmPassword = ""
	require.Equal(t, MsgAllFields, Evaluate(form.StepRules(StepAccount)...).Message())
}

func TestSignupWizardHappyPath(t *testing.T) {
	ctx := context.Background()
	registrar := &registrarStub{studentID: "SPC2024001"}
	wizard := NewSignupWizard()
	wizard.Update(completeSignupForm())

	require.True(t, wizard.Next())
	require.True(t, wizard.Next())
	require.Equal(t, StepAccount, wizard.Step())
	require.False(t, wizard.Next())

	require.NoError(t, wizard.Submit(ctx, registrar))
	require.Equal(t, StepDone, wizard.Step())
	require.Equal(t, "SPC2024001", wizard.StudentID())
	require.Equal(t, 1, registrar.calls)
	require.Equal(t, "ravi@school.in", registrar.payload.Email)

	wizard.Back()
	require.Equal(t, StepDone, wizard.Step())
	require.False(t, wizard.Next())
	require.ErrorIs(t, wizard.Submit(ctx, registrar), ErrSubmitOutOfStep)
	require.Equal(t, 1, registrar.calls)
}

func TestSignupBackIsUnconditional(t *testing.T) {
	wizard := ResumeSignupWizard(StepAccount, SignupForm{})
	wizard.Back()
	require.Equal(t, StepContact, wizard.Step())
	wizard.Back()
	require.Equal(t, StepPersonal, wizard.Step())
	wizard.Back()
	require.Equal(t, StepPersonal, wizard.Step())
}

func TestSignupSubmitOnlyFromAccountStep(t *testing.T) {
	registrar := &registrarStub{studentID: "x"}
	wizard := NewSignupWizard()
	wizard.Update(completeSignupForm())

	require.ErrorIs(t, wizard.Submit(context.Background(), registrar), ErrSubmitOutOfStep)
	require.Zero(t, registrar.calls)
}

func TestSignupSubmitRevalidatesEarlierSteps(t *testing.T) {
	form := completeSignupForm()
	form.Name = ""
	wizard := ResumeSignupWizard(StepAccount, form)
	registrar := &registrarStub{studentID: "x"}

	err := wizard.Submit(context.Background(), registrar)
	var validationErr *Error
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, MsgSignupRequiredFields, wizard.Error())
	require.Equal(t, StepAccount, wizard.Step())
	require.Zero(t, registrar.calls)
}

func TestSignupSubmitSurfacesBackendMessage(t *testing.T) {
	wizard := ResumeSignupWizard(StepAccount, completeSignupForm())
	require.Error(t, wizard.Submit(context.Background(), &registrarStub{err: messageErr{message: "Email already registered"}}))
	require.Equal(t, "Email already registered", wizard.Error())
	require.Equal(t, StepAccount, wizard.Step())

	require.Error(t, wizard.Submit(context.Background(), &registrarStub{err: errors.New("dial tcp: refused")}))
	require.Equal(t, DefaultSignupFailure, wizard.Error())
}

func TestResumeNeverStartsTerminal(t *testing.T) {
	require.Equal(t, StepAccount, ResumeSignupWizard(StepDone, SignupForm{}).Step())
	require.Equal(t, StepPersonal, ResumeSignupWizard(0, SignupForm{}).Step())
}
