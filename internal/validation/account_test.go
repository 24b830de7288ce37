package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoginForms(t *testing.T) {
	require.Equal(t, MsgAllFields, AdminLoginForm{Email: "admin@spc.in"}.Validate().Message())
	require.True(t, AdminLoginForm{Email: "admin@spc.in", Password: "secret"}.Validate().OK())

	require.Equal(t, MsgEmailRequired, StudentLoginForm{}.Validate().Message())
	require.Equal(t, MsgInvalidEmailAddress, StudentLoginForm{Email: "student@spc"}.Validate().Message())
	require.True(t, StudentLoginForm{Email: "student@spc.in"}.Validate().OK())
}

func TestPasswordChangeOrder(t *testing.T) {
	require.Equal(t, MsgAllFields, PasswordChangeForm{NewPassword: "abc"}.Validate().Message())
	require.Equal(t, MsgPasswordsDoNotMatch, PasswordChangeForm{CurrentPassword: "old", NewPassword: "abc", ConfirmPassword: "abd"}.Validate().Message())
	require.Equal(t, MsgPasswordTooShort, PasswordChangeForm{CurrentPassword: "old", NewPassword: "abc", ConfirmPassword: "abc"}.Validate().Message())

	form := PasswordChangeForm{CurrentPassword: "old", NewPassword: "abcdef", ConfirmPassword: "abcdef"}
	require.True(t, form.Validate().OK())
	require.Equal(t, "abcdef", form.Payload().NewPassword)
}

func TestProfileForm(t *testing.T) {
	require.Equal(t, MsgSignupContactDigits, ProfileForm{ContactNumber: "12345"}.Validate().Message())
	require.True(t, ProfileForm{ContactNumber: "9876543210", Address: "Pune"}.Validate().OK())
}
