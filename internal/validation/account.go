package validation

import "github.com/noah-isme/successpath-portal/internal/dto"

// AdminLoginForm is the admin sign-in form.
type AdminLoginForm struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// Validate checks both fields are filled.
func (f AdminLoginForm) Validate() Result {
	return Evaluate(Rule{Message: MsgAllFields, Check: func() bool { return Present(f.Email, f.Password) }})
}

// StudentLoginForm is the passwordless student sign-in form.
type StudentLoginForm struct {
	Email string `json:"email" form:"email" query:"email"`
}

// Validate checks the email is present and well formed.
func (f StudentLoginForm) Validate() Result {
	return Evaluate(
		Rule{Message: MsgEmailRequired, Check: func() bool { return Present(f.Email) }},
		Rule{Message: MsgInvalidEmailAddress, Check: func() bool { return IsEmail(f.Email) }},
	)
}

// ProfileForm is the student self-edit form; only contact and address change.
type ProfileForm struct {
	ContactNumber string `json:"contactNumber" form:"contactNumber"`
	Address       string `json:"address" form:"address"`
}

// Validate checks the contact number.
func (f ProfileForm) Validate() Result {
	return Evaluate(
		Rule{Message: MsgSignupRequiredFields, Check: func() bool { return Present(f.ContactNumber) }},
		Rule{Message: MsgSignupContactDigits, Check: func() bool { return IsContactNumber(f.ContactNumber) }},
	)
}

// Payload converts the form into the wire body.
func (f ProfileForm) Payload() dto.ProfileUpdatePayload {
	return dto.ProfileUpdatePayload{ContactNumber: f.ContactNumber, Address: f.Address}
}

// PasswordChangeForm is the student change-password form.
type PasswordChangeForm struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// Validate checks presence, confirmation, then length.
func (f PasswordChangeForm) Validate() Result {
	return Evaluate(
		Rule{Message: MsgAllFields, Check: func() bool {
			return Present(f.CurrentPassword, f.NewPassword, f.ConfirmPassword)
		}},
		Rule{Message: MsgPasswordsDoNotMatch, Check: func() bool { return f.NewPassword == f.ConfirmPassword }},
		Rule{Message: MsgPasswordTooShort, Check: func() bool { return LongEnough(f.NewPassword) }},
	)
}

// Payload converts the form into the wire body.
func (f PasswordChangeForm) Payload() dto.ChangePasswordPayload {
	return dto.ChangePasswordPayload{CurrentPassword: f.CurrentPassword, NewPassword: f.NewPassword}
}
