package dto

// AdminLoginRequest is the body of POST /auth/admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// AdminAccount is the admin record returned on login.
type AdminAccount struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// AdminLoginResponse is the success body of the admin login.
type AdminLoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Token   string       `json:"token"`
	Admin   AdminAccount `json:"admin"`
}

// StudentLoginRequest is the body of POST /auth/student/login-by-email.
type StudentLoginRequest struct {
	Email string `json:"email" validate:"required,portal_email"`
}

// StudentAccount is the student record returned on login.
type StudentAccount struct {
	ID        string `json:"id"`
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Class     string `json:"class"`
	Section   string `json:"section,omitempty"`
}

// StudentLoginResponse is the success body of the student login.
type StudentLoginResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Token   string         `json:"token"`
	Student StudentAccount `json:"student"`
}

// SignupPayload is the body of POST /auth/student/signup. Optional fields are
// omitted entirely when empty.
type SignupPayload struct {
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,portal_email"`
	Password      string `json:"password" validate:"required,min=6"`
	ContactNumber string `json:"contactNumber" validate:"required,contact_number"`
	Class         string `json:"class" validate:"required"`
	RollNo        string `json:"rollNo" validate:"required"`
	Section       string `json:"section,omitempty"`
	ParentName    string `json:"parentName,omitempty"`
	ParentContact string `json:"parentContact,omitempty" validate:"omitempty,contact_number"`
	DateOfBirth   string `json:"dateOfBirth,omitempty"`
	Gender        string `json:"gender,omitempty"`
	BloodGroup    string `json:"bloodGroup,omitempty"`
	Address       string `json:"address,omitempty"`
}

// SignupResponse carries the identifier assigned by the backend.
type SignupResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	StudentID string `json:"studentId"`
}

// ChangePasswordPayload is the body of PUT /student/change-password.
type ChangePasswordPayload struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// AckResponse is the generic {success, message} body.
type AckResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
