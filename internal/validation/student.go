package validation

import "github.com/noah-isme/successpath-portal/internal/dto"

// DefaultStudentPassword is submitted when an admin creates a student without
// choosing a password. Students are expected to change it after first login.
const DefaultStudentPassword = "spc123456"

// StudentForm is the admin add/edit student form.
type StudentForm struct {
	Name          string `json:"name" form:"name"`
	Email         string `json:"email" form:"email"`
	Password      string `json:"password" form:"password"`
	Class         string `json:"class" form:"class"`
	Section       string `json:"section" form:"section"`
	RollNo        string `json:"rollNo" form:"rollNo"`
	ContactNumber string `json:"contactNumber" form:"contactNumber"`
	ParentName    string `json:"parentName" form:"parentName"`
	ParentContact string `json:"parentContact" form:"parentContact"`
	DateOfBirth   string `json:"dateOfBirth" form:"dateOfBirth"`
	Gender        string `json:"gender" form:"gender"`
	BloodGroup    string `json:"bloodGroup" form:"bloodGroup"`
	Address       string `json:"address" form:"address"`
	IsActive      *bool  `json:"isActive" form:"isActive"`
}

// Rules returns the ordered rule list shared by the add and edit forms.
func (f StudentForm) Rules() []Rule {
	return []Rule{
		{Message: MsgRequiredFields, Check: func() bool {
			return Present(f.Name, f.Email, f.Class, f.RollNo, f.ContactNumber)
		}},
		{Message: MsgContactDigits, Check: func() bool { return IsContactNumber(f.ContactNumber) }},
		{Message: MsgParentContactDigits, Check: func() bool {
			return f.ParentContact == "" || IsContactNumber(f.ParentContact)
		}},
		{Message: MsgInvalidEmailAddress, Check: func() bool { return IsEmail(f.Email) }},
	}
}

// Validate evaluates Rules.
func (f StudentForm) Validate() Result {
	return Evaluate(f.Rules()...)
}

// CreatePayload builds the add-student body, substituting the default password.
func (f StudentForm) CreatePayload() dto.StudentCreatePayload {
	password := f.Password
	if password == "" {
		password = DefaultStudentPassword
	}

	return dto.StudentCreatePayload{
		Name:          f.Name,
		Email:         f.Email,
		Class:         f.Class,
		RollNo:        f.RollNo,
		ContactNumber: f.ContactNumber,
		Password:      password,
		Section:       f.Section,
		Gender:        f.Gender,
		BloodGroup:    f.BloodGroup,
		DateOfBirth:   f.DateOfBirth,
		ParentName:    f.ParentName,
		ParentContact: f.ParentContact,
		Address:       f.Address,
	}
}

// UpdatePayload builds the edit-student body. Passwords are never sent on edit.
func (f StudentForm) UpdatePayload() dto.StudentUpdatePayload {
	return dto.StudentUpdatePayload{
		Name:          f.Name,
		Email:         f.Email,
		Class:         f.Class,
		RollNo:        f.RollNo,
		ContactNumber: f.ContactNumber,
		Section:       f.Section,
		Gender:        f.Gender,
		BloodGroup:    f.BloodGroup,
		DateOfBirth:   f.DateOfBirth,
		ParentName:    f.ParentName,
		ParentContact: f.ParentContact,
		Address:       f.Address,
		IsActive:      f.IsActive,
	}
}
