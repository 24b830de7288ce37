package validation

// User-visible messages. They are part of the portal's contract with the UI.
const (
	MsgRequiredFields       = "Please fill all required fields"
	MsgSignupRequiredFields = "Please fill in all required fields"
	MsgAllFields            = "Please fill in all fields"

	MsgContactDigits        = "Contact Number must be exactly 10 digits"
	MsgParentContactDigits  = "Parent Contact must be exactly 10 digits"
	MsgSignupContactDigits  = "Contact number must be 10 digits"
	MsgSignupParentDigits   = "Parent contact must be 10 digits"
	MsgInvalidEmailAddress  = "Please enter a valid email address"
	MsgInvalidEmail         = "Please enter a valid email"
	MsgEmailRequired        = "Please enter your email address"
	MsgPasswordTooShort     = "Password must be at least 6 characters"
	MsgPasswordsDoNotMatch  = "Passwords do not match"
	MsgMarksExceedTotal     = "Marks obtained cannot exceed total marks"
	MsgMarksNotNumeric      = "Marks must be numbers"
	MsgMarksNegative        = "Marks must be >= 0"
	MsgTotalMarksTooSmall   = "Total marks must be >= 1"
	MsgInvalidExamType      = "Please select a valid exam type"
	MsgInvalidSubject       = "Please select a valid subject"
	MsgAnnouncementRequired = "Title and content are required"
	MsgInvalidPriority      = "Priority must be High, Medium or Low"
)
