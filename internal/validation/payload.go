package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

const (
	contactNumberTag = "contact_number"
	portalEmailTag   = "portal_email"
)

// Payloads is the last line of defence before a body leaves for the backend: the
// typed wire payloads carry validate tags that must agree with the form rules.
type Payloads struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewPayloads builds a validator with english messages, json field names and the
// portal's custom tags.
func NewPayloads() *Payloads {
	validate := validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	translator, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(contactNumberTag, func(fl validator.FieldLevel) bool {
		return IsContactNumber(fl.Field().String())
	})
	_ = validate.RegisterValidation(portalEmailTag, func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})

	noop := func(ut.Translator) error { return nil }
	for _, tag := range []string{contactNumberTag, portalEmailTag} {
		_ = validate.RegisterTranslation(tag, translator, noop, translateCustom)
	}

	return &Payloads{validate: validate, translator: translator}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case contactNumberTag:
		return fe.Field() + " must be exactly 10 digits"
	case portalEmailTag:
		return MsgInvalidEmailAddress
	default:
		return ""
	}
}

// Check validates a payload struct and reports the first violation as *Error.
func (p *Payloads) Check(payload any) error {
	err := p.validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return &Error{Message: fieldErrs[0].Translate(p.translator)}
	}
	return &Error{Message: err.Error()}
}

// Validator exposes the underlying validator for handlers that bind query structs.
func (p *Payloads) Validator() *validator.Validate {
	return p.validate
}
