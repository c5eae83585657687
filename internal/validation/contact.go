// Package validation checks contact submissions against a whitelist
// contract: every field must match a known-good shape, rather than
// being screened against known-bad patterns. This is the primary
// defense against injection and markup attacks.
package validation

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/casacomune/community-api/internal/models"
)

var (
	// Letters (including accented Latin), spaces, apostrophes and hyphens.
	namePattern = regexp.MustCompile(`^[a-zA-ZÀ-ÖØ-öø-ÿ' -]{2,100}$`)

	// RFC-5322-lite: local part, @, domain with at least one dot.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,254}$`)

	// Digits, spaces, plus, hyphen, parentheses, at most 20 characters.
	phonePattern = regexp.MustCompile(`^[0-9 ()+-]{0,20}$`)
)

// Result is the outcome of validating a submission. Errors maps each
// failing field to a human-readable reason and is empty when Valid.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// contactForm mirrors models.ContactSubmission with validation tags.
// Kept separate so the transport model carries no binding behavior.
type contactForm struct {
	Name    string `json:"name" validate:"required,person_name"`
	Email   string `json:"email" validate:"required,email_lite"`
	Phone   string `json:"phone" validate:"omitempty,phone_chars"`
	Subject string `json:"subject" validate:"required,oneof=info visit partnership other"`
	Message string `json:"message" validate:"required,min=10,max=2000"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report errors under the JSON field name, not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Custom whitelist patterns. Registration on a fresh instance with
	// valid tag names cannot fail.
	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return namePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("email_lite", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("phone_chars", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// ValidateContact validates every field of a submission independently
// and reports all failing fields in one pass.
func ValidateContact(sub *models.ContactSubmission) Result {
	form := contactForm{
		Name:    sub.Name,
		Email:   sub.Email,
		Phone:   sub.Phone,
		Subject: sub.Subject,
		Message: sub.Message,
	}

	err := validate.Struct(form)
	if err == nil {
		return Result{Valid: true, Errors: map[string]string{}}
	}

	errs := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, fieldError := range validationErrors {
			errs[fieldError.Field()] = errorMessage(fieldError)
		}
	}

	return Result{Valid: false, Errors: errs}
}

func errorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "person_name":
		return fe.Field() + " must be 2-100 characters and contain only letters, spaces, apostrophes and hyphens"
	case "email_lite":
		return "invalid email format"
	case "phone_chars":
		return fe.Field() + " may contain at most 20 characters: digits, spaces, +, - and parentheses"
	case "oneof":
		return fe.Field() + " must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "min":
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case "max":
		return fe.Field() + " must not exceed " + fe.Param() + " characters"
	default:
		return fe.Field() + " is invalid"
	}
}
