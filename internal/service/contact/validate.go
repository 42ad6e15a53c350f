package contact

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// MaxMessageLength is counted in characters, not bytes.
const MaxMessageLength = 2000

var basicEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type submissionRules struct {
	Name    string `validate:"required"`
	Email   string `validate:"required,basic_email"`
	Message string `validate:"required,max=2000"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("basic_email", func(fl validator.FieldLevel) bool {
		return basicEmail.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("contact: register basic_email rule: %v", err))
	}
	return v
}

// validateSubmission runs the local checks in pipeline order: presence of
// every field first, then email shape, then message length.
func validateSubmission(v *validator.Validate, s Submission) error {
	err := v.Struct(submissionRules{Name: s.Name, Email: s.Email, Message: s.Message})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	failed := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		failed[fe.Tag()] = true
	}

	switch {
	case failed["required"]:
		return ErrMissingFields
	case failed["basic_email"]:
		return ErrInvalidEmail
	case failed["max"]:
		return ErrMessageTooLong
	default:
		return err
	}
}
