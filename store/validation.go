package store

import (
	"aptos-board/domain"
	"aptos-board/errors"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("utf16max", utf16Max)
	return v
}

// utf16Max bounds a string by its UTF-16 code units, the way browsers count text length.
// An emoji outside the BMP counts twice.
func utf16Max(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(utf16.Encode([]rune(fl.Field().String()))) <= limit
}

// validateBody checks the raw body and returns the trimmed text to store.
// The length limit applies to the body as typed, counted in UTF-16 code units.
func (s *Store) validateBody(cmd domain.PostMessageCommand) (string, error) {
	rules := fmt.Sprintf("notblank,utf16max=%d", s.opts.MaxContentLength)
	if err := validate.Var(cmd.Body, rules); err != nil {
		var validationErrors validator.ValidationErrors
		if stderrors.As(err, &validationErrors) && len(validationErrors) > 0 &&
			validationErrors[0].Tag() == "utf16max" {
			return "", errors.ErrMessageTooLong
		}
		return "", errors.ErrEmptyMessage
	}
	return strings.TrimSpace(cmd.Body), nil
}

func rejectionText(err error, maxLength int) string {
	if stderrors.Is(err, errors.ErrMessageTooLong) {
		return fmt.Sprintf("Message exceeds %d characters", maxLength)
	}
	return textMessageEmpty
}
