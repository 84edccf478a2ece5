package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// TagDiscordID is the struct tag that checks a Discord snowflake.
const TagDiscordID = "discord_id"

// Discord snowflakes are 17-20 decimal digits.
var discordIDPattern = regexp.MustCompile(`^\d{17,20}$`)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

var (
	instance *Validator
	once     sync.Once
)

// Get returns the shared validator with the custom tags registered.
func Get() *Validator {
	once.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation(TagDiscordID, validateDiscordID)
		instance = &Validator{validate: v}
	})
	return instance
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateVar validates a single value against a tag expression.
func (v *Validator) ValidateVar(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// IsValidUserID reports whether id, after trimming, is a Discord user id.
func IsValidUserID(id string) bool {
	return Get().ValidateVar(strings.TrimSpace(id), "required,"+TagDiscordID) == nil
}

// FormatValidationError formats validation errors into a user-friendly map
// This prevents leaking internal struct names and provides cleaner error messages
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case TagDiscordID:
			errs[field] = "Must be a Discord user ID"
		case "url":
			errs[field] = "Must be a URL"
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s characters", e.Param())
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

func validateDiscordID(fl validator.FieldLevel) bool {
	return discordIDPattern.MatchString(fl.Field().String())
}
