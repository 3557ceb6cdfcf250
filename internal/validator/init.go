package validator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// TagClock checks a 24-hour "HH:MM" string.
const TagClock = "hhmm"

var (
	validate *validator.Validate
	clockRe  = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation(TagClock, func(fl validator.FieldLevel) bool {
		return clockRe.MatchString(fl.Field().String())
	})
}

func GetValidator() *validator.Validate {
	return validate
}

// ClockPattern is the HH:MM expression, exported for the API document.
func ClockPattern() string {
	return clockRe.String()
}

func IsClock(v string) bool {
	return validate.Var(v, "required,"+TagClock) == nil
}

func IsPriority(v int) bool {
	return validate.Var(v, "gte=1,lte=5") == nil
}

func IsAge(v int) bool {
	return validate.Var(v, "gte=0") == nil
}

func IsUUID(v string) bool {
	return validate.Var(v, "required,uuid") == nil
}

func IsEmail(v string) bool {
	return validate.Var(v, "required,email") == nil
}
