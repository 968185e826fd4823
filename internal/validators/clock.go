package validators

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// HHMM validates an optional "HH:MM" clock string. Registered on the gin
// binding engine as "hhmm"; schedule and appointment payloads use it.
func HHMM(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == "" {
		return true
	}
	_, err := time.Parse("15:04", v)
	return err == nil
}
