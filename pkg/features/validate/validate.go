package validate

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// Error reports the first violated constraint. Handlers surface its message
// verbatim as a 400 response.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func errf(format string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)

// PhoneNumber reports whether s is a valid E.164 phone number.
func PhoneNumber(s string) bool {
	return e164Pattern.MatchString(s)
}

type CheckFunc func(name, value string) error

type Field struct {
	Name     string
	Required bool
	Check    CheckFunc
}

// Fields validates params against the given schema, returning the first
// violated constraint. Optional fields are checked only when present.
func Fields(params map[string]string, fields []Field) error {
	for _, field := range fields {
		value := params[field.Name]
		if value == "" {
			if field.Required {
				return errf("%s is required", field.Name)
			}
			continue
		}
		if field.Check != nil {
			if err := field.Check(field.Name, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func E164() CheckFunc {
	return func(name, value string) error {
		if !PhoneNumber(value) {
			return errf("%s must be in E.164 format (e.g., +12025550123)", name)
		}
		return nil
	}
}

func Int() CheckFunc {
	return func(name, value string) error {
		if _, err := strconv.Atoi(value); err != nil {
			return errf("%s must be an integer", name)
		}
		return nil
	}
}

func IntRange(min, max int) CheckFunc {
	return func(name, value string) error {
		n, err := strconv.Atoi(value)
		if err != nil {
			return errf("%s must be an integer", name)
		}
		if n < min || n > max {
			return errf("%s must be between %d and %d", name, min, max)
		}
		return nil
	}
}

func OneOf(values ...string) CheckFunc {
	return func(name, value string) error {
		for _, allowed := range values {
			if value == allowed {
				return nil
			}
		}
		return errf("%s must be one of: %s", name, strings.Join(values, ", "))
	}
}

func Bool() CheckFunc {
	return func(name, value string) error {
		if _, err := strconv.ParseBool(value); err != nil {
			return errf("%s must be a boolean", name)
		}
		return nil
	}
}

func Length(n int) CheckFunc {
	return func(name, value string) error {
		if len(value) != n {
			return errf("%s must be exactly %d characters", name, n)
		}
		return nil
	}
}

func MaxLength(n int) CheckFunc {
	return func(name, value string) error {
		if len(value) > n {
			return errf("%s must be at most %d characters", name, n)
		}
		return nil
	}
}

func URL() CheckFunc {
	return func(name, value string) error {
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return errf("%s must be a valid URL", name)
		}
		return nil
	}
}
