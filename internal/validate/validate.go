package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Error is a form problem shown to the operator verbatim.
type Error struct{ Msg string }

func (e *Error) Error() string { return e.Msg }

var (
	ErrRequired         = &Error{Msg: "Please fill in all required fields"}
	ErrPasswordMismatch = &Error{Msg: "Passwords do not match"}
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
)

// Required fails when any value is blank after trimming.
func Required(vals ...string) error {
	for _, v := range vals {
		if strings.TrimSpace(v) == "" {
			return ErrRequired
		}
	}
	return nil
}

// PasswordConfirmed is the only cross-field rule on operator forms. When
// optional is set an empty password skips the check (editing without a reset).
func PasswordConfirmed(pw, confirm string, optional bool) error {
	if optional && pw == "" {
		return nil
	}
	if pw != confirm {
		return ErrPasswordMismatch
	}
	return nil
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Q trims a search query. Any characters are allowed since phone numbers
// and emails are searchable. The query is never shortened.
func Q(s string) string {
	return strings.TrimSpace(s)
}

// ID validates a path identifier (backend object ids, order numbers).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// Delta parses a signed, non-zero stock adjustment.
func Delta(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}

// Day parses a yyyy-mm-dd date filter. Blank means no filter.
func Day(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// OneOf reports whether s is one of allowed, exactly.
func OneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
