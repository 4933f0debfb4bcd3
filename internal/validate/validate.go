package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	reSlug  = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	reRole  = regexp.MustCompile(`^(ADMIN|MANAGER)$`)
)

// Slug validates a category slug: lowercase, digits and single dashes.
func Slug(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 64 {
		return "", false
	}
	return s, reSlug.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 100 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Password enforces a length window; 72 is the bcrypt input limit.
func Password(s string) bool {
	return len(s) >= 8 && len(s) <= 72
}

// Role validates allowed role enums.
func Role(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reRole.MatchString(s)
}

// ID parses a numeric resource identifier from a path parameter.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n, err == nil && n > 0
}

// Name validates a displayable localized name.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && len(s) <= 200
}
