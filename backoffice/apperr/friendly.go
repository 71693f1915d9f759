package apperr

import (
	"regexp"
	"strings"

	"github.com/jackc/pgerrcode"
)

var sqlState = regexp.MustCompile(`(?i)sqlstate[\s:=]*([0-9A-Z]{5})`)

type friendlyRule struct {
	substrings []string
	message    string
}

var friendlyRules = []friendlyRule{
	{
		substrings: []string{"foreign key", "reference constraint", "is still referenced"},
		message:    "this record is still used by other records and cannot be changed or removed",
	},
	{
		substrings: []string{"duplicate key", "unique constraint", "already exists"},
		message:    "a record with the same value already exists",
	},
}

// Friendly maps known database failure text leaking out of the upstream API to a
// message an operator can act on. The second result is false when nothing matched.
func Friendly(text string) (string, bool) {
	if text == "" {
		return "", false
	}

	if m := sqlState.FindStringSubmatch(text); m != nil {
		if msg, ok := sqlStateMessage(strings.ToUpper(m[1])); ok {
			return msg, true
		}
	}

	lower := strings.ToLower(text)
	for _, rule := range friendlyRules {
		for _, s := range rule.substrings {
			if strings.Contains(lower, s) {
				return rule.message, true
			}
		}
	}
	return "", false
}

func sqlStateMessage(code string) (string, bool) {
	switch code {
	case pgerrcode.ForeignKeyViolation, pgerrcode.RestrictViolation:
		return friendlyRules[0].message, true
	case pgerrcode.UniqueViolation:
		return friendlyRules[1].message, true
	case pgerrcode.NotNullViolation:
		return "a required value is missing", true
	case pgerrcode.CheckViolation:
		return "a value is outside the allowed range", true
	}
	if pgerrcode.IsIntegrityConstraintViolation(code) {
		return "the change conflicts with existing data", true
	}
	return "", false
}
