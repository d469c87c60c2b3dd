package validation

import (
	"strconv"
	"strings"
)

// Violations collects field -> code pairs for a single request. An empty map
// means the input passed.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveFloat(field string, val float64, v Violations) {
	if val <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonNegativeFloat(field string, val float64, v Violations) {
	if val < 0 {
		v[field] = "must_not_be_negative"
	}
}

func OneOf(field, value string, allowed []string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v[field] = "invalid_value"
}

// ParsePercent parses the bulk price-adjustment input. Zero and unparseable
// values are both rejected: adjusting by 0% is always a user mistake.
func ParsePercent(raw string) (float64, bool) {
	p, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || p == 0 {
		return 0, false
	}
	return p, true
}
