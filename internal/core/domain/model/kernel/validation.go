package kernel

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\+[0-9]{10,15}$`)
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// IsValidPhone reports whether s is "+" followed by 10 to 15 digits.
func IsValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// IsValidEmail reports whether s has the local@domain.tld shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsValidWeight reports whether s parses as a positive decimal number.
// Both "12.5" and "12,5" are accepted.
func IsValidWeight(s string) bool {
	_, err := parseKilograms(s)
	return err == nil
}

// NormalizePhone keeps only digits and "+" and guarantees a leading "+".
// Telegram contacts often arrive without the plus sign.
func NormalizePhone(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 1)
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if !strings.HasPrefix(out, "+") {
		out = "+" + out
	}
	return out
}

func parseKilograms(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	kg, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if err := checkPositive(kg); err != nil {
		return 0, err
	}
	return kg, nil
}

func checkPositive(kg float64) error {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg <= 0 {
		return errNotPositive
	}
	return nil
}
