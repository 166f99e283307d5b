package rescale

import (
	"fmt"
	"strconv"
)

const (
	MinScale = 1
	MaxScale = 100
)

// ParseScale parses a scale factor argument. Only plain base-10 digits are
// accepted: no whitespace, sign or decimal point.
func ParseScale(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("%w: empty scale factor", ErrBadArgument)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: scale factor %q is not an integer", ErrBadArgument, s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: scale factor %q: %v", ErrBadArgument, s, err)
	}
	if err := checkScale(n); err != nil {
		return 0, err
	}
	return n, nil
}

func checkScale(n int) error {
	if n < MinScale || n > MaxScale {
		return fmt.Errorf("%w: 'n' must be between %d and %d inclusive, got %d", ErrBadArgument, MinScale, MaxScale, n)
	}
	return nil
}
