package shared

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// maxMinutes keeps m*60+59 within int.
const maxMinutes = (math.MaxInt - 59) / 60

// ParseDuration converts a "M:SS" duration into whole seconds.
//
// Minutes are one or more decimal digits and are not padded. Seconds are exactly two digits in the range 00-59.
// Any other shape is rejected with [ErrInvalidDurationFormat].
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	mins, secs, ok := strings.Cut(s, ":")
	if !ok || mins == "" || len(secs) != 2 || !isDigits(mins) || !isDigits(secs) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDurationFormat, s)
	}

	m, err := strconv.Atoi(mins)
	if err != nil || m > maxMinutes {
		return 0, fmt.Errorf("%w: %q is out of range", ErrInvalidDurationFormat, s)
	}
	sec, _ := strconv.Atoi(secs)
	if sec > 59 {
		return 0, fmt.Errorf("%w: %q has %d seconds", ErrInvalidDurationFormat, s, sec)
	}

	return m*60 + sec, nil
}

// FormatDuration renders whole seconds as "M:SS". Negative values format as "0:00".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
