package sanitizer

import (
	"math"
	"strings"
)

// LeadingInt parses the integer prefix of s after leading whitespace, with an
// optional sign: "4 Players" is 4, " 12" is 12, "Players" is 0. Values
// outside the int32 range saturate.
func LeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	if s == "" {
		return 0
	}

	sign := 1
	switch s[0] {
	case '-':
		sign = -1
		s = s[1:]
	case '+':
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n > math.MaxInt32 {
			n = math.MaxInt32
			break
		}
	}
	return sign * n
}
