package engine

import "math"

// parseDecimal reads a leading decimal integer the way C atoi does: leading
// whitespace and one sign are accepted, reading stops at the first non digit,
// and input without digits is 0. Values beyond int32 saturate.
func parseDecimal(b []byte) int {
	i := 0
	for i < len(b) && isSpace(b[i]) {
		i++
	}

	neg := false
	if i < len(b) && (b[i] == '+' || b[i] == '-') {
		neg = b[i] == '-'
		i++
	}

	n := 0
	for ; i < len(b) && b[i] >= '0' && b[i] <= '9'; i++ {
		if n > math.MaxInt32/10 {
			n = math.MaxInt32

			continue
		}

		n = min(n*10+int(b[i]-'0'), math.MaxInt32)
	}

	if neg {
		return -n
	}

	return n
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
