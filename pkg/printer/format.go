package printer

import "strconv"

// FormatYen renders an integer yen amount with a currency prefix and comma
// grouping, e.g. 1234567 -> "¥1,234,567".
func FormatYen(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := strconv.FormatInt(amount, 10)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	if neg {
		return "-¥" + s
	}
	return "¥" + s
}
