package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatINR renders an amount with Indian digit grouping, e.g. 125000.5 ->
// "INR 1,25,000.50". Whole amounts drop the decimals.
func FormatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	paise := int64(math.Round(amount * 100))
	whole, frac := paise/100, paise%100

	out := fmt.Sprintf("%sINR %s", sign, groupIndian(whole))
	if frac != 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	return out
}

// ParseAmount parses "2500", "2,500.00" or "INR 2,500" into a float. NaN and
// infinities are rejected; the sign is left to the caller.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.ToUpper(s), "INR")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid amount")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head, tail := str[:len(str)-3], str[len(str)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
