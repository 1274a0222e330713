package models

import "fmt"

// FormatCents renders a cent amount with exactly two decimals and no
// grouping, e.g. 123456 -> "1234.56". This is the wire format used in
// the SPC payload.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// FormatCentsGrouped renders a cent amount for display, with the Swiss
// apostrophe-free space grouping used on payment slips,
// e.g. 123456789 -> "1 234 567.89".
func FormatCentsGrouped(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	whole := fmt.Sprintf("%d", cents/100)
	var grouped []byte
	for i, d := range []byte(whole) {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped = append(grouped, ' ')
		}
		grouped = append(grouped, d)
	}
	return fmt.Sprintf("%s%s.%02d", sign, grouped, cents%100)
}
