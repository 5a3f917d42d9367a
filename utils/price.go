package utils

import "fmt"

// FormatPrice converts integer cents into a display string, e.g. 199 ->
// "1.99 €".
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d €", sign, cents/100, cents%100)
}
