package utils

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatPrice renders whole US dollars with thousands separators, e.g. "$1,250,000".
func FormatPrice(price float64) string {
	p := message.NewPrinter(language.AmericanEnglish)
	return p.Sprintf("$%d", int64(math.Round(price)))
}
