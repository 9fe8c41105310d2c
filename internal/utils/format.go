// internal/utils/format.go
package utils

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DisplayLocale is the single display locale of the storefront.
var DisplayLocale = language.Indonesian

var displayPrinter = message.NewPrinter(DisplayLocale)

var indonesianMonths = [...]string{
	"Januari", "Februari", "Maret", "April", "Mei", "Juni",
	"Juli", "Agustus", "September", "Oktober", "November", "Desember",
}

// FormatPrice renders an amount in Rupiah, e.g. "Rp 185.000".
func FormatPrice(amount int64) string {
	if amount < 0 {
		return "-Rp " + displayPrinter.Sprintf("%d", -amount)
	}
	return "Rp " + displayPrinter.Sprintf("%d", amount)
}

// FormatNumber groups digits the way the display locale does.
func FormatNumber(n int64) string {
	return displayPrinter.Sprintf("%d", n)
}

func FormatRating(rating float64) string {
	return displayPrinter.Sprintf("%.1f", rating)
}

// FormatDate renders "16 Oktober 2026".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), indonesianMonths[t.Month()-1], t.Year())
}

// FormatDateTime renders "16 Oktober 2026, 14.05".
func FormatDateTime(t time.Time) string {
	return fmt.Sprintf("%s, %02d.%02d", FormatDate(t), t.Hour(), t.Minute())
}
