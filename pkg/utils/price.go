package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var nonPriceChars = regexp.MustCompile(`[^\d.]`)

// ParsePrice extracts a numeric price from provider price text, tolerating
// currency symbols and thousands separators ("$500", "500", "$1,234").
// Unparsable text yields ok=false rather than an error: a price that cannot
// be read is simply absent.
func ParsePrice(priceText string) (float64, bool) {
	if priceText == "" {
		return 0, false
	}

	cleaned := nonPriceChars.ReplaceAllString(strings.ReplaceAll(priceText, ",", ""), "")
	if cleaned == "" {
		return 0, false
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

// FormatStops renders a stop count for display
func FormatStops(stops int) string {
	switch {
	case stops == 0:
		return "Nonstop"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// FormatPriceStatus normalizes a provider price-level indicator
func FormatPriceStatus(status string) string {
	switch status {
	case "":
		return "Unknown"
	case "low":
		return "Low"
	case "typical":
		return "Typical"
	case "high":
		return "High"
	}
	words := strings.Fields(strings.ReplaceAll(status, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
