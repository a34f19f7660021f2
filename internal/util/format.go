// Package util holds small helpers shared by the CLI and the server.
package util

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatCount formats an integer with pt-BR digit grouping: 12345 -> "12.345".
func FormatCount(n int) string {
	return ptBR.Sprintf("%d", n)
}

// FormatDecimal formats v with the given decimals and pt-BR separators.
func FormatDecimal(v float64, decimals int) string {
	return ptBR.Sprintf(fmt.Sprintf("%%.%df", decimals), v)
}

// FormatOptional formats a nullable value, "-" when nil.
func FormatOptional(v *float64, decimals int) string {
	if v == nil {
		return "-"
	}
	return FormatDecimal(*v, decimals)
}
