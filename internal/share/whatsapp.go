// Package share builds WhatsApp deep links for sending quotes.
package share

import (
	"fmt"
	"net/url"
	"strings"
)

// Brazilian numbers only; the country prefix is fixed.
const countryPrefix = "55"

// WhatsAppLink returns a wa.me deep link for the given phone and message.
// Non-digit characters are stripped from the phone before prefixing.
func WhatsAppLink(phone, message string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	return "https://wa.me/" + countryPrefix + digits + "?text=" + url.QueryEscape(message)
}

// QuoteMessage is the templated greeting sent along with a quote.
func QuoteMessage(clienteNome string, total float64) string {
	return fmt.Sprintf("Olá %s! Segue o orçamento solicitado.\n\nTotal: R$ %.2f", clienteNome, total)
}
