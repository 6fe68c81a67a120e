package handlers

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// confirmationMessage renders the human-readable donation confirmation in
// the negotiated locale, using locale-aware digit grouping for the amount.
func confirmationMessage(locale string, amountCents int64, title string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	whole := amountCents / 100
	cents := amountCents % 100

	base, _ := tag.Base()
	if base.String() == "id" {
		return p.Sprintf("Terima kasih! Donasi sebesar %d,%02d untuk %q sudah tercatat.", whole, cents, title)
	}
	return p.Sprintf("Thank you! Your donation of %d.%02d toward %q has been recorded.", whole, cents, title)
}
