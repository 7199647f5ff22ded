package services

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"orcaeletricista/models"
)

const whatsAppSendURL = "https://api.whatsapp.com/send"

// ShareSummary is the hand-off text of a quote for messaging targets.
type ShareSummary struct {
	// Message keeps WhatsApp bold/italic markers.
	Message string `json:"message"`
	// Text is Message without the bold markers, for email and clipboard.
	Text        string `json:"text"`
	WhatsAppURL string `json:"whatsappUrl"`
	MailtoURL   string `json:"mailtoUrl"`
}

// BuildShareSummary formats the client, date, address and grand total of q.
func BuildShareSummary(q models.Quote, loc *time.Location) ShareSummary {
	lines := []string{
		"*Orçamento de Serviços Elétricos - Orça Pro*",
		"",
		"*Cliente:* " + q.ClientName,
		"*Data:* " + FormatDate(q.Date, loc),
		"*Local:* " + orNotInformed(q.Address),
		"",
		"*Total:* " + FormatBRL(GrandTotal(q)),
		"",
		"_" + AppSignature + "_",
	}
	message := strings.Join(lines, "\n")
	text := strings.ReplaceAll(message, "*", "")

	return ShareSummary{
		Message:     message,
		Text:        text,
		WhatsAppURL: WhatsAppURL(message),
		MailtoURL:   MailtoURL(fmt.Sprintf("Orçamento Elétrico - %s", q.ClientName), text),
	}
}

// WhatsAppURL builds a click-to-send link carrying message.
func WhatsAppURL(message string) string {
	return whatsAppSendURL + "?text=" + escapeComponent(message)
}

// MailtoURL builds a mailto link with no recipient.
func MailtoURL(subject, body string) string {
	return "mailto:?subject=" + escapeComponent(subject) + "&body=" + escapeComponent(body)
}

// escapeComponent percent-encodes s with spaces as %20, which mail clients
// and WhatsApp both read literally.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
