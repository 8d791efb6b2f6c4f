package mail

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/BerylCAtieno/finance-bill-advisor/internal/models"
)

var defaultRecipients = []string{
	"financecommittee@parliament.go.ke",
	"publicparticipation@treasury.go.ke",
}

// DefaultRecipients returns a fresh copy of the default addressees. Every call
// yields the same contents.
func DefaultRecipients() []string {
	return slices.Clone(defaultRecipients)
}

// RecipientsOr returns configured when it has any non-blank address, else the defaults.
func RecipientsOr(configured []string) []string {
	var out []string
	for _, r := range configured {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return DefaultRecipients()
	}
	return out
}

// MailtoURI builds mailto:<to,...>?subject=...&body=... with RFC 3986
// percent-encoding, so spaces are %20 and decoding restores the exact text.
func MailtoURI(draft models.EmailDraft) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s",
		strings.Join(draft.To, ","), encodeComponent(draft.Subject), encodeComponent(draft.Body))
}

// ClipboardText renders the draft as pasteable plain text.
func ClipboardText(draft models.EmailDraft) string {
	return fmt.Sprintf("To: %s\nSubject: %s\n\n%s", strings.Join(draft.To, ", "), draft.Subject, draft.Body)
}

func encodeComponent(s string) string {
	// QueryEscape writes a literal '+' as %2B, so any '+' left is a space.
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
