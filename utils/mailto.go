package utils

import (
	"net/url"
	"strings"
)

// MailtoLink builds a mailto: URL that opens the user's default mail client
// with a pre-filled draft. Attachments cannot be added programmatically; the
// caller downloads the export and attaches it manually.
func MailtoLink(recipient, subject, body string) string {
	return "mailto:" + recipient + "?subject=" + escape(subject) + "&body=" + escape(body)
}

// escape percent-encodes for a mailto query; %20 instead of "+" for spaces,
// which mail clients handle more reliably.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
