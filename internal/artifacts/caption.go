package artifacts

import (
	"html"
	"strings"
)

// Caption renders the HTML caption for sel. releaseNotes is appended to the
// universal template only; an empty value drops the line.
func Caption(sel Selection, releaseNotes string) string {
	name := html.EscapeString(sel.Name)
	if !sel.Universal {
		return "🚀 <b>New Release Build</b>\n\n📦 File: <code>" + name + "</code>"
	}
	caption := "🚀 <b>New Release Build (Universal)</b>\n\n📦 File: <code>" + name + "</code>"
	if notes := strings.TrimSpace(releaseNotes); notes != "" {
		caption += "\n" + notes
	}
	return caption
}
