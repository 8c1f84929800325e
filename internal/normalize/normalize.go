// Package normalize reduces raw markup-bearing store metadata to plain
// scan text consumed by the detectors.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"

	"github.com/ppiankov/steamrisk/internal/model"
)

// Clean strips markup from a raw metadata field: line-break tags become
// newlines, remaining tags are dropped, entities are decoded, and
// whitespace runs are collapsed. Returns "" for empty/whitespace input.
func Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	var b strings.Builder
	tok := html.NewTokenizer(strings.NewReader(raw))

loop:
	for {
		switch tok.Next() {
		case html.ErrorToken:
			// io.EOF or malformed markup; keep whatever was collected
			break loop
		case html.TextToken:
			// Text() returns entity-decoded text
			b.Write(tok.Text())
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, _ := tok.TagName()
			switch string(name) {
			case "br", "p", "li", "div", "ul", "ol":
				b.WriteByte('\n')
			}
		}
	}

	return collapseWhitespace(b.String())
}

// collapseWhitespace reduces every whitespace run to a single separator:
// a newline when the run contained one, a space otherwise. Ends are trimmed.
func collapseWhitespace(s string) string {
	var b strings.Builder
	inRun := false
	runHadNewline := false

	for _, r := range s {
		if unicode.IsSpace(r) {
			inRun = true
			if r == '\n' || r == '\r' {
				runHadNewline = true
			}
			continue
		}
		if inRun && b.Len() > 0 {
			if runHadNewline {
				b.WriteByte('\n')
			} else {
				b.WriteByte(' ')
			}
		}
		inRun = false
		runHadNewline = false
		b.WriteRune(r)
	}

	return b.String()
}

// ScanCorpus concatenates the free-text fields of a detail record into the
// single string all three detectors scan. Field order is fixed; absent
// fields are skipped.
func ScanCorpus(d *model.AppDetails) string {
	if d == nil {
		return ""
	}

	fields := []string{
		d.DRMNotice,
		d.ExtUserAccountNotice,
		d.LegalNotice,
		d.ShortDescription,
		d.AboutTheGame,
		d.PCRequirements.Minimum,
		d.PCRequirements.Recommended,
		d.MacRequirements.Minimum,
		d.MacRequirements.Recommended,
		d.LinuxRequirements.Minimum,
		d.LinuxRequirements.Recommended,
	}

	var parts []string
	for _, f := range fields {
		if clean := Clean(f); clean != "" {
			parts = append(parts, clean)
		}
	}

	return strings.Join(parts, "\n")
}
