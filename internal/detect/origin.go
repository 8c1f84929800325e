package detect

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ppiankov/steamrisk/internal/model"
)

// Origin assesses publisher/developer origin signals for one title.
// Evaluation order is fixed, first match wins: keyword in a developer or
// publisher name, then CJK ideographs in a name, then the known-title list.
// Only when no strong signal matched is the supported-languages fallback
// evaluated, so Strong and WeakLanguage can never both be set.
func Origin(developers, publishers []string, supportedLanguages, title string, extraKeywords []string) model.OriginAssessment {
	keywords := originKeywords
	if len(extraKeywords) > 0 {
		merged := make([]string, 0, len(originKeywords)+len(extraKeywords))
		merged = append(merged, originKeywords...)
		for _, k := range extraKeywords {
			if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
				merged = append(merged, k)
			}
		}
		keywords = merged
	}

	names := make([]namedEntity, 0, len(developers)+len(publishers))
	for _, d := range developers {
		names = append(names, namedEntity{"developer", d})
	}
	for _, p := range publishers {
		names = append(names, namedEntity{"publisher", p})
	}

	// 1. keyword in developer/publisher name
	for _, n := range names {
		lower := strings.ToLower(n.value)
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				return model.OriginAssessment{
					Strong:   true,
					Evidence: fmt.Sprintf("%s %q matches keyword %q", n.role, n.value, kw),
				}
			}
		}
	}

	// 2. CJK ideograph in developer/publisher name
	for _, n := range names {
		if containsHan(n.value) {
			return model.OriginAssessment{
				Strong:   true,
				Evidence: fmt.Sprintf("%s %q contains CJK characters", n.role, n.value),
			}
		}
	}

	// 3. known-title list
	lowerTitle := strings.ToLower(title)
	for _, known := range knownTitles {
		if strings.Contains(lowerTitle, known) {
			return model.OriginAssessment{
				Strong:   true,
				Evidence: fmt.Sprintf("title matches known entry %q", known),
			}
		}
	}

	// Fallback: language-field evidence only
	return languageSignal(supportedLanguages)
}

type namedEntity struct {
	role  string
	value string
}

// languageSignal inspects the raw supported-languages text for a Chinese
// language marker; the marker immediately followed by the full-audio
// asterisk upgrades the signal
func languageSignal(supportedLanguages string) model.OriginAssessment {
	lower := strings.ToLower(supportedLanguages)
	// the store wraps full-audio asterisks in <strong> tags
	lower = strings.ReplaceAll(lower, "<strong>", "")
	lower = strings.ReplaceAll(lower, "</strong>", "")

	for _, marker := range chineseLanguageMarkers {
		if !strings.Contains(lower, marker) {
			continue
		}
		if strings.Contains(lower, marker+"*") {
			return model.OriginAssessment{
				WeakLanguage: true,
				FullAudio:    true,
				Evidence:     fmt.Sprintf("supported languages include %q with full audio", marker),
			}
		}
		return model.OriginAssessment{
			WeakLanguage: true,
			Evidence:     fmt.Sprintf("supported languages include %q", marker),
		}
	}

	return model.OriginAssessment{}
}

// containsHan reports whether s contains a CJK Unified Ideograph
func containsHan(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// Trusted reports whether any developer or publisher name exactly equals
// (case-insensitively) an entry in the trusted-publisher allowlist.
// Substring matches never count.
func Trusted(developers, publishers []string) bool {
	for _, name := range append(append([]string{}, developers...), publishers...) {
		for _, t := range trustedPublishers {
			if strings.EqualFold(strings.TrimSpace(name), t) {
				return true
			}
		}
	}
	return false
}
