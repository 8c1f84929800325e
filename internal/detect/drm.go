package detect

import (
	"fmt"
	"strings"

	"github.com/ppiankov/steamrisk/internal/model"
	"github.com/ppiankov/steamrisk/internal/normalize"
)

// DRM assesses DRM and third-party-account requirements for one title.
// A manual per-title override takes absolute precedence and suppresses all
// scanning. Otherwise the vendor pattern list runs over the scan corpus
// regardless of whether an explicit notice field exists; the account
// detector keeps only its first match.
func DRM(appID int, details *model.AppDetails, corpus string) model.DRMAssessment {
	if override, ok := drmOverrides[appID]; ok {
		return model.DRMAssessment{Notice: override}
	}

	var a model.DRMAssessment

	if details != nil {
		a.Notice = normalize.Clean(details.DRMNotice)
	}

	lower := strings.ToLower(corpus)

	seen := make(map[string]bool)
	for _, p := range drmPatterns {
		if !strings.Contains(lower, p.pattern) || seen[p.label] {
			continue
		}
		seen[p.label] = true
		a.Vendors = append(a.Vendors, p.label)
	}

	for _, p := range accountPatterns {
		if strings.Contains(lower, p.pattern) {
			a.Account = p.label
			break
		}
	}

	// Display precedence: explicit notice > joined vendors > account hint
	if a.Notice == "" {
		switch {
		case len(a.Vendors) > 0:
			a.Notice = strings.Join(a.Vendors, ", ")
		case a.Account != "":
			a.Notice = fmt.Sprintf("requires third-party account: %s", a.Account)
		}
	}

	return a
}
