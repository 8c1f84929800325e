// Package score turns detector outputs into a bounded 0-10 risk score
// with an auditable factor trail.
package score

import (
	"fmt"
	"strings"

	"github.com/ppiankov/steamrisk/internal/model"
)

// Weights applied in fixed evaluation order. Origin and anti-cheat weights
// are mutually exclusive within their group; DRM takes the max of its
// hits, never the sum.
const (
	weightStrongOrigin = 5
	weightFullAudio    = 2
	weightWeakLanguage = 1
	weightKernelAC     = 4
	weightVendorAC     = 1
	weightDenuvo       = 2
	weightAnyDRM       = 1
	weightAccount      = 1
	trustedAdjustment  = 1
	maxScore           = 10
)

// Scorer calculates the per-title risk assessment
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate aggregates the three detector outputs into a RiskAssessment.
// Pure and deterministic: the same inputs always produce the same score
// and the same factor ordering.
func (s *Scorer) Calculate(origin model.OriginAssessment, drm model.DRMAssessment, anticheat model.AntiCheatAssessment, trusted bool) model.RiskAssessment {
	total := 0
	factors := []string{}

	// 1. origin (exclusive, in priority order)
	switch {
	case origin.Strong:
		total += weightStrongOrigin
		factors = append(factors, fmt.Sprintf("+%d strong origin signal (%s)", weightStrongOrigin, origin.Evidence))
	case origin.FullAudio:
		total += weightFullAudio
		factors = append(factors, fmt.Sprintf("+%d Chinese localization with full audio", weightFullAudio))
	case origin.WeakLanguage:
		total += weightWeakLanguage
		factors = append(factors, fmt.Sprintf("+%d Chinese localization present", weightWeakLanguage))
	}

	// 2. anti-cheat (kernel supersedes the vendor weight)
	switch {
	case anticheat.KernelLevel:
		total += weightKernelAC
		factors = append(factors, fmt.Sprintf("+%d kernel-level anti-cheat", weightKernelAC))
	case len(anticheat.Vendors) > 0:
		total += weightVendorAC
		factors = append(factors, fmt.Sprintf("+%d anti-cheat present (%s)", weightVendorAC, strings.Join(anticheat.Vendors, ", ")))
	}

	// 3. DRM: max of the hits, never a sum
	if w := drmWeight(drm); w > 0 {
		if w == weightDenuvo {
			factors = append(factors, fmt.Sprintf("+%d Denuvo DRM", weightDenuvo))
		} else {
			factors = append(factors, fmt.Sprintf("+%d DRM present", weightAnyDRM))
		}
		total += w
	}

	// 4. third-party account/launcher
	if drm.Account != "" {
		total += weightAccount
		factors = append(factors, fmt.Sprintf("+%d third-party account: %s", weightAccount, drm.Account))
	}

	// 5. trusted-publisher adjustment, floored at zero
	if trusted {
		total -= trustedAdjustment
		if total < 0 {
			total = 0
		}
		factors = append(factors, fmt.Sprintf("-%d trusted publisher", trustedAdjustment))
	}

	// 6. cap
	if total > maxScore {
		total = maxScore
	}

	return model.RiskAssessment{Score: total, Factors: factors}
}

// drmWeight returns 2 for a Denuvo mention, 1 for any other DRM signal,
// 0 for none. The notice and the collected vendor labels are considered
// as one combined text.
func drmWeight(drm model.DRMAssessment) int {
	combined := strings.ToLower(drm.Notice + " " + strings.Join(drm.Vendors, " "))
	if strings.Contains(combined, "denuvo") {
		return weightDenuvo
	}
	if strings.TrimSpace(combined) != "" {
		return weightAnyDRM
	}
	return 0
}
