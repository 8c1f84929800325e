package detect

import (
	"fmt"
	"strings"

	"github.com/ppiankov/steamrisk/internal/model"
)

// AntiCheat scans the corpus against the vendor table and the generic
// phrase tests. Every matching key contributes its vendor label and the raw
// key to the trail; kernel-flagged matches and the generic kernel-phrase
// test both set KernelLevel.
func AntiCheat(corpus string) model.AntiCheatAssessment {
	var a model.AntiCheatAssessment
	lower := strings.ToLower(corpus)

	seenVendor := make(map[string]bool)
	seenKeyword := make(map[string]bool)

	for _, e := range anticheatTable {
		if !strings.Contains(lower, e.key) {
			continue
		}
		if !seenVendor[e.label] {
			seenVendor[e.label] = true
			a.Vendors = append(a.Vendors, e.label)
		}
		if !seenKeyword[e.key] {
			seenKeyword[e.key] = true
			a.Keywords = append(a.Keywords, e.key)
		}
		if e.kernel {
			a.KernelLevel = true
		}
	}

	for _, phrase := range kernelPhrases {
		if strings.Contains(lower, phrase) {
			a.KernelLevel = true
			if !seenKeyword[genericKernelKeyword] {
				seenKeyword[genericKernelKeyword] = true
				a.Keywords = append(a.Keywords, genericKernelKeyword)
			}
			break
		}
	}

	// generic mention: trail only, never flips the kernel flag or vendors
	for _, phrase := range genericAntiCheatPhrases {
		if strings.Contains(lower, phrase) {
			if !seenKeyword[genericAntiCheatKeyword] {
				seenKeyword[genericAntiCheatKeyword] = true
				a.Keywords = append(a.Keywords, genericAntiCheatKeyword)
			}
			break
		}
	}

	a.Summary = anticheatSummary(a)
	return a
}

// anticheatSummary: kernel with vendors > vendors only > kernel without
// vendor > absent
func anticheatSummary(a model.AntiCheatAssessment) string {
	joined := strings.Join(a.Vendors, ", ")
	switch {
	case a.KernelLevel && len(a.Vendors) > 0:
		return fmt.Sprintf("kernel-level anti-cheat: %s", joined)
	case len(a.Vendors) > 0:
		return joined
	case a.KernelLevel:
		return "kernel-level anti-cheat (vendor unknown)"
	default:
		return ""
	}
}
