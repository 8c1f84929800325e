package model

import (
	"fmt"
	"time"
)

// OriginAssessment is the result of the publisher/developer origin detector.
// Strong and WeakLanguage are mutually exclusive by construction: the
// language fallback is only evaluated when no strong signal matched.
type OriginAssessment struct {
	Strong       bool   `json:"strong"`
	WeakLanguage bool   `json:"weak_language"`
	FullAudio    bool   `json:"full_audio"`
	Evidence     string `json:"evidence,omitempty"` // what matched (e.g., "publisher: Tencent")
}

// Detected reports whether the detector found any origin signal at all
func (o OriginAssessment) Detected() bool {
	return o.Strong || o.WeakLanguage
}

// DRMAssessment is the result of the DRM / third-party-account detector
type DRMAssessment struct {
	Notice  string   `json:"notice,omitempty"`  // display notice (override > notice field > vendors > account)
	Account string   `json:"account,omitempty"` // first matching third-party account vendor, if any
	Vendors []string `json:"vendors,omitempty"` // deduplicated, insertion-ordered DRM vendor labels
}

// Detected reports whether the detector found any DRM or account signal
func (d DRMAssessment) Detected() bool {
	return d.Notice != "" || d.Account != "" || len(d.Vendors) > 0
}

// AntiCheatAssessment is the result of the anti-cheat detector
type AntiCheatAssessment struct {
	Vendors     []string `json:"vendors,omitempty"`  // deduplicated vendor labels
	KernelLevel bool     `json:"kernel_level"`       // any kernel-flagged vendor or generic kernel phrase
	Keywords    []string `json:"keywords,omitempty"` // raw matched keywords, deduplicated, in match order
	Summary     string   `json:"summary,omitempty"`
}

// Detected reports whether the detector found any anti-cheat signal
func (a AntiCheatAssessment) Detected() bool {
	return a.KernelLevel || len(a.Vendors) > 0
}

// RiskAssessment is the deterministic weighted aggregation of the three
// detector outputs. Score is always in [0, 10]; Factors lists each applied
// weight in evaluation order and is empty (not nil-meaningful) at score 0.
type RiskAssessment struct {
	Score   int      `json:"score"`
	Factors []string `json:"factors"`
}

// ReportRow joins one owned title with its metadata-derived fields, all
// assessments, and the final risk score. Rows are created once and never
// mutated after they enter the result collection.
type ReportRow struct {
	AppID     int    `json:"appid"`
	Name      string `json:"name"`
	HasDetail bool   `json:"has_detail"` // false when appdetails was unavailable for this title

	Developers []string `json:"developers,omitempty"`
	Publishers []string `json:"publishers,omitempty"`

	Origin    OriginAssessment    `json:"origin"`
	DRM       DRMAssessment       `json:"drm"`
	AntiCheat AntiCheatAssessment `json:"anticheat"`

	Trusted bool           `json:"trusted"`
	Risk    RiskAssessment `json:"risk"`

	StoreURL string `json:"store_url"`
}

// StoreURL builds the canonical store page reference for an app id
func StoreURL(appID int) string {
	return fmt.Sprintf("https://store.steampowered.com/app/%d", appID)
}

// Report is the complete scan result handed to the renderers
type Report struct {
	Identity    string      `json:"identity"` // handle or numeric id as given
	SteamID     string      `json:"steam_id"` // resolved 64-bit id
	GeneratedAt time.Time   `json:"generated_at"`
	Rows        []ReportRow `json:"rows"`

	Fetched   int  `json:"fetched"`    // live appdetails fetches performed
	CacheHits int  `json:"cache_hits"` // titles served from the warm cache
	Aborted   bool `json:"aborted"`    // true when the run stopped early; Rows holds the partial set
}
