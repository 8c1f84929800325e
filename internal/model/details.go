package model

// OwnedGame is one entry from the owned-games listing
type OwnedGame struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}

// Requirements holds the raw HTML requirement blocks for one platform
type Requirements struct {
	Minimum     string `json:"minimum,omitempty"`
	Recommended string `json:"recommended,omitempty"`
}

// AppDetails is the normalized per-title store metadata record.
// It is populated exactly once when the appdetails payload is parsed;
// detectors only ever consume this structure, never the raw JSON shape.
type AppDetails struct {
	AppID              int      `json:"appid"`
	Name               string   `json:"name,omitempty"`
	Developers         []string `json:"developers,omitempty"`
	Publishers         []string `json:"publishers,omitempty"`
	SupportedLanguages string   `json:"supported_languages,omitempty"`

	DRMNotice            string `json:"drm_notice,omitempty"`
	ExtUserAccountNotice string `json:"ext_user_account_notice,omitempty"`
	LegalNotice          string `json:"legal_notice,omitempty"`
	ShortDescription     string `json:"short_description,omitempty"`
	AboutTheGame         string `json:"about_the_game,omitempty"`

	PCRequirements    Requirements `json:"pc_requirements,omitempty"`
	MacRequirements   Requirements `json:"mac_requirements,omitempty"`
	LinuxRequirements Requirements `json:"linux_requirements,omitempty"`
}
