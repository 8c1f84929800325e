package steam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ppiankov/steamrisk/internal/model"
)

// ResolveVanityURL maps a free-text profile handle to the 64-bit id
func (c *Client) ResolveVanityURL(ctx context.Context, handle string) (string, error) {
	u := fmt.Sprintf("%s/ISteamUser/ResolveVanityURL/v1/?key=%s&vanityurl=%s",
		c.apiBase, url.QueryEscape(c.apiKey), url.QueryEscape(handle))

	var payload struct {
		Response struct {
			Success int    `json:"success"`
			SteamID string `json:"steamid"`
			Message string `json:"message"`
		} `json:"response"`
	}

	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		return "", &IdentityError{Handle: handle, Err: err}
	}
	if payload.Response.Success != 1 || payload.Response.SteamID == "" {
		return "", &IdentityError{Handle: handle}
	}

	return payload.Response.SteamID, nil
}

// GetOwnedGames returns the public owned-games listing for a 64-bit id.
// An empty listing is an error: the profile is private or owns nothing.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]model.OwnedGame, error) {
	u := fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/?key=%s&steamid=%s&include_appinfo=1&include_played_free_games=1&format=json",
		c.apiBase, url.QueryEscape(c.apiKey), url.QueryEscape(steamID))

	var payload struct {
		Response struct {
			GameCount int               `json:"game_count"`
			Games     []model.OwnedGame `json:"games"`
		} `json:"response"`
	}

	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		return nil, err
	}
	if len(payload.Response.Games) == 0 {
		return nil, ErrEmptyLibrary
	}

	return payload.Response.Games, nil
}

// AppDetails fetches the locale-pinned store metadata for one app id.
// The bool result reports whether the store marked the lookup successful;
// malformed payloads and success=false both yield (nil, false, nil) so the
// caller can proceed with no-signal defaults without caching a miss.
func (c *Client) AppDetails(ctx context.Context, appID int) (*model.AppDetails, bool, error) {
	u := fmt.Sprintf("%s/api/appdetails?appids=%d&l=english&cc=us", c.storeBase, appID)

	var payload map[string]appDetailsEnvelope
	if err := c.fetchJSON(ctx, u, &payload); err != nil {
		var te *TransientError
		if errors.As(err, &te) || errors.Is(err, ErrRobotsDisallowed) {
			return nil, false, err
		}
		// decode failure: treat as a per-item parse miss
		return nil, false, nil
	}

	envelope, ok := payload[strconv.Itoa(appID)]
	if !ok || !envelope.Success || envelope.Data == nil {
		return nil, false, nil
	}

	details := envelope.Data.normalize(appID)
	return details, true, nil
}

// appDetailsEnvelope is the per-id wrapper of the appdetails response
type appDetailsEnvelope struct {
	Success bool            `json:"success"`
	Data    *appDetailsData `json:"data"`
}

// appDetailsData mirrors the raw payload shape. Requirement blocks arrive
// as either an object or an empty array, so they are held raw here and
// normalized exactly once.
type appDetailsData struct {
	Name                 string          `json:"name"`
	Developers           []string        `json:"developers"`
	Publishers           []string        `json:"publishers"`
	SupportedLanguages   string          `json:"supported_languages"`
	DRMNotice            string          `json:"drm_notice"`
	ExtUserAccountNotice string          `json:"ext_user_account_notice"`
	LegalNotice          string          `json:"legal_notice"`
	ShortDescription     string          `json:"short_description"`
	AboutTheGame         string          `json:"about_the_game"`
	PCRequirements       json.RawMessage `json:"pc_requirements"`
	MacRequirements      json.RawMessage `json:"mac_requirements"`
	LinuxRequirements    json.RawMessage `json:"linux_requirements"`
}

func (d *appDetailsData) normalize(appID int) *model.AppDetails {
	return &model.AppDetails{
		AppID:                appID,
		Name:                 d.Name,
		Developers:           d.Developers,
		Publishers:           d.Publishers,
		SupportedLanguages:   d.SupportedLanguages,
		DRMNotice:            d.DRMNotice,
		ExtUserAccountNotice: d.ExtUserAccountNotice,
		LegalNotice:          d.LegalNotice,
		ShortDescription:     d.ShortDescription,
		AboutTheGame:         d.AboutTheGame,
		PCRequirements:       parseRequirements(d.PCRequirements),
		MacRequirements:      parseRequirements(d.MacRequirements),
		LinuxRequirements:    parseRequirements(d.LinuxRequirements),
	}
}

// parseRequirements tolerates the store returning [] instead of an object
func parseRequirements(raw json.RawMessage) model.Requirements {
	var req model.Requirements
	if len(raw) == 0 {
		return req
	}
	// ignore failures: [] and null both decode to the zero value
	_ = json.Unmarshal(raw, &req)
	return req
}
