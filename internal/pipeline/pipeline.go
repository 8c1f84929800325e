// Package pipeline orchestrates the complete scan: identity resolution,
// owned-games listing, cache-first metadata lookup, detection, scoring,
// filtering, and sorting. Titles are processed strictly one at a time in
// list order; sequential execution is a politeness choice toward the
// store API, not a data constraint.
package pipeline

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/steamrisk/internal/cache"
	"github.com/ppiankov/steamrisk/internal/detect"
	"github.com/ppiankov/steamrisk/internal/model"
	"github.com/ppiankov/steamrisk/internal/normalize"
	"github.com/ppiankov/steamrisk/internal/score"
	"github.com/ppiankov/steamrisk/internal/steam"
	"github.com/ppiankov/steamrisk/internal/worker"
)

// ValidationError rejects a run before any network access
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Identity names the profile to scan: a vanity handle or a numeric 64-bit
// id, mutually exclusive.
type Identity struct {
	Handle  string
	SteamID string
}

// validate enforces the exactly-one rule and the numeric form
func (id Identity) validate() error {
	switch {
	case id.Handle == "" && id.SteamID == "":
		return &ValidationError{Msg: "either a profile handle or a steam id is required"}
	case id.Handle != "" && id.SteamID != "":
		return &ValidationError{Msg: "profile handle and steam id are mutually exclusive"}
	case id.SteamID != "":
		for _, r := range id.SteamID {
			if r < '0' || r > '9' {
				return &ValidationError{Msg: fmt.Sprintf("malformed steam id %q", id.SteamID)}
			}
		}
	}
	return nil
}

// Pipeline drives the scan end to end
type Pipeline struct {
	client *steam.Client
	store  *cache.Store
	pacer  *worker.Pacer
	scorer *score.Scorer
	cfg    *model.Config
}

// NewPipeline assembles a pipeline from configuration: the resilient
// client, the detail store (warm-loaded when caching is enabled), the
// pacer, and the scorer.
func NewPipeline(cfg *model.Config) *Pipeline {
	store := cache.NewStore()
	if cfg.Cache.Enabled {
		store = cache.Load(cfg.Cache.Path)
	}

	client := steam.NewClient(cfg.HTTP, cfg.Politeness.RespectRobots)

	return &Pipeline{
		client: client,
		store:  store,
		pacer:  worker.NewPacer(cfg.Scan.RequestDelay, cfg.Scan.LongPauseEvery, cfg.Scan.LongPauseDuration),
		scorer: score.NewScorer(),
		cfg:    cfg,
	}
}

// Run executes the scan. On an unrecoverable fetch error the partial row
// set collected so far is still returned alongside the error; partial
// results are always surfaced, never discarded.
func (p *Pipeline) Run(ctx context.Context, id Identity) (*model.Report, error) {
	if err := id.validate(); err != nil {
		return nil, err
	}

	report := &model.Report{
		Identity:    id.Handle + id.SteamID,
		GeneratedAt: time.Now().UTC(),
		Rows:        []model.ReportRow{},
	}

	steamID := id.SteamID
	if steamID == "" {
		resolved, err := p.client.ResolveVanityURL(ctx, id.Handle)
		if err != nil {
			report.Aborted = true
			return report, err
		}
		steamID = resolved
	}
	report.SteamID = steamID

	games, err := p.client.GetOwnedGames(ctx, steamID)
	if err != nil {
		report.Aborted = true
		return report, fmt.Errorf("list owned games: %w", err)
	}

	for _, g := range dedupe(games) {
		details, live, err := p.store.Lookup(ctx, g.AppID, p.client.AppDetails)
		if err != nil {
			report.Aborted = true
			return report, fmt.Errorf("app %d (%s): %w", g.AppID, g.Name, err)
		}
		if live {
			report.Fetched++
			if err := p.pacer.Wait(ctx); err != nil {
				report.Aborted = true
				return report, err
			}
		} else if details != nil {
			report.CacheHits++
		}

		row := p.buildRow(g, details)
		if !p.cfg.Scan.OnlyFlagged || interesting(row) {
			report.Rows = append(report.Rows, row)
		}
	}

	sortRows(report.Rows)
	return report, nil
}

// buildRow runs the enabled detectors and the scorer for one title.
// Disabled detectors contribute zero values, which the scorer reads as
// "no signal".
func (p *Pipeline) buildRow(g model.OwnedGame, details *model.AppDetails) model.ReportRow {
	row := model.ReportRow{
		AppID:     g.AppID,
		Name:      g.Name,
		HasDetail: details != nil,
		StoreURL:  model.StoreURL(g.AppID),
	}

	var corpus string
	if details != nil {
		row.Developers = details.Developers
		row.Publishers = details.Publishers
		row.Trusted = detect.Trusted(details.Developers, details.Publishers)
		corpus = normalize.ScanCorpus(details)
	}

	if p.cfg.Scan.DetectOrigin && details != nil {
		row.Origin = detect.Origin(details.Developers, details.Publishers,
			details.SupportedLanguages, g.Name, p.cfg.Scan.ExtraOriginKeywords)
	}
	if p.cfg.Scan.DetectDRM && details != nil {
		row.DRM = detect.DRM(g.AppID, details, corpus)
	}
	if p.cfg.Scan.DetectAntiCheat && details != nil {
		row.AntiCheat = detect.AntiCheat(corpus)
	}

	row.Risk = p.scorer.Calculate(row.Origin, row.DRM, row.AntiCheat, row.Trusted)
	return row
}

// SaveCache persists the store when caching is enabled and the store is
// non-empty. Failures are non-fatal by contract; the caller logs them.
func (p *Pipeline) SaveCache() error {
	if !p.cfg.Cache.Enabled || p.store.Len() == 0 {
		return nil
	}
	return p.store.Save(p.cfg.Cache.Path)
}

// dedupe collapses duplicate app ids, keeping the first occurrence and
// its name, preserving relative order otherwise
func dedupe(games []model.OwnedGame) []model.OwnedGame {
	seen := make(map[int]bool, len(games))
	out := make([]model.OwnedGame, 0, len(games))
	for _, g := range games {
		if seen[g.AppID] {
			continue
		}
		seen[g.AppID] = true
		out = append(out, g)
	}
	return out
}

// interesting admits a row into a flag-filtered result set: any detector
// signal, or a non-zero score
func interesting(row model.ReportRow) bool {
	return row.Origin.Detected() ||
		row.DRM.Detected() ||
		row.AntiCheat.Detected() ||
		row.Risk.Score > 0
}

// sortRows orders descending by score, ties by ascending display name,
// then app id for a total order
func sortRows(rows []model.ReportRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Risk.Score != rows[j].Risk.Score {
			return rows[i].Risk.Score > rows[j].Risk.Score
		}
		ni, nj := strings.ToLower(rows[i].Name), strings.ToLower(rows[j].Name)
		if ni != nj {
			return ni < nj
		}
		return rows[i].AppID < rows[j].AppID
	})
}
