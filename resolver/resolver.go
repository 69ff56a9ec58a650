// Package resolver maps song candidates to concrete Spotify tracks using a
// tiered search strategy: strict track+artist first, track-only fallback
// second. A candidate with no match in either tier is reported, never fatal.
package resolver

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"moodlist/models"
)

// Searcher is the catalog search call shape the resolver depends on.
type Searcher interface {
	SearchTracks(ctx context.Context, query string) ([]models.Track, error)
}

type Resolver struct {
	searcher Searcher
}

func New(searcher Searcher) *Resolver {
	return &Resolver{searcher: searcher}
}

// Report is the resolver's full output: matches, misses and the search-result
// previews surfaced when a tier returned more than one track.
type Report struct {
	Resolved   []models.ResolvedTrack
	Unresolved []models.UnresolvedCandidate
	Previews   []models.SearchPreview
}

// Resolve processes candidates in order. A search transport failure aborts
// and surfaces; an empty result set only moves the candidate down a tier.
func (r *Resolver) Resolve(ctx context.Context, candidates []models.SongCandidate) (*Report, error) {
	report := &Report{}

	for _, candidate := range candidates {
		// The parser should never emit these, but a half-formed candidate
		// must not reach the search API.
		if candidate.Track == "" || candidate.Artist == "" {
			log.Warnf("malformed candidate skipped: %+v", candidate)
			report.Unresolved = append(report.Unresolved, models.UnresolvedCandidate{
				Candidate: candidate,
				Reason:    models.ReasonMalformed,
			})
			continue
		}

		resolved, preview, err := r.resolveOne(ctx, candidate)
		if err != nil {
			return report, err
		}
		if preview != nil {
			report.Previews = append(report.Previews, *preview)
		}
		if resolved == nil {
			log.Infof("no match for %q by %q", candidate.Track, candidate.Artist)
			report.Unresolved = append(report.Unresolved, models.UnresolvedCandidate{
				Candidate: candidate,
				Reason:    models.ReasonNoMatch,
			})
			continue
		}
		report.Resolved = append(report.Resolved, *resolved)
	}

	return report, nil
}

func (r *Resolver) resolveOne(ctx context.Context, candidate models.SongCandidate) (*models.ResolvedTrack, *models.SearchPreview, error) {
	tiers := []struct {
		tier  models.MatchTier
		query string
	}{
		{models.TierExact, fmt.Sprintf("track:%s artist:%s", candidate.Track, candidate.Artist)},
		{models.TierFallback, fmt.Sprintf("track:%s", candidate.Track)},
	}

	for _, t := range tiers {
		tracks, err := r.searcher.SearchTracks(ctx, t.query)
		if err != nil {
			return nil, nil, fmt.Errorf("resolving %q: %w", candidate.Track, err)
		}
		if len(tracks) == 0 {
			continue
		}

		var preview *models.SearchPreview
		if len(tracks) > 1 {
			preview = &models.SearchPreview{
				Candidate: candidate,
				Tier:      t.tier,
				Results:   tracks,
			}
		}

		// First result wins; Spotify's ordering is trusted as-is.
		return &models.ResolvedTrack{
			Candidate: candidate,
			Track:     tracks[0],
			Tier:      t.tier,
		}, preview, nil
	}

	return nil, nil, nil
}
