package models

import "strings"

type SongType string

const (
	SongTypeOld SongType = "old"
	SongTypeNew SongType = "new"
	SongTypeMix SongType = "mix"
)

// PlaylistRequest carries the user's inputs for one generation attempt.
// It is immutable once constructed.
type PlaylistRequest struct {
	Mood     string
	Language string
	SongType SongType
	Count    int
	// Artist, when set, asks the generator to include songs by this artist.
	Artist string
	// PlaylistName overrides the generated name suggestion when set.
	PlaylistName string
}

// SongCandidate is a (track, artist) pair parsed from generated text,
// not yet verified to exist on Spotify.
type SongCandidate struct {
	Raw    string
	Track  string
	Artist string
}

// Key returns the normalized identity used for deduplication.
func (c SongCandidate) Key() string {
	return normalize(c.Track) + "|" + normalize(c.Artist)
}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

type MatchTier string

const (
	// TierExact means the track+artist search produced the match.
	TierExact MatchTier = "exact"
	// TierFallback means only the track-name search produced the match.
	TierFallback MatchTier = "fallback"
)

// Track is a concrete Spotify track record from a catalog search.
type Track struct {
	ID     string
	Name   string
	Artist string
	URI    string
}

// ResolvedTrack pairs a candidate with the catalog track it matched
// and the tier that produced the match.
type ResolvedTrack struct {
	Candidate SongCandidate
	Track     Track
	Tier      MatchTier
}

type UnresolvedReason string

const (
	ReasonNoMatch   UnresolvedReason = "no match"
	ReasonMalformed UnresolvedReason = "malformed"
)

// UnresolvedCandidate records a candidate no search tier could match.
// Informational only; it never blocks the pipeline.
type UnresolvedCandidate struct {
	Candidate SongCandidate
	Reason    UnresolvedReason
}

// SearchPreview reports the full result list a tier returned for a candidate
// when more than one track came back. The first entry is the one selected.
type SearchPreview struct {
	Candidate SongCandidate
	Tier      MatchTier
	Results   []Track
}

// ParseWarning records a line that looked like a song line but failed the
// structural match. Non-fatal; the line is skipped.
type ParseWarning struct {
	Line   string
	Reason string
}

// ParseResult is the output of the candidate parser.
type ParseResult struct {
	Candidates   []SongCandidate
	PlaylistName string
	Warnings     []ParseWarning
}

// PlaylistResult describes a successfully assembled playlist.
type PlaylistResult struct {
	PlaylistID  string
	URL         string
	TracksAdded int
	Unresolved  []UnresolvedCandidate
}

// TrendingSong is one entry of the global trending chart.
type TrendingSong struct {
	Track      string
	Artist     string
	Popularity int
}

// PipelineOutcome bundles the playlist result with the diagnostics the
// presentation layer renders. Result is nil when no track was added.
type PipelineOutcome struct {
	Result        *PlaylistResult
	SuggestedName string
	Candidates    []SongCandidate
	Warnings      []ParseWarning
	Previews      []SearchPreview
	Unresolved    []UnresolvedCandidate
}
