// Package parser converts raw generated text into an ordered, deduplicated
// list of song candidates plus an optional playlist-name suggestion. It is
// pure: diagnostics come back as structured warnings for the caller to render.
package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"moodlist/models"
)

// DefaultPlaylistName is used when no name-suggestion line is found.
const DefaultPlaylistName = "My Mood Playlist"

const separator = " - "

var (
	// Song line grammar: optional ordinal prefix, quoted-or-bare track name,
	// " - " separator, artist name to end of line.
	songLineRegex = regexp.MustCompile(`^(?:\d+[.):]\s*)?"?(.+?)"?\s+-\s+(.+)$`)

	// Parenthetical annotations (movie/album tags) stripped from both names.
	parentheticalRegex = regexp.MustCompile(`\s*\([^)]*\)`)
)

// Parse splits raw text into song candidates and the playlist-name
// suggestion. Candidates are unique on the normalized (track, artist) pair
// with first-seen order preserved.
func Parse(rawText string) models.ParseResult {
	result := models.ParseResult{
		PlaylistName: DefaultPlaylistName,
	}

	nameFound := false
	seen := make(map[string]bool)

	for _, line := range strings.Split(rawText, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !nameFound {
			if name, ok := parseNameSuggestion(line); ok {
				nameFound = true
				if name != "" {
					result.PlaylistName = name
				}
				continue
			}
		}

		if !strings.Contains(line, separator) {
			// Non-song commentary; dropped silently.
			continue
		}

		candidate, ok := parseSongLine(line)
		if !ok {
			log.Warnf("skipping unparseable song line: %q", line)
			result.Warnings = append(result.Warnings, models.ParseWarning{
				Line:   line,
				Reason: "line does not match the track - artist pattern",
			})
			continue
		}

		key := candidate.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		result.Candidates = append(result.Candidates, candidate)
	}

	return result
}

// parseNameSuggestion recognizes lines like "Playlist name: Happy Vibes".
// The suggested name is the text after the first colon, trimmed and
// capitalized. A matching line with nothing after the colon is still
// consumed so it does not fall through to the song grammar.
func parseNameSuggestion(line string) (string, bool) {
	lower := strings.ToLower(line)
	if !strings.Contains(lower, "playlist name") && !strings.Contains(lower, "playlist title") {
		return "", false
	}

	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", true
	}

	name := strings.TrimSpace(line[idx+1:])
	name = strings.Trim(name, `"`)
	return capitalize(name), true
}

// parseSongLine applies the song grammar and strips parenthetical
// annotations from both names.
func parseSongLine(line string) (models.SongCandidate, bool) {
	matches := songLineRegex.FindStringSubmatch(line)
	if matches == nil {
		return models.SongCandidate{}, false
	}

	track := strings.TrimSpace(parentheticalRegex.ReplaceAllString(matches[1], ""))
	artist := strings.TrimSpace(parentheticalRegex.ReplaceAllString(matches[2], ""))
	track = strings.Trim(track, `"`)
	artist = strings.Trim(artist, `"`)

	if track == "" || artist == "" {
		return models.SongCandidate{}, false
	}

	return models.SongCandidate{
		Raw:    line,
		Track:  track,
		Artist: artist,
	}, true
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
