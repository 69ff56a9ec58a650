package parser

import (
	"strings"
	"testing"

	"moodlist/models"
)

func candidatePairs(candidates []models.SongCandidate) [][2]string {
	pairs := make([][2]string, len(candidates))
	for i, c := range candidates {
		pairs[i] = [2]string{c.Track, c.Artist}
	}
	return pairs
}

func TestParseNumberedListWithName(t *testing.T) {
	raw := "1. \"Song A\" - Artist X\n2. Song B - Artist Y\nPlaylist name: Happy Vibes"

	result := Parse(raw)

	want := [][2]string{
		{"Song A", "Artist X"},
		{"Song B", "Artist Y"},
	}
	got := candidatePairs(result.Candidates)
	if len(got) != len(want) {
		t.Fatalf("got %d candidates %v; want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %v; want %v", i, got[i], want[i])
		}
	}
	if result.PlaylistName != "Happy vibes" {
		t.Errorf("PlaylistName = %q; want %q", result.PlaylistName, "Happy vibes")
	}
}

func TestParseDeduplicates(t *testing.T) {
	raw := strings.Join([]string{
		`1. "Song A" - Artist X`,
		`2. Song B - Artist Y`,
		`3. Song A - Artist X`,
		`4. song a - ARTIST X`,
	}, "\n")

	result := Parse(raw)

	if len(result.Candidates) != 2 {
		t.Fatalf("got %d candidates %v; want 2", len(result.Candidates), candidatePairs(result.Candidates))
	}
	if result.Candidates[0].Track != "Song A" || result.Candidates[1].Track != "Song B" {
		t.Errorf("first-seen order not preserved: %v", candidatePairs(result.Candidates))
	}
}

func TestParseNoDuplicateKeys(t *testing.T) {
	raw := strings.Join([]string{
		"Here are some songs for you:",
		"1. Alpha - One",
		"2. Beta - Two",
		"3.  Alpha  -  One",
		"4. Gamma - Three",
		"Alpha - One",
		"Playlist title: chill hits",
	}, "\n")

	result := Parse(raw)

	seen := map[string]bool{}
	for _, c := range result.Candidates {
		if seen[c.Key()] {
			t.Errorf("duplicate normalized candidate: %q / %q", c.Track, c.Artist)
		}
		seen[c.Key()] = true
	}
	if len(result.Candidates) != 3 {
		t.Errorf("got %d candidates %v; want 3", len(result.Candidates), candidatePairs(result.Candidates))
	}
	if result.PlaylistName != "Chill hits" {
		t.Errorf("PlaylistName = %q; want %q", result.PlaylistName, "Chill hits")
	}
}

func TestParseDropsCommentary(t *testing.T) {
	raw := strings.Join([]string{
		"Sure! Here is a playlist for your mood.",
		"",
		"1. Song A - Artist X",
		"Enjoy the music!",
	}, "\n")

	result := Parse(raw)

	if len(result.Candidates) != 1 {
		t.Fatalf("got %d candidates %v; want 1", len(result.Candidates), candidatePairs(result.Candidates))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("commentary produced warnings: %v", result.Warnings)
	}
}

func TestParseDefaultName(t *testing.T) {
	result := Parse("1. Song A - Artist X")
	if result.PlaylistName != DefaultPlaylistName {
		t.Errorf("PlaylistName = %q; want default %q", result.PlaylistName, DefaultPlaylistName)
	}
}

func TestParseFirstNameSuggestionWins(t *testing.T) {
	raw := strings.Join([]string{
		"Playlist name: First Choice",
		"1. Song A - Artist X",
		"Playlist name: Second Choice",
	}, "\n")

	result := Parse(raw)
	if result.PlaylistName != "First choice" {
		t.Errorf("PlaylistName = %q; want %q", result.PlaylistName, "First choice")
	}
}

func TestParseStripsParentheticals(t *testing.T) {
	tests := []struct {
		name       string
		line       string
		wantTrack  string
		wantArtist string
	}{
		{"movie tag", `1. Tum Hi Ho (Aashiqui 2) - Arijit Singh`, "Tum Hi Ho", "Arijit Singh"},
		{"artist annotation", `2. Halo - Beyonce (feat. nobody)`, "Halo", "Beyonce"},
		{"quoted with tag", `3. "Let It Go (Frozen)" - Idina Menzel`, "Let It Go", "Idina Menzel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.line)
			if len(result.Candidates) != 1 {
				t.Fatalf("got %d candidates; want 1", len(result.Candidates))
			}
			c := result.Candidates[0]
			if c.Track != tt.wantTrack || c.Artist != tt.wantArtist {
				t.Errorf("got (%q, %q); want (%q, %q)", c.Track, c.Artist, tt.wantTrack, tt.wantArtist)
			}
		})
	}
}

func TestParseOrdinalVariants(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantTrack string
	}{
		{"dot", "1. Song A - Artist", "Song A"},
		{"paren", "10) Song B - Artist", "Song B"},
		{"colon", "3: Song C - Artist", "Song C"},
		{"bare", "Song D - Artist", "Song D"},
		{"numeric title", "99 Luftballons - Nena", "99 Luftballons"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Parse(tt.line)
			if len(result.Candidates) != 1 {
				t.Fatalf("got %d candidates from %q; want 1", len(result.Candidates), tt.line)
			}
			if got := result.Candidates[0].Track; got != tt.wantTrack {
				t.Errorf("Track = %q; want %q", got, tt.wantTrack)
			}
		})
	}
}

func TestParseUnparseableSongLineWarns(t *testing.T) {
	// Contains the separator but both names vanish after parenthetical
	// stripping, so the structural match fails.
	raw := "1. (intro) - (spoken word)"

	result := Parse(raw)

	if len(result.Candidates) != 0 {
		t.Errorf("got candidates %v; want none", candidatePairs(result.Candidates))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings; want 1", len(result.Warnings))
	}
	if result.Warnings[0].Line != raw {
		t.Errorf("warning line = %q; want %q", result.Warnings[0].Line, raw)
	}
}

func TestParseEmptyInput(t *testing.T) {
	result := Parse("")
	if len(result.Candidates) != 0 {
		t.Errorf("got candidates from empty input: %v", candidatePairs(result.Candidates))
	}
	if result.PlaylistName != DefaultPlaylistName {
		t.Errorf("PlaylistName = %q; want default", result.PlaylistName)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"happy vibes", "Happy vibes"},
		{"HAPPY VIBES", "Happy vibes"},
		{"éclats", "Éclats"},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
