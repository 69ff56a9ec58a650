// Package assembler creates the remote playlist and fills it with the
// resolved tracks.
package assembler

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"moodlist/models"
)

// Playlister is the playlist-management call shape the assembler depends on.
type Playlister interface {
	CurrentUserID(ctx context.Context) (string, error)
	CreatePlaylist(ctx context.Context, userID, name string) (id, url string, err error)
	AddTracks(ctx context.Context, playlistID string, trackIDs []string) error
}

type Assembler struct {
	playlister Playlister
}

func New(playlister Playlister) *Assembler {
	return &Assembler{playlister: playlister}
}

// Assemble creates a playlist named name and adds all resolved tracks in one
// batch. It returns nil (no result) when zero tracks were added, even though
// the created playlist persists remotely. A failed batch add surfaces as
// TrackAdditionError and the empty playlist is likewise left in place.
func (a *Assembler) Assemble(ctx context.Context, resolved []models.ResolvedTrack, unresolved []models.UnresolvedCandidate, name string) (*models.PlaylistResult, error) {
	if name == "" {
		return nil, errors.New("playlist name must not be empty")
	}

	userID, err := a.playlister.CurrentUserID(ctx)
	if err != nil {
		return nil, &models.PlaylistCreationError{Err: err}
	}

	playlistID, url, err := a.playlister.CreatePlaylist(ctx, userID, name)
	if err != nil {
		return nil, &models.PlaylistCreationError{Err: err}
	}

	if len(resolved) == 0 {
		log.Warnf("playlist %q created but no tracks resolved; nothing to show", name)
		return nil, nil
	}

	trackIDs := make([]string, len(resolved))
	for i, rt := range resolved {
		trackIDs[i] = rt.Track.ID
	}

	if err := a.playlister.AddTracks(ctx, playlistID, trackIDs); err != nil {
		return nil, &models.TrackAdditionError{
			PlaylistID: playlistID,
			URL:        url,
			Err:        err,
		}
	}

	log.Infof("playlist %q assembled with %d tracks (%s)", name, len(trackIDs), url)
	return &models.PlaylistResult{
		PlaylistID:  playlistID,
		URL:         url,
		TracksAdded: len(trackIDs),
		Unresolved:  unresolved,
	}, nil
}
