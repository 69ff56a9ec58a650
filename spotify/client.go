package spotify

import (
	"context"
	"errors"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	spotifyclient "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"moodlist/models"
	"moodlist/session"
)

// GlobalTop50PlaylistID is Spotify's "Top 50 - Global" editorial playlist,
// used for the trending chart.
const GlobalTop50PlaylistID = "37i9dQZEVXbMDoHDwVN2tF"

// Client wraps the Spotify Web API with the calls the pipeline needs.
type Client struct {
	api   *spotifyclient.Client
	limit int
}

// NewClient builds a catalog client around a user-scoped bearer credential.
func NewClient(ctx context.Context, sess *session.Session, searchLimit int) *Client {
	token := &oauth2.Token{
		AccessToken: sess.AccessToken,
		TokenType:   "Bearer",
	}
	httpClient := spotifyauth.New().Client(ctx, token)
	return &Client{
		api:   spotifyclient.New(httpClient),
		limit: searchLimit,
	}
}

// SearchTracks runs a type=track search and returns up to the configured
// result limit in the order Spotify returned them.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]models.Track, error) {
	span := sentry.StartSpan(ctx, "spotify.search")
	span.Description = "Search Spotify API"
	span.SetTag("query", query)
	defer span.Finish()

	results, err := c.api.Search(ctx, query, spotifyclient.SearchTypeTrack, spotifyclient.Limit(c.limit))
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var tracks []models.Track
	if results.Tracks != nil {
		for _, t := range results.Tracks.Tracks {
			tracks = append(tracks, models.Track{
				ID:     string(t.ID),
				Name:   t.Name,
				Artist: primaryArtist(t.Artists),
				URI:    string(t.URI),
			})
		}
	}

	log.Tracef("search %q returned %d tracks", query, len(tracks))
	span.Status = sentry.SpanStatusOK
	return tracks, nil
}

// CurrentUserID returns the authenticated user's Spotify ID.
func (c *Client) CurrentUserID(ctx context.Context) (string, error) {
	span := sentry.StartSpan(ctx, "spotify.current_user")
	span.Description = "Get current user from Spotify API"
	defer span.Finish()

	user, err := c.api.CurrentUser(ctx)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return "", fmt.Errorf("failed to fetch current user: %w", err)
	}

	span.Status = sentry.SpanStatusOK
	return user.ID, nil
}

// CreatePlaylist creates a public playlist owned by the user and returns its
// ID and shareable URL.
func (c *Client) CreatePlaylist(ctx context.Context, userID, name string) (string, string, error) {
	span := sentry.StartSpan(ctx, "spotify.create_playlist")
	span.Description = "Create playlist via Spotify API"
	span.SetTag("playlist_name", name)
	defer span.Finish()

	playlist, err := c.api.CreatePlaylistForUser(ctx, userID, name, "", true, false)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return "", "", fmt.Errorf("failed to create playlist: %w", err)
	}

	url := playlist.ExternalURLs["spotify"]
	if url == "" {
		url = fmt.Sprintf("https://open.spotify.com/playlist/%s", playlist.ID)
	}

	log.Debugf("created playlist %q (%s)", name, playlist.ID)
	span.Status = sentry.SpanStatusOK
	return string(playlist.ID), url, nil
}

// AddTracks appends the given track IDs to a playlist in one batch call.
func (c *Client) AddTracks(ctx context.Context, playlistID string, trackIDs []string) error {
	if len(trackIDs) == 0 {
		return errors.New("no tracks to add")
	}

	span := sentry.StartSpan(ctx, "spotify.add_tracks")
	span.Description = "Add tracks to playlist via Spotify API"
	span.SetTag("playlist_id", playlistID)
	span.SetData("track_count", len(trackIDs))
	defer span.Finish()

	ids := make([]spotifyclient.ID, len(trackIDs))
	for i, id := range trackIDs {
		ids[i] = spotifyclient.ID(id)
	}

	if _, err := c.api.AddTracksToPlaylist(ctx, spotifyclient.ID(playlistID), ids...); err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return fmt.Errorf("failed to add tracks: %w", err)
	}

	log.Debugf("added %d tracks to playlist %s", len(trackIDs), playlistID)
	span.Status = sentry.SpanStatusOK
	return nil
}

// TrendingSongs returns the top entries of the Global Top 50 chart.
func (c *Client) TrendingSongs(ctx context.Context, limit int) ([]models.TrendingSong, error) {
	span := sentry.StartSpan(ctx, "spotify.trending")
	span.Description = "Get trending chart from Spotify API"
	defer span.Finish()

	items, err := c.api.GetPlaylistItems(ctx,
		spotifyclient.ID(GlobalTop50PlaylistID),
		spotifyclient.Limit(limit),
	)
	if err != nil {
		sentry.CaptureException(err)
		span.Status = sentry.SpanStatusInternalError
		return nil, fmt.Errorf("failed to fetch trending chart: %w", err)
	}

	var songs []models.TrendingSong
	for _, item := range items.Items {
		// Skip non-track items (podcasts, episodes, etc.)
		if item.Track.Track == nil {
			continue
		}
		track := item.Track.Track
		songs = append(songs, models.TrendingSong{
			Track:      track.Name,
			Artist:     primaryArtist(track.Artists),
			Popularity: int(track.Popularity),
		})
	}

	span.Status = sentry.SpanStatusOK
	span.SetData("songs_count", len(songs))
	return songs, nil
}

func primaryArtist(artists []spotifyclient.SimpleArtist) string {
	if len(artists) == 0 {
		return ""
	}
	return artists[0].Name
}
