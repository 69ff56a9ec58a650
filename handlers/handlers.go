// Package handlers exposes the pipeline over HTTP. It owns no pipeline
// state: it validates inputs, maps pipeline outcomes and errors to responses,
// and renders diagnostics the pipeline returned.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"moodlist/models"
	"moodlist/pages"
	"moodlist/session"
)

// Pipeline is the playlist-generation surface handlers call into.
// Implemented by controller.Controller.
type Pipeline interface {
	GeneratePlaylist(ctx context.Context, req models.PlaylistRequest) (*models.PipelineOutcome, error)
	Trending(ctx context.Context) ([]models.TrendingSong, error)
}

// Authorizer is the authorization hand-off surface. Implemented by
// session.Manager.
type Authorizer interface {
	AuthURL() string
	StateToken() string
	CompleteAuthorization(ctx context.Context, code string) (*session.Session, error)
}

type Manager struct {
	pipeline Pipeline
	auth     Authorizer
}

func NewManager(pipeline Pipeline, auth Authorizer) *Manager {
	return &Manager{pipeline: pipeline, auth: auth}
}

func (m *Manager) Register(router *gin.Engine) {
	router.GET("/healthz", m.health)
	router.GET("/auth/login", m.login)
	router.GET("/callback", m.callback)
	router.GET("/charts/trending", m.trending)
	router.POST("/playlists", m.generatePlaylist)
}

func (m *Manager) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (m *Manager) login(c *gin.Context) {
	c.Redirect(http.StatusFound, m.auth.AuthURL())
}

func (m *Manager) callback(c *gin.Context) {
	if state := c.Query("state"); state != m.auth.StateToken() {
		log.Warn("callback with invalid state parameter")
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte(fmt.Sprintf(pages.AuthFailure, "invalid state parameter")))
		return
	}

	code := c.Query("code")
	if code == "" {
		reason := c.Query("error")
		if reason == "" {
			reason = "missing authorization code"
		}
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte(fmt.Sprintf(pages.AuthFailure, reason)))
		return
	}

	if _, err := m.auth.CompleteAuthorization(c.Request.Context(), code); err != nil {
		log.Errorf("authorization code exchange failed: %v", err)
		c.Data(http.StatusUnauthorized, "text/html; charset=utf-8",
			[]byte(fmt.Sprintf(pages.AuthFailure, "code exchange was rejected")))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pages.AuthSuccess))
}

func (m *Manager) trending(c *gin.Context) {
	songs, err := m.pipeline.Trending(c.Request.Context())
	if err != nil {
		m.respondError(c, err)
		return
	}

	entries := make([]gin.H, 0, len(songs))
	for _, s := range songs {
		entries = append(entries, gin.H{
			"track":      s.Track,
			"artist":     s.Artist,
			"popularity": s.Popularity,
		})
	}
	c.JSON(http.StatusOK, gin.H{"songs": entries})
}

type playlistRequestBody struct {
	Mood         string `json:"mood" binding:"required"`
	Language     string `json:"language" binding:"required"`
	SongType     string `json:"song_type"`
	Count        int    `json:"count"`
	Artist       string `json:"artist"`
	PlaylistName string `json:"playlist_name"`
}

func (m *Manager) generatePlaylist(c *gin.Context) {
	var body playlistRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	songType := models.SongType(body.SongType)
	switch songType {
	case "":
		songType = models.SongTypeMix
	case models.SongTypeOld, models.SongTypeNew, models.SongTypeMix:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "song_type must be one of: old, new, mix"})
		return
	}

	outcome, err := m.pipeline.GeneratePlaylist(c.Request.Context(), models.PlaylistRequest{
		Mood:         body.Mood,
		Language:     body.Language,
		SongType:     songType,
		Count:        body.Count,
		Artist:       body.Artist,
		PlaylistName: body.PlaylistName,
	})
	if err != nil {
		m.respondError(c, err)
		return
	}

	response := gin.H{
		"created":        outcome.Result != nil,
		"suggested_name": outcome.SuggestedName,
		"candidates":     len(outcome.Candidates),
		"unresolved":     unresolvedEntries(outcome.Unresolved),
		"warnings":       warningEntries(outcome.Warnings),
	}

	if outcome.Result == nil {
		response["message"] = "no tracks could be resolved; nothing to show"
		c.JSON(http.StatusOK, response)
		return
	}

	response["playlist"] = gin.H{
		"id":           outcome.Result.PlaylistID,
		"url":          outcome.Result.URL,
		"tracks_added": outcome.Result.TracksAdded,
	}
	c.JSON(http.StatusCreated, response)
}

// respondError maps the pipeline's error taxonomy onto HTTP responses so the
// caller can render a specific message per failure kind.
func (m *Manager) respondError(c *gin.Context, err error) {
	var authReq *models.AuthorizationRequiredError
	if errors.As(err, &authReq) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "spotify authorization required",
			"auth_url": authReq.AuthURL,
		})
		return
	}

	var authErr *models.AuthError
	if errors.As(err, &authErr) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "spotify session expired; please re-authorize",
			"auth_url": m.auth.AuthURL(),
		})
		return
	}

	var genErr *models.GenerationError
	if errors.As(err, &genErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "song generation failed"})
		return
	}

	var createErr *models.PlaylistCreationError
	if errors.As(err, &createErr) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "playlist creation failed"})
		return
	}

	var addErr *models.TrackAdditionError
	if errors.As(err, &addErr) {
		// The playlist exists but is empty; hand its URL back anyway.
		c.JSON(http.StatusBadGateway, gin.H{
			"error":       "tracks could not be added; the empty playlist was kept",
			"playlist_id": addErr.PlaylistID,
			"url":         addErr.URL,
		})
		return
	}

	log.Errorf("pipeline failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func unresolvedEntries(unresolved []models.UnresolvedCandidate) []gin.H {
	entries := make([]gin.H, 0, len(unresolved))
	for _, u := range unresolved {
		entries = append(entries, gin.H{
			"track":  u.Candidate.Track,
			"artist": u.Candidate.Artist,
			"reason": string(u.Reason),
		})
	}
	return entries
}

func warningEntries(warnings []models.ParseWarning) []gin.H {
	entries := make([]gin.H, 0, len(warnings))
	for _, w := range warnings {
		entries = append(entries, gin.H{
			"line":   w.Line,
			"reason": w.Reason,
		})
	}
	return entries
}
