// Package controller runs the playlist-generation pipeline:
// credential -> generate -> parse -> resolve -> assemble. Each run is a
// single logical thread of control; all external calls are synchronous and
// honor a uniform timeout.
package controller

import (
	"context"
	"fmt"
	"time"

	sentry "github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"

	"moodlist/assembler"
	"moodlist/generator"
	"moodlist/models"
	"moodlist/parser"
	"moodlist/resolver"
	"moodlist/sentryhelper"
	"moodlist/session"
)

const (
	defaultSongCount  = 10
	trendingChartSize = 5
)

// CredentialSource yields a valid bearer credential, refreshing behind the
// scenes. Implemented by session.Manager.
type CredentialSource interface {
	GetCredential(ctx context.Context) (*session.Session, error)
}

// Catalog bundles the Spotify calls the pipeline makes with one credential.
// Implemented by spotify.Client.
type Catalog interface {
	resolver.Searcher
	assembler.Playlister
	TrendingSongs(ctx context.Context, limit int) ([]models.TrendingSong, error)
}

// CatalogFactory builds a Catalog bound to a credential. Factories let the
// controller stay ignorant of how the HTTP client is assembled.
type CatalogFactory func(ctx context.Context, sess *session.Session) Catalog

type Controller struct {
	sessions  CredentialSource
	generator *generator.Generator
	catalog   CatalogFactory
	timeout   time.Duration
}

func New(sessions CredentialSource, gen *generator.Generator, catalog CatalogFactory, timeout time.Duration) *Controller {
	return &Controller{
		sessions:  sessions,
		generator: gen,
		catalog:   catalog,
		timeout:   timeout,
	}
}

// GeneratePlaylist runs the full pipeline for one request. Fatal failures
// (auth, generation, playlist creation, track addition) surface as their
// taxonomy error; per-line and per-candidate misses come back inside the
// outcome as diagnostics.
func (c *Controller) GeneratePlaylist(ctx context.Context, req models.PlaylistRequest) (*models.PipelineOutcome, error) {
	ctx, transaction := sentryhelper.StartPipelineTransaction(ctx, "playlist.generate")
	defer transaction.Finish()

	if req.Count <= 0 {
		req.Count = defaultSongCount
	}

	sess, err := c.getCredential(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := c.generate(ctx, req)
	if err != nil {
		sentryhelper.CaptureError(ctx, err)
		return nil, err
	}

	parsed := parser.Parse(raw)
	sentryhelper.AddBreadcrumb(ctx, &sentry.Breadcrumb{
		Category: "pipeline",
		Message:  fmt.Sprintf("parsed %d candidates, %d warnings", len(parsed.Candidates), len(parsed.Warnings)),
	})

	name := req.PlaylistName
	if name == "" {
		name = parsed.PlaylistName
	}

	catalog := c.catalog(ctx, sess)

	report, err := c.resolve(ctx, catalog, parsed.Candidates)
	if err != nil {
		sentryhelper.CaptureError(ctx, err)
		return nil, err
	}
	log.Infof("resolved %d/%d candidates", len(report.Resolved), len(parsed.Candidates))

	result, err := c.assemble(ctx, catalog, report, name)
	if err != nil {
		sentryhelper.CaptureError(ctx, err)
		return nil, err
	}

	return &models.PipelineOutcome{
		Result:        result,
		SuggestedName: name,
		Candidates:    parsed.Candidates,
		Warnings:      parsed.Warnings,
		Previews:      report.Previews,
		Unresolved:    report.Unresolved,
	}, nil
}

// Trending returns the top entries of the global chart.
func (c *Controller) Trending(ctx context.Context) ([]models.TrendingSong, error) {
	sess, err := c.getCredential(ctx)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	return c.catalog(ctx, sess).TrendingSongs(callCtx, trendingChartSize)
}

func (c *Controller) getCredential(ctx context.Context) (*session.Session, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()
	return c.sessions.GetCredential(callCtx)
}

func (c *Controller) generate(ctx context.Context, req models.PlaylistRequest) (string, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	span := sentry.StartSpan(ctx, "pipeline.generate")
	defer span.Finish()
	return c.generator.Generate(callCtx, req)
}

func (c *Controller) resolve(ctx context.Context, catalog Catalog, candidates []models.SongCandidate) (*resolver.Report, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	span := sentry.StartSpan(ctx, "pipeline.resolve")
	defer span.Finish()
	return resolver.New(catalog).Resolve(callCtx, candidates)
}

func (c *Controller) assemble(ctx context.Context, catalog Catalog, report *resolver.Report, name string) (*models.PlaylistResult, error) {
	callCtx, cancel := c.callContext(ctx)
	defer cancel()

	span := sentry.StartSpan(ctx, "pipeline.assemble")
	defer span.Finish()
	return assembler.New(catalog).Assemble(callCtx, report.Resolved, report.Unresolved, name)
}

func (c *Controller) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
