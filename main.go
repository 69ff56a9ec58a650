package main

import (
	"context"
	"net/http"
	"time"

	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	appConfig "moodlist/config"
	"moodlist/controller"
	"moodlist/database"
	"moodlist/gemini"
	"moodlist/generator"
	"moodlist/handlers"
	"moodlist/sentry"
	"moodlist/session"
	"moodlist/spotify"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("Error loading .env file: %v", err)
	}
	appConfig.NewConfig()
	setupLogger()
	sentry.Init()

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func setupLogger() {
	log.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"component"},
	})

	level, err := log.ParseLevel(appConfig.Config.Options.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func run() error {
	cfg := appConfig.Config

	db, err := database.New(cfg.Options.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sessions := session.NewManager(cfg.Spotify, &session.DatabaseStore{DB: db})
	gen := generator.New(gemini.NewClient(cfg.Gemini))

	catalogFactory := func(ctx context.Context, sess *session.Session) controller.Catalog {
		return spotify.NewClient(ctx, sess, cfg.Spotify.SearchLimit)
	}

	pipeline := controller.New(
		sessions,
		gen,
		catalogFactory,
		time.Duration(cfg.Options.TimeoutSeconds)*time.Second,
	)

	router := gin.Default()
	router.Use(sentry.GetSentryGin())
	handlers.NewManager(pipeline, sessions).Register(router)

	port := cfg.Options.Port
	if port == "" {
		port = "8080"
	}
	log.Infof("Starting server on :%s", port)
	return http.ListenAndServe(":"+port, router)
}
