package config

import (
	"os"
	"strconv"
)

type ConfigStruct struct {
	Spotify SpotifyConfig
	Gemini  GeminiConfig
	Options Options
}

type SpotifyConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	SearchLimit  int
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type Options struct {
	Port           string
	DBPath         string
	LogLevel       string
	TimeoutSeconds int // uniform timeout applied to every outbound call
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Spotify: SpotifyConfig{
			ClientID:     os.Getenv("SPOTIFY_CLIENT_ID"),
			ClientSecret: os.Getenv("SPOTIFY_CLIENT_SECRET"),
			RedirectURI:  getRedirectURI(),
			SearchLimit:  getSearchLimit(),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  getGeminiModel(),
		},
		Options: Options{
			Port:           os.Getenv("PORT"),
			DBPath:         os.Getenv("DB_PATH"),
			LogLevel:       os.Getenv("LOG_LEVEL"),
			TimeoutSeconds: getTimeoutSeconds(),
		},
	}

	Config = config
}

func getRedirectURI() string {
	uri := os.Getenv("SPOTIFY_REDIRECT_URI")
	if uri == "" {
		return "http://localhost:8080/callback"
	}
	return uri
}

func getGeminiModel() string {
	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		return "gemini-2.0-flash"
	}
	return model
}

func getSearchLimit() int {
	limitStr := os.Getenv("SPOTIFY_SEARCH_LIMIT")
	if limitStr == "" {
		return 5
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 5
	}
	if limit > 50 {
		return 50 // Spotify search API max per page
	}
	return limit
}

func getTimeoutSeconds() int {
	timeoutStr := os.Getenv("HTTP_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		return 30
	}
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil || timeout <= 0 {
		return 30
	}
	return timeout
}
