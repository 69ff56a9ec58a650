package config

import "testing"

func TestGetSearchLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 5},
		{"invalid", "abc", 5},
		{"zero", "0", 5},
		{"negative", "-1", 5},
		{"min", "1", 1},
		{"default", "5", 5},
		{"mid", "25", 25},
		{"max", "50", 50},
		{"over", "51", 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPOTIFY_SEARCH_LIMIT", tt.env)
			if got := getSearchLimit(); got != tt.want {
				t.Errorf("getSearchLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetTimeoutSeconds(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 30},
		{"invalid", "foo", 30},
		{"zero", "0", 30},
		{"negative", "-5", 30},
		{"valid_small", "10", 10},
		{"valid_large", "120", 120},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HTTP_TIMEOUT_SECONDS", tt.env)
			if got := getTimeoutSeconds(); got != tt.want {
				t.Errorf("getTimeoutSeconds() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetRedirectURI(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"default", "", "http://localhost:8080/callback"},
		{"custom", "https://example.com/cb", "https://example.com/cb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SPOTIFY_REDIRECT_URI", tt.env)
			if got := getRedirectURI(); got != tt.want {
				t.Errorf("getRedirectURI() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestGetGeminiModel(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"default", "", "gemini-2.0-flash"},
		{"custom", "gemini-2.5-pro", "gemini-2.5-pro"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_MODEL", tt.env)
			if got := getGeminiModel(); got != tt.want {
				t.Errorf("getGeminiModel() = %q; want %q", got, tt.want)
			}
		})
	}
}
