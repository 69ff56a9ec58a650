// Package session owns the Spotify OAuth2 authorization-code flow and the
// cached token pair. Callers obtain a valid bearer credential through
// GetCredential; refresh happens transparently behind it.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"

	"moodlist/config"
	"moodlist/database"
	"moodlist/models"
)

// Tokens are treated as expired this long before their actual expiry so a
// request never goes out with a credential about to lapse mid-flight.
const expiryMargin = 60 * time.Second

type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAwaitingCode    State = "awaiting_authorization_code"
	StateAuthenticated   State = "authenticated"
	StateExpired         State = "expired"
	StateRefreshing      State = "refreshing"
)

// Session is a usable Spotify credential. Values handed out by the manager
// are copies; the manager owns the canonical one.
type Session struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// Expired reports whether the access token is past (or within the margin of)
// its expiry instant.
func (s *Session) Expired() bool {
	return time.Now().After(s.Expiry.Add(-expiryMargin))
}

// Store persists the single cached session across restarts.
type Store interface {
	Load() (*Session, error)
	Save(Session) error
	Clear() error
}

// Manager runs the token lifecycle:
// Unauthenticated -> AwaitingAuthorizationCode -> Authenticated -> Expired ->
// Refreshing -> Authenticated. The mutex is held across a refresh, so a
// second caller arriving mid-refresh waits for and reuses its outcome rather
// than starting another.
type Manager struct {
	cfg        *oauth2.Config
	store      Store
	stateToken string

	mu     sync.Mutex
	cur    *Session
	state  State
	loaded bool
}

func NewManager(cfg config.SpotifyConfig, store Store) *Manager {
	return &Manager{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{spotifyauth.ScopePlaylistModifyPublic},
			Endpoint: oauth2.Endpoint{
				AuthURL:  spotifyauth.AuthURL,
				TokenURL: spotifyauth.TokenURL,
			},
		},
		store:      store,
		stateToken: newStateToken(),
		state:      StateUnauthenticated,
	}
}

// newStateToken returns a random token for CSRF protection of the redirect.
func newStateToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failing means something is deeply wrong with the host
		panic(fmt.Sprintf("failed to generate state token: %v", err))
	}
	return hex.EncodeToString(b)
}

// AuthURL returns the authorization URL the end user must visit.
func (m *Manager) AuthURL() string {
	return m.cfg.AuthCodeURL(m.stateToken)
}

// StateToken returns the CSRF token the callback must echo back.
func (m *Manager) StateToken() string {
	return m.stateToken
}

// State returns the manager's current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// GetCredential returns a valid session, refreshing an expired one first.
// With no cached session it returns AuthorizationRequiredError: the pipeline
// halts until the user completes the redirect, there is nothing to retry.
func (m *Manager) GetCredential(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.loadOnce(); err != nil {
		return nil, err
	}

	if m.cur == nil {
		m.state = StateAwaitingCode
		return nil, &models.AuthorizationRequiredError{AuthURL: m.AuthURL()}
	}

	if !m.cur.Expired() {
		s := *m.cur
		return &s, nil
	}

	m.state = StateExpired
	return m.refresh(ctx)
}

// refresh exchanges the refresh token for a new pair. Called with the mutex
// held. Not retried; a rejected refresh clears the cache entirely.
func (m *Manager) refresh(ctx context.Context) (*Session, error) {
	m.state = StateRefreshing
	log.Debug("access token expired, refreshing")

	src := m.cfg.TokenSource(ctx, &oauth2.Token{RefreshToken: m.cur.RefreshToken})
	token, err := src.Token()
	if err != nil {
		log.Warnf("token refresh rejected: %v", err)
		if clearErr := m.store.Clear(); clearErr != nil {
			log.Errorf("failed to clear session cache: %v", clearErr)
		}
		m.cur = nil
		m.state = StateUnauthenticated
		return nil, &models.AuthError{Op: "refresh", Err: err}
	}

	sess := sessionFromToken(token)
	if sess.RefreshToken == "" {
		// Spotify omits the refresh token when it has not rotated
		sess.RefreshToken = m.cur.RefreshToken
	}

	m.cur = &sess
	m.state = StateAuthenticated
	if err := m.store.Save(sess); err != nil {
		log.Errorf("failed to persist refreshed session: %v", err)
	}

	log.Debugf("token refreshed, new expiry %s", sess.Expiry.Format(time.RFC3339))
	s := sess
	return &s, nil
}

// CompleteAuthorization exchanges an authorization code for a token pair and
// caches it.
func (m *Manager) CompleteAuthorization(ctx context.Context, code string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token, err := m.cfg.Exchange(ctx, code)
	if err != nil {
		m.state = StateUnauthenticated
		return nil, &models.AuthError{Op: "exchange", Err: err}
	}

	sess := sessionFromToken(token)
	m.cur = &sess
	m.loaded = true
	m.state = StateAuthenticated
	if err := m.store.Save(sess); err != nil {
		log.Errorf("failed to persist session: %v", err)
	}

	log.Info("spotify authorization completed")
	s := sess
	return &s, nil
}

// loadOnce pulls the persisted session into memory on first use.
func (m *Manager) loadOnce() error {
	if m.loaded {
		return nil
	}
	sess, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load cached session: %w", err)
	}
	m.loaded = true
	if sess != nil {
		m.cur = sess
		m.state = StateAuthenticated
	}
	return nil
}

func sessionFromToken(token *oauth2.Token) Session {
	return Session{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
}

// DatabaseStore adapts the sqlite token cache to the Store interface.
type DatabaseStore struct {
	DB *database.Database
}

func (s *DatabaseStore) Load() (*Session, error) {
	rec, err := s.DB.LoadSession()
	if err != nil || rec == nil {
		return nil, err
	}
	return &Session{
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
		Expiry:       rec.Expiry,
	}, nil
}

func (s *DatabaseStore) Save(sess Session) error {
	return s.DB.SaveSession(database.SessionRecord{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		Expiry:       sess.Expiry,
	})
}

func (s *DatabaseStore) Clear() error {
	return s.DB.ClearSession()
}
