package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// ConfigErrorMessage is shown when the identity provider is not configured.
const ConfigErrorMessage = "Supabase configuration is missing. Please check your environment variables."

var ErrInvalidCredentials = errors.New("invalid credentials")

// ConfigError lists the provider settings that are absent.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return ConfigErrorMessage
}

// IdentityProvider is the hosted auth service.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*Tokens, error)
	User(ctx context.Context, accessToken string) (*Identity, error)
	SignOut(ctx context.Context, accessToken string) error
}

// TokenVerifier checks an access token locally.
type TokenVerifier interface {
	Verify(token string) (*Identity, error)
}

type Config struct {
	URL     string
	AnonKey string
}

// Guard resolves sessions and publishes transitions. Build one per process
// and share it between requests.
type Guard struct {
	provider  IdentityProvider
	verifier  TokenVerifier
	configErr error
	logger    *zap.Logger

	mu        sync.RWMutex
	listeners map[int]func(Event)
	nextID    int
}

// NewGuard returns a guard stuck in the configuration-error state when the
// provider URL or key is missing. verifier may be nil, in which case tokens
// are checked against the provider.
func NewGuard(cfg Config, provider IdentityProvider, verifier TokenVerifier, logger *zap.Logger) *Guard {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &Guard{
		provider:  provider,
		verifier:  verifier,
		logger:    logger,
		listeners: make(map[int]func(Event)),
	}
	var missing []string
	if strings.TrimSpace(cfg.URL) == "" {
		missing = append(missing, "SUPABASE_URL")
	}
	if strings.TrimSpace(cfg.AnonKey) == "" {
		missing = append(missing, "SUPABASE_ANON_KEY")
	}
	if len(missing) > 0 || provider == nil {
		g.configErr = &ConfigError{Missing: missing}
		logger.Error("identity provider not configured", zap.Strings("missing", missing))
	}
	return g
}

// ConfigError is non-nil when the guard can never authenticate anyone.
func (g *Guard) ConfigError() error {
	return g.configErr
}

// Resolve builds the session for a request from its access token.
func (g *Guard) Resolve(ctx context.Context, accessToken string) *Session {
	s := New()
	if g.configErr != nil {
		s.fail(g.configErr)
		return s
	}
	if accessToken == "" {
		s.unauthenticate()
		return s
	}

	var (
		id  *Identity
		err error
	)
	if g.verifier != nil {
		id, err = g.verifier.Verify(accessToken)
	} else {
		id, err = g.provider.User(ctx, accessToken)
	}
	if err != nil {
		g.logger.Debug("session token rejected", zap.Error(err))
		s.unauthenticate()
		return s
	}
	s.authenticate(id)
	return s
}

// SignIn exchanges credentials for tokens and publishes EventSignedIn.
func (g *Guard) SignIn(ctx context.Context, email, password string) (*Tokens, Event, error) {
	if g.configErr != nil {
		return nil, Event{}, g.configErr
	}
	tokens, err := g.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		g.logger.Info("sign in failed", zap.String("email", email), zap.Error(err))
		return nil, Event{}, errors.Join(ErrInvalidCredentials, err)
	}
	ev := Event{Type: EventSignedIn, Identity: &tokens.Identity}
	g.publish(ev)
	return tokens, ev, nil
}

// SignOut revokes the token on the provider (best effort) and publishes
// EventSignedOut.
func (g *Guard) SignOut(ctx context.Context, accessToken string, who *Identity) Event {
	if g.configErr == nil && accessToken != "" {
		if err := g.provider.SignOut(ctx, accessToken); err != nil {
			g.logger.Warn("provider sign out failed", zap.Error(err))
		}
	}
	ev := Event{Type: EventSignedOut, Identity: who}
	g.publish(ev)
	return ev
}

// Subscribe registers fn for every transition. Call the returned func to stop.
func (g *Guard) Subscribe(fn func(Event)) (unsubscribe func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = fn
	g.mu.Unlock()

	return func() {
		g.mu.Lock()
		delete(g.listeners, id)
		g.mu.Unlock()
	}
}

func (g *Guard) publish(ev Event) {
	g.mu.RLock()
	fns := make([]func(Event), 0, len(g.listeners))
	for _, fn := range g.listeners {
		fns = append(fns, fn)
	}
	g.mu.RUnlock()

	for _, fn := range fns {
		fn(ev)
	}
}
