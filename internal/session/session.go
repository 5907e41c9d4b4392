// Package session tracks who is signed in for a request and decides whether
// a protected route may run, must redirect, or must show an error.
package session

import "context"

type Phase string

const (
	PhaseLoading         Phase = "loading"
	PhaseAuthenticated   Phase = "authenticated"
	PhaseUnauthenticated Phase = "unauthenticated"
	PhaseConfigError     Phase = "configuration-error"
)

const (
	LoginPath = "/login"
	HomePath  = "/"
)

// Cookies holding the provider tokens between requests.
const (
	AccessTokenCookie  = "sb-access-token"
	RefreshTokenCookie = "sb-refresh-token"
)

type Identity struct {
	UserID string `json:"id"`
	Email  string `json:"email"`
}

type Tokens struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	Identity     Identity
}

type EventType string

const (
	EventSignedIn  EventType = "SIGNED_IN"
	EventSignedOut EventType = "SIGNED_OUT"
)

// Event is a sign-in or sign-out transition published by the Guard.
type Event struct {
	Type     EventType
	Identity *Identity
}

// Session is the identity state of one request. It starts in PhaseLoading
// and is resolved once by the Guard.
type Session struct {
	phase    Phase
	identity *Identity
	err      error
	navigate string
}

func New() *Session {
	return &Session{phase: PhaseLoading}
}

func (s *Session) Phase() Phase {
	return s.phase
}

// Identity is nil unless the session is authenticated.
func (s *Session) Identity() *Identity {
	return s.identity
}

// Err is the configuration error, if any.
func (s *Session) Err() error {
	return s.err
}

func (s *Session) authenticate(id *Identity) {
	s.phase = PhaseAuthenticated
	s.identity = id
}

func (s *Session) unauthenticate() {
	s.phase = PhaseUnauthenticated
	s.identity = nil
}

func (s *Session) fail(err error) {
	s.phase = PhaseConfigError
	s.identity = nil
	s.err = err
}

// Apply moves the session along a transition. A configuration error is
// permanent and ignores transitions.
func (s *Session) Apply(ev Event) {
	if s.phase == PhaseConfigError {
		return
	}
	switch ev.Type {
	case EventSignedIn:
		if ev.Identity != nil {
			s.authenticate(ev.Identity)
		}
		s.navigate = HomePath
	case EventSignedOut:
		s.unauthenticate()
		s.navigate = LoginPath
	}
}

// RedirectFor returns where a request for path should be sent, if anywhere.
// A pending navigation from a transition wins; otherwise unauthenticated
// requests go to the login screen unless they are already there.
func (s *Session) RedirectFor(path string) (string, bool) {
	if s.phase == PhaseConfigError {
		return "", false
	}
	if s.navigate != "" {
		return s.navigate, true
	}
	if s.phase == PhaseUnauthenticated && path != LoginPath {
		return LoginPath, true
	}
	return "", false
}

type Decision int

const (
	DecisionLoading Decision = iota
	DecisionConfigError
	DecisionRedirect
	DecisionAllow
)

// Gate is what a protected route renders for the session.
func (s *Session) Gate() Decision {
	switch s.phase {
	case PhaseAuthenticated:
		return DecisionAllow
	case PhaseConfigError:
		return DecisionConfigError
	case PhaseUnauthenticated:
		return DecisionRedirect
	}
	return DecisionLoading
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request's session, or a loading session when none
// was attached.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok {
		return s
	}
	return New()
}
