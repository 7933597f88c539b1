package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"reeferlink/domain"
	"reeferlink/helpers"
	"reeferlink/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Field names shared with the mobile apps' preference files.
const (
	FieldConnectionMode = "connection_mode"
	FieldServerIP       = "server_ip"
	FieldSupabaseURL    = "supabase_url"
	FieldSupabaseKey    = "supabase_key"
	FieldOrgSlug        = "org_slug"
	FieldModeSelected   = "mode_selected"
	FieldLoggedIn       = "logged_in"
	FieldConfiguredAt   = "configured_at"
)

// SessionStore keeps the committed connection session for one scope.
// Writes are serialized and go to the backend first; readers get an immutable snapshot that is
// swapped in only after the backend accepted the write.
type SessionStore struct {
	backend interfaces.SessionBackend
	scope   string
	logger  log.Logger

	mu      sync.Mutex
	current atomic.Pointer[domain.ConnectionSession]
}

func NewSessionStore(backend interfaces.SessionBackend, scope string, logger log.Logger) *SessionStore {
	return &SessionStore{
		backend: helpers.NilPanic(backend, "service.session_store.go: backend is required"),
		scope:   helpers.StrPanic(scope, "service.session_store.go: scope is required"),
		logger:  log.With(helpers.NilPanic(logger, "service.session_store.go: logger is required"), "component", "session_store", "scope", scope),
	}
}

// Open loads the stored session into memory. A stored session that fails validation is treated as absent.
func (s *SessionStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fields, err := s.backend.ReadSession(ctx, s.scope)
	if err != nil {
		return NewInternalServerError("failed to read session", err)
	}
	session, ok, err := DecodeSession(fields)
	if err != nil {
		_ = level.Warn(s.logger).Log("msg", "ignoring stored session", "err", err)
		ok = false
	}
	if !ok {
		s.current.Store(nil)
		return nil
	}
	s.current.Store(&session)
	return nil
}

// Load returns the last committed session. It never touches the backend.
func (s *SessionStore) Load() (domain.ConnectionSession, bool) {
	p := s.current.Load()
	if p == nil {
		return domain.ConnectionSession{}, false
	}
	return *p, true
}

// Commit validates and persists session, then makes it visible to Load.
// On error nothing changes.
func (s *SessionStore) Commit(ctx context.Context, session domain.ConnectionSession) error {
	if err := session.Validate(); err != nil {
		return NewBadParameterError("invalid session", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.WriteSession(ctx, s.scope, EncodeSession(session)); err != nil {
		return NewInternalServerError("failed to write session", err)
	}
	s.current.Store(&session)
	_ = level.Info(s.logger).Log("msg", "session committed", "mode", session.Mode, "address", session.Address, "cloud", session.CloudEndpoint)
	return nil
}

// Clear removes the stored session so the next launch runs discovery again.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.DeleteSession(ctx, s.scope); err != nil {
		return NewInternalServerError("failed to delete session", err)
	}
	s.current.Store(nil)
	_ = level.Info(s.logger).Log("msg", "session cleared")
	return nil
}

// EncodeSession flattens a session into backend fields.
func EncodeSession(session domain.ConnectionSession) map[string]string {
	fields := map[string]string{
		FieldConnectionMode: string(session.Mode),
		FieldModeSelected:   "true",
		FieldLoggedIn:       boolField(session.Configured),
	}
	if session.Address != "" {
		fields[FieldServerIP] = session.Address
	}
	if session.CloudEndpoint != "" {
		fields[FieldSupabaseURL] = session.CloudEndpoint
	}
	if session.CloudAPIKey != "" {
		fields[FieldSupabaseKey] = session.CloudAPIKey
	}
	if session.Organization != "" {
		fields[FieldOrgSlug] = session.Organization
	}
	if !session.ConfiguredAt.IsZero() {
		fields[FieldConfiguredAt] = session.ConfiguredAt.UTC().Format(time.RFC3339Nano)
	}
	return fields
}

// DecodeSession rebuilds a session from backend fields. ok is false when no session is stored;
// err is set when fields are present but inconsistent.
func DecodeSession(fields map[string]string) (session domain.ConnectionSession, ok bool, err error) {
	if fields[FieldLoggedIn] != "true" {
		return domain.ConnectionSession{}, false, nil
	}
	mode, err := domain.ParseConnectionMode(fields[FieldConnectionMode])
	if err != nil {
		return domain.ConnectionSession{}, false, err
	}
	session = domain.ConnectionSession{
		Mode:         mode,
		Organization: fields[FieldOrgSlug],
		Configured:   true,
	}
	switch mode {
	case domain.ModeLocal:
		session.Address = fields[FieldServerIP]
	case domain.ModeCloud:
		session.CloudEndpoint = fields[FieldSupabaseURL]
		session.CloudAPIKey = fields[FieldSupabaseKey]
	}
	if raw := fields[FieldConfiguredAt]; raw != "" {
		if session.ConfiguredAt, err = time.Parse(time.RFC3339Nano, raw); err != nil {
			return domain.ConnectionSession{}, false, err
		}
	}
	if err = session.Validate(); err != nil {
		return domain.ConnectionSession{}, false, err
	}
	return session, true, nil
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
