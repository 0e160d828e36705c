package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"dataview/internal"
	"dataview/internal/errors"
	"dataview/ports"
)

// User identifies the logged-in account.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session is the client's identity state. The zero value is the anonymous
// session: no token, every service call goes out unauthenticated.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Authenticated reports whether the session carries an access token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Anonymous returns the empty session.
func Anonymous() Session {
	return Session{}
}

// Store owns the client's session state and persists it as a JSON file so a
// restart picks up where the last run left off. It is the only writer of
// the Session slice.
type Store struct {
	mu       sync.Mutex
	filePath string
	analyzer ports.AnalyzerPort
	logger   *internal.Logger
	current  Session
}

// NewStore creates a session store backed by the given file path.
func NewStore(filePath string, analyzer ports.AnalyzerPort, logger *internal.Logger) *Store {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Store{
		filePath: filePath,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Restore loads the persisted session. A missing or corrupt store must
// never block startup: both branches yield the anonymous session, and the
// corrupt case is logged so it stays observable.
func (s *Store) Restore() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("[Session] could not read session store: %v", err)
		}
		s.current = Anonymous()
		return s.current
	}

	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil {
		perr := errors.PersistenceError("stored session is corrupt", err)
		s.logger.Warn("[Session] %v; starting anonymous", perr)
		s.current = Anonymous()
		return s.current
	}

	s.current = restored
	return s.current
}

// Current returns a snapshot of the active session.
func (s *Store) Current() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Login authenticates against the service. On success the new session is
// persisted before Login returns; on failure the session is unchanged.
func (s *Store) Login(ctx context.Context, username, password string) (Session, error) {
	token, err := s.analyzer.Login(ctx, username, password)
	if err != nil {
		return s.Current(), err
	}

	next := Session{
		User:  User{Email: username},
		Token: token,
	}
	s.commit(next)
	return next, nil
}

// Register creates an account and establishes the resulting session,
// persisting it before returning.
func (s *Store) Register(ctx context.Context, email, password, name string) (Session, error) {
	token, err := s.analyzer.Register(ctx, email, password, name)
	if err != nil {
		return s.Current(), err
	}

	next := Session{
		User:  User{Email: email, Name: name},
		Token: token,
	}
	s.commit(next)
	return next, nil
}

// Logout clears the in-memory and persisted session. Idempotent.
func (s *Store) Logout() {
	s.commit(Anonymous())
}

// commit swaps the active session and synchronously writes it through to
// the durable store. A failed write keeps the in-memory state and logs; the
// next mutation retries the write.
func (s *Store) commit(next Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = next
	if err := s.persistLocked(); err != nil {
		s.logger.Warn("[Session] could not persist session: %v", err)
	}
}

func (s *Store) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return errors.PersistenceError("create session directory", err)
	}
	data, err := json.MarshalIndent(s.current, "", "  ")
	if err != nil {
		return errors.PersistenceError("encode session", err)
	}
	if err := os.WriteFile(s.filePath, data, 0o600); err != nil {
		return errors.PersistenceError("write session store", err)
	}
	return nil
}
