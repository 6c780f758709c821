package portal

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Persisted state keys. Boolean flags are stored as the literal string
// "true"; absence means false.
const (
	keyIsAdminLoggedIn = "isAdminLoggedIn"
	keyIsLoggedIn      = "isLoggedIn"
	keyUserName        = "userName"
	keyUserEmail       = "userEmail"
	keyUserID          = "userId"
	keyUserProfilePic  = "userProfilePic"
	keyAdminUsername   = "adminUsername"
)

const defaultDisplayName = "User"

// GuestSession is the session every read falls back to when nothing is
// persisted or the stored state is unreadable.
func GuestSession() Session {
	return Session{Role: RoleGuest, Name: defaultDisplayName}
}

// SessionStore reads and writes the persisted identity as a group of state
// keys. Get never fails; Clear is idempotent.
type SessionStore struct {
	state StateStore
}

// NewSessionStore wraps a state store. A nil store yields a memory-backed one.
func NewSessionStore(state StateStore) *SessionStore {
	if state == nil {
		state = NewMemoryStateStore()
	}
	return &SessionStore{state: state}
}

// Get assembles the session from persisted keys. Each field defaults
// independently, so a partially written group still reads coherently.
func (s *SessionStore) Get(ctx context.Context) Session {
	session := GuestSession()

	if v, ok := s.state.Get(ctx, keyIsAdminLoggedIn); ok && v == "true" {
		session.Role = RoleAdmin
		if name, ok := s.state.Get(ctx, keyAdminUsername); ok && name != "" {
			session.AdminUsername = name
			session.Name = name
		}
		return session
	}

	if v, ok := s.state.Get(ctx, keyIsLoggedIn); ok && v == "true" {
		session.Role = RoleUser
		if name, ok := s.state.Get(ctx, keyUserName); ok && name != "" {
			session.Name = name
		}
		if email, ok := s.state.Get(ctx, keyUserEmail); ok {
			session.Email = email
		}
		if id, ok := s.state.Get(ctx, keyUserID); ok {
			session.UserID = id
		}
		if pic, ok := s.state.Get(ctx, keyUserProfilePic); ok {
			session.ProfilePic = pic
		}
	}
	return session
}

// Set persists the session key group. Called only after a trusted success
// response from the collaborator. Writing Guest is equivalent to Clear.
func (s *SessionStore) Set(ctx context.Context, session Session) error {
	switch session.Role {
	case RoleAdmin:
		if err := s.state.Set(ctx, keyIsAdminLoggedIn, "true"); err != nil {
			return err
		}
		name := session.AdminUsername
		if name == "" {
			name = session.Name
		}
		return s.state.Set(ctx, keyAdminUsername, name)
	case RoleUser:
		if err := s.state.Set(ctx, keyIsLoggedIn, "true"); err != nil {
			return err
		}
		if err := s.state.Set(ctx, keyUserName, session.Name); err != nil {
			return err
		}
		if err := s.state.Set(ctx, keyUserEmail, session.Email); err != nil {
			return err
		}
		if err := s.state.Set(ctx, keyUserID, session.UserID); err != nil {
			return err
		}
		if session.ProfilePic != "" {
			return s.state.Set(ctx, keyUserProfilePic, session.ProfilePic)
		}
		return nil
	default:
		return s.Clear(ctx)
	}
}

// SetName updates only the display name, used when a profile save renames
// the signed-in user.
func (s *SessionStore) SetName(ctx context.Context, name string) error {
	return s.state.Set(ctx, keyUserName, name)
}

// Clear removes every key. Idempotent; a following Get returns the Guest
// default.
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.state.Clear(ctx)
}

// MemoryStateStore is a concurrency-safe in-memory state store, the default
// for tests and embedded use.
type MemoryStateStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStateStore creates an empty store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{data: make(map[string]string)}
}

func (s *MemoryStateStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *MemoryStateStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStateStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *MemoryStateStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return nil
}

// FileStateStore persists state as a JSON file so sessions survive process
// restarts. A missing or corrupt file reads as empty; reads never fail.
type FileStateStore struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

// NewFileStateStore loads (or lazily creates) the backing file.
func NewFileStateStore(path string) *FileStateStore {
	store := &FileStateStore{path: path, data: make(map[string]string)}
	if raw, err := os.ReadFile(path); err == nil {
		var decoded map[string]string
		if err := json.Unmarshal(raw, &decoded); err == nil && decoded != nil {
			store.data = decoded
		}
	}
	return store
}

func (s *FileStateStore) Get(_ context.Context, key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *FileStateStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return s.flushLocked()
}

func (s *FileStateStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return s.flushLocked()
}

func (s *FileStateStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]string)
	return s.flushLocked()
}

func (s *FileStateStore) flushLocked() error {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}
