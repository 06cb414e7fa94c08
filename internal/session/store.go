// Package session persists the logged-in user in per-visitor storage.
package session

import (
	"context"
	"encoding/json"
	"strings"

	"dealpulse/internal/domain"
	applog "dealpulse/internal/log"
)

// Key is the storage key holding the serialized user.
const Key = "dp_user"

// Storage is a visitor-scoped key/value store.
type Storage interface {
	GetItem(ctx context.Context, key string) (string, bool, error)
	SetItem(ctx context.Context, key, value string) error
	RemoveItem(ctx context.Context, key string) error
}

type Status int

const (
	Absent Status = iota
	Valid
	// Invalid covers undecodable values and storage read failures.
	Invalid
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "absent"
	}
}

// Result is the outcome of reading the persisted user.
type Result struct {
	Status  Status
	Session domain.Session
	Err     error
}

func (r Result) LoggedIn() bool { return r.Status == Valid }

// User returns the session when one is valid.
func (r Result) User() (domain.Session, bool) {
	return r.Session, r.Status == Valid
}

type Store struct {
	storage Storage
}

func NewStore(storage Storage) *Store { return &Store{storage: storage} }

// GetUser never fails: corrupt or unreadable state reads as logged out.
func (s *Store) GetUser(ctx context.Context) Result {
	raw, ok, err := s.storage.GetItem(ctx, Key)
	if err != nil {
		applog.Debug().Err(err).Str("key", Key).Msg("session.read")
		return Result{Status: Invalid, Err: err}
	}
	if !ok || strings.TrimSpace(raw) == "null" {
		return Result{Status: Absent}
	}
	var sess domain.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		applog.Debug().Err(err).Str("key", Key).Msg("session.parse")
		return Result{Status: Invalid, Err: err}
	}
	return Result{Status: Valid, Session: sess}
}

func (s *Store) SetUser(ctx context.Context, sess domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.storage.SetItem(ctx, Key, string(b))
}

func (s *Store) ClearUser(ctx context.Context) error {
	return s.storage.RemoveItem(ctx, Key)
}
