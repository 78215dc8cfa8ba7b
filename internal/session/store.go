// Package session keeps the signed-in user and the per-user activity log in
// durable key/value storage.
//
// Reads never fail: a missing, unreadable or undecodable value is logged and
// replaced by its default. Writes return their errors. Every
// read-modify-write runs under one mutex, so mutations from the REPL and the
// profile auto-saver do not interleave within a process. Separate processes
// sharing a database are last-write-wins.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/models"
	"github.com/dmitrijs2005/studymate/internal/storage"
)

type Store struct {
	kv    storage.Store
	codec *TokenCodec
	log   logging.Logger
	mu    sync.Mutex
}

func NewStore(kv storage.Store, codec *TokenCodec, log logging.Logger) *Store {
	return &Store{kv: kv, codec: codec, log: log}
}

// GetSession returns the persisted user, or nil when nobody is signed in or
// the token is unreadable, forged or expired.
func (s *Store) GetSession(ctx context.Context) *models.User {
	raw, err := s.kv.Get(ctx, common.SessionKey)
	if err != nil {
		s.log.Warn(ctx, "session read failed", "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	u, err := s.codec.Decode(string(raw))
	if err != nil {
		s.log.Warn(ctx, "session token rejected", "error", err)
		return nil
	}
	return &u
}

func (s *Store) SaveSession(ctx context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSession(ctx, u)
}

func (s *Store) saveSession(ctx context.Context, u models.User) error {
	token, err := s.codec.Encode(u)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, common.SessionKey, []byte(token)); err != nil {
		return err
	}
	s.log.Debug(ctx, "session saved", "email", u.Email)
	return nil
}

func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Delete(ctx, common.SessionKey)
}

// UpdateProfile merges upd into the signed-in user and persists it. It fails
// with common.ErrNotAuthenticated when email is not the session user.
func (s *Store) UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.GetSession(ctx)
	if current == nil || current.Email != email {
		return nil, common.ErrNotAuthenticated
	}

	updated := upd.Apply(*current)
	if err := s.saveSession(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// GetActivity returns the activity record of email. Read and decode
// failures are logged and yield the empty record.
func (s *Store) GetActivity(ctx context.Context, email string) models.UserActivity {
	a, err := s.loadActivity(ctx, email)
	if err != nil {
		s.log.Warn(ctx, "activity read failed", "email", email, "error", err)
		return models.EmptyActivity()
	}
	return a
}

// loadActivity reads the record of email. Only a missing record yields the
// empty default; read and decode failures are returned.
func (s *Store) loadActivity(ctx context.Context, email string) (models.UserActivity, error) {
	key := common.ActivityKey(email)

	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		return models.UserActivity{}, err
	}
	if len(raw) == 0 {
		return models.EmptyActivity(), nil
	}

	var a models.UserActivity
	if err := json.Unmarshal(raw, &a); err != nil {
		return models.UserActivity{}, fmt.Errorf("decode activity %s: %w", key, err)
	}
	return a.Normalize(), nil
}

// EnsureActivity writes an empty record for email unless one exists.
func (s *Store) EnsureActivity(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, common.ActivityKey(email))
	if err != nil {
		return err
	}
	if len(raw) > 0 {
		return nil
	}
	return s.putActivity(ctx, email, models.EmptyActivity())
}

func (s *Store) AppendFile(ctx context.Context, email string, f models.UserFile) (models.UserActivity, error) {
	return s.mutateActivity(ctx, email, func(a *models.UserActivity) {
		a.Files = append(a.Files, f)
	})
}

func (s *Store) AppendPlan(ctx context.Context, email string, p models.UserPlan) (models.UserActivity, error) {
	return s.mutateActivity(ctx, email, func(a *models.UserActivity) {
		a.Plans = append(a.Plans, p)
	})
}

func (s *Store) IncrementTestCount(ctx context.Context, email string) (models.UserActivity, error) {
	return s.mutateActivity(ctx, email, func(a *models.UserActivity) {
		a.Tests++
	})
}

func (s *Store) mutateActivity(ctx context.Context, email string, apply func(*models.UserActivity)) (models.UserActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.loadActivity(ctx, email)
	if err != nil {
		return models.UserActivity{}, err
	}
	apply(&a)

	if err := s.putActivity(ctx, email, a); err != nil {
		return models.UserActivity{}, err
	}
	return a, nil
}

func (s *Store) putActivity(ctx context.Context, email string, a models.UserActivity) error {
	b, err := json.Marshal(a.Normalize())
	if err != nil {
		return fmt.Errorf("encode activity: %w", err)
	}
	return s.kv.Set(ctx, common.ActivityKey(email), b)
}
