package cli

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/models"
)

type saveFunc func(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error)

// Autosaver holds at most one unsaved profile draft and writes it through,
// either on demand (Flush) or every tick of Run. Both paths share one mutex,
// so a manual save and a tick never overlap.
type Autosaver struct {
	save    saveFunc
	onSaved func(*models.User)
	log     logging.Logger

	mu    sync.Mutex
	email string
	draft *models.ProfileUpdate
}

func NewAutosaver(save saveFunc, onSaved func(*models.User), log logging.Logger) *Autosaver {
	return &Autosaver{save: save, onSaved: onSaved, log: log}
}

// Set replaces the pending draft for email.
func (s *Autosaver) Set(email string, upd models.ProfileUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email, s.draft = email, &upd
}

// Discard drops the pending draft.
func (s *Autosaver) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.email, s.draft = "", nil
}

func (s *Autosaver) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft != nil
}

// Flush writes the pending draft, if any, and returns the saved user. The
// draft is kept when the write fails so the next tick retries it.
func (s *Autosaver) Flush(ctx context.Context) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.draft == nil {
		return nil, nil
	}

	u, err := s.save(ctx, s.email, *s.draft)
	if err != nil {
		return nil, err
	}
	s.email, s.draft = "", nil

	if s.onSaved != nil && u != nil {
		s.onSaved(u)
	}
	return u, nil
}

// Run flushes every interval until ctx is cancelled.
func (s *Autosaver) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			u, err := s.Flush(ctx)
			if err != nil {
				s.log.Warn(ctx, "profile auto-save failed", "error", err)
				continue
			}
			if u != nil {
				s.log.Debug(ctx, "profile auto-saved", "email", u.Email)
			}
		case <-ctx.Done():
			return
		}
	}
}
