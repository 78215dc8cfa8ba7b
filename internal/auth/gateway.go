// Package auth is StudyMate's local authentication: signup, login, logout,
// password reset and profile edits against accounts kept in a
// CredentialStore. Nothing leaves the machine.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/cryptox"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/models"
	"github.com/dmitrijs2005/studymate/internal/storage"
)

// SessionStore is the part of session.Store the gateway drives.
type SessionStore interface {
	SaveSession(ctx context.Context, u models.User) error
	ClearSession(ctx context.Context) error
	EnsureActivity(ctx context.Context, email string) error
	UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error)
}

// UnitOfWork runs fn with credential and session stores whose writes
// either all persist or, when fn fails, none do.
type UnitOfWork func(ctx context.Context, fn func(ctx context.Context, creds CredentialStore, sessions SessionStore) error) error

// TxUnitOfWork binds a fresh credential store and the session store built
// by newSessions to each transaction of tx.
func TxUnitOfWork(tx storage.Transactor, newSessions func(kv storage.Store) SessionStore) UnitOfWork {
	return func(ctx context.Context, fn func(ctx context.Context, creds CredentialStore, sessions SessionStore) error) error {
		return tx.InTx(ctx, func(ctx context.Context, kv storage.Store) error {
			return fn(ctx, NewKVCredentialStore(kv), newSessions(kv))
		})
	}
}

type Gateway struct {
	creds    CredentialStore
	sessions SessionStore
	uow      UnitOfWork
	log      logging.Logger
}

// NewGateway returns a gateway whose multi-write operations run directly on
// creds and sessions. Use WithUnitOfWork to make them atomic.
func NewGateway(creds CredentialStore, sessions SessionStore, log logging.Logger) *Gateway {
	g := &Gateway{creds: creds, sessions: sessions, log: log}
	g.uow = func(ctx context.Context, fn func(context.Context, CredentialStore, SessionStore) error) error {
		return fn(ctx, g.creds, g.sessions)
	}
	return g
}

func (g *Gateway) WithUnitOfWork(uow UnitOfWork) *Gateway {
	g.uow = uow
	return g
}

// Signup creates an account with an empty activity record and signs the
// new user in. The three writes run as one unit of work.
func (g *Gateway) Signup(ctx context.Context, name, email string, password []byte, major string) (*models.User, error) {
	name, email, major = strings.TrimSpace(name), strings.TrimSpace(email), strings.TrimSpace(major)
	if name == "" || email == "" || len(password) == 0 {
		return nil, common.ErrNoInput
	}

	salt, verifier := cryptox.NewCredential(password)
	acc := models.Account{Name: name, Email: email, Major: major, Salt: salt, Verifier: verifier}

	u := acc.User()
	err := g.uow(ctx, func(ctx context.Context, creds CredentialStore, sessions SessionStore) error {
		if err := creds.Create(ctx, acc); err != nil {
			return err
		}
		if err := sessions.EnsureActivity(ctx, email); err != nil {
			return fmt.Errorf("create activity: %w", err)
		}
		if err := sessions.SaveSession(ctx, u); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	g.log.Info(ctx, "account created", "email", email)
	return &u, nil
}

// Login signs in the account matching (email, password) exactly. On failure
// the current session is left untouched.
func (g *Gateway) Login(ctx context.Context, email string, password []byte) (*models.User, error) {
	acc, err := g.creds.Find(ctx, strings.TrimSpace(email))
	if errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !cryptox.CheckPassword(password, acc.Salt, acc.Verifier) {
		g.log.Info(ctx, "login rejected", "email", acc.Email)
		return nil, common.ErrInvalidCredentials
	}

	u := acc.User()
	if err := g.sessions.SaveSession(ctx, u); err != nil {
		return nil, err
	}
	g.log.Info(ctx, "login succeeded", "email", u.Email)
	return &u, nil
}

// Logout clears the session. Activity records stay for the next login.
func (g *Gateway) Logout(ctx context.Context) error {
	return g.sessions.ClearSession(ctx)
}

func (g *Gateway) CheckEmailExists(ctx context.Context, email string) bool {
	_, err := g.creds.Find(ctx, strings.TrimSpace(email))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		g.log.Warn(ctx, "account lookup failed", "email", email, "error", err)
	}
	return err == nil
}

// ResetPassword replaces the credential of email with one for newPassword.
func (g *Gateway) ResetPassword(ctx context.Context, email string, newPassword []byte) error {
	salt, verifier := cryptox.NewCredential(newPassword)

	err := g.creds.Update(ctx, strings.TrimSpace(email), func(acc *models.Account) {
		acc.Salt, acc.Verifier = salt, verifier
	})
	if errors.Is(err, common.ErrNotFound) {
		return common.ErrEmailNotFound
	}
	if err != nil {
		return err
	}
	g.log.Info(ctx, "password reset", "email", email)
	return nil
}

// UpdateProfile edits the account and the signed-in user. A changed email
// does not carry the activity record over.
func (g *Gateway) UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error) {
	err := g.creds.Update(ctx, email, func(acc *models.Account) {
		u := upd.Apply(acc.User())
		acc.Name, acc.Email, acc.Major = u.Name, u.Email, u.Major
	})
	if err != nil {
		return nil, err
	}
	return g.sessions.UpdateProfile(ctx, email, upd)
}
