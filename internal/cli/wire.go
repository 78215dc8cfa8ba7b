package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/studymate/internal/ai"
	"github.com/dmitrijs2005/studymate/internal/auth"
	"github.com/dmitrijs2005/studymate/internal/config"
	"github.com/dmitrijs2005/studymate/internal/i18n"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/session"
	"github.com/dmitrijs2005/studymate/internal/storage"
)

var ErrMissingAPIKey = errors.New("gemini api key is not set (use -k or " + config.APIKeyEnvVar + ")")

const renderWidth = 100

// NewAppFromConfig opens the database and builds every collaborator of the
// App. The returned closer releases the database.
func NewAppFromConfig(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer, log logging.Logger) (*App, func() error, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil, ErrMissingAPIKey
	}

	kv, db, err := storage.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, nil, err
	}

	secret, err := session.LoadOrCreateSecret(ctx, kv, cfg.SessionSecret)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("session secret: %w", err)
	}
	sessions, gw := newAccounts(kv, session.NewTokenCodec(secret, cfg.SessionValidity), log)

	assistant, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiBaseURL, aiOptions(cfg), log.With("component", "ai"))
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	lang, err := i18n.ParseLanguage(cfg.Language)
	if err != nil {
		log.Warn(ctx, "unsupported language, using default", "language", cfg.Language)
		lang = i18n.Languages[0]
	}
	tr := i18n.Load(ctx, cfg.LocalesDir, lang, log)

	var renderer Renderer = PlainRenderer{}
	if r, err := NewGlamourRenderer(cfg.RenderStyle, renderWidth); err != nil {
		log.Warn(ctx, "markdown renderer unavailable", "style", cfg.RenderStyle, "error", err)
	} else {
		renderer = r
	}

	app := NewApp(Deps{
		Log:              log,
		Auth:             gw,
		Reset:            auth.NewPasswordReset(gw),
		Sessions:         sessions,
		Assistant:        assistant,
		Translator:       tr,
		Renderer:         renderer,
		In:               in,
		Out:              out,
		AutosaveInterval: cfg.AutosaveInterval,
	})
	return app, db.Close, nil
}

// newAccounts builds the session store and an auth gateway whose signup
// writes share one transaction on kv.
func newAccounts(kv *storage.SQLStore, codec *session.TokenCodec, log logging.Logger) (*session.Store, *auth.Gateway) {
	sessLog := log.With("component", "session")
	sessions := session.NewStore(kv, codec, sessLog)
	uow := auth.TxUnitOfWork(kv, func(kv storage.Store) auth.SessionStore {
		return session.NewStore(kv, codec, sessLog)
	})
	gw := auth.NewGateway(auth.NewKVCredentialStore(kv), sessions, log.With("component", "auth")).WithUnitOfWork(uow)
	return sessions, gw
}

func aiOptions(cfg *config.Config) ai.Options {
	return ai.Options{
		Model:            cfg.GeminiModel,
		ResponseLanguage: cfg.ResponseLanguage,
		Persona:          cfg.Persona,
	}
}
