package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/studymate/internal/i18n"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/models"
)

// Deps are the collaborators of an App. Now defaults to time.Now.
type Deps struct {
	Log              logging.Logger
	Auth             AuthGateway
	Reset            PasswordResetter
	Sessions         SessionStore
	Assistant        Assistant
	Translator       *i18n.Translator
	Renderer         Renderer
	In               io.Reader
	Out              io.Writer
	Now              func() time.Time
	AutosaveInterval time.Duration
}

type App struct {
	log       logging.Logger
	auth      AuthGateway
	reset     PasswordResetter
	sessions  SessionStore
	assistant Assistant
	tr        *i18n.Translator
	renderer  Renderer
	reader    *bufio.Reader
	inFD      int
	out       io.Writer
	now       func() time.Time

	autosaver        *Autosaver
	autosaveInterval time.Duration

	mu       sync.Mutex
	user     *models.User
	activity models.UserActivity
	nav      models.Navigation
	chat     []models.ChatMessage
}

func NewApp(d Deps) *App {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Renderer == nil {
		d.Renderer = PlainRenderer{}
	}
	a := &App{
		log:              d.Log,
		auth:             d.Auth,
		reset:            d.Reset,
		sessions:         d.Sessions,
		assistant:        d.Assistant,
		tr:               d.Translator,
		renderer:         d.Renderer,
		reader:           bufio.NewReader(d.In),
		inFD:             inputFD(d.In),
		out:              d.Out,
		now:              d.Now,
		autosaveInterval: d.AutosaveInterval,
		activity:         models.EmptyActivity(),
		nav:              models.DefaultNavigation(),
	}
	a.autosaver = NewAutosaver(d.Auth.UpdateProfile, a.setUser, d.Log)
	return a
}

// Run restores a persisted session, starts the profile auto-saver and
// serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.autosaveInterval > 0 {
		done := make(chan struct{})
		go func() {
			defer close(done)
			a.autosaver.Run(ctx, a.autosaveInterval)
		}()
		defer func() {
			cancel()
			<-done
		}()
	}

	a.println(title(a.t("appName")) + " - " + a.t("appSlogan"))
	a.restoreSession(ctx)

	runREPL(ctx, a, a.getStatus, a.reader, a.out)

	if _, err := a.autosaver.Flush(context.WithoutCancel(ctx)); err != nil {
		a.log.Error(ctx, "final profile save failed", "error", err)
	}
}

func (a *App) restoreSession(ctx context.Context) {
	u := a.sessions.GetSession(ctx)
	if u == nil {
		a.println(a.t("login.title"))
		return
	}
	a.signIn(ctx, u)
	a.log.Info(ctx, "session restored", "email", u.Email)
	a.Home(ctx)
}

func (a *App) signIn(ctx context.Context, u *models.User) {
	a.setUser(u)
	a.activity = a.sessions.GetActivity(ctx, u.Email)
	a.nav = models.DefaultNavigation()
	a.chat = nil
}

func (a *App) currentUser() *models.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = u
}

func (a *App) isLoggedIn() bool {
	return a.currentUser() != nil
}

func (a *App) getStatus() string {
	u := a.currentUser()
	if u == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s/%s)", u.Email, a.nav.CurrentPage, a.nav.ActiveFeature)
}

func (a *App) t(key string) string {
	return a.tr.T(key)
}

func (a *App) tp(key string, params map[string]any) string {
	return a.tr.Translate(key, params)
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printError(msg string) {
	a.println(errorStyle.Render(msg))
}

func (a *App) printSuccess(msg string) {
	a.println(successStyle.Render(msg))
}

func (a *App) printMarkdown(md string) {
	a.println(a.renderer.Render(md))
}

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

func (a *App) askPassword(prompt string) ([]byte, error) {
	return getPassword(a.reader, a.inFD, prompt, a.out)
}

// requireUser prints a hint and returns nil when nobody is signed in.
func (a *App) requireUser() *models.User {
	u := a.currentUser()
	if u == nil {
		a.printError(a.t("login.title"))
	}
	return u
}
