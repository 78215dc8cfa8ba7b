package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/i18n"
	"github.com/dmitrijs2005/studymate/internal/models"
)

// authMessage maps auth errors to locale keys. Unknown errors are logged.
func (a *App) authMessage(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, common.ErrDuplicateEmail):
		return a.t("login.error.emailExists")
	case errors.Is(err, common.ErrInvalidCredentials):
		return a.t("login.error.invalidCredentials")
	case errors.Is(err, common.ErrEmailNotFound):
		return a.t("login.error.emailNotFound")
	case errors.Is(err, common.ErrCodeMismatch):
		return a.t("login.error.codeIncorrect")
	case errors.Is(err, common.ErrPasswordTooShort):
		return a.t("login.error.passwordLength")
	case errors.Is(err, common.ErrPasswordMismatch):
		return a.t("login.error.passwordMismatch")
	case errors.Is(err, common.ErrNoInput):
		return a.t("login.error.required")
	}
	a.log.Error(ctx, "auth failed", "error", err)
	return a.t("login.error.unexpected")
}

// Signup prompts for name, email, optional major and password, creates the
// account and signs the user in.
func (a *App) Signup(ctx context.Context) error {
	a.println(title(a.t("signup.title")))

	name, err := a.ask(a.t("login.name"))
	if err != nil {
		return err
	}
	email, err := a.ask(a.t("login.email"))
	if err != nil {
		return err
	}
	major, err := a.ask(a.t("login.major"))
	if err != nil {
		return err
	}
	password, err := a.askPassword(a.t("login.password"))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Signup(ctx, name, email, password, major)
	if err != nil {
		a.printError(a.authMessage(ctx, err))
		return nil
	}

	a.signIn(ctx, u)
	return a.Home(ctx)
}

// Login prompts for credentials. A failed attempt leaves the app signed out.
func (a *App) Login(ctx context.Context) error {
	email, err := a.ask(a.t("login.email"))
	if err != nil {
		return err
	}
	password, err := a.askPassword(a.t("login.password"))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.printError(a.authMessage(ctx, err))
		return nil
	}

	a.signIn(ctx, u)
	return a.Home(ctx)
}

// ForgotPassword runs the simulated reset: the code that would be mailed is
// shown on screen, then code and new password are asked for.
func (a *App) ForgotPassword(ctx context.Context) error {
	a.println(title(a.t("forgotPassword.title")))
	a.println(a.t("forgotPassword.prompt"))

	email, err := a.ask(a.t("login.email"))
	if err != nil {
		return err
	}

	code, err := a.reset.RequestCode(ctx, email)
	if err != nil {
		a.printError(a.authMessage(ctx, err))
		return nil
	}
	a.printSuccess(a.tp("login.success.codeSent.simulated", map[string]any{"code": code}))

	a.println(title(a.t("resetPassword.title")))
	entered, err := a.ask(a.t("login.verificationCode"))
	if err != nil {
		return err
	}
	newPassword, err := a.askPassword(a.t("login.newPassword"))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)
	confirmation, err := a.askPassword(a.t("login.confirmPassword"))
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	if err := a.reset.Confirm(ctx, entered, newPassword, confirmation); err != nil {
		a.printError(a.authMessage(ctx, err))
		return nil
	}

	a.printSuccess(a.t("login.success.passwordReset") + " " + a.t("login.title"))
	return nil
}

// Logout ends the session and forgets in-memory state. Persisted activity
// is kept for the next login.
func (a *App) Logout(ctx context.Context) error {
	if _, err := a.autosaver.Flush(ctx); err != nil {
		a.log.Warn(ctx, "pending profile changes lost", "error", err)
	}
	a.autosaver.Discard()

	if err := a.auth.Logout(ctx); err != nil {
		return err
	}

	a.setUser(nil)
	a.activity = models.EmptyActivity()
	a.nav = models.DefaultNavigation()
	a.chat = nil

	a.println(a.t("login.title"))
	return nil
}

// SetLanguage switches the UI language. Without an argument it prints the
// current one.
func (a *App) SetLanguage(_ context.Context, args []string) error {
	if len(args) == 0 {
		a.println(string(a.tr.Language()))
		return nil
	}
	lang, err := i18n.ParseLanguage(args[0])
	if err != nil {
		return err
	}
	a.tr.SetLanguage(lang)
	a.println(a.t("profile.language." + string(lang)))
	return nil
}
