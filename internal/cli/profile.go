package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/i18n"
	"github.com/dmitrijs2005/studymate/internal/models"
)

// Profile prints the user card, language settings and an activity summary.
func (a *App) Profile(ctx context.Context) error {
	u := a.requireUser()
	if u == nil {
		return nil
	}
	a.nav.NavigateTo(models.PageProfile, "")

	a.println(title(u.Name))
	a.println(u.Email)
	major := u.Major
	if major == "" {
		major = a.t("profile.noMajor")
	}
	a.println(muted(major))
	if a.autosaver.Pending() {
		a.println(muted(a.t("profile.unsaved")))
	}

	a.println()
	a.println(title(a.t("profile.languageSettings")))
	for _, l := range i18n.Languages {
		mark := " "
		if l == a.tr.Language() {
			mark = "*"
		}
		a.println(fmt.Sprintf("  %s %s (lang %s)", mark, a.t("profile.language."+string(l)), l))
	}

	a.println()
	a.println(title(a.t("profile.activitySummary")))
	a.printStats()

	a.println()
	a.println(title(a.t("profile.recentFiles")))
	a.printFiles(a.activity.RecentFiles(profileRecentFiles), "profile.noFiles")

	a.println()
	a.println(title(a.t("profile.recentPlans")))
	plans := a.activity.RecentPlans(profileRecentPlans)
	if len(plans) == 0 {
		a.println("  " + a.t("profile.noPlans"))
	}
	for _, p := range plans {
		a.println(fmt.Sprintf("  %s  %s", p.Title, muted(p.Date)))
	}
	return nil
}

// EditMajor stages a new major. The draft is written by the auto-saver, by
// "save", or discarded by "cancel".
func (a *App) EditMajor(ctx context.Context, args []string) error {
	u := a.requireUser()
	if u == nil {
		return nil
	}

	major := strings.TrimSpace(strings.Join(args, " "))
	if len(args) == 0 {
		var err error
		major, err = a.ask(a.t("login.major"))
		if err != nil {
			return err
		}
	}

	a.autosaver.Set(u.Email, models.ProfileUpdate{Major: &major})
	return nil
}

// SaveProfile writes the pending draft now.
func (a *App) SaveProfile(ctx context.Context) error {
	u, err := a.autosaver.Flush(ctx)
	if err != nil {
		a.log.Error(ctx, "profile save failed", "error", err)
		a.printError(a.t("login.error.unexpected"))
		return nil
	}
	if u != nil {
		a.printSuccess(a.t("profile.saved"))
	}
	return nil
}

func (a *App) CancelEdit(_ context.Context) error {
	a.autosaver.Discard()
	return nil
}
