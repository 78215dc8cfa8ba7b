package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/models"
)

const (
	dashboardRecentFiles = 4
	profileRecentFiles   = 3
	profileRecentPlans   = 2
)

// Home prints the dashboard: greeting, counters, today's tasks from the
// latest plan, recent files and quick actions.
func (a *App) Home(ctx context.Context) error {
	u := a.requireUser()
	if u == nil {
		return nil
	}
	a.nav.NavigateTo(models.PageDashboard, models.FeatureHome)

	a.println(title(a.tp("dashboard.welcome", map[string]any{"name": u.Name})))
	a.println(muted(a.t("feature.dashboard.description")))
	a.println()
	a.printStats()

	a.println()
	a.println(title(a.t("dashboard.todaysPlan")))
	if day := a.todaysTasks(); day != nil && len(day.Tasks) > 0 {
		for _, task := range day.Tasks {
			a.println(fmt.Sprintf("  - %s (%s)  %s", task.Task, task.Subject, muted(task.Time)))
		}
	} else {
		a.println("  " + a.t("dashboard.noTasks"))
		a.println("  " + muted(a.t("dashboard.createPlanPrompt")+" "+a.t("dashboard.createPlanLink")+": plan"))
	}

	a.println()
	a.println(title(a.t("dashboard.recentFiles")))
	a.printFiles(a.activity.RecentFiles(dashboardRecentFiles), "dashboard.noFiles")

	a.println()
	a.println(title(a.t("dashboard.quickActions")))
	a.println("  summarize  " + a.t("dashboard.action.summarize"))
	a.println("  test       " + a.t("dashboard.action.generateTest"))
	a.println("  plan       " + a.t("dashboard.action.planStudies"))
	a.println("  research   " + a.t("dashboard.action.startResearch"))
	return nil
}

func (a *App) printStats() {
	a.println(fmt.Sprintf("  %s: %d", a.t("profile.uploadedFiles"), len(a.activity.Files)))
	a.println(fmt.Sprintf("  %s: %d", a.t("profile.studyPlans"), len(a.activity.Plans)))
	a.println(fmt.Sprintf("  %s: %d", a.t("profile.testsGenerated"), a.activity.Tests))
}

func (a *App) printFiles(files []models.UserFile, emptyKey string) {
	if len(files) == 0 {
		a.println("  " + a.t(emptyKey))
		return
	}
	for _, f := range files {
		a.println(fmt.Sprintf("  [%s] %s  %s", f.Type, f.Name, muted(f.Size)))
	}
}

// todaysTasks finds today's entry in the latest plan, comparing day names
// case-insensitively in the current language.
func (a *App) todaysTasks() *models.StudyDay {
	latest := a.activity.LatestPlan()
	if latest == nil {
		return nil
	}
	today := a.now()
	for i := range latest.Data.Plan {
		if a.tr.IsWeekday(latest.Data.Plan[i].Day, today) {
			return &latest.Data.Plan[i]
		}
	}
	return nil
}

// Navigate switches the active dashboard feature and opens it. Without an
// argument it lists the features.
func (a *App) Navigate(ctx context.Context, args []string) error {
	if len(args) == 0 {
		names := make([]string, 0, len(models.Features))
		for _, f := range models.Features {
			names = append(names, string(f))
		}
		a.println(strings.Join(names, ", "))
		return nil
	}

	f, ok := models.ParseFeature(args[0])
	if !ok {
		return fmt.Errorf("%w: %s", errUnknownFeature, args[0])
	}
	a.nav.NavigateTo(models.PageDashboard, f)

	rest := args[1:]
	switch f {
	case models.FeatureHome:
		return a.Home(ctx)
	case models.FeatureAIAssistant:
		return a.Chat(ctx)
	case models.FeatureSummarizer:
		return a.Summarize(ctx, rest)
	case models.FeatureTestGenerator:
		return a.GenerateTest(ctx, rest)
	case models.FeatureStudyPlanner:
		return a.Plan(ctx)
	case models.FeatureResearchAssistant:
		return a.Research(ctx, rest)
	}
	return nil
}
