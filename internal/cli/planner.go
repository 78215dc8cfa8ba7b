package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/models"
)

// planDateLayout is day/month/year without padding, e.g. 5/3/2025.
const planDateLayout = "2/1/2006"

// joinSubjects drops blank entries and joins the rest with ", ".
func joinSubjects(lines []string) string {
	subjects := make([]string, 0, len(lines))
	for _, l := range lines {
		if l = strings.TrimSpace(l); l != "" {
			subjects = append(subjects, l)
		}
	}
	return strings.Join(subjects, ", ")
}

// firstSubject is the text before the first comma.
func firstSubject(subjects string) string {
	first, _, _ := strings.Cut(subjects, ",")
	return strings.TrimSpace(first)
}

// Plan asks for subjects and available time, generates a weekly plan and
// stores it in the activity log.
func (a *App) Plan(ctx context.Context) error {
	u := a.requireUser()
	if u == nil {
		return nil
	}
	a.nav.NavigateTo(models.PageDashboard, models.FeatureStudyPlanner)
	a.println(title(a.t("feature.studyPlanner.planTitle")))

	lines, err := GetMultiline(a.reader, a.t("feature.studyPlanner.subjects"), a.out)
	if err != nil {
		return err
	}
	subjects := joinSubjects(lines)

	available, err := a.ask(a.t("feature.studyPlanner.availableTime"))
	if err != nil {
		return err
	}
	available = strings.TrimSpace(available)

	if subjects == "" || available == "" {
		a.printError(a.t("feature.studyPlanner.error.noInput"))
		return nil
	}

	a.println(muted(a.t("feature.studyPlanner.button.loading")))
	plan, err := a.assistant.GenerateStudyPlan(ctx, subjects, available)
	if err != nil {
		a.log.Error(ctx, "study plan failed", "error", err)
		a.printError(a.t("feature.studyPlanner.error.generationFailed"))
		return nil
	}

	entry := models.UserPlan{
		Title: a.t("feature.studyPlanner.planTitleFor") + " " + firstSubject(subjects),
		Date:  a.now().Format(planDateLayout),
		Data:  *plan,
	}
	act, err := a.sessions.AppendPlan(ctx, u.Email, entry)
	if err != nil {
		return fmt.Errorf("record plan: %w", err)
	}
	a.activity = act

	a.printPlan(entry)
	return nil
}

func (a *App) printPlan(p models.UserPlan) {
	a.println(title(p.Title) + "  " + muted(p.Date))
	for _, day := range p.Data.Plan {
		a.println()
		a.println(title(day.Day))
		for _, task := range day.Tasks {
			a.println(fmt.Sprintf("  %s  %s: %s", muted(task.Time), task.Subject, task.Task))
		}
	}
}
