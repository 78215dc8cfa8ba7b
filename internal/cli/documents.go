package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/models"
)

// pathArg joins args back into a path, or asks for one.
func (a *App) pathArg(args []string, promptKey string) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	return a.ask(a.t(promptKey))
}

// Summarize reads a PDF or text document, asks the model for a summary
// with flashcards and records the file in the activity log.
func (a *App) Summarize(ctx context.Context, args []string) error {
	u := a.requireUser()
	if u == nil {
		return nil
	}
	a.nav.NavigateTo(models.PageDashboard, models.FeatureSummarizer)
	a.println(title(a.t("feature.summarizer.title")))
	a.println(muted(a.tp("feature.summarizer.description", map[string]any{"fileTypes": docTypesLabel})))

	path, err := a.pathArg(args, "feature.summarizer.upload.click")
	if err != nil {
		return err
	}
	att, progress, ok := a.openDocument(ctx, path, "feature.summarizer.error.noFile")
	if !ok {
		return nil
	}

	res, err := a.assistant.Summarize(ctx, att)
	if err != nil {
		a.log.Error(ctx, "summary failed", "file", att.Name, "error", err)
		progress.set(statusError)
		a.printError(a.t("feature.summarizer.error.generationFailed"))
		return nil
	}
	progress.set(statusSuccess)

	if _, err := a.recordFile(ctx, u.Email, models.UserFile{Name: att.Name, Size: att.DisplaySize(), Type: models.FileKindSummary}); err != nil {
		return err
	}

	a.showSummary(res)
	return nil
}

func (a *App) recordFile(ctx context.Context, email string, f models.UserFile) (models.UserActivity, error) {
	act, err := a.sessions.AppendFile(ctx, email, f)
	if err != nil {
		return act, fmt.Errorf("record file: %w", err)
	}
	a.activity = act
	return act, nil
}

// showSummary prints the summary tab, then offers the flashcards tab.
func (a *App) showSummary(res *models.SummaryResult) {
	a.println(title(a.t("feature.summarizer.summaryTitle")))
	a.printMarkdown(res.Summary)

	if len(res.Flashcards) == 0 {
		return
	}
	answer, err := a.ask(a.t("feature.summarizer.tab.flashcards") + "? [y/N]")
	if err != nil || !isYes(answer) {
		return
	}

	a.println(title(a.t("feature.summarizer.tab.flashcards")))
	for i, c := range res.Flashcards {
		a.println(fmt.Sprintf("%d. %s", i+1, c.Question))
		a.println("   " + muted(c.Answer))
	}
}

func isYes(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "نعم", "ن":
		return true
	}
	return false
}

// GenerateTest builds a quiz from a document, lets the user answer the
// multiple-choice questions and prints the results.
func (a *App) GenerateTest(ctx context.Context, args []string) error {
	u := a.requireUser()
	if u == nil {
		return nil
	}
	a.nav.NavigateTo(models.PageDashboard, models.FeatureTestGenerator)
	a.println(title(a.t("feature.testGenerator.title")))
	a.println(muted(a.t("feature.testGenerator.description")))

	path, err := a.pathArg(args, "feature.summarizer.upload.click")
	if err != nil {
		return err
	}
	att, progress, ok := a.openDocument(ctx, path, "feature.testGenerator.error.noFile")
	if !ok {
		return nil
	}

	questions, err := a.assistant.GenerateTest(ctx, att)
	if err != nil {
		a.log.Error(ctx, "test generation failed", "file", att.Name, "error", err)
		progress.set(statusError)
		a.printError(a.t("feature.testGenerator.error.generationFailed"))
		return nil
	}
	progress.set(statusSuccess)

	if _, err := a.sessions.IncrementTestCount(ctx, u.Email); err != nil {
		return fmt.Errorf("record test: %w", err)
	}
	if _, err := a.recordFile(ctx, u.Email, models.UserFile{Name: att.Name, Size: att.DisplaySize(), Type: models.FileKindTest}); err != nil {
		return err
	}

	a.takeQuiz(questions)
	return nil
}

// takeQuiz asks every question, then shows the correct answers and the
// multiple-choice score. Essay answers are not graded.
func (a *App) takeQuiz(questions []models.QuizQuestion) {
	a.println(title(a.t("feature.testGenerator.quizTitle")))

	answers := make(map[int]string, len(questions))
	for i, q := range questions {
		a.println()
		a.println(fmt.Sprintf("%d. %s", i+1, q.Text()))

		switch q := q.(type) {
		case *models.MCQQuestion:
			for j, opt := range q.Options {
				a.println(fmt.Sprintf("   %d) %s", j+1, opt))
			}
			line, err := a.ask(">")
			if err != nil {
				return
			}
			answers[i] = pickOption(q.Options, line)
		case *models.EssayQuestion:
			line, err := a.ask(a.t("feature.testGenerator.essayPlaceholder"))
			if err != nil {
				return
			}
			answers[i] = line
		}
	}

	a.println()
	a.println(title(a.t("feature.testGenerator.showResults")))
	for i, q := range questions {
		mcq, ok := q.(*models.MCQQuestion)
		if !ok {
			continue
		}
		line := fmt.Sprintf("%d. %s %s", i+1, a.t("feature.testGenerator.correctAnswer"), mcq.CorrectAnswer)
		if answers[i] == mcq.CorrectAnswer {
			a.printSuccess(line)
		} else {
			a.printError(line)
		}
	}

	correct, total := models.Score(questions, answers)
	a.println(a.tp("feature.testGenerator.score", map[string]any{"correct": correct, "total": total}))
}

// pickOption accepts an option number or the option text.
func pickOption(options []string, line string) string {
	line = strings.TrimSpace(line)
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	return line
}
