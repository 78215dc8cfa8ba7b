package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/models"
)

// Research answers a topic with web-grounded text and lists its sources.
func (a *App) Research(ctx context.Context, args []string) error {
	if a.requireUser() == nil {
		return nil
	}
	a.nav.NavigateTo(models.PageDashboard, models.FeatureResearchAssistant)
	a.println(title(a.t("feature.researchAssistant.title")))

	topic := strings.TrimSpace(strings.Join(args, " "))
	if len(args) == 0 {
		var err error
		topic, err = a.ask(a.t("feature.researchAssistant.placeholder"))
		if err != nil {
			return err
		}
	}
	if topic == "" {
		a.printError(a.t("feature.researchAssistant.error.noTopic"))
		return nil
	}

	res, err := a.assistant.Research(ctx, topic)
	if err != nil {
		a.log.Error(ctx, "research failed", "topic", topic, "error", err)
		a.printError(a.t("login.error.unexpected"))
		return nil
	}
	if res == nil || res.Empty() {
		a.printError(a.t("feature.researchAssistant.error.notFound"))
		return nil
	}

	a.println(title(a.t("feature.researchAssistant.summaryTitle")))
	a.printMarkdown(res.Text)

	if len(res.Sources) > 0 {
		a.println()
		a.println(title(a.t("feature.researchAssistant.sourcesTitle")))
		for i, s := range res.Sources {
			a.println(fmt.Sprintf("  %d. %s", i+1, s.Title))
			a.println("     " + muted(s.URI))
		}
	}
	return nil
}
