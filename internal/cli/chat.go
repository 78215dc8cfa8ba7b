package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/ai"
	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/models"
)

// Chat enters the assistant conversation. Each line is a message;
// "/attach <path>" attaches a file to the next message and "/back" returns
// to the main prompt. The transcript survives until logout.
func (a *App) Chat(ctx context.Context) error {
	if a.requireUser() == nil {
		return nil
	}
	a.nav.NavigateTo(models.PageDashboard, models.FeatureAIAssistant)

	if len(a.chat) == 0 {
		a.println(muted(a.t("feature.aiAssistant.startConversation")))
	}

	var att *ai.Attachment
	for {
		line, err := a.ask(a.t("feature.aiAssistant.placeholder"))
		if err != nil {
			return nil
		}

		switch {
		case line == "/back" || line == "/exit":
			return nil
		case strings.HasPrefix(line, "/attach"):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/attach"))
			att = a.attachForChat(path)
			continue
		case line == "" && att == nil:
			continue
		}

		a.sendChat(ctx, line, att)
		att = nil
	}
}

func (a *App) attachForChat(path string) *ai.Attachment {
	if path == "" {
		return nil
	}
	att, err := ai.OpenAttachment(path, ai.ChatTypes, nil)
	if err != nil {
		if !errors.Is(err, common.ErrUnsupportedFileType) {
			a.log.Warn(context.Background(), "attachment not read", "path", path, "error", err)
		}
		a.printError(a.t("feature.aiAssistant.fileError"))
		return nil
	}
	a.println(muted(a.t("feature.aiAssistant.attachedFile") + " " + att.Name))
	return att
}

// sendChat sends message with the transcript so far. A failed call is
// recorded as a model message carrying the localized error.
func (a *App) sendChat(ctx context.Context, message string, att *ai.Attachment) {
	history := append([]models.ChatMessage(nil), a.chat...)
	a.chat = append(a.chat, models.ChatMessage{Role: models.RoleUser, Content: message})

	reply, err := a.assistant.Chat(ctx, history, message, att)
	if err != nil {
		a.log.Error(ctx, "chat failed", "error", err)
		reply = a.t("feature.aiAssistant.error.generic")
		a.chat = append(a.chat, models.ChatMessage{Role: models.RoleModel, Content: reply})
		a.printError(reply)
		return
	}

	a.chat = append(a.chat, models.ChatMessage{Role: models.RoleModel, Content: reply})
	a.printMarkdown(reply)
}
