package cli

import (
	"context"

	"github.com/dmitrijs2005/studymate/internal/ai"
	"github.com/dmitrijs2005/studymate/internal/models"
)

// AuthGateway is implemented by *auth.Gateway.
type AuthGateway interface {
	Signup(ctx context.Context, name, email string, password []byte, major string) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) (*models.User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, email string, upd models.ProfileUpdate) (*models.User, error)
}

// PasswordResetter is implemented by *auth.PasswordReset.
type PasswordResetter interface {
	RequestCode(ctx context.Context, email string) (string, error)
	Confirm(ctx context.Context, code string, newPassword, confirmation []byte) error
}

// SessionStore is implemented by *session.Store.
type SessionStore interface {
	GetSession(ctx context.Context) *models.User
	GetActivity(ctx context.Context, email string) models.UserActivity
	AppendFile(ctx context.Context, email string, f models.UserFile) (models.UserActivity, error)
	AppendPlan(ctx context.Context, email string, p models.UserPlan) (models.UserActivity, error)
	IncrementTestCount(ctx context.Context, email string) (models.UserActivity, error)
}

// Assistant is implemented by *ai.Client.
type Assistant interface {
	Chat(ctx context.Context, history []models.ChatMessage, message string, att *ai.Attachment) (string, error)
	Summarize(ctx context.Context, att *ai.Attachment) (*models.SummaryResult, error)
	GenerateTest(ctx context.Context, att *ai.Attachment) ([]models.QuizQuestion, error)
	GenerateStudyPlan(ctx context.Context, subjects, available string) (*models.StudyPlan, error)
	Research(ctx context.Context, topic string) (*models.ResearchResult, error)
}
