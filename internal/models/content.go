package models

import (
	"encoding/json"
)

type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SummaryResult struct {
	Summary    string      `json:"summary"`
	Flashcards []Flashcard `json:"flashcards"`
}

type StudyTask struct {
	Time    string `json:"time"`
	Subject string `json:"subject"`
	Task    string `json:"task"`
}

type StudyDay struct {
	Day   string      `json:"day"`
	Tasks []StudyTask `json:"tasks"`
}

type StudyPlan struct {
	Plan []StudyDay `json:"plan"`
}

type ResearchSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

type ResearchResult struct {
	Text    string           `json:"text"`
	Sources []ResearchSource `json:"sources"`
}

// Empty reports a research answer with no text and no sources.
func (r ResearchResult) Empty() bool {
	return r.Text == "" && len(r.Sources) == 0
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type QuestionType string

const (
	QuestionMCQ   QuestionType = "MCQ"
	QuestionEssay QuestionType = "Essay"
)

// QuizQuestion is either an *MCQQuestion or an *EssayQuestion.
type QuizQuestion interface {
	Kind() QuestionType
	Text() string
}

type MCQQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

func (q *MCQQuestion) Kind() QuestionType { return QuestionMCQ }
func (q *MCQQuestion) Text() string       { return q.Question }

func (q *MCQQuestion) MarshalJSON() ([]byte, error) {
	type plain MCQQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*plain
	}{QuestionMCQ, (*plain)(q)})
}

type EssayQuestion struct {
	Question string `json:"question"`
}

func (q *EssayQuestion) Kind() QuestionType { return QuestionEssay }
func (q *EssayQuestion) Text() string       { return q.Question }

func (q *EssayQuestion) MarshalJSON() ([]byte, error) {
	type plain EssayQuestion
	return json.Marshal(struct {
		Type QuestionType `json:"type"`
		*plain
	}{QuestionEssay, (*plain)(q)})
}

// Score counts correct MCQ answers. answers is keyed by question index;
// essay questions are not scored.
func Score(questions []QuizQuestion, answers map[int]string) (correct, total int) {
	for i, q := range questions {
		mcq, ok := q.(*MCQQuestion)
		if !ok {
			continue
		}
		total++
		if answers[i] == mcq.CorrectAnswer {
			correct++
		}
	}
	return correct, total
}
