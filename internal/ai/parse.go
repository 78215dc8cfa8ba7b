package ai

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/models"
)

// stripFences removes a Markdown code fence wrapped around a JSON payload.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decode(text string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(stripFences(text))))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode response: %w", common.ErrGenerationFailed, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after JSON value", common.ErrGenerationFailed)
	}
	return nil
}

func missing(field string) error {
	return fmt.Errorf("%w: missing field %q", common.ErrGenerationFailed, field)
}

type wireFlashcard struct {
	Question *string `json:"question"`
	Answer   *string `json:"answer"`
}

type wireSummary struct {
	Summary    *string          `json:"summary"`
	Flashcards *[]wireFlashcard `json:"flashcards"`
}

func parseSummary(text string) (*models.SummaryResult, error) {
	var w wireSummary
	if err := decode(text, &w); err != nil {
		return nil, err
	}
	if w.Summary == nil {
		return nil, missing("summary")
	}
	if w.Flashcards == nil {
		return nil, missing("flashcards")
	}

	res := &models.SummaryResult{Summary: *w.Summary, Flashcards: make([]models.Flashcard, 0, len(*w.Flashcards))}
	for i, fc := range *w.Flashcards {
		if fc.Question == nil || fc.Answer == nil {
			return nil, missing(fmt.Sprintf("flashcards[%d].question/answer", i))
		}
		res.Flashcards = append(res.Flashcards, models.Flashcard{Question: *fc.Question, Answer: *fc.Answer})
	}
	return res, nil
}

type wireQuestion struct {
	Type          *string  `json:"type"`
	Question      *string  `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *string  `json:"correctAnswer"`
}

var errUnknownQuestionType = errors.New("unknown question type")

func parseTest(text string) ([]models.QuizQuestion, error) {
	var ws []wireQuestion
	if err := decode(text, &ws); err != nil {
		return nil, err
	}

	out := make([]models.QuizQuestion, 0, len(ws))
	for i, w := range ws {
		if w.Type == nil {
			return nil, missing(fmt.Sprintf("[%d].type", i))
		}
		if w.Question == nil {
			return nil, missing(fmt.Sprintf("[%d].question", i))
		}

		switch models.QuestionType(*w.Type) {
		case models.QuestionMCQ:
			if len(w.Options) < 2 {
				return nil, missing(fmt.Sprintf("[%d].options", i))
			}
			if w.CorrectAnswer == nil {
				return nil, missing(fmt.Sprintf("[%d].correctAnswer", i))
			}
			out = append(out, &models.MCQQuestion{Question: *w.Question, Options: w.Options, CorrectAnswer: *w.CorrectAnswer})
		case models.QuestionEssay:
			out = append(out, &models.EssayQuestion{Question: *w.Question})
		default:
			return nil, fmt.Errorf("%w: %w %q at [%d]", common.ErrGenerationFailed, errUnknownQuestionType, *w.Type, i)
		}
	}
	return out, nil
}

type wireTask struct {
	Time    *string `json:"time"`
	Subject *string `json:"subject"`
	Task    *string `json:"task"`
}

type wireDay struct {
	Day   *string     `json:"day"`
	Tasks *[]wireTask `json:"tasks"`
}

type wirePlan struct {
	Plan *[]wireDay `json:"plan"`
}

func parsePlan(text string) (*models.StudyPlan, error) {
	var w wirePlan
	if err := decode(text, &w); err != nil {
		return nil, err
	}
	if w.Plan == nil {
		return nil, missing("plan")
	}

	plan := &models.StudyPlan{Plan: make([]models.StudyDay, 0, len(*w.Plan))}
	for i, d := range *w.Plan {
		if d.Day == nil {
			return nil, missing(fmt.Sprintf("plan[%d].day", i))
		}
		if d.Tasks == nil {
			return nil, missing(fmt.Sprintf("plan[%d].tasks", i))
		}
		day := models.StudyDay{Day: *d.Day, Tasks: make([]models.StudyTask, 0, len(*d.Tasks))}
		for j, t := range *d.Tasks {
			if t.Time == nil || t.Subject == nil || t.Task == nil {
				return nil, missing(fmt.Sprintf("plan[%d].tasks[%d]", i, j))
			}
			day.Tasks = append(day.Tasks, models.StudyTask{Time: *t.Time, Subject: *t.Subject, Task: *t.Task})
		}
		plan.Plan = append(plan.Plan, day)
	}
	return plan, nil
}
