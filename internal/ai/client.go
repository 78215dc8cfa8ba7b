// Package ai wraps the Gemini generateContent API for StudyMate's five
// tasks: chat, summary with flashcards, practice tests, study plans and
// grounded research.
//
// Structured answers are decoded into explicit types. Invalid JSON or a
// missing required field fails with common.ErrGenerationFailed. Provider and
// transport errors are returned unchanged and are never retried.
package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/studymate/internal/common"
	"github.com/dmitrijs2005/studymate/internal/logging"
	"github.com/dmitrijs2005/studymate/internal/models"
	"google.golang.org/genai"
)

// Generator is the generateContent call of *genai.Models.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Options struct {
	Model            string
	ResponseLanguage string
	Persona          string
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = DefaultModel
	}
	if o.ResponseLanguage == "" {
		o.ResponseLanguage = DefaultLanguage
	}
	if o.Persona == "" {
		o.Persona = DefaultPersona
	}
	return o
}

type Client struct {
	gen  Generator
	opts Options
	log  logging.Logger
}

func New(gen Generator, opts Options, log logging.Logger) *Client {
	return &Client{gen: gen, opts: opts.withDefaults(), log: log}
}

// NewGemini connects to the Gemini API. An empty baseURL uses the public
// endpoint.
func NewGemini(ctx context.Context, apiKey, baseURL string, opts Options, log logging.Logger) (*Client, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	c, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return New(c.Models, opts, log), nil
}

func (c *Client) generate(ctx context.Context, task string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	resp, err := c.gen.GenerateContent(ctx, c.opts.Model, contents, cfg)
	if err != nil {
		c.log.Error(ctx, "generation failed", "task", task, "model", c.opts.Model, "error", err)
		return nil, err
	}
	c.log.Debug(ctx, "generation done", "task", task, "model", c.opts.Model, "elapsed", time.Since(start))
	return resp, nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Text()
}

func attachmentPart(a *Attachment) *genai.Part {
	return genai.NewPartFromBytes(a.Data, a.MIMEType)
}

func jsonConfig(schema *genai.Schema) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	}
}

// Chat sends the whole history followed by message and the optional
// attachment, and returns the model's reply.
func (c *Client) Chat(ctx context.Context, history []models.ChatMessage, message string, att *Attachment) (string, error) {
	if message == "" && att == nil {
		return "", common.ErrNoInput
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, m := range history {
		var role genai.Role = genai.RoleUser
		if m.Role == models.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(m.Content, role))
	}

	parts := make([]*genai.Part, 0, 2)
	if message != "" {
		parts = append(parts, genai.NewPartFromText(message))
	}
	if att != nil {
		parts = append(parts, attachmentPart(att))
	}
	contents = append(contents, genai.NewContentFromParts(parts, genai.RoleUser))

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(chatInstruction(c.opts.Persona, c.opts.ResponseLanguage), genai.RoleUser),
	}

	resp, err := c.generate(ctx, "chat", contents, cfg)
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func (c *Client) documentRequest(att *Attachment, prompt string) []*genai.Content {
	return []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{attachmentPart(att), genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
}

func (c *Client) Summarize(ctx context.Context, att *Attachment) (*models.SummaryResult, error) {
	if att == nil {
		return nil, common.ErrNoFile
	}
	resp, err := c.generate(ctx, "summarize", c.documentRequest(att, summaryPrompt(c.opts.ResponseLanguage)), jsonConfig(summarySchema))
	if err != nil {
		return nil, err
	}
	return parseSummary(responseText(resp))
}

func (c *Client) GenerateTest(ctx context.Context, att *Attachment) ([]models.QuizQuestion, error) {
	if att == nil {
		return nil, common.ErrNoFile
	}
	resp, err := c.generate(ctx, "test", c.documentRequest(att, testPrompt(c.opts.ResponseLanguage)), jsonConfig(testSchema))
	if err != nil {
		return nil, err
	}
	return parseTest(responseText(resp))
}

// GenerateStudyPlan asks for a weekly plan. subjects is a comma-separated
// list and available a free-form description of study time.
func (c *Client) GenerateStudyPlan(ctx context.Context, subjects, available string) (*models.StudyPlan, error) {
	if subjects == "" || available == "" {
		return nil, common.ErrNoInput
	}
	contents := genai.Text(planPrompt(subjects, available, c.opts.ResponseLanguage))
	resp, err := c.generate(ctx, "plan", contents, jsonConfig(planSchema))
	if err != nil {
		return nil, err
	}
	return parsePlan(responseText(resp))
}

// Research answers with a short summary grounded by Google Search. Sources
// without a URI are dropped and untitled ones are labelled "Untitled".
func (c *Client) Research(ctx context.Context, topic string) (*models.ResearchResult, error) {
	if topic == "" {
		return nil, common.ErrNoInput
	}
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
	resp, err := c.generate(ctx, "research", genai.Text(researchPrompt(topic, c.opts.ResponseLanguage)), cfg)
	if err != nil {
		return nil, err
	}
	return &models.ResearchResult{Text: responseText(resp), Sources: groundingSources(resp)}, nil
}

func groundingSources(resp *genai.GenerateContentResponse) []models.ResearchSource {
	sources := []models.ResearchSource{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	gm := resp.Candidates[0].GroundingMetadata
	if gm == nil {
		return sources
	}
	for _, chunk := range gm.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" {
			continue
		}
		title := chunk.Web.Title
		if title == "" {
			title = "Untitled"
		}
		sources = append(sources, models.ResearchSource{Title: title, URI: chunk.Web.URI})
	}
	return sources
}
