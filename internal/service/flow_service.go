package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"campuslearn_backend/internal/model"
	"campuslearn_backend/internal/util"

	"github.com/go-playground/validator/v10"
)

// ChatClient is what the flows need from the AI backend.
type ChatClient interface {
	Chat(system, prompt string) (string, error)
}

// ContextSearcher retrieves knowledge-base context for the tutoring flow.
type ContextSearcher interface {
	Search(term string, limit int) ([]model.Topic, error)
}

// FlowService wraps the AI backend with fixed prompt templates and schema
// validation of the responses. Each flow is one synchronous call; a response
// that fails validation is an error, never retried.
type FlowService struct {
	ai       ChatClient
	topics   ContextSearcher
	validate *validator.Validate
}

func NewFlowService(ai ChatClient, topics ContextSearcher) *FlowService {
	return &FlowService{
		ai:       ai,
		topics:   topics,
		validate: validator.New(),
	}
}

const jsonOnlyDirective = "Respond with a single JSON object and nothing else. No prose, no markdown fences."

// extractJSON tolerates models that wrap JSON in code fences or prose.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, "```"); idx >= 0 {
		raw = raw[idx+3:]
		raw = strings.TrimPrefix(raw, "json")
		if end := strings.Index(raw, "```"); end >= 0 {
			raw = raw[:end]
		}
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

func (s *FlowService) callJSON(system, prompt string, out interface{}) error {
	raw, err := s.ai.Chat(system, prompt)
	if err != nil {
		return err
	}

	if err := json.Unmarshal([]byte(extractJSON(raw)), out); err != nil {
		return fmt.Errorf("%w: %v", util.ErrAISchemaValidation, err)
	}
	if err := s.validate.Struct(out); err != nil {
		return fmt.Errorf("%w: %v", util.ErrAISchemaValidation, err)
	}
	return nil
}

type FeedbackInput struct {
	AssignmentTitle       string `json:"assignmentTitle" binding:"required"`
	AssignmentDescription string `json:"assignmentDescription"`
	SubmissionContent     string `json:"submissionContent" binding:"required"`
}

type FeedbackOutput struct {
	Feedback     string   `json:"feedback" validate:"required"`
	Strengths    []string `json:"strengths" validate:"required,min=1"`
	Improvements []string `json:"improvements"`
}

// GenerateFeedback drafts grading feedback for a submission. The output is a
// draft for staff to edit, never auto-applied.
func (s *FlowService) GenerateFeedback(in FeedbackInput) (*FeedbackOutput, error) {
	system := "You are a teaching assistant drafting constructive feedback on student work. " + jsonOnlyDirective +
		` Schema: {"feedback": string, "strengths": [string], "improvements": [string]}`
	prompt := fmt.Sprintf("Assignment: %s\n%s\n\nStudent submission:\n%s",
		in.AssignmentTitle, in.AssignmentDescription, in.SubmissionContent)

	var out FeedbackOutput
	if err := s.callJSON(system, prompt, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type QuizGenInput struct {
	SourceText string `json:"sourceText" binding:"required"`
	Count      int    `json:"count" binding:"min=1,max=20"`
}

type GeneratedQuestion struct {
	Text         string   `json:"text" validate:"required"`
	Options      []string `json:"options" validate:"required,min=2"`
	CorrectIndex int      `json:"correctIndex" validate:"gte=0"`
	Explanation  string   `json:"explanation"`
}

type QuizGenOutput struct {
	Title     string              `json:"title" validate:"required"`
	Questions []GeneratedQuestion `json:"questions" validate:"required,min=1,dive"`
}

// GenerateQuiz produces a multiple-choice quiz from source material.
func (s *FlowService) GenerateQuiz(in QuizGenInput) (*QuizGenOutput, error) {
	system := "You generate multiple-choice quizzes from learning material. " + jsonOnlyDirective +
		` Schema: {"title": string, "questions": [{"text": string, "options": [string], "correctIndex": number, "explanation": string}]}`
	prompt := fmt.Sprintf("Write %d questions covering this material:\n\n%s", in.Count, in.SourceText)

	var out QuizGenOutput
	if err := s.callJSON(system, prompt, &out); err != nil {
		return nil, err
	}

	// Cross-field check the validator tags cannot express.
	for _, q := range out.Questions {
		if q.CorrectIndex >= len(q.Options) {
			return nil, fmt.Errorf("%w: correctIndex out of range", util.ErrAISchemaValidation)
		}
	}
	return &out, nil
}

type TutorInput struct {
	Question string `json:"question" binding:"required"`
}

type TutorOutput struct {
	Answer string `json:"answer" validate:"required"`
	Source string `json:"source"`
}

// TutorAnswer answers a student question, grounding on matching topics when
// the knowledge base has any.
func (s *FlowService) TutorAnswer(in TutorInput) (*TutorOutput, error) {
	var context string
	source := "llm"
	if s.topics != nil {
		topics, err := s.topics.Search(in.Question, 3)
		if err == nil && len(topics) > 0 {
			source = "knowledge_base"
			var sb strings.Builder
			for _, t := range topics {
				fmt.Fprintf(&sb, "[Topic] %s\n%s\n\n", t.Title, t.Description)
			}
			context = sb.String()
		}
	}

	system := "You are a patient tutor on a learning platform. " + jsonOnlyDirective +
		` Schema: {"answer": string}`
	if context != "" {
		system += "\nGround your answer on this context:\n" + context
	}

	var out TutorOutput
	if err := s.callJSON(system, in.Question, &out); err != nil {
		return nil, err
	}
	out.Source = source
	return &out, nil
}

type SummarizeInput struct {
	Content string `json:"content" binding:"required"`
}

type SummarizeOutput struct {
	Summary   string   `json:"summary" validate:"required"`
	KeyPoints []string `json:"keyPoints"`
}

// Summarize condenses lesson or topic content.
func (s *FlowService) Summarize(in SummarizeInput) (*SummarizeOutput, error) {
	system := "You summarize learning material for students. " + jsonOnlyDirective +
		` Schema: {"summary": string, "keyPoints": [string]}`

	var out SummarizeOutput
	if err := s.callJSON(system, in.Content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
