package ai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/s155003/Budgetly/src/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultEncouragement = "Keep working on your financial goals!"

	EmptyQuestionReply  = "Please provide a question about retirement planning, saving, or investing."
	NotConfiguredReply  = "(Advisor in fallback mode) Tip: automate monthly savings, build a 3–6 month emergency fund, and keep a diversified allocation aligned with your risk tolerance."
	ProviderFailedReply = "(Temporary advisor fallback) Consider raising contributions yearly."

	DefaultDifficulty   = "beginner"
	DefaultNumQuestions = 5
	MaxNumQuestions     = 10
)

// Advisor builds the prompts and interprets the answers. A nil completer means
// no provider is configured.
type Advisor struct {
	completer Completer
}

func NewAdvisor(completer Completer) *Advisor {
	return &Advisor{completer: completer}
}

func (a *Advisor) Configured() bool {
	return a != nil && a.completer != nil
}

// AdviceInput is the financial picture sent to the model. Spending and Goals are
// serialized as JSON into the prompt.
type AdviceInput struct {
	MonthlyIncome decimal.Decimal
	Spending      any
	Goals         any
}

// BudgetAdvice asks for structured advice. An answer that is not the requested
// JSON still succeeds: the raw text becomes the only tip.
func (a *Advisor) BudgetAdvice(ctx context.Context, in AdviceInput) (models.BudgetAdvice, error) {
	if !a.Configured() {
		return models.BudgetAdvice{}, ErrNotConfigured
	}

	spending := in.Spending
	if spending == nil {
		spending = map[string]any{}
	}
	goals := in.Goals
	if goals == nil {
		goals = []any{}
	}

	text, err := a.completer.Complete(ctx, CompletionRequest{
		System:      adviceSystem,
		Prompt:      advicePrompt(in.MonthlyIncome.String(), toJSON(spending), toJSON(goals)),
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return models.BudgetAdvice{}, err
	}

	return ParseAdvice(text), nil
}

// ParseAdvice decodes a completion into advice, falling back to a single tip
// holding the raw text.
func ParseAdvice(text string) models.BudgetAdvice {
	var advice models.BudgetAdvice
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &advice); err != nil {
		zap.L().Warn("advice completion is not JSON, using fallback", zap.Error(err))
		return models.BudgetAdvice{
			Tips:              []string{text},
			Concerns:          []string{},
			SavingsStrategies: []string{},
			Encouragement:     DefaultEncouragement,
		}
	}
	if advice.Tips == nil {
		advice.Tips = []string{}
	}
	if advice.Concerns == nil {
		advice.Concerns = []string{}
	}
	if advice.SavingsStrategies == nil {
		advice.SavingsStrategies = []string{}
	}
	if advice.Encouragement == "" {
		advice.Encouragement = DefaultEncouragement
	}
	return advice
}

func (a *Advisor) LessonHint(ctx context.Context, lessonContent, question, difficulty string) (string, error) {
	if !a.Configured() {
		return "", ErrNotConfigured
	}
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}

	text, err := a.completer.Complete(ctx, CompletionRequest{
		System:      hintSystem,
		Prompt:      hintPrompt(lessonContent, question, difficulty),
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ClampQuestions bounds the requested quiz length; zero selects the default.
func ClampQuestions(n int) int {
	switch {
	case n == 0:
		return DefaultNumQuestions
	case n < 1:
		return 1
	case n > MaxNumQuestions:
		return MaxNumQuestions
	}
	return n
}

func (a *Advisor) QuizQuestions(ctx context.Context, topic, difficulty string, numQuestions int) ([]models.QuizQuestion, error) {
	if !a.Configured() {
		return nil, ErrNotConfigured
	}
	if difficulty == "" {
		difficulty = DefaultDifficulty
	}

	text, err := a.completer.Complete(ctx, CompletionRequest{
		System:      quizSystem,
		Prompt:      quizPrompt(topic, difficulty, ClampQuestions(numQuestions)),
		MaxTokens:   1000,
		Temperature: 0.7,
	})
	if err != nil {
		return nil, err
	}
	return ParseQuiz(text)
}

func ParseQuiz(text string) ([]models.QuizQuestion, error) {
	var quiz struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(StripCodeFence(text)), &quiz); err != nil {
		zap.L().Warn("quiz completion is not JSON", zap.Error(err))
		return nil, ErrUnparsable
	}
	if quiz.Questions == nil {
		return nil, ErrUnparsable
	}
	return quiz.Questions, nil
}

// AskAdvisor answers a free-form retirement question and never fails: every
// problem is replaced by a fixed reply.
func (a *Advisor) AskAdvisor(ctx context.Context, prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return EmptyQuestionReply
	}
	if !a.Configured() {
		return NotConfiguredReply
	}

	text, err := a.completer.Complete(ctx, CompletionRequest{
		System:      advisorSystem,
		Prompt:      prompt,
		Temperature: 0.4,
	})
	if err != nil {
		zap.L().Error("advisor completion failed", zap.Error(err))
		return ProviderFailedReply
	}
	return text
}

// StripCodeFence removes a surrounding ``` or ```json fence from a completion.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[nl+1:]
	} else {
		text = ""
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}

func toJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "{}"
	}
	return string(b)
}
