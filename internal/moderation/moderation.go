// Package moderation decides whether a community comment is on topic before it is stored.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mdobak/go-xerrors"
	openai "github.com/sashabaranov/go-openai"
)

const (
	systemPrompt = "You are an assistant that verifies if comments are related to a specific project."
	maxTokens    = 5
)

type Moderator interface {
	IsRelevant(ctx context.Context, text string) (bool, error)
}

type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// New returns an LLM-backed moderator, or a pass-through one when no API key is configured.
func New(opts Options, logger *slog.Logger) Moderator {
	if opts.APIKey == "" {
		logger.Warn("moderation API key not configured, comments will not be checked for relevance")
		return AllowAll{}
	}
	return NewLLMModerator(opts)
}

type LLMModerator struct {
	client *openai.Client
	model  string
}

func NewLLMModerator(opts Options) *LLMModerator {
	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = opts.BaseURL
	}
	model := opts.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &LLMModerator{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}
}

// IsRelevant asks the model for a YES/NO verdict. Anything other than YES counts as not relevant.
func (m *LLMModerator) IsRelevant(ctx context.Context, text string) (bool, error) {
	resp, err := m.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt(text)},
		},
		MaxTokens: maxTokens,
	})
	if err != nil {
		return false, xerrors.New(err)
	}
	if len(resp.Choices) == 0 {
		return false, nil
	}
	return Verdict(resp.Choices[0].Message.Content), nil
}

func userPrompt(text string) string {
	return fmt.Sprintf("Is this comment relevant to the project? %q Reply with just 'YES' or 'NO'.", text)
}

// Verdict normalizes a model reply.
func Verdict(reply string) bool {
	return strings.ToUpper(strings.TrimSpace(reply)) == "YES"
}

// AllowAll accepts every comment.
type AllowAll struct{}

func (AllowAll) IsRelevant(context.Context, string) (bool, error) { return true, nil }
