package dining

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// Recommender asks a model for the top meals for a dietary goal given a set
// of menus.
type Recommender interface {
	TopMeals(ctx context.Context, menus Menus, goal string, topN int) (string, error)
}

// openAIRecommender implements Recommender over the OpenAI chat API.
type openAIRecommender struct {
	client *openai.Client
	model  string
}

// NewRecommender creates a Recommender using the given API key and model.
func NewRecommender(apiKey, model string) Recommender {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &openAIRecommender{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

// TopMeals prompts the model with the flattened menus and returns its
// numbered recommendation list verbatim.
func (r *openAIRecommender) TopMeals(ctx context.Context, menus Menus, goal string, topN int) (string, error) {
	menuJSON, err := json.MarshalIndent(menus, "", "  ")
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"You are a dietary expert. Given these campus dining hall menus:\n%s\n\n"+
			"List the top %d meals ideal for %s, numbered with a brief justification each.",
		menuJSON, topN, goal,
	)

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
