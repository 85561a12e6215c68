package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/tidwall/gjson"
)

var (
	ErrAIServiceNotConfigured = errors.New("AI service is not configured")
	ErrEstimateUnavailable    = errors.New("could not estimate calories")
)

type AIService struct {
	client *openai.Client
	model  string
}

// CalorieEstimate is the model's guess for one serving of a food.
type CalorieEstimate struct {
	FoodName string `json:"food_name"`
	Calories int    `json:"calories"`
}

func NewAIService(apiKey, model string) *AIService {
	return NewAIServiceWithConfig(openai.DefaultConfig(apiKey), model)
}

// NewAIServiceWithConfig allows pointing the client at another endpoint.
func NewAIServiceWithConfig(cfg openai.ClientConfig, model string) *AIService {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &AIService{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// EstimateCalories asks the model for the calories of one typical serving of foodName.
func (s *AIService) EstimateCalories(ctx context.Context, foodName string) (*CalorieEstimate, error) {
	if s == nil || s.client == nil {
		return nil, ErrAIServiceNotConfigured
	}

	foodName = strings.TrimSpace(foodName)
	if foodName == "" {
		return nil, NewValidationError("food_name", "food name is required")
	}

	prompt := fmt.Sprintf(`あなたは栄養士のアシスタントです。次の食べ物の一般的な1人前のカロリー(kcal)を推定してください。

食べ物: %s

以下のJSON形式のみを返してください:
{"food_name": "食べ物の名前", "calories": 整数}

注意事項:
- caloriesは0以上の整数にしてください
- JSONのみを返し、説明文は含めないでください`, foodName)

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.2,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no response from OpenAI", ErrEstimateUnavailable)
	}

	return parseCalorieEstimate(foodName, resp.Choices[0].Message.Content)
}

// parseCalorieEstimate reads the answer, tolerating a markdown code fence
// around the JSON object.
func parseCalorieEstimate(foodName, content string) (*CalorieEstimate, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	if !gjson.Valid(content) {
		return nil, fmt.Errorf("%w: malformed response: %s", ErrEstimateUnavailable, content)
	}

	calories := gjson.Get(content, "calories")
	if !calories.Exists() || calories.Type != gjson.Number || calories.Int() < 0 {
		return nil, fmt.Errorf("%w: missing calories in response: %s", ErrEstimateUnavailable, content)
	}

	name := gjson.Get(content, "food_name").String()
	if name == "" {
		name = foodName
	}

	return &CalorieEstimate{
		FoodName: name,
		Calories: int(calories.Int()),
	}, nil
}
