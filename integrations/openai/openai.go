package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	domainAssistant "github.com/postdeck/domains/assistant"
	pkgError "github.com/postdeck/pkg/error"
)

const DefaultModel = "gpt-4o-mini"

// Provider implements the assistant remote provider on the OpenAI chat
// completions API.
type Provider struct {
	model string
}

func NewProvider(model string) *Provider {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{model: model}
}

func (p *Provider) complete(ctx context.Context, credential string, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	client := openai.NewClient(
		option.WithAPIKey(credential),
	)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(p.model),
		Messages: messages,
	})
	if err != nil {
		return "", pkgError.NetworkError(err.Error())
	}
	if len(completion.Choices) == 0 {
		return "", pkgError.NetworkError("no response from openai")
	}
	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

func (p *Provider) SuggestHashtags(ctx context.Context, credential, text string) ([]string, error) {
	prompt := fmt.Sprintf("Suggest 5 highly-relevant, trending hashtags for the following social-media post. Return only the hashtags, separated by spaces, no extra text.\n\nPost: %s", text)

	raw, err := p.complete(ctx, credential, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
	if err != nil {
		return nil, err
	}
	return strings.Fields(raw), nil
}

func (p *Provider) PolishContent(ctx context.Context, credential, text, tone string) (string, error) {
	if tone == "" {
		tone = "neutral"
	}
	prompt := fmt.Sprintf("Rewrite the following social media post text in a single paragraph using a %s tone. The original text is: '%s'", tone, text)
	return p.complete(ctx, credential, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
}

func (p *Provider) AnalyzeImage(ctx context.Context, credential, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", pkgError.ValidationError(fmt.Sprintf("image_path: %v", err))
	}
	mimeType := http.DetectContentType(data)
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(data))

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextContentPart("Write one concise, engaging caption for this social-media image. Return only the caption text."),
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
	}
	return p.complete(ctx, credential, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(parts),
	})
}

func (p *Provider) DynamicInsight(ctx context.Context, credential string, counts domainAssistant.PostCounts) (string, error) {
	summary := fmt.Sprintf("Published: %d, Scheduled: %d, Failed: %d", counts.Published, counts.Scheduled, counts.Failed)
	prompt := fmt.Sprintf("Analyze these social media scheduling statistics (%s) and provide one actionable, high-value recommendation for the user. Be concise and bold the most important part.", summary)
	return p.complete(ctx, credential, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	})
}
