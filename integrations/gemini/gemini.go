package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	domainAssistant "github.com/postdeck/domains/assistant"
	pkgError "github.com/postdeck/pkg/error"
)

const DefaultModel = "gemini-2.5-flash"

// Provider implements the assistant remote provider on the Gemini API. The
// credential travels with each request; no client is kept between calls.
type Provider struct {
	model string
}

func NewProvider(model string) *Provider {
	if model == "" {
		model = DefaultModel
	}
	return &Provider{model: model}
}

func (p *Provider) generate(ctx context.Context, credential string, contents []*genai.Content, genConfig *genai.GenerateContentConfig) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  credential,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", pkgError.NetworkError(err.Error())
	}

	result, err := client.Models.GenerateContent(ctx, p.model, contents, genConfig)
	if err != nil {
		return "", pkgError.NetworkError(err.Error())
	}
	if result == nil {
		return "", pkgError.NetworkError("empty response from gemini")
	}
	return strings.TrimSpace(result.Text()), nil
}

func textContents(prompt string) []*genai.Content {
	return []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{{Text: prompt}},
	}}
}

func (p *Provider) SuggestHashtags(ctx context.Context, credential, text string) ([]string, error) {
	prompt := fmt.Sprintf("Suggest 5 highly-relevant, trending hashtags for the following social-media post. Return only the hashtags.\n\nPost: %s", text)

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseJsonSchema: &genai.Schema{
			Type: "object",
			Properties: map[string]*genai.Schema{
				"hashtags": {
					Type:        "array",
					Items:       &genai.Schema{Type: "string"},
					Description: "Hashtags including the leading # sign",
				},
			},
			Required: []string{"hashtags"},
		},
	}

	raw, err := p.generate(ctx, credential, textContents(prompt), genConfig)
	if err != nil {
		return nil, err
	}

	var parsed struct {
		Hashtags []string `json:"hashtags"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		logrus.WithError(err).Warn("[GEMINI] Failed to parse hashtag structured response, splitting raw text")
		return strings.Fields(raw), nil
	}
	return parsed.Hashtags, nil
}

func (p *Provider) PolishContent(ctx context.Context, credential, text, tone string) (string, error) {
	if tone == "" {
		tone = "neutral"
	}
	prompt := fmt.Sprintf("Rewrite the following social media post text in a single paragraph using a %s tone. The original text is: '%s'", tone, text)
	return p.generate(ctx, credential, textContents(prompt), nil)
}

func (p *Provider) AnalyzeImage(ctx context.Context, credential, imagePath string) (string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return "", pkgError.ValidationError(fmt.Sprintf("image_path: %v", err))
	}
	mimeType := http.DetectContentType(data)

	contents := []*genai.Content{{
		Role: genai.RoleUser,
		Parts: []*genai.Part{
			{Text: "Write one concise, engaging caption for this social-media image. Return only the caption text."},
			{InlineData: &genai.Blob{MIMEType: mimeType, Data: data}},
		},
	}}
	return p.generate(ctx, credential, contents, nil)
}

func (p *Provider) DynamicInsight(ctx context.Context, credential string, counts domainAssistant.PostCounts) (string, error) {
	summary := fmt.Sprintf("Published: %d, Scheduled: %d, Failed: %d", counts.Published, counts.Scheduled, counts.Failed)
	prompt := fmt.Sprintf("Analyze these social media scheduling statistics (%s) and provide one actionable, high-value recommendation for the user. Be concise and bold the most important part.", summary)
	return p.generate(ctx, credential, textContents(prompt), nil)
}
