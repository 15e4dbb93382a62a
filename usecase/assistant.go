package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize/english"

	domainAssistant "github.com/postdeck/domains/assistant"
	pkgError "github.com/postdeck/pkg/error"
)

type serviceAssistant struct {
	provider domainAssistant.Provider
}

// NewAssistantService wires the AI features. Every call routes on the
// credential in the request: an empty credential gets a deterministic local
// answer without touching the network, a present credential goes to the
// provider and its failures surface to the caller instead of being papered
// over with a local answer.
func NewAssistantService(provider domainAssistant.Provider) domainAssistant.IAssistantUsecase {
	return &serviceAssistant{provider: provider}
}

func (service serviceAssistant) SuggestHashtags(ctx context.Context, request domainAssistant.HashtagRequest) (domainAssistant.HashtagResult, error) {
	if strings.TrimSpace(request.Credential) == "" {
		return domainAssistant.HashtagResult{
			Suggestions: localHashtags(request.Text),
			Provenance:  domainAssistant.ProvenanceLocal,
		}, nil
	}

	tags, err := service.provider.SuggestHashtags(ctx, request.Credential, request.Text)
	if err != nil {
		return domainAssistant.HashtagResult{}, asNetworkError(err)
	}
	return domainAssistant.HashtagResult{
		Suggestions: tags,
		Provenance:  domainAssistant.ProvenanceRemote,
	}, nil
}

func (service serviceAssistant) PolishContent(ctx context.Context, request domainAssistant.PolishRequest) (domainAssistant.PolishResult, error) {
	if strings.TrimSpace(request.Credential) == "" {
		return domainAssistant.PolishResult{
			PolishedText: localPolish(request.Text, request.Tone),
			Provenance:   domainAssistant.ProvenanceLocal,
		}, nil
	}

	text, err := service.provider.PolishContent(ctx, request.Credential, request.Text, request.Tone)
	if err != nil {
		return domainAssistant.PolishResult{}, asNetworkError(err)
	}
	return domainAssistant.PolishResult{
		PolishedText: text,
		Provenance:   domainAssistant.ProvenanceRemote,
	}, nil
}

func (service serviceAssistant) AnalyzeImage(ctx context.Context, request domainAssistant.ImageRequest) (domainAssistant.CaptionResult, error) {
	if strings.TrimSpace(request.Credential) == "" {
		// The image is not even opened on the local path.
		return domainAssistant.CaptionResult{
			Caption:    localCaption,
			Provenance: domainAssistant.ProvenanceLocal,
		}, nil
	}

	caption, err := service.provider.AnalyzeImage(ctx, request.Credential, request.ImagePath)
	if err != nil {
		return domainAssistant.CaptionResult{}, asNetworkError(err)
	}
	return domainAssistant.CaptionResult{
		Caption:    caption,
		Provenance: domainAssistant.ProvenanceRemote,
	}, nil
}

func (service serviceAssistant) DynamicInsight(ctx context.Context, request domainAssistant.InsightRequest) (domainAssistant.InsightResult, error) {
	if strings.TrimSpace(request.Credential) == "" {
		return domainAssistant.InsightResult{
			Insight:    localInsight(request.Counts),
			Provenance: domainAssistant.ProvenanceLocal,
		}, nil
	}

	insight, err := service.provider.DynamicInsight(ctx, request.Credential, request.Counts)
	if err != nil {
		return domainAssistant.InsightResult{}, asNetworkError(err)
	}
	return domainAssistant.InsightResult{
		Insight:    insight,
		Provenance: domainAssistant.ProvenanceRemote,
	}, nil
}

// asNetworkError keeps typed errors intact and wraps everything else so the
// HTTP layer maps provider failures to 502.
func asNetworkError(err error) error {
	if _, ok := err.(pkgError.GenericError); ok {
		return err
	}
	return pkgError.NetworkError(err.Error())
}

const localCaption = "A fresh update from our team — more to come soon."

// localHashtags is a keyword lookup, not language understanding. Same input,
// same output, every time.
func localHashtags(text string) []string {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "coffee") || strings.Contains(lowered, "morning"):
		return []string{"#MorningCoffee", "#CoffeeTime", "#Brew"}
	case strings.Contains(lowered, "coding") || strings.Contains(lowered, "golang") || strings.Contains(lowered, "developer"):
		return []string{"#CodingLife", "#GoLang", "#WebDev"}
	default:
		return []string{"#SocialMedia", "#ContentCreator", "#Scheduler"}
	}
}

func localPolish(text, tone string) string {
	switch tone {
	case "professional":
		return "Polished draft (professional tone): " + text
	case "humorous":
		return "Polished draft (humorous tone): " + text
	default:
		return "Polished draft: " + text
	}
}

func localInsight(counts domainAssistant.PostCounts) string {
	if counts.Failed > 0 {
		return fmt.Sprintf("**URGENT:** You have %s. Check your social tokens immediately!",
			english.Plural(counts.Failed, "failed post", ""))
	}
	return "Data is still accumulating. Schedule more posts for advanced insights."
}
