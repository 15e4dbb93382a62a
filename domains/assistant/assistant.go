package assistant

import "context"

type Feature string

const (
	FeatureSuggestHashtags Feature = "suggest_hashtags"
	FeaturePolishContent   Feature = "polish_content"
	FeatureAnalyzeImage    Feature = "analyze_image"
	FeatureDynamicInsight  Feature = "dynamic_insight"
)

// Provenance tells the UI whether a result came from the remote provider or
// from the deterministic local substitute.
type Provenance string

const (
	ProvenanceRemote Provenance = "remote"
	ProvenanceLocal  Provenance = "local"
)

// PostCounts is the aggregate payload for the dynamic insight feature.
type PostCounts struct {
	Published int `json:"published"`
	Scheduled int `json:"scheduled"`
	Failed    int `json:"failed"`
}

type HashtagRequest struct {
	Credential string `json:"credential"`
	Text       string `json:"text"`
}

type PolishRequest struct {
	Credential string `json:"credential"`
	Text       string `json:"text"`
	Tone       string `json:"tone"`
}

type ImageRequest struct {
	Credential string `json:"credential"`
	ImagePath  string `json:"image_path"`
}

type InsightRequest struct {
	Credential string     `json:"credential"`
	Counts     PostCounts `json:"post_counts"`
}

type HashtagResult struct {
	Suggestions []string   `json:"suggestions"`
	Provenance  Provenance `json:"provenance"`
}

type PolishResult struct {
	PolishedText string     `json:"polished_text"`
	Provenance   Provenance `json:"provenance"`
}

type CaptionResult struct {
	Caption    string     `json:"caption"`
	Provenance Provenance `json:"provenance"`
}

type InsightResult struct {
	Insight    string     `json:"insight"`
	Provenance Provenance `json:"provenance"`
}

type IAssistantUsecase interface {
	SuggestHashtags(ctx context.Context, request HashtagRequest) (HashtagResult, error)
	PolishContent(ctx context.Context, request PolishRequest) (PolishResult, error)
	AnalyzeImage(ctx context.Context, request ImageRequest) (CaptionResult, error)
	DynamicInsight(ctx context.Context, request InsightRequest) (InsightResult, error)
}

// Provider is a remote AI backend. It is only consulted when the caller
// supplied a non-empty credential.
type Provider interface {
	SuggestHashtags(ctx context.Context, credential, text string) ([]string, error)
	PolishContent(ctx context.Context, credential, text, tone string) (string, error)
	AnalyzeImage(ctx context.Context, credential, imagePath string) (string, error)
	DynamicInsight(ctx context.Context, credential string, counts PostCounts) (string, error)
}
