package analytics

import (
	"context"

	domainAssistant "github.com/postdeck/domains/assistant"
	domainRemote "github.com/postdeck/domains/remote"
)

type IAnalyticsUsecase interface {
	Stats(ctx context.Context) (domainRemote.Stats, error)
	// Insight fetches the current stats and feeds them to the dynamic insight
	// feature with the given credential.
	Insight(ctx context.Context, credential string) (domainAssistant.InsightResult, error)
}
