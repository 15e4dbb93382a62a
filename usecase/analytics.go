package usecase

import (
	"context"

	domainAnalytics "github.com/postdeck/domains/analytics"
	domainAssistant "github.com/postdeck/domains/assistant"
	domainRemote "github.com/postdeck/domains/remote"
)

type serviceAnalytics struct {
	gateway   domainRemote.IRemoteGateway
	assistant domainAssistant.IAssistantUsecase
}

func NewAnalyticsService(gateway domainRemote.IRemoteGateway, assistant domainAssistant.IAssistantUsecase) domainAnalytics.IAnalyticsUsecase {
	return &serviceAnalytics{gateway: gateway, assistant: assistant}
}

func (service serviceAnalytics) Stats(ctx context.Context) (domainRemote.Stats, error) {
	return service.gateway.FetchStats(ctx)
}

// Insight pulls the live counters and runs them through the dynamic insight
// feature. The credential decides remote versus local the same way as every
// other assistant call.
func (service serviceAnalytics) Insight(ctx context.Context, credential string) (domainAssistant.InsightResult, error) {
	stats, err := service.gateway.FetchStats(ctx)
	if err != nil {
		return domainAssistant.InsightResult{}, err
	}

	return service.assistant.DynamicInsight(ctx, domainAssistant.InsightRequest{
		Credential: credential,
		Counts: domainAssistant.PostCounts{
			Published: stats.PostsPublished,
			Scheduled: stats.PostsScheduled,
			Failed:    stats.PostsFailed,
		},
	})
}
