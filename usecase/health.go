package usecase

import (
	"context"
	"time"

	domainHealth "github.com/postdeck/domains/health"
	domainRemote "github.com/postdeck/domains/remote"
	"github.com/postdeck/engine"
)

type serviceHealth struct {
	gateway domainRemote.IRemoteGateway
	store   *engine.Store
}

func NewHealthService(gateway domainRemote.IRemoteGateway, store *engine.Store) domainHealth.IHealthUsecase {
	return &serviceHealth{gateway: gateway, store: store}
}

// GetStatus reports without touching the network; the backend column stays
// UNKNOWN until a sync succeeded or a CheckBackend probe ran.
func (service serviceHealth) GetStatus(ctx context.Context) (domainHealth.HealthRecord, error) {
	record := domainHealth.HealthRecord{
		Status:      domainHealth.StatusOk,
		Backend:     domainHealth.StatusUnknown,
		LastChecked: time.Now().UTC(),
	}
	if last := service.store.LastSyncAt(); !last.IsZero() {
		record.LastSync = &last
		record.Backend = domainHealth.StatusOk
	}
	return record, nil
}

// CheckBackend actively probes the scheduling backend.
func (service serviceHealth) CheckBackend(ctx context.Context) (domainHealth.HealthRecord, error) {
	record := domainHealth.HealthRecord{
		Status:      domainHealth.StatusOk,
		Backend:     domainHealth.StatusOk,
		LastChecked: time.Now().UTC(),
	}
	if last := service.store.LastSyncAt(); !last.IsZero() {
		record.LastSync = &last
	}

	if _, err := service.gateway.FetchStats(ctx); err != nil {
		record.Backend = domainHealth.StatusError
		record.LastMessage = err.Error()
	}
	return record, nil
}
