package health

import (
	"context"
	"time"
)

type Status string

const (
	StatusOk      Status = "OK"
	StatusError   Status = "ERROR"
	StatusUnknown Status = "UNKNOWN"
)

type HealthRecord struct {
	Status      Status     `json:"status"`
	Backend     Status     `json:"backend"`
	LastMessage string     `json:"last_message,omitempty"`
	LastChecked time.Time  `json:"last_checked"`
	LastSync    *time.Time `json:"last_sync,omitempty"`
}

type IHealthUsecase interface {
	GetStatus(ctx context.Context) (HealthRecord, error)
	CheckBackend(ctx context.Context) (HealthRecord, error)
}
