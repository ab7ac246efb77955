package store

import (
	"context"

	"github.com/MKhiriev/go-merchant-verify/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// HistoryRepository is the local log of terminal verification outcomes.
type HistoryRepository interface {
	// Record appends one terminal outcome to the history.
	Record(ctx context.Context, entry models.HistoryEntry) error

	// List returns history entries matching the filter, newest first.
	List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error)

	// Prune deletes all but the newest keep entries and reports how many
	// rows were removed.
	Prune(ctx context.Context, keep int) (int64, error)
}
