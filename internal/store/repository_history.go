package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-merchant-verify/internal/logger"
	"github.com/MKhiriev/go-merchant-verify/models"
)

// historyRepository is the SQLite-backed implementation of
// [HistoryRepository]. It keeps the local log of terminal verification
// outcomes in the verification_history table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type historyRepository struct {
	*DB
	logger *logger.Logger
}

// NewHistoryRepository constructs a [HistoryRepository] backed by the
// provided database connection and logger.
func NewHistoryRepository(db *DB, logger *logger.Logger) HistoryRepository {
	logger.Debug().Msg("creating history repository")
	return &historyRepository{
		DB:     db,
		logger: logger,
	}
}

// Record appends one terminal outcome to the history log.
//
// Error handling:
//   - SQLite unique constraint violation → [ErrDuplicateHistoryEntry];
//     a request reaches exactly one terminal outcome, so the row is
//     already there.
//   - Any other driver-level error → wrapped and returned.
//   - Zero affected rows → [ErrHistoryNotRecorded].
func (h *historyRepository) Record(ctx context.Context, entry models.HistoryEntry) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertHistoryQuery(entry)
	if err != nil {
		log.Err(err).
			Str("func", "historyRepository.Record").
			Str("request_id", entry.RequestID).
			Msg("failed to build insert query for history entry")
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	result, err := h.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn().
				Str("func", "historyRepository.Record").
				Str("request_id", entry.RequestID).
				Msg("history entry already recorded for request")
			return fmt.Errorf("%w (request_id=%s)", ErrDuplicateHistoryEntry, entry.RequestID)
		}

		log.Err(err).
			Str("func", "historyRepository.Record").
			Str("request_id", entry.RequestID).
			Str("merchant_id", entry.MerchantID).
			Msg("failed to execute insert for history entry")
		return fmt.Errorf("failed to record history entry (request_id=%s): %w", entry.RequestID, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Error().
			Str("func", "historyRepository.Record").
			Str("request_id", entry.RequestID).
			Msg("history entry was not recorded")
		return ErrHistoryNotRecorded
	}

	return nil
}

// List returns history entries matching the filter, newest first. The number
// of returned rows never exceeds [models.MaxHistoryLimit].
func (h *historyRepository) List(ctx context.Context, filter models.HistoryFilter) ([]models.HistoryEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListHistoryQuery(filter)
	if err != nil {
		log.Err(err).
			Str("func", "historyRepository.List").
			Msg("failed to build select query for history listing")
		return nil, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	rows, err := h.DB.QueryContext(ctx, query, args...)
	if err != nil {
		h.logQueryError(log, "historyRepository.List", err, "failed to execute query for history listing")
		return nil, fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry

	for rows.Next() {
		var entry models.HistoryEntry

		scanErr := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.MerchantID,
			&entry.Method,
			&entry.Outcome,
			&entry.OccurredAt,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "historyRepository.List").
				Msg("failed to scan history row")
			return nil, fmt.Errorf("%w: %v", ErrScanningRow, scanErr)
		}

		entries = append(entries, entry)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).
			Str("func", "historyRepository.List").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("error iterating history rows: %w", rowsErr)
	}

	return entries, nil
}

// Prune deletes all but the newest keep entries and reports how many rows
// were removed. keep of zero empties the table.
func (h *historyRepository) Prune(ctx context.Context, keep int) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildPruneHistoryQuery(keep)
	if err != nil {
		log.Err(err).
			Str("func", "historyRepository.Prune").
			Msg("failed to build delete query for history pruning")
		return 0, fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	result, err := h.DB.ExecContext(ctx, query, args...)
	if err != nil {
		h.logQueryError(log, "historyRepository.Prune", err, "failed to execute delete for history pruning")
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}

	pruned, err := result.RowsAffected()
	if err != nil {
		log.Err(err).
			Str("func", "historyRepository.Prune").
			Msg("failed to get rows affected after pruning")
		return 0, fmt.Errorf("failed to get rows affected after pruning: %w", err)
	}

	log.Debug().
		Str("func", "historyRepository.Prune").
		Int("keep", keep).
		Int64("pruned", pruned).
		Msg("history pruned")

	return pruned, nil
}

// logQueryError logs a failed database operation at a severity picked by the
// error classifier: transient lock contention is a warning, everything else
// an error.
func (h *historyRepository) logQueryError(log *logger.Logger, fn string, err error, msg string) {
	if h.errorClassificator.Classify(err) == Retryable {
		log.Warn().Str("func", fn).Err(err).Msg(msg + " (transient)")
		return
	}
	log.Err(err).Str("func", fn).Msg(msg)
}
