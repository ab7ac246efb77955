// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-merchant-verify/models"
)

var historyTable = models.HistoryEntry{}.TableName()

// historyColumns is the canonical column list of the verification history
// table, in scan order.
var historyColumns = []string{
	"id",
	"request_id",
	"merchant_id",
	"method",
	"outcome",
	"occurred_at",
}

// buildInsertHistoryQuery builds the INSERT for one terminal verification
// outcome. The id column is assigned by the database.
func buildInsertHistoryQuery(entry models.HistoryEntry) (string, []any, error) {
	return sq.Insert(historyTable).
		Columns("request_id", "merchant_id", "method", "outcome", "occurred_at").
		Values(entry.RequestID, entry.MerchantID, entry.Method, entry.Outcome, entry.OccurredAt).
		ToSql()
}

// buildListHistoryQuery builds the filtered history SELECT, newest entries
// first. An empty MerchantID selects all merchants; the limit is normalised
// through [normalizeHistoryLimit].
func buildListHistoryQuery(filter models.HistoryFilter) (string, []any, error) {
	builder := sq.Select(historyColumns...).
		From(historyTable).
		OrderBy("occurred_at DESC", "id DESC").
		Limit(uint64(normalizeHistoryLimit(filter.Limit)))

	if filter.MerchantID != "" {
		builder = builder.Where(sq.Eq{"merchant_id": filter.MerchantID})
	}

	return builder.ToSql()
}

// buildPruneHistoryQuery builds the DELETE that removes every row except the
// newest keep ones. keep of zero removes all rows.
func buildPruneHistoryQuery(keep int) (string, []any, error) {
	if keep < 0 {
		keep = 0
	}

	return sq.Delete(historyTable).
		Where("id NOT IN (SELECT id FROM "+historyTable+" ORDER BY occurred_at DESC, id DESC LIMIT ?)", keep).
		ToSql()
}

// normalizeHistoryLimit clamps a listing limit into the allowed range.
func normalizeHistoryLimit(limit int) int {
	switch {
	case limit <= 0:
		return models.DefaultHistoryLimit
	case limit > models.MaxHistoryLimit:
		return models.MaxHistoryLimit
	default:
		return limit
	}
}
