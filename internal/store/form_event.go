package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendFormEvent(ctx context.Context, data FormEventData) error {
	err := r.insertEvent(ctx, formEventsTableName,
		[]string{"session_id", "action", "category_id", "form_id", "route", "detail"},
		[]any{data.SessionID, data.Action, data.CategoryID, data.FormID, data.Route, data.Detail},
	)
	if err != nil {
		return fmt.Errorf("save form event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryFormEvents(ctx context.Context, opts QueryOpts) ([]FormEventRecord, error) {
	query, args := selectEvents(formEventsTableName, opts,
		"session_id", "action", "category_id", "form_id", "route", "detail",
	).Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query form events: %w", err)
	}
	defer rows.Close()

	var records []FormEventRecord
	for rows.Next() {
		var rec FormEventRecord
		if err := rows.Scan(
			&rec.Sequence, &rec.Timestamp,
			&rec.SessionID, &rec.Action, &rec.CategoryID, &rec.FormID, &rec.Route, &rec.Detail,
		); err != nil {
			return nil, fmt.Errorf("scan form event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read form events: %w", err)
	}
	return records, nil
}
