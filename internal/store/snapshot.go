package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo on the snapshots table.
type snapshotRepo struct {
	drv *entsql.Driver
}

func (r *snapshotRepo) Load(ctx context.Context, key string) ([]byte, bool, error) {
	b := entsql.Dialect(dialect.SQLite)
	query, args := b.Select("data").
		From(b.Table(snapshotsTableName)).
		Where(entsql.EQ("name", key)).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, false, fmt.Errorf("query snapshot %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, fmt.Errorf("read snapshot %q: %w", key, err)
		}
		return nil, false, nil
	}

	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, false, fmt.Errorf("scan snapshot %q: %w", key, err)
	}
	return data, true, nil
}

func (r *snapshotRepo) Save(ctx context.Context, key string, data []byte) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(snapshotsTableName).
		Columns("name", "data", "updated_at").
		Values(key, data, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("name"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save snapshot %q: %w", key, err)
	}
	return nil
}

func (r *snapshotRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	names := make([]any, len(keys))
	for i, k := range keys {
		names[i] = k
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Delete(snapshotsTableName).
		Where(entsql.In("name", names...)).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete snapshots: %w", err)
	}
	return nil
}
