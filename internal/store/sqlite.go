package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// sqliteBackend stores keys in the kv table and the log in the history
// table. Queries are built with the ent SQL builder and run through the
// ent driver.
type sqliteBackend struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var _ backend = (*sqliteBackend)(nil)

func (b *sqliteBackend) builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (b *sqliteBackend) get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args := b.builder().
		Select("value").
		From(entsql.Table(kvTableName)).
		Where(entsql.EQ("key", key)).
		Query()

	rows := &entsql.Rows{}
	if err := b.drv.Query(ctx, query, args, rows); err != nil {
		return nil, false, unavailable("get "+key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, false, unavailable("get "+key, err)
		}
		return nil, false, nil
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, false, unavailable("get "+key, err)
	}
	return []byte(value), true, nil
}

func (b *sqliteBackend) put(ctx context.Context, key string, value []byte) error {
	query, args := b.builder().
		Insert(kvTableName).
		Columns("key", "value", "updated_at").
		Values(key, string(value), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := b.drv.Exec(ctx, query, args, nil); err != nil {
		return unavailable("put "+key, err)
	}
	return nil
}

func (b *sqliteBackend) del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	query, args := deleteKeys(b.builder(), keys)
	if err := b.drv.Exec(ctx, query, args, nil); err != nil {
		return unavailable(fmt.Sprintf("delete %v", keys), err)
	}
	return nil
}

func (b *sqliteBackend) appendHistory(ctx context.Context, e HistoryEntry) error {
	seq, err := b.seq.Next(ctx)
	if err != nil {
		return unavailable("append history", err)
	}

	query, args := b.builder().
		Insert(historyTableName).
		Columns("sequence", "question_id", "correct", "ts_ms", "session_id").
		Values(seq, e.QuestionID, e.Correct, e.TimestampMs, e.SessionID).
		Query()

	if err := b.drv.Exec(ctx, query, args, nil); err != nil {
		return unavailable("append history", err)
	}
	return nil
}

func (b *sqliteBackend) history(ctx context.Context) ([]HistoryEntry, error) {
	query, args := b.builder().
		Select("sequence", "question_id", "correct", "ts_ms", "session_id").
		From(entsql.Table(historyTableName)).
		OrderBy("sequence").
		Query()

	rows := &entsql.Rows{}
	if err := b.drv.Query(ctx, query, args, rows); err != nil {
		return nil, unavailable("query history", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		if err := rows.Scan(&e.Sequence, &e.QuestionID, &e.Correct, &e.TimestampMs, &e.SessionID); err != nil {
			return nil, unavailable("scan history", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("query history", err)
	}
	return entries, nil
}

func (b *sqliteBackend) clear(ctx context.Context, keys []string, withHistory bool) error {
	tx, err := b.drv.Tx(ctx)
	if err != nil {
		return unavailable("begin clear", err)
	}

	query, args := deleteKeys(b.builder(), keys)
	if err := tx.Exec(ctx, query, args, nil); err != nil {
		tx.Rollback()
		return unavailable("clear keys", err)
	}

	if withHistory {
		query, args := b.builder().Delete(historyTableName).Query()
		if err := tx.Exec(ctx, query, args, nil); err != nil {
			tx.Rollback()
			return unavailable("clear history", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return unavailable("commit clear", err)
	}
	return nil
}

func deleteKeys(b *entsql.DialectBuilder, keys []string) (string, []any) {
	vals := make([]any, len(keys))
	for i, k := range keys {
		vals[i] = k
	}
	return b.Delete(kvTableName).Where(entsql.In("key", vals...)).Query()
}
