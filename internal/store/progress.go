package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// backend is the raw key-value and log storage behind a ProgressRepo.
type backend interface {
	get(ctx context.Context, key string) ([]byte, bool, error)
	put(ctx context.Context, key string, value []byte) error
	del(ctx context.Context, keys ...string) error
	appendHistory(ctx context.Context, e HistoryEntry) error
	history(ctx context.Context) ([]HistoryEntry, error)
	// clear removes keys and, when withHistory is set, the whole log, as
	// one atomic step where the backend supports it.
	clear(ctx context.Context, keys []string, withHistory bool) error
}

// progressRepo encodes entities as JSON over a backend.
type progressRepo struct {
	b backend
}

var _ ProgressRepo = (*progressRepo)(nil)

func (r *progressRepo) LoadSession(ctx context.Context) (*SessionRecord, error) {
	var rec SessionRecord
	ok, err := r.getJSON(ctx, KeySession, &rec)
	if err != nil || !ok {
		return nil, err
	}
	return &rec, nil
}

func (r *progressRepo) SaveSession(ctx context.Context, rec SessionRecord) error {
	return r.putJSON(ctx, KeySession, rec)
}

func (r *progressRepo) ClearSession(ctx context.Context) error {
	return r.b.del(ctx, KeySession)
}

func (r *progressRepo) LoadFavorites(ctx context.Context) ([]string, error) {
	return r.getIDs(ctx, KeyFavorites)
}

func (r *progressRepo) SaveFavorites(ctx context.Context, ids []string) error {
	return r.putJSON(ctx, KeyFavorites, nonNil(ids))
}

func (r *progressRepo) LoadMissed(ctx context.Context) ([]string, error) {
	return r.getIDs(ctx, KeyMissed)
}

func (r *progressRepo) SaveMissed(ctx context.Context, ids []string) error {
	return r.putJSON(ctx, KeyMissed, nonNil(ids))
}

func (r *progressRepo) AppendHistory(ctx context.Context, e HistoryEntry) error {
	return r.b.appendHistory(ctx, e)
}

func (r *progressRepo) History(ctx context.Context) ([]HistoryEntry, error) {
	return r.b.history(ctx)
}

// Theme values are stored as plain strings, not JSON.
func (r *progressRepo) Theme(ctx context.Context) (Theme, error) {
	v, ok, err := r.b.get(ctx, KeyTheme)
	if err != nil {
		return ThemeDark, err
	}
	if !ok {
		return ThemeDark, nil
	}
	switch t := Theme(v); t {
	case ThemeDark, ThemeLight:
		return t, nil
	default:
		return ThemeDark, nil
	}
}

func (r *progressRepo) SetTheme(ctx context.Context, t Theme) error {
	if t != ThemeDark && t != ThemeLight {
		return fmt.Errorf("unknown theme %q", t)
	}
	return r.b.put(ctx, KeyTheme, []byte(t))
}

func (r *progressRepo) PendingImport(ctx context.Context) ([]byte, error) {
	v, ok, err := r.b.get(ctx, KeyPendingImport)
	if err != nil || !ok {
		return nil, err
	}
	return v, nil
}

func (r *progressRepo) SetPendingImport(ctx context.Context, doc []byte) error {
	return r.b.put(ctx, KeyPendingImport, doc)
}

func (r *progressRepo) ClearPendingImport(ctx context.Context) error {
	return r.b.del(ctx, KeyPendingImport)
}

func (r *progressRepo) ClearProgress(ctx context.Context) error {
	return r.b.clear(ctx, progressKeys, true)
}

func (r *progressRepo) ClearAll(ctx context.Context) error {
	return r.b.clear(ctx, allKeys, true)
}

func (r *progressRepo) getJSON(ctx context.Context, key string, v any) (bool, error) {
	data, ok, err := r.b.get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, corrupt(key, err)
	}
	return true, nil
}

func (r *progressRepo) putJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.b.put(ctx, key, data)
}

func (r *progressRepo) getIDs(ctx context.Context, key string) ([]string, error) {
	var ids []string
	if _, err := r.getJSON(ctx, key, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
