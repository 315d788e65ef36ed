package catalog

import (
	"context"
	"fmt"

	"sellsheet_api/metrics"
	"sellsheet_api/pkg/logger"
)

type Entry struct {
	ID   int64
	Name string
}

// Source is a remote catalog that can only be listed and appended to.
type Source interface {
	List(ctx context.Context) ([]Entry, error)
	Create(ctx context.Context, name string) (int64, error)
}

// Registry owns the local snapshot of one remote catalog for a session.
// It is not safe for concurrent use; two processes creating the same name
// concurrently will both create it.
type Registry struct {
	kind    string
	source  Source
	entries []Entry
	loaded  bool
	log     logger.Logger
}

func NewRegistry(kind string, source Source, log logger.Logger) *Registry {
	return &Registry{kind: kind, source: source, log: log.WithPrefix(fmt.Sprintf("[%s]", kind))}
}

// Refresh replaces the snapshot with the remote state.
func (r *Registry) Refresh(ctx context.Context) error {
	entries, err := r.source.List(ctx)
	if err != nil {
		return fmt.Errorf("list %s: %w", r.kind, err)
	}
	r.entries = entries
	r.loaded = true
	return nil
}

// Entries returns the snapshot, loading it on first use.
func (r *Registry) Entries(ctx context.Context) ([]Entry, error) {
	if !r.loaded {
		if err := r.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return r.entries, nil
}

// Find looks for an entry with exactly this name.
func (r *Registry) Find(ctx context.Context, name string) (Entry, bool, error) {
	entries, err := r.Entries(ctx)
	if err != nil {
		return Entry{}, false, err
	}
	for _, e := range entries {
		if e.Name == name {
			return e, true, nil
		}
	}
	return Entry{}, false, nil
}

func (r *Registry) GetOrCreate(ctx context.Context, name string) (int64, error) {
	entry, ok, err := r.Find(ctx, name)
	if err != nil {
		return 0, err
	}
	if ok {
		return entry.ID, nil
	}
	return r.Create(ctx, name)
}

// Create adds name remotely and refreshes the snapshot. When the refresh
// fails the new entry is kept locally so it is not created twice.
func (r *Registry) Create(ctx context.Context, name string) (int64, error) {
	r.log.Log("creating %q", name)
	id, err := r.source.Create(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("create %s %q: %w", r.kind, name, err)
	}
	metrics.RecordCatalogCreation(r.kind)

	if err := r.Refresh(ctx); err != nil {
		r.log.Warn("refresh after creating %q failed, keeping local copy: %v", name, err)
		r.entries = append(r.entries, Entry{ID: id, Name: name})
		r.loaded = true
	}
	return id, nil
}
