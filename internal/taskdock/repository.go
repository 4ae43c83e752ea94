package taskdock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdock/taskdock/internal/core/kv"
	"github.com/taskdock/taskdock/internal/core/todo"
	memkv "github.com/taskdock/taskdock/pkg/kv"
	"github.com/taskdock/taskdock/pkg/randid"
)

// snapshotTTL bounds how long an undo snapshot stays consumable.
const snapshotTTL = 10 * time.Second

// Repository owns the todo partitions: the global list plus one list per
// workspace folder. Each partition is persisted wholesale as one blob under
// its scope key. Lists handed out and accepted are always deep copies, so a
// caller can never alias the cached state across a suspension point.
type Repository struct {
	store kv.KV
	cache *memkv.Store[string, []todo.Todo]
	log   zerolog.Logger

	mu        sync.Mutex
	snapshots map[string]*snapshot
	ttl       time.Duration
	closed    bool
}

type snapshot struct {
	todos []todo.Todo
	timer *time.Timer
}

// NewRepository creates a repository over the given storage backend.
func NewRepository(store kv.KV, log zerolog.Logger) *Repository {
	return &Repository{
		store:     store,
		cache:     memkv.New[string, []todo.Todo](),
		log:       log.With().Str("cmp", "repository").Logger(),
		snapshots: make(map[string]*snapshot),
		ttl:       snapshotTTL,
	}
}

// ScopeKey returns the deterministic storage key for a scope.
func (r *Repository) ScopeKey(scope todo.ScopeTarget) string {
	return scope.Key()
}

// Todos returns the current list for the scope, ordered by position.
// Uninitialized partitions yield an empty list.
func (r *Repository) Todos(ctx context.Context, scope todo.ScopeTarget) ([]todo.Todo, error) {
	key := r.ScopeKey(scope)

	if cached, ok := r.cache.Get(key); ok {
		return todo.Clone(cached), nil
	}

	var todos []todo.Todo
	if err := r.store.Get(ctx, key, &todos); err != nil {
		if errors.Is(err, kv.ErrNoKey) {
			return []todo.Todo{}, nil
		}
		return nil, fmt.Errorf("load todos %q: %w", key, err)
	}

	r.cache.Set(key, todos)
	return todo.Clone(todos), nil
}

// SaveTodos replaces the scope's partition wholesale and persists it. The
// caller normalizes positions before saving.
func (r *Repository) SaveTodos(ctx context.Context, scope todo.ScopeTarget, todos []todo.Todo) error {
	key := r.ScopeKey(scope)
	copied := todo.Clone(todos)

	if err := r.store.Set(ctx, key, copied); err != nil {
		return fmt.Errorf("save todos %q: %w", key, err)
	}

	r.cache.Set(key, copied)
	return nil
}

// CreateTodo allocates a new todo for the scope. Position is left unset; the
// caller appends the item and normalizes.
func (r *Repository) CreateTodo(title string, scope todo.ScopeTarget) todo.Todo {
	return todo.Todo{
		ID:              randid.Generate(8),
		Title:           strings.TrimSpace(title),
		Completed:       false,
		Scope:           scope.Scope,
		WorkspaceFolder: scope.WorkspaceFolder,
		UpdatedAt:       time.Now(),
	}
}

// CaptureSnapshot stores a deep copy of the list under the scope key for a
// later undo, replacing any prior snapshot for that key (last destructive
// action wins). The snapshot expires after the TTL unless consumed first.
func (r *Repository) CaptureSnapshot(key string, todos []todo.Todo) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if prev, ok := r.snapshots[key]; ok {
		prev.timer.Stop()
	}

	r.snapshots[key] = &snapshot{
		todos: todo.Clone(todos),
		timer: time.AfterFunc(r.ttl, func() { r.expireSnapshot(key) }),
	}
}

// ConsumeSnapshot atomically returns and clears the snapshot for the key.
// Returns ok=false if absent, expired, or already consumed.
func (r *Repository) ConsumeSnapshot(key string) ([]todo.Todo, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.snapshots[key]
	if !ok {
		return nil, false
	}
	s.timer.Stop()
	delete(r.snapshots, key)
	return todo.Clone(s.todos), true
}

// expireSnapshot drops a snapshot whose TTL elapsed. Runs on the timer
// goroutine and must tolerate the repository being closed already.
func (r *Repository) expireSnapshot(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	if _, ok := r.snapshots[key]; ok {
		delete(r.snapshots, key)
		r.log.Debug().Str("scope", key).Msg("undo snapshot expired")
	}
}

// Close stops all outstanding snapshot expiry timers.
func (r *Repository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for _, s := range r.snapshots {
		s.timer.Stop()
	}
	r.snapshots = make(map[string]*snapshot)
}
