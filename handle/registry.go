// Package handle implements an opaque-handle API facade: it validates
// handles, acquires a non-blocking per-handle lock, decodes
// host-neutral Values into ordset.Terms, invokes the corresponding
// SortedSet operation, and encodes the outcome back out.
//
// The facade is the only place in this module that knows about
// concurrency: SortedSet itself is single-threaded.
package handle

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/gosortedset/ordset"
	"github.com/gosortedset/ordset/intern"
)

// Logger is the leveled logging interface the registry traces
// through. It is a caller-supplied interface so this package never
// picks a concrete logging library for its host.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Errorf(string, ...interface{}) {}

var (
	// ErrBadReference is returned when a Handle does not identify a live set.
	ErrBadReference = errors.New("handle: bad reference")
	// ErrLockFail is returned when a handle's try-lock is already held.
	ErrLockFail = errors.New("handle: lock held, try again")
	// ErrUnsupportedType is returned when a Value contains a disallowed variant.
	ErrUnsupportedType = errors.New("handle: unsupported type")
)

// Handle is an opaque reference to a live SortedSet.
type Handle uuid.UUID

type entry struct {
	mu    sync.Mutex
	set   *ordset.SortedSet
	cache *intern.Cache
}

// Registry is the process-wide table of live handles. The zero value
// is not usable; construct with NewRegistry.
type Registry struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]*entry
	log     Logger
}

// NewRegistry constructs an empty registry. A nil log discards all
// tracing.
func NewRegistry(log Logger) *Registry {
	if log == nil {
		log = nopLogger{}
	}
	return &Registry{entries: make(map[uuid.UUID]*entry), log: log}
}

func (r *Registry) insert(set *ordset.SortedSet) Handle {
	id := uuid.New()
	r.mu.Lock()
	r.entries[id] = &entry{set: set, cache: intern.NewCache(0)}
	r.mu.Unlock()
	r.log.Debugf("opened handle %s", id)
	return Handle(id)
}

// Empty mints a handle over a SortedSet with no buckets (ordset.Empty).
func (r *Registry) Empty(cfg ordset.Configuration) Handle {
	return r.insert(ordset.Empty(cfg))
}

// New mints a handle over a SortedSet with one empty bucket (ordset.New).
func (r *Registry) New(cfg ordset.Configuration) Handle {
	return r.insert(ordset.New(cfg))
}

// Close revokes h, deep-freeing its set. Closing an already-closed or
// unknown handle returns ErrBadReference.
func (r *Registry) Close(h Handle) error {
	r.mu.Lock()
	e, ok := r.entries[uuid.UUID(h)]
	if !ok {
		r.mu.Unlock()
		return ErrBadReference
	}
	delete(r.entries, uuid.UUID(h))
	r.mu.Unlock()

	e.mu.Lock()
	e.set.Free()
	e.mu.Unlock()
	r.log.Debugf("closed handle %s", uuid.UUID(h))
	return nil
}

func (r *Registry) lookup(h Handle) (*entry, error) {
	r.mu.RLock()
	e, ok := r.entries[uuid.UUID(h)]
	r.mu.RUnlock()
	if !ok {
		r.log.Errorf("bad reference: handle %s not found", uuid.UUID(h))
		return nil, ErrBadReference
	}
	return e, nil
}

// withLocked runs f under e's non-blocking try-lock, returning
// ErrLockFail immediately (never blocking) if the lock is already held.
// Any error f returns, including the lock failure itself, is logged
// through log so a host can surface facade-level failures without
// wrapping every call site itself.
func withLocked(log Logger, e *entry, f func() error) error {
	if !e.mu.TryLock() {
		log.Errorf("lock held, try again")
		return ErrLockFail
	}
	defer e.mu.Unlock()
	if err := f(); err != nil {
		log.Errorf("operation failed: %v", err)
		return err
	}
	return nil
}

// Add decodes v and inserts it into h's set.
func (r *Registry) Add(h Handle, v Value) (ordset.AddResult, error) {
	e, err := r.lookup(h)
	if err != nil {
		return ordset.AddResult{}, err
	}
	var result ordset.AddResult
	err = withLocked(r.log, e, func() error {
		term, derr := decode(v, e.cache)
		if derr != nil {
			return derr
		}
		result = e.set.Add(term)
		return nil
	})
	return result, err
}

// Remove decodes v and removes it from h's set.
func (r *Registry) Remove(h Handle, v Value) (ordset.RemoveResult, error) {
	e, err := r.lookup(h)
	if err != nil {
		return ordset.RemoveResult{}, err
	}
	var result ordset.RemoveResult
	err = withLocked(r.log, e, func() error {
		term, derr := decode(v, e.cache)
		if derr != nil {
			return derr
		}
		defer term.Free()
		res, rerr := e.set.Remove(term)
		if rerr != nil {
			return rerr
		}
		result = res
		return nil
	})
	return result, err
}

// Size returns h's element count.
func (r *Registry) Size(h Handle) (int, error) {
	e, err := r.lookup(h)
	if err != nil {
		return 0, err
	}
	var n int
	err = withLocked(r.log, e, func() error {
		n = e.set.Size()
		return nil
	})
	return n, err
}

// ToList returns every element of h's set, encoded for the host.
func (r *Registry) ToList(h Handle) ([]Value, error) {
	e, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	var out []Value
	err = withLocked(r.log, e, func() error {
		out = encodeSlice(e.set.ToVec())
		return nil
	})
	return out, err
}

// At returns the element at effective index i, encoded for the host.
func (r *Registry) At(h Handle, i int) (Value, error) {
	e, err := r.lookup(h)
	if err != nil {
		return Value{}, err
	}
	var out Value
	err = withLocked(r.log, e, func() error {
		t, terr := e.set.At(i)
		if terr != nil {
			return terr
		}
		out = encode(t.Clone())
		return nil
	})
	return out, err
}

// Slice returns [start, start+amount) of h's set, clamped and encoded.
func (r *Registry) Slice(h Handle, start, amount int) ([]Value, error) {
	e, err := r.lookup(h)
	if err != nil {
		return nil, err
	}
	var out []Value
	err = withLocked(r.log, e, func() error {
		out = encodeSlice(e.set.Slice(start, amount))
		return nil
	})
	return out, err
}

// FindIndex decodes v and returns its effective index in h's set.
func (r *Registry) FindIndex(h Handle, v Value) (int, error) {
	e, err := r.lookup(h)
	if err != nil {
		return 0, err
	}
	var idx int
	err = withLocked(r.log, e, func() error {
		term, derr := decode(v, e.cache)
		if derr != nil {
			return derr
		}
		defer term.Free()
		i, ferr := e.set.FindIndex(term)
		if ferr != nil {
			return ferr
		}
		idx = i
		return nil
	})
	return idx, err
}

// AppendBucket decodes items and appends them as a new trailing bucket.
func (r *Registry) AppendBucket(h Handle, items []Value) error {
	e, err := r.lookup(h)
	if err != nil {
		return err
	}
	return withLocked(r.log, e, func() error {
		terms := make([]ordset.Term, len(items))
		for i, v := range items {
			t, derr := decode(v, e.cache)
			if derr != nil {
				for j := 0; j < i; j++ {
					terms[j].Free()
				}
				return derr
			}
			terms[i] = t
		}
		return e.set.AppendBucket(terms)
	})
}

// Debug returns h's set's diagnostic snapshot.
func (r *Registry) Debug(h Handle) (string, error) {
	e, err := r.lookup(h)
	if err != nil {
		return "", err
	}
	var s string
	err = withLocked(r.log, e, func() error {
		s = e.set.Debug()
		return nil
	})
	return s, err
}

// AddTag maps an ordset.AddResult to its host-visible outcome tag.
func AddTag(res ordset.AddResult) string {
	if res.Outcome == ordset.Duplicate {
		return "duplicate"
	}
	return "added"
}

// RemoveTag maps an ordset.RemoveResult to its host-visible outcome tag.
func RemoveTag(ordset.RemoveResult) string {
	return "removed"
}

// Tag maps an error returned by this package (or nil) to its
// host-visible outcome tag.
func Tag(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ordset.ErrNotFound):
		return "not_found"
	case errors.Is(err, ordset.ErrIndexOutOfBounds):
		return "index_out_of_bounds"
	case errors.Is(err, ordset.ErrMaxBucketSizeExceeded):
		return "max_bucket_size_exceeded"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported_type"
	case errors.Is(err, ErrBadReference):
		return "bad_reference"
	case errors.Is(err, ErrLockFail):
		return "lock_fail"
	default:
		return "error"
	}
}
