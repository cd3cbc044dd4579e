// Package docstoretest provides an in-memory stand-in for docstore.Collection.
package docstoretest

import (
	"context"
	"slices"
	"sort"
	"sync"

	"equipment-backend/internal/platform/docstore"
)

type Memory[T docstore.Document] struct {
	mu   sync.Mutex
	docs []T
	less func(a, b T) bool

	// InsertErr, when set, is returned by the next Insert call.
	InsertErr error
}

// NewMemory returns an empty store whose List orders by less. Ties keep
// insertion order.
func NewMemory[T docstore.Document](less func(a, b T) bool) *Memory[T] {
	return &Memory[T]{less: less}
}

func (m *Memory[T]) indexOf(id string) int {
	for i, d := range m.docs {
		if d.DocID() == id {
			return i
		}
	}
	return -1
}

func (m *Memory[T]) List(ctx context.Context) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.docs)
	if out == nil {
		out = []T{}
	}
	if m.less != nil {
		sort.SliceStable(out, func(i, j int) bool { return m.less(out[i], out[j]) })
	}
	return out, nil
}

func (m *Memory[T]) Get(ctx context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return nil, docstore.ErrNotFound
	}
	doc := m.docs[i]
	return &doc, nil
}

func (m *Memory[T]) FindByIDs(ctx context.Context, ids []string) ([]T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []T{}
	for _, d := range m.docs {
		if slices.Contains(ids, d.DocID()) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *Memory[T]) Exists(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexOf(id) >= 0, nil
}

func (m *Memory[T]) Insert(ctx context.Context, doc T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.InsertErr; err != nil {
		m.InsertErr = nil
		return err
	}
	m.docs = append(m.docs, doc)
	return nil
}

func (m *Memory[T]) Replace(ctx context.Context, doc T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(doc.DocID())
	if i < 0 {
		return docstore.ErrNotFound
	}
	m.docs[i] = doc
	return nil
}

func (m *Memory[T]) Delete(ctx context.Context, id string) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return nil, docstore.ErrNotFound
	}
	doc := m.docs[i]
	m.docs = slices.Delete(m.docs, i, i+1)
	return &doc, nil
}

// Update applies fn to the stored document in place. It reports false when
// the id is unknown or fn declines the change.
func (m *Memory[T]) Update(id string, fn func(doc *T) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(id)
	if i < 0 {
		return false
	}
	doc := m.docs[i]
	if !fn(&doc) {
		return false
	}
	m.docs[i] = doc
	return true
}

// Any reports whether some stored document satisfies pred.
func (m *Memory[T]) Any(pred func(T) bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.ContainsFunc(m.docs, pred)
}

func (m *Memory[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.docs)
}
