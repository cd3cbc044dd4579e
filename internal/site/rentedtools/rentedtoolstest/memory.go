// Package rentedtoolstest provides an in-memory rentedtools.Store.
package rentedtoolstest

import (
	"context"
	"time"

	"equipment-backend/internal/platform/docstore"
	"equipment-backend/internal/platform/docstore/docstoretest"
	"equipment-backend/internal/site/rentedtools"
)

type Memory struct {
	*docstoretest.Memory[rentedtools.RentedTool]
}

func NewMemory() *Memory {
	return &Memory{Memory: docstoretest.NewMemory(rentedtools.ByName)}
}

func (m *Memory) MarkReturned(ctx context.Context, id string, at time.Time) error {
	var already bool
	found := m.Update(id, func(t *rentedtools.RentedTool) bool {
		if t.ReturnedAt != nil {
			already = true
			return false
		}
		t.ReturnedAt = &at
		return true
	})
	switch {
	case found:
		return nil
	case already:
		return rentedtools.ErrAlreadyReturned
	default:
		return docstore.ErrNotFound
	}
}

func (m *Memory) ClearReturned(ctx context.Context, id string) error {
	m.Update(id, func(t *rentedtools.RentedTool) bool {
		t.ReturnedAt = nil
		return true
	})
	return nil
}
