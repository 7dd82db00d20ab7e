// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "github.com/shopspring/decimal"

// Entry is a single ledger record tracked by the sync engine.
//
// Entries are identified by a client-generated ID and carry two epoch
// millisecond timestamps. UpdatedAt is the last-writer-wins clock and never
// decreases for a given ID. A deleted entry is kept as a tombstone until its
// deletion has been propagated to the remote store.
type Entry struct {
	// ID is the client-generated unique identifier (UUIDv7).
	ID string `json:"id"`

	// Type is a free-form category tag, e.g. "income" or "groceries".
	Type string `json:"type"`

	// Amount is opaque to synchronization.
	Amount decimal.Decimal `json:"amount"`

	// CreatedAt is set on first write and never changes afterwards.
	CreatedAt int64 `json:"createdAt"`

	// UpdatedAt is the modification clock used for conflict resolution.
	UpdatedAt int64 `json:"updatedAt"`

	// Synced reports whether the remote store holds this exact revision.
	Synced bool `json:"synced"`

	// Deleted marks a tombstone.
	Deleted bool `json:"deleted"`
}

// IsNewerThan reports whether e carries a strictly later modification clock
// than other.
func (e Entry) IsNewerThan(other Entry) bool {
	return e.UpdatedAt > other.UpdatedAt
}

// EntryDraft is the user-supplied part of an entry passed to the save
// operation. ID and CreatedAt are optional: a missing ID produces a new entry,
// a missing CreatedAt is filled with the current time.
type EntryDraft struct {
	ID        string          `json:"id,omitempty"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt int64           `json:"createdAt,omitempty"`
}

// TypeTotal is the sum of live entry amounts for one entry type.
type TypeTotal struct {
	Type  string          `json:"type"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// EntryChange is one write of a merge batch. Base is the updatedAt of the
// synced local revision the change was computed from, zero when the entry
// was absent locally. The write is dropped when the stored row no longer
// matches Base, so a local edit made meanwhile is never overwritten.
type EntryChange struct {
	Entry Entry
	Base  int64
}
