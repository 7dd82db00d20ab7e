// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

const (
	upsertEntry = `
		INSERT INTO entries (
			id,
			type,
			amount,
			created_at,
			updated_at,
			synced,
			deleted
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type       = excluded.type,
			amount     = excluded.amount,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			synced     = excluded.synced,
			deleted    = excluded.deleted;`

	// the stored row must still be the synced revision the merge read
	upsertEntryIfUnchanged = `
		INSERT INTO entries (
			id,
			type,
			amount,
			created_at,
			updated_at,
			synced,
			deleted
		) VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type       = excluded.type,
			amount     = excluded.amount,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			synced     = excluded.synced,
			deleted    = excluded.deleted
		WHERE entries.updated_at = ? AND entries.synced = 1;`

	selectEntryColumns = `
		SELECT
			id,
			type,
			amount,
			created_at,
			updated_at,
			synced,
			deleted
		FROM entries`

	getEntry = selectEntryColumns + `
		WHERE id = ?;`

	getAllEntries = selectEntryColumns + `
		ORDER BY updated_at DESC, id;`

	getUnsyncedEntries = selectEntryColumns + `
		WHERE synced = 0
		ORDER BY updated_at, id;`

	markEntrySynced = `
		UPDATE entries SET synced = 1
		WHERE id = ?;`

	// a newer local revision written during the upload keeps synced = 0
	markEntrySyncedAt = `
		UPDATE entries SET
			synced     = 1,
			updated_at = ?
		WHERE id = ? AND updated_at <= ?;`

	deleteEntry = `
		DELETE FROM entries
		WHERE id = ?;`

	getSetting = `
		SELECT value FROM settings
		WHERE key = ?;`

	saveSetting = `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value;`

	deleteSetting = `
		DELETE FROM settings
		WHERE key = ?;`
)

// Keys of the settings table.
const (
	settingSalt    = "kdf_salt"
	settingSession = "session"
)
