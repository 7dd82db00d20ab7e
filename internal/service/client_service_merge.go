package service

import (
	"github.com/MKhiriev/go-finance-keeper/models"
)

// mergeResult is the outcome of reconciling the local store with one remote
// snapshot. Changed holds only entries whose stored state must change.
type mergeResult struct {
	Changed         []models.Entry
	Downloaded      int
	RemotelyDeleted int
}

// mergeSnapshot applies last-writer-wins to local and the decoded remote
// entries, then turns synced local entries that are absent from the snapshot
// into tombstones.
//
// present must hold the id of every remote record, including records that
// could not be decoded; such records never cause a local tombstone.
// The function is pure: merging its own output again yields no changes.
func mergeSnapshot(local, remote []models.Entry, present map[string]struct{}, now int64) mergeResult {
	var result mergeResult

	localIndex := make(map[string]models.Entry, len(local))
	for _, entry := range local {
		localIndex[entry.ID] = entry
	}

	// Pass 1: remote records against their local counterpart.
	for _, r := range remote {
		if l, ok := localIndex[r.ID]; ok && keepLocal(l, r) {
			continue
		}

		r.Synced = true
		r.Deleted = false
		localIndex[r.ID] = r
		result.Changed = append(result.Changed, r)
		result.Downloaded++
	}

	// Pass 2: entries the remote store no longer has.
	for _, l := range local {
		if !l.Synced || l.Deleted {
			continue
		}
		if _, ok := present[l.ID]; ok {
			continue
		}

		l.Deleted = true
		l.Synced = false
		l.UpdatedAt = nextUpdatedAt(now, l.UpdatedAt)
		result.Changed = append(result.Changed, l)
		result.RemotelyDeleted++
	}

	return result
}

// keepLocal reports whether the local revision survives against remote.
// Unsynced local edits always win; otherwise the later clock wins and a tie
// keeps the local copy.
func keepLocal(local, remote models.Entry) bool {
	return !local.Synced || !remote.IsNewerThan(local)
}
