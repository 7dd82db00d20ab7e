// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// SyncReport summarises one synchronization cycle.
type SyncReport struct {
	// Uploaded counts live entries pushed to the remote store.
	Uploaded int `json:"uploaded"`
	// DeletedRemotely counts tombstones whose remote document was removed.
	DeletedRemotely int `json:"deletedRemotely"`
	// UploadFailures counts entries whose upload or remote delete failed.
	// They stay unsynced and are retried on the next cycle.
	UploadFailures int `json:"uploadFailures"`
	// Downloaded counts remote records that replaced local state.
	Downloaded int `json:"downloaded"`
	// DecryptFailures counts remote records skipped because they could not
	// be decoded or decrypted.
	DecryptFailures int `json:"decryptFailures"`
	// RemotelyDeleted counts local entries turned into tombstones because
	// their remote document disappeared.
	RemotelyDeleted int `json:"remotelyDeleted"`
}

// Changed reports whether the cycle altered local or remote state.
func (r SyncReport) Changed() bool {
	return r.Uploaded+r.DeletedRemotely+r.Downloaded+r.RemotelyDeleted > 0
}

// SyncStatus is the user-facing indicator of the synchronization state.
type SyncStatus string

const (
	SyncStatusSynced  SyncStatus = "synced"
	SyncStatusSyncing SyncStatus = "syncing"
	SyncStatusOffline SyncStatus = "offline"
	// SyncStatusPending means local changes wait for a scheduled cycle,
	// either after a write or after a failed cycle.
	SyncStatusPending SyncStatus = "pending"
)
