// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// RemoteRecord is the remote representation of one entry.
//
// Only UpdatedAt is stored in the clear; everything else is inside
// EncryptedPayload which has the form "<base64 ciphertext>.<base64 iv>".
type RemoteRecord struct {
	ID               string
	EncryptedPayload string
	UpdatedAt        int64
	ServerUpdatedAt  time.Time
}

// RemoteDocument is the JSON wire form of a [RemoteRecord].
type RemoteDocument struct {
	ID              string    `json:"id"`
	EncryptedData   string    `json:"encryptedData"`
	UpdatedAt       int64     `json:"updatedAt"`
	ServerUpdatedAt time.Time `json:"serverUpdatedAt,omitzero"`
}

// ToRecord converts the wire document into a [RemoteRecord].
func (d RemoteDocument) ToRecord() RemoteRecord {
	return RemoteRecord{
		ID:               d.ID,
		EncryptedPayload: d.EncryptedData,
		UpdatedAt:        d.UpdatedAt,
		ServerUpdatedAt:  d.ServerUpdatedAt,
	}
}

// ToDocument converts r into its JSON wire form.
func (r RemoteRecord) ToDocument() RemoteDocument {
	return RemoteDocument{
		ID:              r.ID,
		EncryptedData:   r.EncryptedPayload,
		UpdatedAt:       r.UpdatedAt,
		ServerUpdatedAt: r.ServerUpdatedAt,
	}
}
