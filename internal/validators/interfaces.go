// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks inbound ledger data before it reaches the
// services: entry drafts, remote documents and credentials. Each rule set
// reports one of the sentinel errors wrapped with the offending field.
package validators

import "context"

// Validator validates a value. Optional field names restrict the check to
// those fields.
type Validator interface {
	Validate(context.Context, any, ...string) error
}
