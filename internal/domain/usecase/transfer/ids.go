package transfer

import (
	"strings"

	"github.com/google/uuid"
)

// NewTransactionID generates a transaction identifier like
// "txn_8f14e45fceea167a". The txn_ prefix keeps records grepable in logs.
func NewTransactionID() string {
	return "txn_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
}

// NewReference generates a reference code like "REF4F2A9C81D3E0".
// References carry a unique index, so they draw from the same entropy as
// transaction ids rather than the wall clock.
func NewReference() string {
	return "REF" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
}
