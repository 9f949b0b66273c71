package transfer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransactionID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewTransactionID()
		assert.True(t, strings.HasPrefix(id, "txn_"))
		assert.Len(t, id, len("txn_")+16)
		assert.False(t, seen[id], "transaction ids must not repeat")
		seen[id] = true
	}
}

func TestNewReference(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		ref := NewReference()
		assert.True(t, strings.HasPrefix(ref, "REF"))
		assert.Len(t, ref, len("REF")+12)
		assert.Equal(t, strings.ToUpper(ref), ref)
		assert.False(t, seen[ref], "references must not repeat")
		seen[ref] = true
	}
}
