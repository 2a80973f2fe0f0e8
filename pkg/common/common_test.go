package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDint64_Unique(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := UUIDint64()
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestUUID_NotEmpty(t *testing.T) {
	a, b := UUID(), UUID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}

func TestIsEmptyOrNA(t *testing.T) {
	assert.True(t, IsEmptyOrNA(""))
	assert.True(t, IsEmptyOrNA("  "))
	assert.True(t, IsEmptyOrNA("N/A"))
	assert.False(t, IsEmptyOrNA("food"))
}
