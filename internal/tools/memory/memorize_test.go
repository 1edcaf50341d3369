package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	toolmemory "voyager/internal/tools/memory"
)

func TestStore_PutAndDrain(t *testing.T) {
	store := toolmemory.NewStore()

	store.Put("s-1", "seat", "aisle")
	store.Put("s-1", "hotel", "ground_floor")
	store.Put("s-2", "seat", "window")

	facts := store.Drain("s-1")
	assert.Equal(t, map[string]string{"seat": "aisle", "hotel": "ground_floor"}, facts)

	// Drained facts are gone, other sessions untouched
	assert.Empty(t, store.Drain("s-1"))
	assert.Equal(t, map[string]string{"seat": "window"}, store.Peek("s-2"))
}

func TestStore_PutOverwrites(t *testing.T) {
	store := toolmemory.NewStore()

	store.Put("s-1", "seat", "aisle")
	store.Put("s-1", "seat", "window")

	assert.Equal(t, "window", store.Peek("s-1")["seat"])
}

func TestStore_PeekIsACopy(t *testing.T) {
	store := toolmemory.NewStore()
	store.Put("s-1", "seat", "aisle")

	peeked := store.Peek("s-1")
	peeked["seat"] = "mutated"

	assert.Equal(t, "aisle", store.Peek("s-1")["seat"])
}

func TestStore_DrainMissingSession(t *testing.T) {
	store := toolmemory.NewStore()
	assert.Empty(t, store.Drain("ghost"))
}
