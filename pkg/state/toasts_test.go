package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToastsDrainOldestFirst(t *testing.T) {
	store, _ := newTestStore()

	store.AddToast("saved", ToastSuccess)
	store.AddToast("failed", ToastError)
	store.AddToast("saved again", ToastSuccess)

	toasts := store.Toasts()
	assert.Len(t, toasts, 3)
	assert.Equal(t, "saved", toasts[0].Message)
	assert.Equal(t, ToastSuccess, toasts[0].Type)
	assert.Equal(t, "failed", toasts[1].Message)
	assert.Equal(t, ToastError, toasts[1].Type)

	// Drive the shared timer by hand; each expiry drops exactly the oldest
	store.expireToast()
	toasts = store.Toasts()
	assert.Len(t, toasts, 2)
	assert.Equal(t, "failed", toasts[0].Message)

	store.expireToast()
	store.expireToast()
	assert.Empty(t, store.Toasts())

	// Expiring an empty queue is harmless
	store.expireToast()
	assert.Empty(t, store.Toasts())
}

func TestToastExpiryNotifiesSubscribers(t *testing.T) {
	store, _ := newTestStore()

	var notified int
	store.Subscribe(func() { notified++ })

	store.AddToast("saved", ToastSuccess)
	assert.Equal(t, 1, notified)

	store.expireToast()
	assert.Equal(t, 2, notified)
}
