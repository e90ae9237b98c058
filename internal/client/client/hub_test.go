package client

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/eventhub/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestAuthHub_DeliversInOrder(t *testing.T) {
	h := newAuthHub()
	defer h.close()

	ch := make(chan models.AuthEventType, 8)
	h.subscribe(func(ev models.AuthEvent) { ch <- ev.Type })

	h.emit(models.AuthEvent{Type: models.SignedIn})
	h.emit(models.AuthEvent{Type: models.TokenRefreshed})
	h.emit(models.AuthEvent{Type: models.SignedOut})

	for _, want := range []models.AuthEventType{models.SignedIn, models.TokenRefreshed, models.SignedOut} {
		select {
		case got := <-ch:
			assert.Equal(t, want, got)
		case <-time.After(2 * time.Second):
			t.Fatalf("missing %s", want)
		}
	}
}

func TestAuthHub_SlowHandlerDoesNotBlockEmit(t *testing.T) {
	h := newAuthHub()
	defer h.close()

	release := make(chan struct{})
	h.subscribe(func(models.AuthEvent) { <-release })

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			h.emit(models.AuthEvent{Type: models.TokenRefreshed})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("emit blocked on a slow handler")
	}
	close(release)
}

func TestAuthHub_Unsubscribe(t *testing.T) {
	h := newAuthHub()
	defer h.close()

	ch := make(chan models.AuthEvent, 8)
	unsubscribe := h.subscribe(func(ev models.AuthEvent) { ch <- ev })
	unsubscribe()
	unsubscribe()

	h.emit(models.AuthEvent{Type: models.SignedOut})

	select {
	case <-ch:
		t.Fatal("delivered after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}
