package notify

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesOnlyOwner(t *testing.T) {
	h := NewHub(nil)
	mine, cancelMine := h.Subscribe(1)
	defer cancelMine()
	other, cancelOther := h.Subscribe(2)
	defer cancelOther()

	h.Publish(Event{Type: "application.submitted", OwnerID: 1, ApplicationID: "a"})

	select {
	case e := <-mine:
		assert.Equal(t, "a", e.ApplicationID)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
	select {
	case e := <-other:
		t.Fatalf("unexpected event for other owner: %+v", e)
	default:
	}
}

func TestPublishNeverBlocks(t *testing.T) {
	h := NewHub(nil)
	_, cancel := h.Subscribe(1)
	defer cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < bufferSize*3; i++ {
			h.Publish(Event{OwnerID: 1})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
}

func TestCancelUnsubscribes(t *testing.T) {
	h := NewHub(nil)
	ch, cancel := h.Subscribe(1)
	assert.Equal(t, 1, h.Subscribers(1))

	cancel()
	cancel()
	assert.Zero(t, h.Subscribers(1))
	_, open := <-ch
	assert.False(t, open)

	h.Publish(Event{OwnerID: 1})
}

func TestServeStreamsEvents(t *testing.T) {
	h := NewHub(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = h.Serve(w, r, 7)
	}))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return h.Subscribers(7) == 1 }, time.Second, 10*time.Millisecond)
	h.Publish(Event{Type: "application.decided", OwnerID: 7, ApplicationID: "x", Status: "accepted"})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "application.decided", got.Type)
	assert.Equal(t, "accepted", got.Status)

	conn.Close()
	assert.Eventually(t, func() bool { return h.Subscribers(7) == 0 }, time.Second, 10*time.Millisecond)
}
