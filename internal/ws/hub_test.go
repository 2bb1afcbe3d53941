package ws

import (
	"encoding/json"
	"testing"
)

func TestBroadcastToUserReachesOnlyThatUser(t *testing.T) {
	hub := NewHub()

	a := &Client{UserID: 1, Send: make(chan []byte, 1)}
	b := &Client{UserID: 2, Send: make(chan []byte, 1)}
	hub.Register(a)
	hub.Register(b)

	hub.BroadcastToUser(1, map[string]string{"title": "hello"})

	select {
	case data := <-a.Send:
		var got map[string]string
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["title"] != "hello" {
			t.Fatalf("payload title = %q", got["title"])
		}
	default:
		t.Fatal("user 1 should receive the payload")
	}

	select {
	case <-b.Send:
		t.Fatal("user 2 must not receive user 1's payload")
	default:
	}
}

func TestBroadcastToUserFanOut(t *testing.T) {
	hub := NewHub()

	c1 := &Client{UserID: 1, Send: make(chan []byte, 1)}
	c2 := &Client{UserID: 1, Send: make(chan []byte, 1)}
	hub.Register(c1)
	hub.Register(c2)

	hub.BroadcastToUser(1, "ping")

	for i, c := range []*Client{c1, c2} {
		select {
		case <-c.Send:
		default:
			t.Fatalf("connection %d should receive the payload", i+1)
		}
	}
}

func TestBroadcastSkipsFullSendBuffer(t *testing.T) {
	hub := NewHub()

	c := &Client{UserID: 1, Send: make(chan []byte)} // unbuffered, no reader
	hub.Register(c)

	done := make(chan struct{})
	go func() {
		hub.BroadcastToUser(1, "dropped")
		close(done)
	}()
	select {
	case <-done:
	case <-c.Send:
		t.Fatal("no reader attached, send should have been dropped")
	}
}

func TestCloseUnregisters(t *testing.T) {
	hub := NewHub()

	c := &Client{UserID: 1, Send: make(chan []byte, 1)}
	hub.Register(c)
	if hub.ClientCount() != 1 {
		t.Fatalf("count = %d, want 1", hub.ClientCount())
	}

	c.Close()
	if hub.ClientCount() != 0 {
		t.Fatalf("count after close = %d, want 0", hub.ClientCount())
	}
	// Close is safe to call twice.
	c.Close()

	hub.BroadcastToUser(1, "gone") // must not panic on closed channel
}
