package chat

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:   make(chan []byte, 10),
		Room:   "u123",
		UserID: "u123",
	}

	hub.register <- client

	data, _ := json.Marshal(map[string]string{"event": "receiveMessage", "content": "hello"})
	hub.Broadcast("u123", data)

	select {
	case got := <-client.Send:
		if string(got) != string(data) {
			t.Fatalf("expected %s, got %s", data, got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	hub.unregister <- client
}

func TestHubRoomIsolation(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	alice := &Client{Send: make(chan []byte, 10), Room: "u1", UserID: "u1"}
	bob := &Client{Send: make(chan []byte, 10), Room: "u2", UserID: "u2"}

	hub.register <- alice
	hub.register <- bob

	hub.Broadcast("u1", []byte("for alice"))

	select {
	case got := <-alice.Send:
		if string(got) != "for alice" {
			t.Fatalf("unexpected payload %s", got)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for message")
	}

	select {
	case got := <-bob.Send:
		t.Fatalf("bob should not receive %s", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubBroadcastToEmptyRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	// no clients joined; the broadcast must simply be dropped
	hub.Broadcast("nobody", []byte("lost"))
}

func TestHubStoppedHubDoesNotBlockSenders(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.Broadcast("room", []byte("late"))
		hub.drop(&Client{Room: "room"})
		hub.add(&Client{Room: "room"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub call blocked after Stop")
	}
}
