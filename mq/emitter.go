package mq

import (
	"context"
	"encoding/json"

	"workline/rdx"

	log "github.com/sirupsen/logrus"
)

const relayChannel = "relay-events"

// Event names re-emitted to connected clients after a controller write.
const (
	EventReceiveMessage  = "receiveMessage"
	EventStatusUpdate    = "statusUpdate"
	EventInquiryResponse = "inquiryResponse"
)

// Event is the envelope published on the relay channel. Room is the actor
// id whose connected clients should receive it.
type Event struct {
	Name string          `json:"event"`
	Room string          `json:"room"`
	Data json.RawMessage `json:"data"`
}

// Broadcaster is satisfied by the chat hub.
type Broadcaster interface {
	Broadcast(room string, data []byte)
}

// Emit publishes a relay event over Redis so every server instance's hub
// can fan it out to its own connections. Called only after the owning
// controller's write has committed.
func Emit(ctx context.Context, name, room string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("relay emit: marshal %s: %v", name, err)
		return
	}

	msg, err := json.Marshal(Event{Name: name, Room: room, Data: data})
	if err != nil {
		log.Printf("relay emit: marshal envelope: %v", err)
		return
	}

	if err := rdx.Conn.Publish(ctx, relayChannel, msg).Err(); err != nil {
		log.Printf("relay emit: publish %s: %v", name, err)
	}
}

// StartRelayWorker subscribes to the relay channel and forwards events into
// the hub. Runs until the process exits.
func StartRelayWorker(hub Broadcaster) {
	ctx := context.Background()
	sub := rdx.Conn.Subscribe(ctx, relayChannel)

	log.Println("relay worker listening")

	for msg := range sub.Channel() {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("relay worker: bad payload: %v", err)
			continue
		}

		out, err := json.Marshal(map[string]any{
			"event": event.Name,
			"data":  event.Data,
		})
		if err != nil {
			continue
		}
		hub.Broadcast(event.Room, out)
	}
}
