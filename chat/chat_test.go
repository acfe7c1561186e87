package chat

import (
	"context"
	"encoding/json"
	"testing"

	"workline/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRelay swaps the persistence and emit indirections for recorders and
// restores them when the test finishes.
func stubRelay(t *testing.T) (*[]models.Message, *[]string) {
	t.Helper()

	origLookup := lookupAssignment
	origAdminLookup := lookupAdminAssignment
	origPersist := persistMessage
	origEmit := emitMessage
	t.Cleanup(func() {
		lookupAssignment = origLookup
		lookupAdminAssignment = origAdminLookup
		persistMessage = origPersist
		emitMessage = origEmit
	})

	var persisted []models.Message
	var emitted []string
	persistMessage = func(_ context.Context, msg models.Message) (models.Message, error) {
		persisted = append(persisted, msg)
		return msg, nil
	}
	emitMessage = func(_ context.Context, room string, _ models.Message) {
		emitted = append(emitted, room)
	}
	return &persisted, &emitted
}

func receiveError(t *testing.T, c *Client) messageError {
	t.Helper()
	var errMsg messageError
	select {
	case data := <-c.Send:
		require.NoError(t, json.Unmarshal(data, &errMsg))
	default:
		t.Fatal("no error frame queued")
	}
	return errMsg
}

func TestSendMessageWithoutAssignment(t *testing.T) {
	persisted, emitted := stubRelay(t)
	lookupAssignment = func(context.Context, string) (*models.ChatAssignment, error) {
		return nil, nil
	}

	c := &Client{Send: make(chan []byte, 1), UserID: "u1", ActorType: models.ChatUser}
	handleSendMessage(c, "hello", "")

	errMsg := receiveError(t, c)
	assert.Equal(t, "messageError", errMsg.Event)
	assert.Equal(t, "No admin assigned yet", errMsg.Error)
	assert.Empty(t, *persisted)
	assert.Empty(t, *emitted)
}

func TestSendMessageEmptyContent(t *testing.T) {
	persisted, _ := stubRelay(t)

	c := &Client{Send: make(chan []byte, 1), UserID: "u1", ActorType: models.ChatUser}
	handleSendMessage(c, "", "")

	assert.Equal(t, "Empty message", receiveError(t, c).Error)
	assert.Empty(t, *persisted)
}

func TestSendMessageRoutesToAssignedAdmin(t *testing.T) {
	persisted, emitted := stubRelay(t)
	lookupAssignment = func(_ context.Context, userID string) (*models.ChatAssignment, error) {
		return &models.ChatAssignment{UserID: userID, AdminID: "adm1"}, nil
	}

	c := &Client{Send: make(chan []byte, 1), UserID: "u1", ActorType: models.ChatUser}
	handleSendMessage(c, "hello", "")

	require.Len(t, *persisted, 1)
	msg := (*persisted)[0]
	assert.Equal(t, "u1", msg.SenderID)
	assert.Equal(t, models.ChatUser, msg.SenderType)
	assert.Equal(t, "adm1", msg.RecipientID)
	assert.Equal(t, models.ChatAdmin, msg.RecipientType)
	assert.Equal(t, []string{"u1", "adm1"}, *emitted)
}

func TestAdminSendRequiresRecipient(t *testing.T) {
	persisted, _ := stubRelay(t)

	c := &Client{Send: make(chan []byte, 1), UserID: "adm1", ActorType: models.ChatAdmin}
	handleSendMessage(c, "hello", "")

	assert.Equal(t, "Recipient is required", receiveError(t, c).Error)
	assert.Empty(t, *persisted)
}

func TestAdminSendRejectsUnassignedUser(t *testing.T) {
	persisted, emitted := stubRelay(t)
	lookupAdminAssignment = func(context.Context, string, string) (*models.ChatAssignment, error) {
		return nil, nil
	}

	c := &Client{Send: make(chan []byte, 1), UserID: "adm1", ActorType: models.ChatAdmin}
	handleSendMessage(c, "hello", "u9")

	assert.Equal(t, "User is not assigned to you", receiveError(t, c).Error)
	assert.Empty(t, *persisted)
	assert.Empty(t, *emitted)
}

func TestAdminSendRoutesToAssignedUser(t *testing.T) {
	persisted, emitted := stubRelay(t)
	lookupAdminAssignment = func(_ context.Context, adminID, userID string) (*models.ChatAssignment, error) {
		return &models.ChatAssignment{UserID: userID, AdminID: adminID}, nil
	}

	c := &Client{Send: make(chan []byte, 1), UserID: "adm1", ActorType: models.ChatAdmin}
	handleSendMessage(c, "any update?", "u1")

	require.Len(t, *persisted, 1)
	msg := (*persisted)[0]
	assert.Equal(t, models.ChatAdmin, msg.SenderType)
	assert.Equal(t, "u1", msg.RecipientID)
	assert.Equal(t, models.ChatUser, msg.RecipientType)
	assert.Equal(t, []string{"adm1", "u1"}, *emitted)
}
