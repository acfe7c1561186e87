package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"workline/db"
	"workline/middleware"
	"workline/models"
	"workline/mq"
	"workline/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// inboundPayload represents what clients send us over the socket. To is
// only meaningful for admin senders, who pick which assigned user to reach.
type inboundPayload struct {
	Event   string `json:"event"`
	Content string `json:"content,omitempty"`
	To      string `json:"to,omitempty"`
}

type messageError struct {
	Event string `json:"event"`
	Error string `json:"error"`
}

// resolveAssignment finds the admin handling this actor's conversation.
func resolveAssignment(ctx context.Context, userID string) (*models.ChatAssignment, error) {
	var assignment models.ChatAssignment
	err := db.ChatAssignmentsCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

// resolveAdminAssignment checks that userID is actually assigned to adminID
// before an admin message is routed there.
func resolveAdminAssignment(ctx context.Context, adminID, userID string) (*models.ChatAssignment, error) {
	var assignment models.ChatAssignment
	err := db.ChatAssignmentsCollection.FindOne(ctx, bson.M{"userid": userID, "adminid": adminID}).Decode(&assignment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &assignment, nil
}

func insertMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	res, err := db.MessagesCollection.InsertOne(ctx, msg)
	if err != nil {
		return msg, err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}
	return msg, nil
}

// Indirections swapped out in tests.
var (
	lookupAssignment      = resolveAssignment
	lookupAdminAssignment = resolveAdminAssignment
	persistMessage        = insertMessage
	emitMessage           = func(ctx context.Context, room string, msg models.Message) {
		mq.Emit(ctx, mq.EventReceiveMessage, room, msg)
	}
)

// WebSocketHandler upgrades the connection and joins the caller to their own
// room. Browsers cannot set headers on websocket requests, so the token may
// arrive as a query parameter instead. Both credential namespaces are
// accepted: actors join as "user", admins as "admin".
func WebSocketHandler(hub *Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		token := r.Header.Get("Authorization")
		if token == "" {
			token = r.URL.Query().Get("token")
		}

		var callerID, actorType string
		if claims, err := middleware.ValidateJWT(token); err == nil {
			callerID, actorType = claims.UserID, models.ChatUser
		} else if adminClaims, err := middleware.ValidateAdminJWT(token); err == nil {
			callerID, actorType = adminClaims.AdminID, models.ChatAdmin
		} else {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("chat upgrade:", err)
			return
		}

		client := &Client{
			Conn:      conn,
			Send:      make(chan []byte, 256),
			Room:      callerID,
			UserID:    callerID,
			ActorType: actorType,
		}

		hub.add(client)
		go writePump(client)
		go readPump(client, hub)
	}
}

func writePump(c *Client) {
	defer c.Conn.Close()
	for msg := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func readPump(c *Client, hub *Hub) {
	defer func() {
		hub.drop(c)
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			break
		}

		var in inboundPayload
		if err := json.Unmarshal(raw, &in); err != nil {
			log.Println("chat: invalid payload:", err)
			continue
		}

		switch in.Event {
		case "sendMessage":
			handleSendMessage(c, in.Content, in.To)
		default:
			log.Println("chat: unknown event:", in.Event)
		}
	}
}

func sendError(c *Client, text string) {
	if data, err := json.Marshal(messageError{Event: "messageError", Error: text}); err == nil {
		select {
		case c.Send <- data:
		default:
		}
	}
}

// handleSendMessage persists the message and re-emits it into both rooms.
// An actor's message goes to their assigned admin; an admin's message goes
// to the named assigned user. Without an assignment there is no recipient,
// so nothing is written.
func handleSendMessage(c *Client, content, to string) {
	if content == "" {
		sendError(c, "Empty message")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var recipientID, recipientType string
	if c.ActorType == models.ChatAdmin {
		if to == "" {
			sendError(c, "Recipient is required")
			return
		}
		assignment, err := lookupAdminAssignment(ctx, c.UserID, to)
		if err != nil {
			log.Printf("chat: assignment lookup for admin %s: %v", c.UserID, err)
			sendError(c, "Internal error")
			return
		}
		if assignment == nil {
			sendError(c, "User is not assigned to you")
			return
		}
		recipientID, recipientType = assignment.UserID, models.ChatUser
	} else {
		assignment, err := lookupAssignment(ctx, c.UserID)
		if err != nil {
			log.Printf("chat: assignment lookup for %s: %v", c.UserID, err)
			sendError(c, "Internal error")
			return
		}
		if assignment == nil {
			sendError(c, "No admin assigned yet")
			return
		}
		recipientID, recipientType = assignment.AdminID, models.ChatAdmin
	}

	msg := models.Message{
		Content:       content,
		SenderID:      c.UserID,
		SenderType:    c.ActorType,
		RecipientID:   recipientID,
		RecipientType: recipientType,
		CreatedAt:     time.Now(),
	}

	msg, err := persistMessage(ctx, msg)
	if err != nil {
		log.Printf("chat: insert for %s: %v", c.UserID, err)
		sendError(c, "Failed to send message")
		return
	}

	emitMessage(ctx, c.UserID, msg)
	emitMessage(ctx, recipientID, msg)
}

// GetMessages returns the caller's conversation history, oldest first.
func GetMessages(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()
	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.MessagesCollection.Find(ctx, bson.M{
		"$or": []bson.M{
			{"senderid": userID},
			{"recipientid": userID},
		},
	}, db.OptionsFindAsc("createdAt"))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode messages")
		return
	}
	if len(messages) == 0 {
		messages = []models.Message{}
	}
	utils.RespondWithJSON(w, http.StatusOK, messages)
}

// CreateAssignment maps an actor to the admin who will handle their chat.
// One live assignment per actor, enforced with a unique index.
func CreateAssignment(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx := r.Context()

	var payload struct {
		UserID   string `json:"userid"`
		UserType string `json:"usertype"`
		AdminID  string `json:"adminid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if payload.UserID == "" || payload.AdminID == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "userid and adminid are required")
		return
	}
	if payload.UserType == "" {
		payload.UserType = models.ChatUser
	}

	assignment := models.ChatAssignment{
		UserID:     payload.UserID,
		UserType:   payload.UserType,
		AdminID:    payload.AdminID,
		AssignedAt: time.Now(),
	}

	if _, err := db.ChatAssignmentsCollection.InsertOne(ctx, assignment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.RespondWithError(w, http.StatusConflict, "User already has an assigned admin")
			return
		}
		log.Printf("chat: assignment insert: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create assignment")
		return
	}

	utils.SendResponse(w, http.StatusCreated, assignment, "Admin assigned", nil)
}
