package realtime

import (
	"sync"
)

// Hub coordinates websocket sessions and conversation rooms. It keeps one
// active Connection per user while allowing fan-out to every session
// subscribed to a conversation. Delivery is best effort: a subscriber that
// cannot keep up is dropped, never waited on.
type Hub struct {
	mu           sync.RWMutex
	sessions     map[string]*Connection            // sessionID -> connection
	userSessions map[string]string                 // userID -> sessionID
	rooms        map[string]map[string]*Connection // conversationID -> sessionID -> connection
	sessionRooms map[string]map[string]struct{}    // sessionID -> set of conversationIDs
}

// NewHub constructs an initialized Hub.
func NewHub() *Hub {
	return &Hub{
		sessions:     make(map[string]*Connection),
		userSessions: make(map[string]string),
		rooms:        make(map[string]map[string]*Connection),
		sessionRooms: make(map[string]map[string]struct{}),
	}
}

// Attach registers a connection for the given user. A previous session for the
// same user is closed after the swap: one active socket per user.
func (h *Hub) Attach(conn *Connection) {
	var previous *Connection

	h.mu.Lock()
	if existingID, ok := h.userSessions[conn.UserID]; ok {
		if existing := h.sessions[existingID]; existing != nil {
			previous = existing
			h.detachLocked(existingID)
		}
	}

	h.sessions[conn.ID] = conn
	h.userSessions[conn.UserID] = conn.ID
	h.sessionRooms[conn.ID] = make(map[string]struct{})
	h.mu.Unlock()

	conn.Start()

	if previous != nil {
		previous.Close(4001, "session replaced")
	}
}

// Detach removes a connection if it is still tracked.
func (h *Hub) Detach(conn *Connection) {
	h.mu.Lock()
	h.detachLocked(conn.ID)
	h.mu.Unlock()
}

// Join subscribes the connection to a conversation room.
func (h *Hub) Join(conversationID string, conn *Connection) {
	h.mu.Lock()
	if _, ok := h.sessions[conn.ID]; !ok {
		h.mu.Unlock()
		return
	}

	room := h.rooms[conversationID]
	if room == nil {
		room = make(map[string]*Connection)
		h.rooms[conversationID] = room
	}
	room[conn.ID] = conn

	memberships := h.sessionRooms[conn.ID]
	if memberships == nil {
		memberships = make(map[string]struct{})
		h.sessionRooms[conn.ID] = memberships
	}
	memberships[conversationID] = struct{}{}
	h.mu.Unlock()
}

// Leave unsubscribes the connection from a conversation room.
func (h *Hub) Leave(conversationID string, conn *Connection) {
	h.mu.Lock()
	h.leaveLocked(conversationID, conn.ID)
	h.mu.Unlock()
}

// Broadcast writes payload to all members of the conversation room.
// excludeUserID, when non-empty, skips that user. Returns the number of
// sessions the payload was handed to.
func (h *Hub) Broadcast(conversationID string, payload []byte, excludeUserID string) int {
	h.mu.RLock()
	room := h.rooms[conversationID]
	if len(room) == 0 {
		h.mu.RUnlock()
		return 0
	}

	delivered := 0
	for _, conn := range room {
		if excludeUserID != "" && conn.UserID == excludeUserID {
			continue
		}
		if err := conn.Send(payload); err == nil {
			delivered++
		}
	}
	h.mu.RUnlock()
	return delivered
}

// NotifyUser delivers payload to the current connection of the given user.
func (h *Hub) NotifyUser(userID string, payload []byte) bool {
	h.mu.RLock()
	sessionID, ok := h.userSessions[userID]
	if !ok {
		h.mu.RUnlock()
		return false
	}
	conn := h.sessions[sessionID]
	h.mu.RUnlock()
	if conn == nil {
		return false
	}
	return conn.Send(payload) == nil
}

// Close terminates all tracked connections and clears hub state.
func (h *Hub) Close() {
	h.mu.Lock()
	sessions := make([]*Connection, 0, len(h.sessions))
	for _, conn := range h.sessions {
		sessions = append(sessions, conn)
	}
	h.sessions = make(map[string]*Connection)
	h.userSessions = make(map[string]string)
	h.rooms = make(map[string]map[string]*Connection)
	h.sessionRooms = make(map[string]map[string]struct{})
	h.mu.Unlock()

	for _, conn := range sessions {
		conn.Close(1001, "hub shutdown")
	}
}

func (h *Hub) detachLocked(sessionID string) {
	conn, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	delete(h.sessions, sessionID)

	if current, ok := h.userSessions[conn.UserID]; ok && current == sessionID {
		delete(h.userSessions, conn.UserID)
	}

	for roomID := range h.sessionRooms[sessionID] {
		h.leaveLocked(roomID, sessionID)
	}
	delete(h.sessionRooms, sessionID)
}

func (h *Hub) leaveLocked(conversationID string, sessionID string) {
	if sessionID == "" {
		return
	}
	room := h.rooms[conversationID]
	if room == nil {
		return
	}
	delete(room, sessionID)
	if len(room) == 0 {
		delete(h.rooms, conversationID)
	}
	if memberships, ok := h.sessionRooms[sessionID]; ok {
		delete(memberships, conversationID)
		if len(memberships) == 0 {
			delete(h.sessionRooms, sessionID)
		}
	}
}
