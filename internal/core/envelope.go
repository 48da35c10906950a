package core

import "encoding/json"

// Client intents.
const (
	MsgCreateRoom  = "createRoom"
	MsgJoinRoom    = "joinRoom"
	MsgLeaveRoom   = "leaveRoom"
	MsgToggleReady = "toggleReady"
	MsgStartGame   = "startGame"
	MsgGameAction  = "gameAction"
	MsgPing        = "ping"
)

// Server notifications.
const (
	MsgHello            = "hello"
	MsgRoomCreated      = "roomCreated"
	MsgPlayerJoined     = "playerJoined"
	MsgRoomUpdated      = "roomUpdated"
	MsgRoomLeft         = "roomLeft"
	MsgPlayerLeft       = "playerLeft"
	MsgGameStarted      = "gameStarted"
	MsgGameStateUpdated = "gameStateUpdated"
	MsgError            = "error"
	MsgPong             = "pong"
)

// Envelope is the shape of every frame in both directions. Inbound payloads
// stay raw until the handler for Type decodes them.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Encode builds a frame for msgType carrying payload.
func Encode(msgType string, payload any) (Frame, error) {
	b, err := json.Marshal(outbound{Type: msgType, Payload: payload})
	if err != nil {
		return nil, err
	}
	return Frame(b), nil
}

// Decode splits a frame into its type and raw payload.
func Decode(f Frame) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(f, &env)
	return env, err
}
