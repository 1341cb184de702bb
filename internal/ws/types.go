package ws

import "encoding/json"

// MessageType tags the websocket envelopes exchanged with clients.
type MessageType string

const (
	MessageTypeMove      MessageType = "move"
	MessageTypeGameState MessageType = "gameState"
	MessageTypeResign    MessageType = "resign"
	MessageTypeDrawOffer MessageType = "drawOffer"
	MessageTypeError     MessageType = "error"
)

type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ErrorPayload is the payload of an error envelope.
type ErrorPayload struct {
	Message string `json:"message"`
}

// DrawOfferPayload announces which side has a standing draw offer.
type DrawOfferPayload struct {
	Color string `json:"color"`
}
