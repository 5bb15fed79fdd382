package message

import (
	"encoding/json"
)

type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type TabPayload struct {
	Game string `json:"game"`
}

type SortPayload struct {
	Key string `json:"key"`
}

type ErrorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}
