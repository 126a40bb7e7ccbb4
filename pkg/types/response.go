package types

import (
	"encoding/json"
	"strings"
)

// APIMessage folds the backend's message field, which arrives either as a
// single string or as a list of strings; lists are joined for display.
type APIMessage string

func (m *APIMessage) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*m = APIMessage(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*m = APIMessage(strings.Join(many, "; "))
		return nil
	}
	*m = ""
	return nil
}

func (m APIMessage) String() string {
	return string(m)
}

// ErrorEnvelope is the backend's error body on non-2xx responses.
type ErrorEnvelope struct {
	Message APIMessage `json:"message"`
	Error   string     `json:"error,omitempty"`
}

// DataEnvelope wraps endpoints that respond with {success, data, message}
// instead of a bare payload, such as /pedidos/mis-pedidos.
type DataEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message APIMessage      `json:"message,omitempty"`
}
