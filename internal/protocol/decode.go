package protocol

import (
	"encoding/json"
	"errors"
)

// ErrMissingType is returned for messages with no usable "type" field.
var ErrMissingType = errors.New("message has no type")

// messageEnvelope is used for fast type extraction.
type messageEnvelope struct {
	Type string `json:"type"`
}

// ExtractType extracts the event type without a full payload parse.
func ExtractType(data []byte) (string, error) {
	var envelope messageEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", err
	}
	if envelope.Type == "" {
		return "", ErrMissingType
	}
	return envelope.Type, nil
}
