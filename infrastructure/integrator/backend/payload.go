package backend

import (
	"bytes"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Shape tells which envelope the upstream used for a list response.
type Shape int

const (
	ShapeEmpty Shape = iota
	ShapeArray
	ShapeData
	ShapeContent
	ShapeObject
)

func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeData:
		return "data"
	case ShapeContent:
		return "content"
	case ShapeObject:
		return "object"
	default:
		return "empty"
	}
}

// Payload is a response body decoded once, with the envelope stripped.
type Payload struct {
	Shape Shape
	Items []jsoniter.RawMessage
}

type envelope struct {
	Data    *[]jsoniter.RawMessage `json:"data"`
	Content *[]jsoniter.RawMessage `json:"content"`
	Error   *string                `json:"error"`
	Message string                 `json:"message"`
}

// DecodePayload accepts a bare array, {"data": [...]}, {"content": [...]},
// a single object or an empty body. An {"error": "..."} body is a failure
// even when the status code says otherwise.
func DecodePayload(body []byte) (Payload, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return Payload{Shape: ShapeEmpty}, nil
	}

	switch body[0] {
	case '[':
		var items []jsoniter.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return Payload{}, fmt.Errorf("decode array payload: %w", err)
		}
		return Payload{Shape: ShapeArray, Items: items}, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return Payload{}, fmt.Errorf("decode object payload: %w", err)
		}
		switch {
		case env.Error != nil:
			return Payload{}, &FetchError{Message: *env.Error}
		case env.Data != nil:
			return Payload{Shape: ShapeData, Items: *env.Data}, nil
		case env.Content != nil:
			return Payload{Shape: ShapeContent, Items: *env.Content}, nil
		}
		return Payload{Shape: ShapeObject, Items: []jsoniter.RawMessage{jsoniter.RawMessage(body)}}, nil
	}

	return Payload{}, fmt.Errorf("unexpected payload starting with %q", body[0])
}

// decodeItems converts every item of p into T.
func decodeItems[T any](p Payload) ([]T, error) {
	out := make([]T, 0, len(p.Items))
	for i, raw := range p.Items {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("decode item %d of %s payload: %w", i, p.Shape, err)
		}
		out = append(out, item)
	}
	return out, nil
}
