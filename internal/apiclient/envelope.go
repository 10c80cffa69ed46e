package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The backend answers some endpoints with a bare value and others with a
// {"data": ...} envelope. These helpers normalize both shapes.

type envelope struct {
	Data json.RawMessage `json:"data"`
}

func unwrapList[T any](raw []byte) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []T{}, nil
	}

	switch raw[0] {
	case '[':
		var out []T
		if err := json.Unmarshal(raw, &out); err != nil {
			return nil, err
		}
		return out, nil
	case '{':
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, err
		}
		if len(env.Data) == 0 {
			return nil, fmt.Errorf("list payload has no data field")
		}
		return unwrapList[T](env.Data)
	default:
		return nil, fmt.Errorf("unexpected list payload")
	}
}

func unwrapObject[T any](raw []byte) (T, error) {
	var out T
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return out, fmt.Errorf("empty object payload")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err == nil {
		if data, ok := fields["data"]; ok && len(fields) <= 3 {
			data = bytes.TrimSpace(data)
			if len(data) > 0 && data[0] == '{' {
				raw = data
			}
		}
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func shapeError(resp *Response, err error) error {
	return &Error{Kind: KindUnknown, Status: statusOf(resp), Message: "unexpected response shape", Err: err}
}
