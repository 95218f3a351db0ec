package connection

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// Encodings a client can pick with the "encoding" URL query.
// Msgpack sessions exchange binary frames using the same field
// names as the JSON messages.
const (
	EncodingJSON    = "json"
	EncodingMsgpack = "msgpack"
)

func ParseEncoding(encoding string) (string, error) {
	switch encoding {
	case "", EncodingJSON:
		return EncodingJSON, nil
	case EncodingMsgpack:
		return EncodingMsgpack, nil
	default:
		return "", fmt.Errorf("unsupported encoding: %q", encoding)
	}
}

func EncodeMsgpack(msg interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(msg); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeMsgpack(data []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// NormalizePayload turns a binary msgpack frame into the JSON the
// request handlers understand. Text frames are returned as is.
func NormalizePayload(messageType int, payload []byte) ([]byte, error) {
	if messageType != websocket.BinaryMessage {
		return payload, nil
	}

	var msg map[string]interface{}
	if err := DecodeMsgpack(payload, &msg); err != nil {
		return nil, fmt.Errorf("failed to decode msgpack payload: %w", err)
	}
	return json.Marshal(msg)
}
