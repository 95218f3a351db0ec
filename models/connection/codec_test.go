package connection

import (
	"encoding/json"
	"testing"

	"github.com/gorilla/websocket"
	mb "github.com/saeidalz13/moving-battleship/models/battleship"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEncoding(t *testing.T) {
	for input, expected := range map[string]string{"": EncodingJSON, "json": EncodingJSON, "msgpack": EncodingMsgpack} {
		encoding, err := ParseEncoding(input)
		require.NoError(t, err)
		assert.Equal(t, expected, encoding)
	}

	_, err := ParseEncoding("protobuf")
	assert.Error(t, err)
}

func TestMsgpackUsesJSONFieldNames(t *testing.T) {
	msg := NewMessage[RespRoundReport](CodeRoundReport)
	msg.AddPayload(RespRoundReport{
		Round:          2,
		Hits:           1,
		HitCoordinates: []mb.Coordinates{{X: 3, Y: 1}},
		ShipsRemaining: 2,
	})

	data, err := EncodeMsgpack(msg)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, DecodeMsgpack(data, &decoded))
	assert.Contains(t, decoded, "code")
	assert.Contains(t, decoded, "payload")
	assert.NotContains(t, decoded, "error", "nil errors are omitted")

	var roundTrip Message[RespRoundReport]
	require.NoError(t, DecodeMsgpack(data, &roundTrip))
	assert.Equal(t, msg, roundTrip)
}

func TestNormalizePayload(t *testing.T) {
	text := []byte(`{"code": 2}`)
	normalized, err := NormalizePayload(websocket.TextMessage, text)
	require.NoError(t, err)
	assert.Equal(t, text, normalized)

	binary, err := EncodeMsgpack(Message[ReqAttack]{Code: CodeAttack, Payload: ReqAttack{X: 1, Y: 4}})
	require.NoError(t, err)
	normalized, err = NormalizePayload(websocket.BinaryMessage, binary)
	require.NoError(t, err)

	var req Message[ReqAttack]
	require.NoError(t, json.Unmarshal(normalized, &req))
	assert.Equal(t, CodeAttack, req.Code)
	assert.Equal(t, ReqAttack{X: 1, Y: 4}, req.Payload)

	_, err = NormalizePayload(websocket.BinaryMessage, []byte{0xc1})
	assert.Error(t, err)
}
