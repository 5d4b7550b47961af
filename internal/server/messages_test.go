// ABOUTME: Tests for websocket message encoding and decoding
// ABOUTME: Envelope round-trips, payload decoding, and tile base64
package server

import (
	"encoding/base64"
	"encoding/json"
	"testing"
)

func TestViewRequestDecode(t *testing.T) {
	raw := `{"type":"client/view","payload":{"width":800,"zoom":2.5,"progress":0.4,"style":"bars"}}`

	var msg Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		t.Fatalf("Unmarshal envelope: %v", err)
	}
	if msg.Type != "client/view" {
		t.Fatalf("type = %q", msg.Type)
	}

	var req ViewRequest
	if err := decodePayload(msg.Payload, &req); err != nil {
		t.Fatalf("decodePayload: %v", err)
	}
	if req.Width != 800 || req.Zoom != 2.5 || req.Progress != 0.4 || req.Style != "bars" {
		t.Errorf("request = %+v", req)
	}
}

func TestTileMessageRoundTrip(t *testing.T) {
	pngBytes := []byte("\x89PNG fake")
	msg := Message{
		Type: "server/tile",
		Payload: TilePayload{
			Index: 1,
			Total: 3,
			Left:  4000,
			Width: 4002,
			PNG:   base64.StdEncoding.EncodeToString(pngBytes),
		},
	}

	data, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Message
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	var tile TilePayload
	if err := decodePayload(decoded.Payload, &tile); err != nil {
		t.Fatalf("decodePayload: %v", err)
	}

	if tile.Index != 1 || tile.Total != 3 || tile.Left != 4000 || tile.Width != 4002 {
		t.Errorf("tile = %+v", tile)
	}
	raw, err := base64.StdEncoding.DecodeString(tile.PNG)
	if err != nil {
		t.Fatalf("DecodeString: %v", err)
	}
	if string(raw) != string(pngBytes) {
		t.Error("tile bytes corrupted in transit")
	}
}

func TestDecodePayloadMismatch(t *testing.T) {
	var req ViewRequest
	if err := decodePayload("not an object", &req); err == nil {
		t.Error("string payload decoded into a struct")
	}
}
