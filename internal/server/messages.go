// ABOUTME: Wire messages for the live preview websocket protocol
// ABOUTME: JSON envelope, view-change requests, and tile/progress pushes
package server

import "encoding/json"

// Message is the JSON envelope for all websocket traffic.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// ServerHello is sent once after a client connects.
type ServerHello struct {
	ServerID string `json:"server_id"`
	Name     string `json:"name"`
	Product  string `json:"product"`
	Version  string `json:"version"`
}

// ViewRequest asks for a re-render. Width is the client's viewport in
// CSS pixels; zoom multiplies it into the rendered width. Style is
// "bars" or "line".
type ViewRequest struct {
	Width    int     `json:"width"`
	Zoom     float64 `json:"zoom"`
	Progress float64 `json:"progress"`
	Style    string  `json:"style"`
}

// TilePayload carries one rendered surface as a base64 PNG. Tiles are
// pushed left to right; Index counts from 0 and Total tells the client
// when the strip is complete.
type TilePayload struct {
	Index int    `json:"index"`
	Total int    `json:"total"`
	Left  int    `json:"left"`
	Width int    `json:"width"`
	PNG   string `json:"png"`
}

// ProgressPayload follows the tile strip and carries the reveal state.
type ProgressPayload struct {
	ProgressPx int `json:"progress_px"`
	TotalWidth int `json:"total_width"`
}

// decodePayload re-marshals an envelope payload into a concrete type.
func decodePayload(payload interface{}, dst interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}
