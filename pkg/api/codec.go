// Package api defines the SharedShop RPC messages. Messages are plain Go
// structs carried as JSON by Connect through Codec.
package api

import "encoding/json"

// Codec is a connect.Codec that marshals messages with encoding/json.
// Registered under the "json" name it serves application/json requests.
type Codec struct{}

// Name implements connect.Codec.
func (Codec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (Codec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (Codec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, msg)
}
