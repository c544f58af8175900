// Package apiconnect wires the api messages to Connect handlers and clients.
// Every handler and client speaks JSON through api.Codec.
package apiconnect

import (
	"connectrpc.com/connect"

	"github.com/MacDuki/sharedShop/pkg/api"
)

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}
