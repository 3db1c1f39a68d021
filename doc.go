// Package mcpserializer turns raw JSON-RPC request payloads into validated
// calls against registered tools, resources and prompts, and renders the
// results back into protocol-conformant JSON.
//
// It is a serialization layer, not a transport: the host application owns
// the socket or pipe, reads a request payload, hands the bytes to
// [Serializer.ProcessRequest], and writes whatever bytes come back. Single
// requests, batch arrays and notifications are all handled; a notification
// (or an all-notification batch) produces no output.
//
// Registration happens once at startup through a [registry.Registry];
// dispatch is safe for concurrent use after that.
package mcpserializer
