// Package realtime carries the websocket fan-out: a hub with named
// destinations, broadcast topics for admin subscribers and per-user queues
// for directed replies, plus the action dispatch table the socket
// controllers register into.
package realtime

import "encoding/json"

// InboundFrame is what clients send: an action name and its payload.
// "subscribe" and "unsubscribe" are handled by the transport; every other
// action goes through the dispatcher.
type InboundFrame struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload"`
}

// OutboundFrame is what clients receive: the destination the payload was
// published to, so one connection can multiplex many subscriptions.
type OutboundFrame struct {
	Destination string      `json:"destination"`
	Payload     interface{} `json:"payload"`
}

// ErrorReply is the uniform failure payload. Errors only ever go to the
// requester's queue, never to a broadcast topic.
type ErrorReply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type subscribePayload struct {
	Destination string `json:"destination"`
}

// UserQueue names the directed-reply destination for a requester. The
// requester identifier comes from the message payload, not from any
// authenticated session — source behaviour, kept; a session-bound identity
// resolved by the transport would close that gap.
func UserQueue(requesterID, queue string) string {
	return "/user/" + requesterID + queue
}
