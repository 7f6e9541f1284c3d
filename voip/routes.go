// Copyright 2026 The Voxline Authors
// SPDX-License-Identifier: Apache-2.0

package voip

import "strings"

// routeTarget says who consumes a call-scoped wire event: the Call
// itself, or one of its Endpoints.
type routeTarget int

const (
	routeToCall routeTarget = iota
	routeToEndpoint
)

// eventRoute maps one wire event name to its dispatch target and kind.
type eventRoute struct {
	target   routeTarget
	call     CallEventKind
	endpoint EndpointEventKind
}

// wireRoutes is the complete routing table for call-scoped engine
// notifications. A wire name absent from this table is dropped without
// dispatch; that includes CallCallOperationFailed, which the engine
// reports through operation outcomes rather than notifications.
var wireRoutes = map[string]eventRoute{
	"CallConnected":         {target: routeToCall, call: CallEventConnected},
	"CallDisconnected":      {target: routeToCall, call: CallEventDisconnected},
	"CallEndpointAdded":     {target: routeToCall, call: CallEventEndpointAdded},
	"CallFailed":            {target: routeToCall, call: CallEventFailed},
	"CallICECompleted":      {target: routeToCall, call: CallEventICECompleted},
	"CallICETimeout":        {target: routeToCall, call: CallEventICETimeout},
	"CallInfoReceived":      {target: routeToCall, call: CallEventInfoReceived},
	"CallMessageReceived":   {target: routeToCall, call: CallEventMessageReceived},
	"CallProgressToneStart": {target: routeToCall, call: CallEventProgressToneStart},
	"CallProgressToneStop":  {target: routeToCall, call: CallEventProgressToneStop},

	"EndpointInfoUpdated": {target: routeToEndpoint, endpoint: EndpointEventInfoUpdated},
	"EndpointRemoved":     {target: routeToEndpoint, endpoint: EndpointEventRemoved},
}

// callScoped reports whether a wire event name belongs to a call and
// must go through the registry. Session-scoped names (IncomingCall,
// connection lifecycle) do not match.
func callScoped(name string) bool {
	return strings.HasPrefix(name, "Call") || strings.HasPrefix(name, "Endpoint")
}
