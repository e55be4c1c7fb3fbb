// Package api provides the HTTP REST surface of Hawkins Lab Core.
//
// It wires the chi router, the middleware chain (request ID, logging,
// recovery, CORS, body limits, request-log capture), the three
// stackable auth gates (bearer token, static API key, lab-ID header),
// and all endpoint handlers over the world state.
//
// The server follows the standard lifecycle pattern:
//
//	server, err := api.New(deps)
//	server.Start(ctx)
//	defer server.Close()
//
// Every request is captured into the world's request log by an explicit
// middleware stage that observes the final status code before the
// response is sent; nothing patches the response writer's behaviour.
package api
