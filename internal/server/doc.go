// Package server provides HTTP routing, middleware and a remote-control API for the player.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] method patterns, so a request with the wrong
// method gets a 405 without any handler code.
//
// # Player API
//
// [PlayerHandler] exposes the transport as JSON endpoints under /api. Commands (select, toggle, seek, volume)
// answer with the state after the change. GET /api/events streams every state change as a server-sent
// event, which is how a browser or a second terminal follows playback without polling.
//
// Streams end when the client disconnects or the player is closed; the latter sends a final "closed" event.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
