// Package server provides HTTP routing, middleware, and a local stand-in for the video platform backend.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering, so route
// patterns may carry path wildcards such as "/api/v1/post/{id}/likes".
//
// # Development Backend
//
// [DevBackend] serves the seven endpoints the client consumes from memory, using the same JSON
// envelopes as the real platform. It backs `vtx serve` for local work on the TUI and the end-to-end
// tests of the services and cmd packages. Nothing is persisted; restarting the server clears it.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
