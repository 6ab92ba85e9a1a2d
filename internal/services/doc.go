// Package services implements the HTTP client for the video platform backend.
//
// # Backend Interface
//
// [Backend] lists every endpoint the client consumes. [BackendService] implements it over
// net/http; views and CLI commands depend on the interface so tests can swap in doubles.
//
//	POST /api/v1/users/login            → [BackendService.Login]
//	GET  /api/v1/users/userlist         → [BackendService.ListUsers]
//	POST /api/v1/post (multipart)       → [BackendService.UploadVideo]
//	GET  /api/v1/videos                 → [BackendService.ListVideos]
//	POST /api/v1/post/{id}/views        → [BackendService.IncrementViews]
//	POST /api/v1/post/{id}/likes        → [BackendService.ToggleLike]
//	POST /api/v1/post/{id}/comments     → [BackendService.AddComment]
//
// # Error Handling
//
// Failures fall into three groups, all wrapping [shared.ErrAPIRequest] or a sibling sentinel:
//   - transport failure: wrapped network error, also unwraps to the cause (e.g. [context.Canceled])
//   - non-2xx status: [*StatusError], carrying the status code and body
//   - unexpected body: [shared.ErrMalformedResponse]
//
// Nothing is retried.
//
// # Raw Access
//
// [APIService] issues untyped GET/POST requests and returns the raw body for debugging
// (`vtx api get`, `vtx api post`).
package services
