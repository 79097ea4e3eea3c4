// Package handler implements the HTTP API for familytree.
//
// FamilyHandler exposes a FamilyService as JSON endpoints. Routes returns a
// ServeMux using method-qualified patterns:
//
//	GET  /api/members
//	GET  /api/members/{name}
//	GET  /api/members/{name}/relationships/{relationship}
//	POST /api/children
//	POST /api/marriages
//	POST /api/commands
//	GET  /api/export/{format}
//
// # Errors
//
// Failures are returned as JSON with {error, details}. Domain errors map to
// status codes: unknown person is 404, a male mother is 422, an unsupported
// gender or relationship is 400.
//
// POST /api/commands is the exception: it accepts and returns plain text, one
// output line per command, exactly as the batch runner prints them.
//
// # Middleware
//
// Chain composes Recover, RequestID and Logger around the mux. RequestID
// echoes X-Request-ID, generating one when the caller sent none.
package handler
