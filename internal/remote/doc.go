// Package remote provides an HTTP client for the books API.
//
// # Endpoints
//
//   - GET /books: the whole collection, each element keyed by "_id"
//   - POST /books: create; the response names the new identifier "id"
//   - PUT /books/{id}: replace title, author and price
//   - DELETE /books/{id}: remove
//
// The two identifier keys are read as the server sends them and are not
// normalized here. Identifiers are opaque text; numeric ids are accepted
// and kept in their decimal form.
//
// # Request handling
//
// Every request carries Accept: application/json, a folio User-Agent and a
// fresh X-Request-ID (UUID) that also appears in the debug log line and in
// StatusError messages. Any response outside 2xx is a *StatusError; there is
// no distinction by status code at this layer.
//
// Prices travel as JSON numbers. NaN and infinities have no JSON encoding
// and are sent as null.
//
// # Non-features
//
//   - No retries (callers decide)
//   - No caching
//   - No default timeout; WithTimeout sets one
package remote
