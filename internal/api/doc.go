// Package api handles incoming HTTP requests, routing, request validation,
// and response formatting. It acts as an adapter between external clients
// and the internal application services, translating HTTP concerns to
// business operations.
//
// Service errors are mapped to status codes by MapErrorToStatusCode: missing
// boards and columns become 404, rejected orderings and invalid input 400,
// and concurrent modification 409. Anything else is a 500 whose details
// only reach the logs, redacted.
package api
