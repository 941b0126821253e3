// Package requestid attaches a correlation identifier to every request.
//
// Middleware reads X-Request-ID from the client when it is a short
// alphanumeric token and otherwise generates a UUIDv4. The ID is stored in the
// request context, echoed in the response header, added to log records through
// LoggerExtractor and forwarded to the marketplace backend by Transport.
package requestid
