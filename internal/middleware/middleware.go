// Package middleware contains the Echo middleware stack: CORS,
// request logging, panic recovery, request ids, request-scoped
// loggers, New Relic tracing, and the global error handler.
package middleware
