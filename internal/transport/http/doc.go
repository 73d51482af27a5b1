// Package http contains the HTTP transport layer: chi routers and
// handlers for uploads, stored datasets, and health checks. Handlers
// translate between wire payloads and the parsing/store packages and
// funnel failures through the shared error handler.
package http
