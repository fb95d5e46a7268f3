// Package api implements the HTTP engine for the Intelligent Data
// client: credential resolution (API key or OAuth2 client
// credentials), request execution with per-attempt timeouts and
// bounded retries, and classification of responses into typed results
// and errors.
package api
