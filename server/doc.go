// Package server exposes the HTTP API: account registration and login,
// audio upload, asynchronous pipeline runs, and document download. It is
// built on Gin with request-id, logging, recovery, CORS, and JWT auth
// middleware.
package server
