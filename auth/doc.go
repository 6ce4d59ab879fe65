// Package auth provides password hashing and JWT session tokens for the
// HTTP API. Passwords are hashed with bcrypt; tokens are HS256-signed and
// carry the user id and email.
package auth
