// Package http implements the HTTP transport layer of the application.
//
// It serves the remote entry store: account registration and login, the
// health probe and the per-user collections of encrypted entry documents.
// Authentication, request tracing, access logging and response compression
// run as middleware before requests reach the service layer.
package http
