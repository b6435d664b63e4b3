package handlers

import (
	"github.com/padraicbc/eventresults/auth"
	"github.com/padraicbc/eventresults/publishing"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	svc          *publishing.Service
	gate         *auth.Gate
	secureCookie bool
}

// New creates a Handler. secureCookie marks the session cookie Secure and
// should be on whenever the server is reached over TLS.
func New(svc *publishing.Service, gate *auth.Gate, secureCookie bool) *Handler {
	return &Handler{svc: svc, gate: gate, secureCookie: secureCookie}
}
