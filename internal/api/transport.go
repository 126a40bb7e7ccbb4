package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/kaffecito/kaffecito/internal/session"
)

// bearerTransport injects the session's bearer token and a request id into
// every outgoing request. Requests made without a stored token (login) go
// out bare.
type bearerTransport struct {
	base http.RoundTripper
	sess session.Store
}

func newBearerTransport(base http.RoundTripper, sess session.Store) *bearerTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &bearerTransport{base: base, sess: sess}
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if token, ok := t.sess.Token(); ok {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	if clone.Header.Get("X-Request-ID") == "" {
		clone.Header.Set("X-Request-ID", uuid.NewString())
	}
	return t.base.RoundTrip(clone)
}
