package auth

import "net/http"

// TransportWithBasicAuth adds basic auth credentials to every request that
// goes through the wrapped RoundTripper
type TransportWithBasicAuth struct {
	http.RoundTripper
	Username string
	Password string
}

// RoundTrip implements http.RoundTripper.  The request is cloned so the
// caller's copy is never mutated.
func (t *TransportWithBasicAuth) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	req2.SetBasicAuth(t.Username, t.Password)
	return t.RoundTripper.RoundTrip(req2)
}
