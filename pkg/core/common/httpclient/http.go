package httpclient

import (
	"crypto/tls"
	"net/http"
	"net/http/cookiejar"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	"github.com/signalfx/jenkins-metrics/pkg/core/common/auth"
	"github.com/signalfx/jenkins-metrics/pkg/utils/timeutil"
)

// HTTPConfig can be embedded inline inside a config struct.
type HTTPConfig struct {
	// HTTP timeout duration for both read and writes. This should be a
	// duration string that is accepted by https://golang.org/pkg/time/#ParseDuration
	HTTPTimeout timeutil.Duration `yaml:"httpTimeout" default:"10s"`

	// Basic Auth username to use on each request, if any.
	Username string `yaml:"username"`
	// Basic Auth password to use on each request, if any.
	Password string `yaml:"password" neverLog:"true"`

	// If true, the server's TLS cert will not be verified when talking
	// over https.
	SkipVerify bool `yaml:"skipVerify"`

	// Path to the CA cert that has signed the server's TLS cert, unnecessary
	// if `skipVerify` is set to true.
	CACertPath string `yaml:"caCertPath"`
	// Path to the client TLS cert to use for TLS required connections
	ClientCertPath string `yaml:"clientCertPath"`
	// Path to the client TLS key to use for TLS required connections
	ClientKeyPath string `yaml:"clientKeyPath"`
}

// Build returns a configured http.Client.  The client carries a cookie jar so
// that session cookies handed out by the server are replayed on later
// requests made with the same client.
func (h *HTTPConfig) Build() (*http.Client, error) {
	return h.BuildCustomizeTransport(nil)
}

// BuildCustomizeTransport returns a configured http.Client but applies the
// provided cb function after configuring it to apply any custom configuration
// to the underlying HTTPTransport.
func (h *HTTPConfig) BuildCustomizeTransport(cb func(t *http.Transport)) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		InsecureSkipVerify: h.SkipVerify,
	}
	if _, err := auth.TLSConfig(transport.TLSClientConfig, h.CACertPath, h.ClientCertPath, h.ClientKeyPath); err != nil {
		return nil, err
	}

	// Customize on underlying transport instance before possibly wrapping in auth below.
	if cb != nil {
		cb(transport)
	}

	var roundTripper http.RoundTripper = transport

	if h.Username != "" || h.Password != "" {
		roundTripper = &auth.TransportWithBasicAuth{
			RoundTripper: roundTripper,
			Username:     h.Username,
			Password:     h.Password,
		}
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, errors.Wrap(err, "could not create cookie jar")
	}

	return &http.Client{
		Timeout:   h.HTTPTimeout.AsDuration(),
		Transport: roundTripper,
		Jar:       jar,
	}, nil
}
