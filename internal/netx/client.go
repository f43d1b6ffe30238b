// Package netx builds per-account HTTP clients routed through an
// account's egress path.
package netx

import (
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	xproxy "golang.org/x/net/proxy"
)

const defaultTimeout = 30 * time.Second

// Browser-like headers attached to every request.
var defaultHeaders = map[string]string{
	"accept":          "*/*",
	"accept-language": "en-GB,en-US;q=0.9,en;q=0.8",
	"user-agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",
}

// Dial returns an HTTP client routed through egress. The egress path may
// be empty (direct connection), an http(s) proxy in user:pass@host:port
// or URL form, or a socks5:// URL.
func Dial(egress string, timeout time.Duration) (*http.Client, error) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
	}

	if egress != "" {
		u, err := parseEgress(egress)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "socks5" {
			dialer, err := xproxy.FromURL(u, &net.Dialer{Timeout: timeout})
			if err != nil {
				return nil, fmt.Errorf("socks5 egress %q: %w", u.Host, err)
			}
			transport.Proxy = nil
			transport.Dial = dialer.Dial
		} else {
			transport.Proxy = http.ProxyURL(u)
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &headerTransport{base: transport},
	}, nil
}

// parseEgress normalizes the egress descriptor into a proxy URL. Bare
// user:pass@host:port descriptors are treated as http proxies.
func parseEgress(egress string) (*url.URL, error) {
	raw := egress
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return nil, fmt.Errorf("invalid egress path %q", egress)
	}
	switch u.Scheme {
	case "http", "https", "socks5":
		return u, nil
	default:
		return nil, fmt.Errorf("unsupported egress scheme %q", u.Scheme)
	}
}

// headerTransport applies the default headers without clobbering values a
// task set explicitly.
type headerTransport struct {
	base http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	for k, v := range defaultHeaders {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
