package pool

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// Config tunes the transport behind outbound HTTP clients
type Config struct {
	DialTimeout         time.Duration
	RequestTimeout      time.Duration
	IdleTimeout         time.Duration
	MaxIdleConns        int
	MaxIdleConnsPerHost int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		DialTimeout:         5 * time.Second,
		RequestTimeout:      10 * time.Second,
		IdleTimeout:         90 * time.Second,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
	}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.DialTimeout <= 0 {
		c.DialTimeout = def.DialTimeout
	}
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = def.RequestTimeout
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = def.IdleTimeout
	}
	if c.MaxIdleConns <= 0 {
		c.MaxIdleConns = def.MaxIdleConns
	}
	if c.MaxIdleConnsPerHost <= 0 {
		c.MaxIdleConnsPerHost = def.MaxIdleConnsPerHost
	}
	return c
}

// NewHTTPClient returns a client on its own keep-alive transport. Zero
// fields in cfg fall back to DefaultConfig.
func NewHTTPClient(cfg Config) *http.Client {
	cfg = cfg.withDefaults()

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:       cfg.IdleTimeout,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		ForceAttemptHTTP2:     true,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
	}

	return &http.Client{
		Transport: transport,
		Timeout:   cfg.RequestTimeout,
	}
}

// CloseIdle drops idle keep-alive connections held by client
func CloseIdle(client *http.Client) {
	if client == nil {
		return
	}
	if transport, ok := client.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
