package pool

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_Defaults(t *testing.T) {
	client := NewHTTPClient(Config{})

	assert.Equal(t, DefaultConfig().RequestTimeout, client.Timeout)

	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 50, transport.MaxIdleConns)
	assert.Equal(t, 10, transport.MaxIdleConnsPerHost)
	assert.Equal(t, 90*time.Second, transport.IdleConnTimeout)
	require.NotNil(t, transport.TLSClientConfig)
}

func TestNewHTTPClient_Overrides(t *testing.T) {
	client := NewHTTPClient(Config{RequestTimeout: 3 * time.Second, MaxIdleConnsPerHost: 2})

	assert.Equal(t, 3*time.Second, client.Timeout)
	transport := client.Transport.(*http.Transport)
	assert.Equal(t, 2, transport.MaxIdleConnsPerHost)
	assert.Equal(t, 50, transport.MaxIdleConns)
}

func TestCloseIdle(t *testing.T) {
	assert.NotPanics(t, func() {
		CloseIdle(nil)
		CloseIdle(&http.Client{})
		CloseIdle(NewHTTPClient(DefaultConfig()))
	})
}
