package util

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProxyFunc_ExplicitProxies(t *testing.T) {
	fn := NewProxyFunc("http://proxy-a:8080", "http://proxy-b:8443")

	req := httptest.NewRequest(http.MethodGet, "http://example.com/", nil)
	u, err := fn(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy-a:8080", u.Host)

	req = httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	u, err = fn(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy-b:8443", u.Host)
}

func TestNewProxyFunc_HTTPProxyCoversHTTPS(t *testing.T) {
	fn := NewProxyFunc("http://proxy-a:8080", "")

	req := httptest.NewRequest(http.MethodGet, "https://example.com/", nil)
	u, err := fn(req)
	require.NoError(t, err)
	assert.Equal(t, "proxy-a:8080", u.Host)
}
