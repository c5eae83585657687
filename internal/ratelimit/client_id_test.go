package ratelimit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientID(t *testing.T) {
	testCases := []struct {
		name         string
		forwardedFor string
		remoteAddr   string
		want         string
	}{
		{"single forwarded address", "203.0.113.7", "10.0.0.1:8080", "203.0.113.7"},
		{"forwarded chain uses first hop", "203.0.113.7, 198.51.100.2, 10.0.0.1", "10.0.0.1:8080", "203.0.113.7"},
		{"forwarded chain with spaces", "  203.0.113.7 , 198.51.100.2", "10.0.0.1:8080", "203.0.113.7"},
		{"empty forwarded falls back to remote host", "", "198.51.100.2:44312", "198.51.100.2"},
		{"blank forwarded entry falls back", " , 198.51.100.2", "198.51.100.2:44312", "198.51.100.2"},
		{"ipv6 remote address", "", "[2001:db8::1]:44312", "2001:db8::1"},
		{"remote address without port", "", "198.51.100.2", "198.51.100.2"},
		{"no metadata at all", "", "", UnknownClient},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveClientID(tc.forwardedFor, tc.remoteAddr))
		})
	}
}
