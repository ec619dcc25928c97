package server

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestOriginPolicyAllowsConfiguredOrigin(t *testing.T) {
	policy := newOriginPolicy([]string{"http://localhost:3000"}, zap.NewNop())

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, policy.check(r))
}

func TestOriginPolicyIsCaseInsensitive(t *testing.T) {
	policy := newOriginPolicy([]string{"http://Localhost:3000"}, zap.NewNop())

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "HTTP://LOCALHOST:3000")
	assert.True(t, policy.check(r))
}

func TestOriginPolicyBlocksUnknownOrigin(t *testing.T) {
	policy := newOriginPolicy([]string{"http://localhost:3000"}, zap.NewNop())

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "http://evil.example.com")
	assert.False(t, policy.check(r))
}

func TestOriginPolicyBlocksMissingOrigin(t *testing.T) {
	policy := newOriginPolicy([]string{"http://localhost:3000"}, zap.NewNop())

	r := httptest.NewRequest("GET", "/ws", nil)
	assert.False(t, policy.check(r))
}

func TestOriginPolicyWildcardAllowsAnything(t *testing.T) {
	policy := newOriginPolicy([]string{"*"}, zap.NewNop())

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "http://anything.example.com")
	assert.True(t, policy.check(r))
}

func TestOriginPolicySkipsInvalidEntries(t *testing.T) {
	policy := newOriginPolicy([]string{"", "not a url", "http://localhost:3000"}, zap.NewNop())

	r := httptest.NewRequest("GET", "/ws", nil)
	r.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, policy.check(r))
}
