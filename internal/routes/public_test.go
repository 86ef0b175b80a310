package routes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicMatcher(t *testing.T) {
	m := NewPublicMatcher([]string{
		"POST /api/users/login",
		"GET /api/jobs/:id",
		"/api/health",
	})

	assert.True(t, m.IsPublic("POST", "/api/users/login"))
	assert.False(t, m.IsPublic("GET", "/api/users/login"))

	// Matching happens on the route template, not the concrete URL.
	assert.True(t, m.IsPublic("GET", "/api/jobs/:id"))
	assert.False(t, m.IsPublic("PATCH", "/api/jobs/:id"))

	// A bare entry covers every method.
	assert.True(t, m.IsPublic("GET", "/api/health"))
	assert.True(t, m.IsPublic("POST", "/api/health"))

	// Unregistered routes have no template and are never public.
	assert.False(t, m.IsPublic("GET", ""))
}
