package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJobLastActionAt(t *testing.T) {
	created := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	job := Job{}
	job.CreatedAt = created

	assert.Equal(t, created, job.LastActionAt())

	reposted := created.Add(10 * 24 * time.Hour)
	job.RepostedAt = &reposted
	assert.Equal(t, reposted, job.LastActionAt())
}
