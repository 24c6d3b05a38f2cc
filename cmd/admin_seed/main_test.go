package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"petquote/internal/config"
)

func TestRun_RequiresSettings(t *testing.T) {
	t.Run("missing credentials", func(t *testing.T) {
		t.Setenv("ADMIN_EMAIL", "")
		t.Setenv("ADMIN_PASSWORD", "")

		err := run(config.Config{DBHost: "db"})
		assert.ErrorContains(t, err, "ADMIN_EMAIL")
	})

	t.Run("missing database", func(t *testing.T) {
		t.Setenv("ADMIN_EMAIL", "ops@example.com")
		t.Setenv("ADMIN_PASSWORD", "secret")

		err := run(config.Config{})
		assert.ErrorContains(t, err, "DB_HOST")
	})
}
