package main

import (
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/healthedu-backend/models"
)

func TestParseFlags(t *testing.T) {
	t.Run("all flags", func(t *testing.T) {
		opts, err := parseFlags([]string{
			"-email", "editor@example.org",
			"-password", "long-enough",
			"-name", "Eddie",
			"-role", "editor",
		}, io.Discard)

		require.NoError(t, err)
		assert.Equal(t, "editor@example.org", opts.Email)
		assert.Equal(t, "long-enough", opts.Password)
		assert.Equal(t, "Eddie", opts.Name)
		assert.Equal(t, models.RoleEditor, opts.Role)
	})

	t.Run("defaults to admin", func(t *testing.T) {
		opts, err := parseFlags([]string{"-email", "a@example.org", "-password", "long-enough"}, io.Discard)

		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, opts.Role)
	})

	t.Run("password from environment", func(t *testing.T) {
		t.Setenv("SEED_PASSWORD", "from-the-env")

		opts, err := parseFlags([]string{"-email", "a@example.org"}, io.Discard)

		require.NoError(t, err)
		assert.Equal(t, "from-the-env", opts.Password)
	})

	t.Run("normalizes email and name", func(t *testing.T) {
		opts, err := parseFlags([]string{"-email", " Ada@Example.ORG ", "-password", "long-enough", "-name", "  Ada "}, io.Discard)

		require.NoError(t, err)
		assert.Equal(t, "ada@example.org", opts.Email)
		assert.Equal(t, "Ada", opts.Name)
	})

	t.Run("errors", func(t *testing.T) {
		t.Setenv("SEED_PASSWORD", "")

		tests := []struct {
			name string
			args []string
			want string
		}{
			{"missing email", []string{"-password", "long-enough"}, "-email is required"},
			{"invalid email", []string{"-email", "not-an-email", "-password", "long-enough"}, "-email must be a valid email"},
			{"missing password", []string{"-email", "a@example.org"}, "-password is required"},
			{"short password", []string{"-email", "a@example.org", "-password", "short"}, "-password must be at least 8"},
			{"unknown role", []string{"-email", "a@example.org", "-password", "long-enough", "-role", "owner"}, "-role must be one of: admin, editor"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := parseFlags(tt.args, io.Discard)
				assert.ErrorContains(t, err, tt.want)
			})
		}

		_, err := parseFlags([]string{"-email", "bad", "-password", "x"}, io.Discard)
		assert.EqualError(t, err, "-email must be a valid email; -password must be at least 8")

		_, err = parseFlags([]string{"-h"}, io.Discard)
		assert.ErrorIs(t, err, flag.ErrHelp)
	})
}
