package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timarques/eucatalog"
	main "github.com/timarques/eucatalog/cmd/eucatalog"
)

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints product details", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   stdout,
			Stderr:   &bytes.Buffer{},
			Catalogs: catalogStore(testCatalog(t), nil),
		}

		err := (&main.ShowCmd{Product: "Nextcloud"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Nextcloud\n"+
			"Country:    Germany\n"+
			"Categories: Cloud Storage\n"+
			"\nSelf hosted file sync.\n"+
			"\nCompany: https://nextcloud.com\n", stdout.String())
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:      context.Background(),
			Stdout:   &bytes.Buffer{},
			Stderr:   stderr,
			Catalogs: catalogStore(testCatalog(t), nil),
		}

		err := (&main.ShowCmd{Product: "Dropbox"}).Run(deps)

		assert.Equal(t, eucatalog.ENOTFOUND, eucatalog.ErrorCode(err))
		assert.Contains(t, stderr.String(), "eucatalog search")
	})
}
