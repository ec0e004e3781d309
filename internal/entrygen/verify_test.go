package entrygen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckSyntax(t *testing.T) {
	t.Run("synthesized modules parse", func(t *testing.T) {
		for _, opts := range []Options{pagesOptions(), appOptions()} {
			source, err := Generate(opts, nil)
			require.NoError(t, err)
			assert.NoError(t, CheckSyntax(source))
		}
	})

	t.Run("broken embedded config surfaces a diagnostic", func(t *testing.T) {
		opts := pagesOptions()
		opts.StringifiedConfig = b64(`{unterminated: `)

		source, err := Generate(opts, nil)
		require.NoError(t, err)
		assert.Error(t, CheckSyntax(source))
	})

	t.Run("plain garbage", func(t *testing.T) {
		assert.Error(t, CheckSyntax("import {"))
	})
}
