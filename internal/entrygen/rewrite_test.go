package entrygen

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwapDistFolderWithEsmDistFolder(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "framework wrapper path",
			path: "/repo/next/dist/pages/_app.js",
			want: "/repo/next/dist/esm/pages/_app.js",
		},
		{
			name: "first occurrence only",
			path: "/a/next/dist/pages/x/next/dist/pages/y.js",
			want: "/a/next/dist/esm/pages/x/next/dist/pages/y.js",
		},
		{
			name: "path without marker is unchanged",
			path: "/repo/pages/custom/_app.js",
			want: "/repo/pages/custom/_app.js",
		},
		{
			name: "empty path",
			path: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, swapDistFolderWithEsmDistFolder(tt.path))
		})
	}
}

func TestJSStringRoundTrip(t *testing.T) {
	// Every escape jsString emits is JSON-compatible, so decoding the
	// literal must reproduce the original path exactly.
	paths := []string{
		"/repo/pages/blog.js",
		`/repo/pa"th/blog.js`,
		`C:\repo\pages\blog.js`,
		"/repo/pages/we\"ird\\mix\n.js",
		"/repo/pages/tab\there.js",
		"/repo/pages/line\u2028sep\u2029.js",
		"/repo/pages/unicode-ページ.js",
		"",
	}

	for _, path := range paths {
		literal := jsString(path)

		var decoded string
		require.NoError(t, json.Unmarshal([]byte(literal), &decoded), "literal %s must parse as JSON", literal)
		assert.Equal(t, path, decoded)
	}
}

func TestJSStringEscapesLineSeparators(t *testing.T) {
	// U+2028 and U+2029 are legal in JSON but terminate lines in JS source;
	// they must never appear raw in a literal.
	literal := jsString("a\u2028b\u2029c")
	assert.NotContains(t, literal, "\u2028")
	assert.NotContains(t, literal, "\u2029")
	assert.Contains(t, literal, `\u2028`)
	assert.Contains(t, literal, `\u2029`)
}

func TestPageModuleReference(t *testing.T) {
	t.Run("app dir composes loader prefix and query suffix", func(t *testing.T) {
		decoded := &decodedOptions{
			Options:      Options{AbsolutePagePath: "/repo/app/page.js"},
			appDirLoader: "next-app-loader?page=%2Fpage!",
			isAppDir:     true,
		}
		assert.Equal(t,
			`"next-app-loader?page=%2Fpage!/repo/app/page.js?__next_edge_ssr_entry__"`,
			pageModuleReference(decoded))
	})

	t.Run("pages dir is the bare quoted path", func(t *testing.T) {
		decoded := &decodedOptions{
			Options: Options{AbsolutePagePath: "/repo/pages/blog.js"},
		}
		assert.Equal(t, `"/repo/pages/blog.js"`, pageModuleReference(decoded))
	})

	t.Run("splice happens before quoting", func(t *testing.T) {
		decoded := &decodedOptions{
			Options:      Options{AbsolutePagePath: `/repo/app/pa"ge.js`},
			appDirLoader: "loader!",
			isAppDir:     true,
		}
		assert.Equal(t, `"loader!/repo/app/pa\"ge.js?__next_edge_ssr_entry__"`, pageModuleReference(decoded))
	})
}
