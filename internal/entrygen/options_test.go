package entrygen

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestDecodeOptions(t *testing.T) {
	decoded, err := decodeOptions(Options{
		Page:              "/blog",
		PagesType:         PagesTypeApp,
		IsServerComponent: "true",
		StringifiedConfig: b64(`{"env":{}}`),
		AppDirLoader:      b64("next-app-loader?page=%2Fblog!"),
		MiddlewareConfig:  b64(`{"regions":["iad1","sfo1"],"matchers":[{"regexp":"^/blog$","originalSource":"/blog"}]}`),
	})
	require.NoError(t, err)

	assert.Equal(t, `{"env":{}}`, decoded.stringifiedConfig)
	assert.Equal(t, "next-app-loader?page=%2Fblog!", decoded.appDirLoader)
	assert.Equal(t, Region{"iad1", "sfo1"}, decoded.middleware.Regions)
	require.Len(t, decoded.middleware.Matchers, 1)
	assert.Equal(t, "^/blog$", decoded.middleware.Matchers[0].Regexp)
	assert.True(t, decoded.isServerComponent)
	assert.True(t, decoded.isAppDir)
}

func TestDecodeOptionsDefaults(t *testing.T) {
	decoded, err := decodeOptions(Options{Page: "/", PagesType: PagesTypePages})
	require.NoError(t, err)

	assert.Equal(t, "", decoded.stringifiedConfig)
	assert.Equal(t, "", decoded.appDirLoader)
	assert.Equal(t, MiddlewareConfig{}, decoded.middleware)
	assert.False(t, decoded.isServerComponent)
	assert.False(t, decoded.isAppDir)
}

func TestIsServerComponentLenientDecoding(t *testing.T) {
	// Only the exact literal "true" enables server-component mode; anything
	// else silently decodes as false.
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true},
		{"false", false},
		{"TRUE", false},
		{"True", false},
		{"1", false},
		{"ture", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run("value "+tt.value, func(t *testing.T) {
			decoded, err := decodeOptions(Options{IsServerComponent: tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.want, decoded.isServerComponent)
		})
	}
}

func TestDecodeOptionsErrors(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantField string
	}{
		{
			name:      "invalid base64 config",
			opts:      Options{StringifiedConfig: "!!not-base64!!"},
			wantField: "stringifiedConfig",
		},
		{
			name:      "invalid base64 loader",
			opts:      Options{AppDirLoader: "!!not-base64!!"},
			wantField: "appDirLoader",
		},
		{
			name:      "invalid base64 middleware config",
			opts:      Options{MiddlewareConfig: "!!not-base64!!"},
			wantField: "middlewareConfig",
		},
		{
			name:      "malformed middleware JSON",
			opts:      Options{MiddlewareConfig: b64(`{nope`)},
			wantField: "middlewareConfig",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeOptions(tt.opts)
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr))
			assert.Equal(t, tt.wantField, decodeErr.Field)
		})
	}
}

func TestRegionJSON(t *testing.T) {
	t.Run("single region as bare string", func(t *testing.T) {
		var r Region
		require.NoError(t, json.Unmarshal([]byte(`"iad1"`), &r))
		assert.Equal(t, Region{"iad1"}, r)

		out, err := json.Marshal(r)
		require.NoError(t, err)
		assert.Equal(t, `"iad1"`, string(out))
	})

	t.Run("ordered list", func(t *testing.T) {
		var r Region
		require.NoError(t, json.Unmarshal([]byte(`["iad1","sfo1"]`), &r))
		assert.Equal(t, Region{"iad1", "sfo1"}, r)

		out, err := json.Marshal(r)
		require.NoError(t, err)
		assert.Equal(t, `["iad1","sfo1"]`, string(out))
	})

	t.Run("null", func(t *testing.T) {
		var r Region
		require.NoError(t, json.Unmarshal([]byte(`null`), &r))
		assert.Nil(t, r)
	})
}

func TestWriteBuildInfo(t *testing.T) {
	opts := Options{
		Page:              "/blog",
		PagesType:         PagesTypeApp,
		AbsolutePagePath:  "/repo/app/blog/page.js",
		IsServerComponent: "true",
		PreferredRegion:   Region{"fra1"},
		MiddlewareConfig:  b64(`{"regions":"iad1"}`),
	}

	var info BuildInfo
	require.NoError(t, WriteBuildInfo(opts, &info))

	require.NotNil(t, info.EdgeSSR)
	assert.Equal(t, "/blog", info.EdgeSSR.Page)
	assert.True(t, info.EdgeSSR.IsServerComponent)
	assert.True(t, info.EdgeSSR.IsAppDir)

	require.NotNil(t, info.Route)
	assert.Equal(t, "/blog", info.Route.Page)
	assert.Equal(t, "/repo/app/blog/page.js", info.Route.AbsolutePagePath)
	assert.Equal(t, Region{"fra1"}, info.Route.PreferredRegion)
	assert.Equal(t, Region{"iad1"}, info.Route.MiddlewareConfig.Regions)
}

func TestWriteBuildInfoNilTarget(t *testing.T) {
	// A nil side channel is allowed; only decoding is exercised.
	require.NoError(t, WriteBuildInfo(Options{Page: "/x"}, nil))
}
