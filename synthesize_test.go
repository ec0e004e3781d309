package edgeentry

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgekit/go-edge-entry/internal/entrygen"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func testOptions() entrygen.Options {
	return entrygen.Options{
		Page:                 "/blog",
		BuildID:              "abc123",
		PagesType:            entrygen.PagesTypePages,
		AbsolutePagePath:     "/repo/pages/blog.js",
		AbsoluteAppPath:      "/repo/next/dist/pages/_app.js",
		AbsoluteDocumentPath: "/repo/next/dist/pages/_document.js",
		AbsoluteErrorPath:    "/repo/next/dist/pages/_error.js",
		IsServerComponent:    "false",
		MiddlewareConfig:     b64(`{}`),
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := New(Config{AppEnv: "production"})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = engine.Shutdown(context.Background())
	})
	return engine
}

func TestSynthesizeCachesByFingerprint(t *testing.T) {
	engine := newTestEngine(t)
	opts := testOptions()

	first, err := engine.Synthesize(opts, nil)
	require.NoError(t, err)
	second, err := engine.Synthesize(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	fingerprint, err := Fingerprint(opts)
	require.NoError(t, err)
	cached, ok := engine.Cache.GetEntry(fingerprint)
	require.True(t, ok)
	assert.Equal(t, first, cached)

	assert.ElementsMatch(t, []string{"/blog"}, engine.Cache.GetPagesWithModule("/repo/pages/blog.js"))
	assert.ElementsMatch(t, []string{"/blog"}, engine.Cache.GetPagesWithModule("/repo/next/dist/pages/_app.js"))
}

func TestSynthesizeWritesMetadataOnCacheHit(t *testing.T) {
	engine := newTestEngine(t)
	opts := testOptions()

	_, err := engine.Synthesize(opts, nil)
	require.NoError(t, err)

	// Second call is served from cache; the side channel must still be
	// populated for the pipeline.
	var info entrygen.BuildInfo
	_, err = engine.Synthesize(opts, &info)
	require.NoError(t, err)
	require.NotNil(t, info.EdgeSSR)
	assert.Equal(t, "/blog", info.EdgeSSR.Page)
	require.NotNil(t, info.Route)
	assert.Equal(t, "/repo/pages/blog.js", info.Route.AbsolutePagePath)
}

func TestSynthesizeFailsOnMalformedMiddlewareConfig(t *testing.T) {
	engine := newTestEngine(t)
	opts := testOptions()
	opts.MiddlewareConfig = b64(`{broken`)

	source, err := engine.Synthesize(opts, nil)
	require.Error(t, err)
	assert.Empty(t, source)

	// Nothing was cached for the failed synthesis.
	fingerprint, err := Fingerprint(opts)
	require.NoError(t, err)
	_, ok := engine.Cache.GetEntry(fingerprint)
	assert.False(t, ok)
}

func TestSynthesizeVerifyCatchesBrokenConfig(t *testing.T) {
	engine, err := New(Config{AppEnv: "production", VerifySyntax: true})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = engine.Shutdown(context.Background())
	})

	opts := testOptions()
	opts.StringifiedConfig = b64(`{unterminated: `)

	_, err = engine.Synthesize(opts, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "syntax check")
}

func TestFingerprint(t *testing.T) {
	opts := testOptions()

	first, err := Fingerprint(opts)
	require.NoError(t, err)
	second, err := Fingerprint(opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	changed := testOptions()
	changed.BuildID = "def456"
	other, err := Fingerprint(changed)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}
