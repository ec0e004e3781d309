package edgeentry

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/edgekit/go-edge-entry/internal/entrygen"
)

// Synthesize produces the edge entry module source for one route. Results
// are cached by options fingerprint; synthesis is deterministic so a cache
// hit is byte-identical to a fresh generation. The metadata side channel on
// info is populated on hits and misses alike.
func (engine *Engine) Synthesize(opts entrygen.Options, info *entrygen.BuildInfo) (string, error) {
	fingerprint, err := Fingerprint(opts)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint options for %s: %w", opts.Page, err)
	}

	if source, ok := engine.Cache.GetEntry(fingerprint); ok {
		engine.Logger.Debug("Serving synthesized entry from cache", "page", opts.Page)
		if err := entrygen.WriteBuildInfo(opts, info); err != nil {
			return "", err
		}
		return source, nil
	}

	source, err := entrygen.Generate(opts, info)
	if err != nil {
		engine.Logger.Error("Failed to synthesize entry", "page", opts.Page, "error", err)
		return "", err
	}

	if engine.Config.VerifySyntax {
		if err := entrygen.CheckSyntax(source); err != nil {
			return "", fmt.Errorf("synthesized module for %s failed syntax check: %w", opts.Page, err)
		}
	}

	engine.Cache.SetEntry(fingerprint, source)
	engine.Cache.SetPageModule(opts.Page, opts.AbsolutePagePath)
	engine.Cache.SetPageDependencies(opts.Page, wrapperModulePaths(opts))
	engine.Cache.SetPageFingerprint(opts.Page, fingerprint)

	// Dev builds watch the route's files for invalidation
	engine.watchRoute(opts)

	engine.Logger.Debug("Synthesized entry", "page", opts.Page, "pages_type", string(opts.PagesType))
	return source, nil
}

// Fingerprint returns a stable identity for a full options value. The
// canonical JSON encoding has a fixed field order, so equal options always
// hash equally.
func Fingerprint(opts entrygen.Options) (string, error) {
	data, err := json.Marshal(opts)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// wrapperModulePaths collects the secondary module paths a route references,
// for dev invalidation tracking.
func wrapperModulePaths(opts entrygen.Options) []string {
	var paths []string
	for _, path := range []string{
		opts.AbsoluteAppPath,
		opts.AbsoluteDocumentPath,
		opts.AbsoluteErrorPath,
		opts.Absolute500Path,
	} {
		if path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}
