package typeconverter

import (
	"fmt"

	"github.com/tkrajina/typescriptify-golang-structs/typescriptify"

	"github.com/edgekit/go-edge-entry/internal/entrygen"
)

// Start writes TypeScript declarations for the metadata side channel so the
// JS side of the build pipeline consumes the edge-SSR and route records
// typed instead of as bare objects.
func Start(generatedTypesPath string) error {
	converter := typescriptify.New().
		Add(entrygen.EdgeSSRMeta{}).
		Add(entrygen.RouteMeta{}).
		Add(entrygen.MiddlewareConfig{}).
		Add(entrygen.MiddlewareMatcher{})
	converter.CreateInterface = true
	converter.BackupDir = ""

	if err := converter.ConvertToFile(generatedTypesPath); err != nil {
		return fmt.Errorf("failed to write metadata type declarations: %w", err)
	}
	return nil
}
