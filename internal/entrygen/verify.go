package entrygen

import (
	"fmt"

	esbuildApi "github.com/evanw/esbuild/pkg/api"
)

// CheckSyntax parses synthesized module text without bundling or resolving
// imports. It exists to catch a malformed embedded config expression at
// synthesis time instead of deep inside the external bundler.
func CheckSyntax(source string) error {
	result := esbuildApi.Transform(source, esbuildApi.TransformOptions{
		Loader:   esbuildApi.LoaderJS,
		Format:   esbuildApi.FormatESModule,
		LogLevel: esbuildApi.LogLevelSilent,
	})
	if len(result.Errors) > 0 {
		first := result.Errors[0]
		lineText := "unknown"
		lineNum := 0
		if first.Location != nil {
			lineText = first.Location.LineText
			lineNum = first.Location.Line
		}
		return fmt.Errorf("%s (line %d: %s)", first.Text, lineNum, lineText)
	}
	return nil
}
