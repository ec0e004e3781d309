// Command edgeentry synthesizes a single edge entry module from a JSON
// build-options record and writes the module text to stdout or a file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	edgeentry "github.com/edgekit/go-edge-entry"
	"github.com/edgekit/go-edge-entry/internal/entrygen"
)

func main() {
	optionsPath := flag.String("options", "", "path to the JSON options record (default: read stdin)")
	outPath := flag.String("o", "", "write the module text to a file instead of stdout")
	verify := flag.Bool("verify", false, "parse-check the synthesized module with esbuild")
	printMeta := flag.Bool("meta", false, "print the metadata side channel as JSON to stderr")
	flag.Parse()

	if err := run(*optionsPath, *outPath, *verify, *printMeta); err != nil {
		fmt.Fprintf(os.Stderr, "edgeentry: %v\n", err)
		os.Exit(1)
	}
}

func run(optionsPath, outPath string, verify, printMeta bool) error {
	var optionsJSON []byte
	var err error
	if optionsPath == "" {
		optionsJSON, err = io.ReadAll(os.Stdin)
	} else {
		optionsJSON, err = os.ReadFile(optionsPath)
	}
	if err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}

	var opts entrygen.Options
	if err := json.Unmarshal(optionsJSON, &opts); err != nil {
		return fmt.Errorf("failed to parse options record: %w", err)
	}

	engine, err := edgeentry.New(edgeentry.Config{
		AppEnv:       "production",
		VerifySyntax: verify,
	})
	if err != nil {
		return err
	}

	var info entrygen.BuildInfo
	source, err := engine.Synthesize(opts, &info)
	if err != nil {
		return err
	}

	if printMeta {
		meta, err := json.MarshalIndent(map[string]any{
			entrygen.BuildInfoEdgeSSRKey: info.EdgeSSR,
			entrygen.BuildInfoRouteKey:   info.Route,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, string(meta))
	}

	if outPath == "" {
		fmt.Print(source)
		return nil
	}
	return os.WriteFile(outPath, []byte(source), 0o644)
}
