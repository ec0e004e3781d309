package entrygen

// Well-known keys the build pipeline uses when flattening BuildInfo into its
// per-module metadata map.
const (
	BuildInfoEdgeSSRKey = "nextEdgeSSR"
	BuildInfoRouteKey   = "route"
)

// EdgeSSRMeta classifies the synthesized module for the build pipeline's
// manifest generation.
type EdgeSSRMeta struct {
	IsServerComponent bool   `json:"isServerComponent"`
	Page              string `json:"page"`
	IsAppDir          bool   `json:"isAppDir"`
}

// RouteMeta carries the route fields the pipeline needs for its route table.
type RouteMeta struct {
	Page             string           `json:"page"`
	AbsolutePagePath string           `json:"absolutePagePath"`
	PreferredRegion  Region           `json:"preferredRegion,omitempty"`
	MiddlewareConfig MiddlewareConfig `json:"middlewareConfig"`
}

// BuildInfo is the metadata side channel attached to the build unit being
// synthesized. It is write-only from this package's point of view: the
// pipeline consumes it later, nothing here reads it back.
type BuildInfo struct {
	EdgeSSR *EdgeSSRMeta
	Route   *RouteMeta
}

// WriteBuildInfo decodes opts and populates the side channel without
// synthesizing any source. The engine uses it to keep metadata fresh when an
// entry is served from cache.
func WriteBuildInfo(opts Options, info *BuildInfo) error {
	decoded, err := decodeOptions(opts)
	if err != nil {
		return err
	}
	writeBuildInfo(decoded, info)
	return nil
}

func writeBuildInfo(decoded *decodedOptions, info *BuildInfo) {
	if info == nil {
		return
	}
	info.EdgeSSR = &EdgeSSRMeta{
		IsServerComponent: decoded.isServerComponent,
		Page:              decoded.Page,
		IsAppDir:          decoded.isAppDir,
	}
	info.Route = &RouteMeta{
		Page:             decoded.Page,
		AbsolutePagePath: decoded.AbsolutePagePath,
		PreferredRegion:  decoded.PreferredRegion,
		MiddlewareConfig: decoded.middleware,
	}
}
