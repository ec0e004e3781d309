// Package entrygen synthesizes the source text of the virtual module that
// performs server-side rendering for a single route on the edge runtime.
// Synthesis is a pure function of the build options: the same options always
// produce byte-identical text, so the surrounding pipeline may cache output
// by an options fingerprint.
package entrygen

import "encoding/json"

// Fixed platform modules every synthesized entry imports. All of them are
// ESM dist paths; the edge target cannot load the CJS variants.
const (
	globalsModule          = "next/dist/esm/server/web/globals"
	adapterModule          = "next/dist/esm/server/web/adapter"
	renderModule           = "next/dist/esm/build/webpack/loaders/next-edge-ssr-loader/render"
	incrementalCacheModule = "next/dist/esm/server/lib/incremental-cache"
	appRenderModule        = "next/dist/esm/server/app-render/app-render"
	pagesRenderModule      = "next/dist/esm/server/render"
)

// Named globals the execution host populates before invoking the module's
// default export. Divergence from this set is a host-compatibility break.
const (
	buildManifestGlobal         = "__BUILD_MANIFEST"
	prerenderManifestGlobal     = "__PRERENDER_MANIFEST"
	reactLoadableManifestGlobal = "__REACT_LOADABLE_MANIFEST"
	rscManifestGlobal           = "__RSC_MANIFEST"
	rscServerManifestGlobal     = "__RSC_SERVER_MANIFEST"
	sriManifestGlobal           = "__SUBRESOURCE_INTEGRITY_MANIFEST"
	fontManifestGlobal          = "__NEXT_FONT_MANIFEST"
)

// Generate synthesizes the entry module for one route and writes the
// metadata side channel onto info (when non-nil). A malformed transport
// field fails the whole synthesis; no partial output is ever returned.
func Generate(opts Options, info *BuildInfo) (string, error) {
	decoded, err := decodeOptions(opts)
	if err != nil {
		return "", err
	}
	writeBuildInfo(decoded, info)
	return assemble(decoded).render(), nil
}

// assemble builds the module IR for the decoded options. Exactly one of the
// app-dir and pages-dir module sets is imported; the unused set's
// identifiers are bound to the null placeholder.
func assemble(decoded *decodedOptions) *entryModule {
	m := &entryModule{}

	m.addImport("", moduleSpecifier(globalsModule))
	m.addImport("{ adapter }", moduleSpecifier(adapterModule))
	m.addImport("{ getRender }", moduleSpecifier(renderModule))
	m.addImport("{ IncrementalCache }", moduleSpecifier(incrementalCacheModule))

	if decoded.isAppDir {
		m.addImport("{ renderToHTMLOrFlight as renderToHTML }", moduleSpecifier(appRenderModule))
		m.addImport("* as pageMod", pageModuleReference(decoded))
		m.bind("Document", nullExpr)
		m.bind("appMod", nullExpr)
		m.bind("errorMod", nullExpr)
		m.bind("error500Mod", nullExpr)
	} else {
		m.addImport("{ renderToHTML }", moduleSpecifier(pagesRenderModule))
		m.addImport("Document", moduleSpecifier(swapDistFolderWithEsmDistFolder(decoded.AbsoluteDocumentPath)))
		m.addImport("* as appMod", moduleSpecifier(swapDistFolderWithEsmDistFolder(decoded.AbsoluteAppPath)))
		m.addImport("* as pageMod", pageModuleReference(decoded))
		m.addImport("* as errorMod", moduleSpecifier(swapDistFolderWithEsmDistFolder(decoded.AbsoluteErrorPath)))
		if decoded.Absolute500Path != "" {
			m.addImport("* as error500Mod", moduleSpecifier(swapDistFolderWithEsmDistFolder(decoded.Absolute500Path)))
		} else {
			m.bind("error500Mod", nullExpr)
		}
	}

	if decoded.IncrementalCacheHandlerPath != "" {
		m.addImport("incrementalCacheHandler", moduleSpecifier(decoded.IncrementalCacheHandlerPath))
	} else {
		m.bind("incrementalCacheHandler", nullExpr)
	}

	// Manifest slots may be empty strings on the host; guard the parse.
	m.bind("maybeJSONParse", "(str) => (str ? JSON.parse(str) : undefined)")

	m.bind("buildManifest", "self."+buildManifestGlobal)
	m.bind("prerenderManifest", "maybeJSONParse(self."+prerenderManifestGlobal+")")
	m.bind("reactLoadableManifest", "maybeJSONParse(self."+reactLoadableManifestGlobal+")")
	m.bind("rscManifest", "self."+rscManifestGlobal+"?.["+jsString(decoded.Page)+"]")
	m.bind("rscServerManifest", "maybeJSONParse(self."+rscServerManifestGlobal+")")
	if decoded.SRIEnabled {
		m.bind("subresourceIntegrityManifest", "maybeJSONParse(self."+sriManifestGlobal+")")
	} else {
		m.bind("subresourceIntegrityManifest", "undefined")
	}
	m.bind("nextFontManifest", "maybeJSONParse(self."+fontManifestGlobal+")")

	m.renderField("pagesType", jsString(string(decoded.PagesType)))
	m.renderField("dev", boolExpr(decoded.Dev))
	m.renderField("page", jsString(decoded.Page))
	m.renderField("appMod", "")
	m.renderField("pageMod", "")
	m.renderField("errorMod", "")
	m.renderField("error500Mod", "")
	m.renderField("Document", "")
	m.renderField("renderToHTML", "")
	m.renderField("buildManifest", "")
	m.renderField("prerenderManifest", "")
	m.renderField("reactLoadableManifest", "")
	// The dispatcher always receives these three fields so its argument
	// shape is stable; they are real references only for server components.
	if decoded.isServerComponent {
		m.renderField("clientReferenceManifest", "rscManifest")
		m.renderField("serverActionsManifest", "rscServerManifest")
		m.renderField("serverActionsSizeLimit", sizeLimitExpr(decoded.ServerActionsSizeLimit))
	} else {
		m.renderField("clientReferenceManifest", nullExpr)
		m.renderField("serverActionsManifest", nullExpr)
		m.renderField("serverActionsSizeLimit", "undefined")
	}
	m.renderField("subresourceIntegrityManifest", "")
	m.renderField("config", configExpr(decoded.stringifiedConfig))
	m.renderField("buildId", jsString(decoded.BuildID))
	m.renderField("nextFontManifest", "")
	m.renderField("incrementalCacheHandler", "")
	m.renderField("isAppPath", boolExpr(decoded.isAppDir))

	return m
}

// configExpr embeds the decoded page config verbatim: it is already
// expression text produced by the build pipeline, not data to be quoted.
// An absent config degrades to the empty-string literal so the module still
// parses.
func configExpr(stringifiedConfig string) string {
	if stringifiedConfig == "" {
		return `""`
	}
	return stringifiedConfig
}

// sizeLimitExpr embeds the server-actions size limit, which may arrive as a
// number or a string like "2mb". Absent or unencodable values degrade to
// undefined.
func sizeLimitExpr(limit any) string {
	if limit == nil {
		return "undefined"
	}
	data, err := json.Marshal(limit)
	if err != nil {
		return "undefined"
	}
	return string(data)
}

func boolExpr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
