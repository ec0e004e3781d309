package entrygen

import (
	"fmt"
	"strings"
)

const (
	// The edge target needs the tree-shakeable dist variant of the framework
	// wrapper modules; the regular dist folder pulls in CJS-only code.
	distPagesSegment    = "next/dist/pages"
	esmDistPagesSegment = "next/dist/esm/pages"

	// Query suffix appended to the composed page reference for app routes.
	edgeSSREntryQuery = "__next_edge_ssr_entry__"
)

// swapDistFolderWithEsmDistFolder rewrites the first occurrence of the
// regular dist segment to its ESM counterpart. Paths outside the framework
// dist tree pass through unchanged.
func swapDistFolderWithEsmDistFolder(path string) string {
	return strings.Replace(path, distPagesSegment, esmDistPagesSegment, 1)
}

// moduleSpecifier returns the quoted module-specifier literal for a path.
// Every path-derived value embedded in the synthesized source goes through
// here; nothing else is allowed to quote.
func moduleSpecifier(path string) string {
	return jsString(path)
}

// pageModuleReference composes the primary page reference: the decoded
// loader prefix and the edge-entry query suffix are spliced onto the raw
// path before quoting, never onto the quoted literal.
func pageModuleReference(decoded *decodedOptions) string {
	ref := decoded.appDirLoader + decoded.AbsolutePagePath
	if decoded.isAppDir {
		ref += "?" + edgeSSREntryQuery
	}
	return moduleSpecifier(ref)
}

// jsString renders s as a double-quoted JavaScript string literal. The
// escapes chosen are also valid JSON, so a literal can be parsed back to
// recover the original path exactly.
func jsString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			// Legal in JSON but line terminators in JavaScript source.
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
