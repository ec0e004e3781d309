package entrygen

import "strings"

// nullExpr is the placeholder bound to every module identifier the selected
// route kind does not use. Downstream render code branches on route kind at
// runtime and must never hit an undefined reference.
const nullExpr = "null"

// entryModule is the intermediate form of the synthesized module: import
// list, binding list, render-dispatcher fields and the fixed export tail.
// A single serializer renders it to text so the output shape lives in one
// place instead of scattered interpolations.
type entryModule struct {
	imports      []importSpec
	bindings     []binding
	renderFields []field
}

// importSpec is one import statement. An empty clause is a side-effect
// import. from must already be a quoted specifier literal.
type importSpec struct {
	clause string
	from   string
}

// binding is one top-level const declaration. expr is raw JavaScript
// expression text; quoting, if needed, happened when expr was built.
type binding struct {
	name string
	expr string
}

// field is one property of the render-dispatcher argument object. An empty
// expr emits shorthand property syntax.
type field struct {
	name string
	expr string
}

func (m *entryModule) addImport(clause, from string) {
	m.imports = append(m.imports, importSpec{clause: clause, from: from})
}

func (m *entryModule) bind(name, expr string) {
	m.bindings = append(m.bindings, binding{name: name, expr: expr})
}

func (m *entryModule) renderField(name, expr string) {
	m.renderFields = append(m.renderFields, field{name: name, expr: expr})
}

// render serializes the module to source text. Iteration order is the
// insertion order of the IR, so identical options always yield byte-identical
// output.
func (m *entryModule) render() string {
	var b strings.Builder

	for _, imp := range m.imports {
		b.WriteString("import ")
		if imp.clause != "" {
			b.WriteString(imp.clause)
			b.WriteString(" from ")
		}
		b.WriteString(imp.from)
		b.WriteString(";\n")
	}
	b.WriteString("\n")

	for _, bind := range m.bindings {
		b.WriteString("const ")
		b.WriteString(bind.name)
		b.WriteString(" = ")
		b.WriteString(bind.expr)
		b.WriteString(";\n")
	}
	b.WriteString("\n")

	b.WriteString("const render = getRender({\n")
	for _, f := range m.renderFields {
		b.WriteString("  ")
		b.WriteString(f.name)
		if f.expr != "" {
			b.WriteString(": ")
			b.WriteString(f.expr)
		}
		b.WriteString(",\n")
	}
	b.WriteString("});\n\n")

	b.WriteString("export const ComponentMod = pageMod;\n\n")
	b.WriteString("export default function (opts) {\n")
	b.WriteString("  return adapter({\n")
	b.WriteString("    ...opts,\n")
	b.WriteString("    IncrementalCache,\n")
	b.WriteString("    handler: render,\n")
	b.WriteString("  });\n")
	b.WriteString("}\n")

	return b.String()
}
