package router

// constraintMacros maps macro names usable in parameter constraints to
// their regexp patterns. Used in parameter definitions: ":name(macro)".
var constraintMacros = map[string]string{
	"uuid":     `[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`,
	"int":      `[0-9]+`,
	"float":    `[0-9]*\.?[0-9]+`,
	"slug":     `[a-zA-Z0-9]+(?:-[a-zA-Z0-9]+)*`,
	"alpha":    `[a-zA-Z]+`,
	"alphanum": `[a-zA-Z0-9]+`,
	"date":     `[0-9]{4}-[0-9]{2}-[0-9]{2}`,
	"hex":      `[0-9a-fA-F]+`,
}

// expandMacro resolves a constraint expression. Known macro names return
// their pattern and the macro name; anything else is treated as a raw
// regular expression for full generality.
func expandMacro(expr string) (pattern, macro string) {
	if p, ok := constraintMacros[expr]; ok {
		return p, expr
	}
	return expr, ""
}
