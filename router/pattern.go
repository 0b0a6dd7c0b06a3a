package router

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a compiled, immutable matcher over a URL path template.
// A Pattern is safe for concurrent use and evaluating it never mutates it,
// so a single compiled value can be shared across routes and requests.
type Pattern struct {
	// template is the original template string, kept for diagnostics
	// and route introspection.
	template string
	// regexp is the compiled matcher for the whole path.
	regexp *regexp.Regexp
	// params are the named parameters in template order.
	params []Param
	// groups holds the submatch index of each parameter, parallel to
	// params. A raw constraint may carry capture groups of its own, so
	// parameter values cannot be read positionally.
	groups []int
}

// Param describes a single named parameter of a Pattern.
type Param struct {
	// Name is the parameter name as written in the template.
	Name string

	// Macro is the constraint macro name ("int", "uuid", ...) when the
	// parameter was constrained by one, empty otherwise.
	Macro string
}

// Path compiles a path template into a Pattern.
//
// Template syntax, one form per path segment:
//
//	/users          literal segment, matched verbatim
//	/users/:id      :name matches exactly one non-empty segment
//	/users/:id(int) constrained parameter; see package docs for macros
//	/files/*rest    trailing wildcard, matches the rest of the path
//
// Compilation fails on a malformed template: missing leading slash,
// empty parameter name, duplicate parameter names, a wildcard that is
// not the final segment, or an invalid constraint expression. Errors are
// returned synchronously so a broken route table is caught before any
// traffic is served.
func Path(template string) (*Pattern, error) {
	if template == "" {
		return nil, fmt.Errorf("router: empty path template")
	}
	if template[0] != '/' {
		return nil, fmt.Errorf("router: path template %q must start with a slash", template)
	}

	segments := strings.Split(template[1:], "/")

	var (
		pattern strings.Builder
		params  []Param
		groups  []int
		ngroups int
	)
	pattern.WriteByte('^')

	for i, seg := range segments {
		pattern.WriteByte('/')

		switch {
		case strings.HasPrefix(seg, ":"):
			param, expr, inner, err := parseParamSegment(template, seg)
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			ngroups++
			groups = append(groups, ngroups)
			ngroups += inner
			fmt.Fprintf(&pattern, "(%s)", expr)

		case strings.HasPrefix(seg, "*"):
			if i != len(segments)-1 {
				return nil, fmt.Errorf("router: wildcard must be the final segment in %q", template)
			}
			if name := seg[1:]; name != "" {
				params = append(params, Param{Name: name})
				ngroups++
				groups = append(groups, ngroups)
				pattern.WriteString("(.*)")
			} else {
				pattern.WriteString(".*")
			}

		default:
			pattern.WriteString(regexp.QuoteMeta(seg))
		}
	}

	if err := checkDuplicateParams(template, params); err != nil {
		return nil, err
	}

	pattern.WriteByte('$')

	re, err := compilePattern(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("router: invalid path template %q: %w", template, err)
	}

	return &Pattern{
		template: template,
		regexp:   re,
		params:   params,
		groups:   groups,
	}, nil
}

// MustPath is like Path but panics on a malformed template.
// It simplifies static route tables built at program start.
func MustPath(template string) *Pattern {
	p, err := Path(template)
	if err != nil {
		panic(err)
	}
	return p
}

// parseParamSegment parses a ":name" or ":name(constraint)" segment and
// returns the parameter metadata, the regexp fragment matching it, and
// the number of capture groups the fragment carries internally.
func parseParamSegment(template, seg string) (Param, string, int, error) {
	body := seg[1:]
	expr := defaultParamPattern

	var (
		macro string
		inner int
	)
	if idx := strings.IndexByte(body, '('); idx >= 0 {
		if !strings.HasSuffix(body, ")") {
			return Param{}, "", 0, fmt.Errorf("router: unclosed constraint in %q from %q", seg, template)
		}
		constraint := body[idx+1 : len(body)-1]
		body = body[:idx]

		expr, macro = expandMacro(constraint)

		// Validate raw expressions eagerly for a precise error instead
		// of a confusing one from the composed pattern. The compiled
		// form also tells us how many capture groups the constraint
		// itself contains, which shifts submatch indices of any
		// parameter after it.
		if macro == "" {
			re, err := compilePattern("^(?:" + expr + ")$")
			if err != nil {
				return Param{}, "", 0, fmt.Errorf("router: invalid constraint %q in %q: %w", constraint, template, err)
			}
			inner = re.NumSubexp()
		}
	}

	if body == "" {
		return Param{}, "", 0, fmt.Errorf("router: missing parameter name in %q from %q", seg, template)
	}

	return Param{Name: body, Macro: macro}, "(?:" + expr + ")", inner, nil
}

// defaultParamPattern matches exactly one non-empty path segment.
const defaultParamPattern = `[^/]+`

// checkDuplicateParams returns an error if a parameter name is repeated.
func checkDuplicateParams(template string, params []Param) error {
	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if seen[p.Name] {
			return fmt.Errorf("router: duplicated parameter %q in %q", p.Name, template)
		}
		seen[p.Name] = true
	}
	return nil
}

// Template returns the original template string the Pattern was compiled
// from.
func (p *Pattern) Template() string {
	return p.template
}

// Params returns the named parameters of the Pattern in template order.
// The returned slice is a copy.
func (p *Pattern) Params() []Param {
	out := make([]Param, len(p.params))
	copy(out, p.params)
	return out
}

// Match reports whether the concrete request path matches the Pattern.
//
// Evaluation is pure: a compiled regexp cannot fail at evaluation time,
// so unlike compilation there is no error path here.
func (p *Pattern) Match(path string) bool {
	return p.regexp.MatchString(path)
}

// Vars evaluates the Pattern against a concrete path and returns the
// captured parameter values, or nil if the path does not match or the
// Pattern has no parameters.
func (p *Pattern) Vars(path string) map[string]string {
	vars, _ := p.matchVars(path)
	return vars
}

// matchVars performs a single evaluation returning both the match
// decision and the captured values. Dispatch uses this to avoid matching
// twice.
func (p *Pattern) matchVars(path string) (map[string]string, bool) {
	if len(p.params) == 0 {
		return nil, p.regexp.MatchString(path)
	}

	matches := p.regexp.FindStringSubmatch(path)
	if matches == nil {
		return nil, false
	}

	vars := make(map[string]string, len(p.params))
	for i, param := range p.params {
		if idx := p.groups[i]; idx < len(matches) {
			vars[param.Name] = matches[idx]
		}
	}
	return vars, true
}
