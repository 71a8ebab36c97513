// Package pathtemplate compiles declared path templates such as
// "/say-hello/{first}/{last}" into matchers that extract named segment
// values from a request path (spec.md §4.1).
//
// There is no single teacher file this is grounded on — the teacher
// (pitabwire-thesa) delegates path matching to go-chi/chi, which doesn't
// expose the case-insensitive-literal, structure-keyed matching this spec
// requires. The regexp-building technique below follows the general
// idiom chi itself uses internally (compile each template once into a
// regular expression with one capture group per placeholder, mapped back to
// placeholder names by position), reimplemented directly against the
// standard library's regexp package.
package pathtemplate

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Matcher is a compiled path template.
type Matcher struct {
	template       string
	paramNames     []string
	re             *regexp.Regexp
	structureKey   string
}

// placeholderPattern matches a single "{name}" segment placeholder.
var placeholderPattern = regexp.MustCompile(`^\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// Compile builds a Matcher from a path template. The template must start
// with "/"; each "{name}" placeholder must be unique within the template.
func Compile(template string) (*Matcher, error) {
	if !strings.HasPrefix(template, "/") {
		return nil, fmt.Errorf("pathtemplate: template %q must start with %q", template, "/")
	}

	segments := strings.Split(strings.TrimPrefix(template, "/"), "/")

	var reBuilder strings.Builder
	reBuilder.WriteString("^")

	var names []string
	seen := make(map[string]bool)
	var structureParts []string

	for _, seg := range segments {
		if seg == "" {
			return nil, fmt.Errorf("pathtemplate: template %q has an empty segment", template)
		}
		reBuilder.WriteString("/")

		if m := placeholderPattern.FindStringSubmatch(seg); m != nil {
			name := m[1]
			if seen[name] {
				return nil, fmt.Errorf("pathtemplate: template %q repeats placeholder %q", template, name)
			}
			seen[name] = true
			names = append(names, name)
			reBuilder.WriteString(`([^/]+)`)
			structureParts = append(structureParts, "{}")
			continue
		}

		if strings.ContainsAny(seg, "{}") {
			return nil, fmt.Errorf("pathtemplate: template %q has a malformed placeholder in segment %q", template, seg)
		}

		reBuilder.WriteString(regexp.QuoteMeta(seg))
		structureParts = append(structureParts, strings.ToLower(seg))
	}
	reBuilder.WriteString("$")

	re, err := regexp.Compile("(?i)" + reBuilder.String())
	if err != nil {
		return nil, fmt.Errorf("pathtemplate: compiling %q: %w", template, err)
	}

	return &Matcher{
		template:     template,
		paramNames:   names,
		re:           re,
		structureKey: strings.Join(structureParts, "/"),
	}, nil
}

// Template returns the original template string this Matcher was compiled
// from.
func (m *Matcher) Template() string { return m.template }

// ParamNames returns the ordered placeholder names declared in the
// template.
func (m *Matcher) ParamNames() []string {
	out := make([]string, len(m.paramNames))
	copy(out, m.paramNames)
	return out
}

// StructureKey returns the method-independent key derived from segment
// count plus literal segments (lower-cased), used by the route table to
// detect two templates that would resolve identically for the same method
// (spec.md §3, route table invariants).
func (m *Matcher) StructureKey() string { return m.structureKey }

// Match attempts to match urlPath (the request's URL path, not including
// query string) against the template. It returns the decoded placeholder
// values on success. A percent-decoding failure on any captured segment is
// treated as no match, per spec.md §4.1.
func (m *Matcher) Match(urlPath string) (map[string]string, bool) {
	groups := m.re.FindStringSubmatch(urlPath)
	if groups == nil {
		return nil, false
	}

	params := make(map[string]string, len(m.paramNames))
	for i, name := range m.paramNames {
		raw := groups[i+1]
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return nil, false
		}
		if decoded == "" {
			return nil, false
		}
		params[name] = decoded
	}
	return params, true
}
