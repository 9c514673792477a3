// Package render turns a validated request into agreement text by filling a
// fixed template.
package render

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/flosch/pongo2/v6"

	"docgen-api/internal/domain/form"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const (
	// Placeholder replaces blank amount-in-words fields
	Placeholder = "______________________"
	// PageBreak marks a page boundary in rendered text
	PageBreak = "\f"

	templateExt = ".tpl"
)

var (
	ErrUnknownTemplate = errors.New("unknown template")
	ErrMissingField    = errors.New("template references a missing field")
	ErrRender          = errors.New("template rendering failed")
)

// globals are visible to every template and never count as missing fields
var globals = map[string]any{
	"page_break": PageBreak,
}

type compiled struct {
	tpl    *pongo2.Template
	fields []string
}

// Renderer executes the embedded templates. All templates are compiled once
// in New; the set is read-only afterwards and safe for concurrent use.
type Renderer struct {
	templates map[string]*compiled
}

// New compiles the embedded templates
func New() (*Renderer, error) {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub)
}

// NewFromFS compiles every *.tpl file at the root of fsys
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	pongo2.SetAutoescape(false)

	set := pongo2.NewSet("docgen", pongo2.NewFSLoader(fsys))
	if set.Globals == nil {
		set.Globals = make(pongo2.Context)
	}
	set.Globals.Update(pongo2.Context(globals))

	names, err := fs.Glob(fsys, "*"+templateExt)
	if err != nil {
		return nil, fmt.Errorf("render: list templates: %w", err)
	}

	r := &Renderer{templates: make(map[string]*compiled, len(names))}
	for _, name := range names {
		src, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("render: read template %q: %w", name, err)
		}
		tpl, err := set.FromBytes(src)
		if err != nil {
			return nil, fmt.Errorf("render: compile template %q: %w", name, err)
		}
		id := strings.TrimSuffix(path.Base(name), templateExt)
		r.templates[id] = &compiled{tpl: tpl, fields: referencedFields(string(src))}
	}
	return r, nil
}

// Templates lists the available template IDs, sorted
func (r *Renderer) Templates() []string {
	out := make([]string, 0, len(r.templates))
	for id := range r.templates {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Has reports whether templateID exists
func (r *Renderer) Has(templateID string) bool {
	_, ok := r.templates[templateID]
	return ok
}

// Render fills templateID with rec. Output is byte-identical for identical input.
func (r *Renderer) Render(templateID string, rec form.Record) (string, error) {
	data, err := form.ToMap(rec)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return r.RenderData(templateID, data)
}

// RenderData fills templateID with data. data is not modified.
func (r *Renderer) RenderData(templateID string, data map[string]any) (string, error) {
	c, ok := r.templates[templateID]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}

	ctx := fillPlaceholders(data)
	for _, f := range c.fields {
		if _, ok := ctx[f]; !ok {
			return "", fmt.Errorf("%w: %q in template %q", ErrMissingField, f, templateID)
		}
	}

	out, err := c.tpl.Execute(pongo2.Context(ctx))
	if err != nil {
		return "", fmt.Errorf("%w: template %q: %v", ErrRender, templateID, err)
	}
	return normalize(out), nil
}

// fillPlaceholders returns a deep copy of in where every blank *_words value
// is replaced by Placeholder
func fillPlaceholders(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		if strings.HasSuffix(k, "_words") && isBlank(v) {
			out[k] = Placeholder
			continue
		}
		out[k] = fillValue(v)
	}
	return out
}

func fillValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return fillPlaceholders(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = fillValue(e)
		}
		return out
	default:
		return v
	}
}

func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

var (
	exprRE    = regexp.MustCompile(`\{\{-?\s*([A-Za-z_]\w*)`)
	condRE    = regexp.MustCompile(`\{%-?\s*(?:if|elif)\s+(?:not\s+)?([A-Za-z_]\w*)`)
	forRE     = regexp.MustCompile(`\{%-?\s*for\s+([A-Za-z_]\w*)(?:\s*,\s*([A-Za-z_]\w*))?\s+in\s+([A-Za-z_]\w*)`)
	builtinID = map[string]bool{"forloop": true, "true": true, "false": true, "none": true, "nil": true}
)

// referencedFields returns the top-level context names a template reads,
// excluding loop variables and globals
func referencedFields(src string) []string {
	loopVars := map[string]bool{}
	seen := map[string]bool{}

	for _, m := range forRE.FindAllStringSubmatch(src, -1) {
		loopVars[m[1]] = true
		if m[2] != "" {
			loopVars[m[2]] = true
		}
		seen[m[3]] = true
	}
	for _, re := range []*regexp.Regexp{exprRE, condRE} {
		for _, m := range re.FindAllStringSubmatch(src, -1) {
			seen[m[1]] = true
		}
	}

	out := make([]string, 0, len(seen))
	for name := range seen {
		if loopVars[name] || builtinID[name] {
			continue
		}
		if _, ok := globals[name]; ok {
			continue
		}
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// normalize unifies line endings, strips trailing blanks and ends the text with one newline
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}
