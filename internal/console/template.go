package console

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/muesli/reflow/wordwrap"
)

const DefaultWidth = 80

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// parse panics on a bad template. Only used for the built-in command
// templates.
func parse(name, tmplStr string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(tmplStr))
}

// render executes tmpl and word-wraps the result to width.
func render(tmpl *template.Template, data any, width int) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}
	return wordwrap.String(buf.String(), width), nil
}
