package derive

import (
	"strings"
	"text/template"
)

var templates = template.Must(template.New("derive").Parse(`
{{- define "structAccessor" -}}
// {{.Name}} is the optic accessor for fields named {{.Member}}.
//
//nolint:revive // accessor names follow member names
type {{.Name}}[O any] struct {
	Optic O
}
{{- end}}

{{- define "enumAccessor" -}}
// {{.Name}} is the optic accessor for variants named {{.Member}}.
type {{.Name}}[O any] struct {
	Optic O
}

// String describes the accessor and its inner optic.
func (o {{.Name}}[O]) String() string {
	return fmt.Sprintf("{{.Name}}(%v)", o.Optic)
}
{{- end}}

{{- define "impl" -}}
// {{.Func}} implements {{.RT}}.{{.Iface}} for {{.Path}}.
func {{.Func}}[{{.TypeParams}}]({{.Recv}} {{.Accessor}}[{{.Inner}}]) {{.RT}}.{{.Adapter}}[{{.Source}}, {{.To}}] {
	return func({{.Src}} {{.Param}}) {{.Result}} {
{{- range .Body}}
{{if .}}		{{.}}{{end}}
{{- end}}
	}
}
{{- end}}

{{- define "review" -}}
// {{.Func}} implements {{.RT}}.Review for {{.Path}}.
func {{.Func}}[{{.TypeParams}}]({{.Recv}} {{.Accessor}}[{{.Inner}}]) {{.RT}}.ReviewFunc[{{.From}}, {{.Source}}] {
	return func({{.Src}} {{.From}}) {{.Source}} {
{{- range .Body}}
{{if .}}		{{.}}{{end}}
{{- end}}
	}
}
{{- end}}
`))

// accessorData feeds the accessor definition templates.
type accessorData struct {
	Name   string
	Member string
}

// implData feeds the impl and review templates.
type implData struct {
	Func       string
	Iface      string
	Path       string // Owner.member, for the doc comment
	TypeParams string
	Recv       string
	Accessor   string
	Inner      string
	RT         string
	Adapter    string
	Source     string // owner type expression
	To         string
	From       string
	Src        string
	Param      string
	Result     string
	Body       []string
}

func render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := templates.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}

	return sb.String(), nil
}
