package analyze

import (
	"go/ast"
	"strconv"
	"strings"

	"optic-generator/internal/decl"
	"optic-generator/internal/diagnostic"
	"optic-generator/internal/match"
)

const (
	directivePrefix = "//optic"

	dirEnum   = "enum"
	dirDerive = "derive"
	dirWhere  = "where"
	dirIndex  = "index"
)

var knownDirectives = []string{dirEnum, dirDerive, dirWhere, dirIndex}

// directives are the optic comment lines attached to one type declaration.
type directives struct {
	optic    *decl.OpticAnnotation // "//optic", "//optic(ref)", "//optic(mut)"
	enum     bool
	variants []string
	derive   string
	where    []decl.WherePredicate
	index    []indexDirective
	problems []problem
}

type indexDirective struct {
	index   int
	payload string
}

// problem is a directive that could not be read.
type problem struct {
	code string
	msg  string
}

func (d *directives) empty() bool {
	return d.optic == nil && !d.enum && d.derive == "" && len(d.where) == 0 && len(d.index) == 0
}

// parseDirectives collects the optic directives of a doc comment group.
func parseDirectives(groups ...*ast.CommentGroup) *directives {
	d := &directives{}

	for _, g := range groups {
		if g == nil {
			continue
		}

		for _, c := range g.List {
			d.parseLine(c.Text)
		}
	}

	return d
}

func (d *directives) parseLine(text string) {
	rest, ok := strings.CutPrefix(text, directivePrefix)
	if !ok {
		return
	}

	if named, ok := strings.CutPrefix(rest, ":"); ok {
		name, arg, _ := strings.Cut(strings.TrimSpace(named), " ")
		d.parseNamed(name, strings.TrimSpace(arg))

		return
	}

	// "//optical" is just a comment.
	if rest != "" && rest[0] != '(' && rest[0] != ' ' && rest[0] != '\t' {
		return
	}

	d.optic = decl.Annotate(strings.TrimSpace(rest))
}

func (d *directives) parseNamed(name, arg string) {
	switch name {
	case dirEnum:
		d.enum = true
		d.variants = append(d.variants, strings.Fields(arg)...)

	case dirDerive:
		if d.derive != "" {
			d.derive += ","
		}

		d.derive += arg

	case dirWhere:
		param, constraint, _ := strings.Cut(arg, " ")

		constraint = strings.TrimSpace(constraint)
		if param == "" || constraint == "" {
			d.problems = append(d.problems, problem{
				code: diagnostic.CodeInvalidWhere,
				msg:  "expected //optic:where <param> <constraint>, got " + strconv.Quote(arg),
			})

			return
		}

		d.where = append(d.where, decl.WherePredicate{Param: param, Constraint: constraint})

	case dirIndex:
		num, payload, _ := strings.Cut(arg, " ")

		i, err := strconv.Atoi(num)
		if err != nil || i < 0 {
			d.problems = append(d.problems, problem{
				code: diagnostic.CodeMalformedDirective,
				msg:  "expected //optic:index <n> [(mode)], got " + strconv.Quote(arg),
			})

			return
		}

		d.index = append(d.index, indexDirective{index: i, payload: strings.TrimSpace(payload)})

	default:
		d.problems = append(d.problems, problem{
			code: diagnostic.CodeUnknownDirective,
			msg:  "unknown directive //optic:" + name + match.Hint(name, knownDirectives),
		})
	}
}
