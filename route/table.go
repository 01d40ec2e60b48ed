package route

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/saylorsolutions/sectomie/internal/set"
)

var (
	ErrInvalidTable = errors.New("invalid route table")
)

// TableError collects every problem found while building a [Table].
// It matches [ErrInvalidTable] with [errors.Is], and each problem can be found with [errors.Is] or [errors.As].
type TableError struct {
	Problems []error
}

func (e *TableError) Error() string {
	var buf strings.Builder
	buf.WriteString(ErrInvalidTable.Error())
	buf.WriteString(": ")
	for i, err := range e.Problems {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(err.Error())
	}
	return buf.String()
}

func (e *TableError) Is(err error) bool {
	return err == ErrInvalidTable
}

func (e *TableError) Unwrap() []error {
	return e.Problems
}

func (e *TableError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Errorf(format, args...))
}

type entry struct {
	name    string
	pattern pattern
	target  Target
	meta    Meta
	layouts []string
}

// Table is an immutable, validated set of routes.
type Table struct {
	entries []*entry
	byName  map[string]*entry
}

// RouteInfo describes a route in a [Table] for tooling and diagnostics.
type RouteInfo struct {
	Name      string `json:"name" yaml:"name"`
	Pattern   string `json:"pattern" yaml:"pattern"`
	Redirect  bool   `json:"redirect,omitempty" yaml:"redirect,omitempty"`
	Component string `json:"component,omitempty" yaml:"component,omitempty"`
	Meta      Meta   `json:"meta,omitempty" yaml:"meta,omitempty"`
}

// NewTable validates and compiles route definitions.
// Definitions are matched in declaration order, depth first, when specificity is equal.
// All problems are reported together in a [TableError].
func NewTable(defs ...Definition) (*Table, error) {
	t := &Table{
		byName: map[string]*entry{},
	}
	problems := new(TableError)
	names := set.New[string]()
	var walk func(defs []Definition, prefix pattern, layouts []string, nested bool)
	walk = func(defs []Definition, prefix pattern, layouts []string, nested bool) {
		for _, def := range defs {
			label := def.Name
			if len(label) == 0 {
				label = "'" + def.Path + "'"
			}
			if !nested && !strings.HasPrefix(def.Path, "/") {
				problems.add("route %s: top level path must start with '/'", label)
			}
			own, err := parsePattern(def.Path)
			if err != nil {
				problems.add("route %s: %w", label, err)
				continue
			}
			full := prefix.join(own)
			if name, dupe := full.duplicateCapture(); dupe {
				problems.add("route %s: parameter '%s' is bound more than once", label, name)
				continue
			}

			switch target := def.Target.(type) {
			case nil:
				if len(def.Children) == 0 {
					problems.add("route %s: must have a component or redirect", label)
				} else if len(def.Name) > 0 {
					problems.add("route %s: a named route must have a component or redirect", label)
				}
			case View:
				if len(target.Component) == 0 {
					problems.add("route %s: empty component reference", label)
				}
			case RedirectFunc:
				if target == nil {
					problems.add("route %s: nil redirect function", label)
					break
				}
				if loc := target(full.placeholders()); loc.err != nil {
					problems.add("route %s: %w", label, loc.err)
				}
			}

			if len(def.Name) == 0 && len(def.Children) == 0 {
				problems.add("route %s: must have a name", label)
			}
			if len(def.Name) > 0 && def.Target != nil {
				if names.Has(def.Name) {
					problems.add("route %s: duplicate route name", label)
				} else {
					names.Add(def.Name)
					e := &entry{
						name:    def.Name,
						pattern: full,
						target:  def.Target,
						meta:    maps.Clone(def.Meta),
						layouts: layouts,
					}
					t.entries = append(t.entries, e)
					t.byName[e.name] = e
				}
			}

			if len(def.Children) > 0 {
				childLayouts := layouts
				if view, ok := def.Target.(View); ok {
					childLayouts = append(append([]string(nil), layouts...), view.Component)
				}
				walk(def.Children, full, childLayouts, true)
			}
		}
	}
	walk(defs, nil, nil, false)
	if len(problems.Problems) > 0 {
		return nil, problems
	}
	return t, nil
}

// MustTable is like [NewTable], but panics if the table is invalid.
// This is intended for tables declared in code, where an invalid table is a programming error.
func MustTable(defs ...Definition) *Table {
	t, err := NewTable(defs...)
	if err != nil {
		panic(err)
	}
	return t
}

// match finds the most specific route for path.
// Routes with more static segments win, and ties go to the earliest declared route.
func (t *Table) match(path string) (*entry, Params, bool) {
	tokens := splitPath(path)
	var (
		best       *entry
		bestParams Params
	)
	for _, e := range t.entries {
		params, ok := e.pattern.match(tokens)
		if !ok {
			continue
		}
		if best == nil || e.pattern.statics() > best.pattern.statics() {
			best = e
			bestParams = params
		}
	}
	return best, bestParams, best != nil
}

// Routes lists every matchable route in declaration order.
func (t *Table) Routes() []RouteInfo {
	infos := make([]RouteInfo, len(t.entries))
	for i, e := range t.entries {
		info := RouteInfo{
			Name:    e.name,
			Pattern: e.pattern.String(),
			Meta:    maps.Clone(e.meta),
		}
		switch target := e.target.(type) {
		case View:
			info.Component = target.Component
		case RedirectFunc:
			info.Redirect = true
		}
		infos[i] = info
	}
	return infos
}
