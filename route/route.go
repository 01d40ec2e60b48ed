package route

import (
	"fmt"
	"maps"
	"net/url"
	"strings"
)

// Params are named values bound from a request path by capture segments.
type Params map[string]string

// Query holds query parameters. Only a single value per key is supported.
type Query map[string]string

func (q Query) clone() Query {
	c := Query{}
	maps.Copy(c, q)
	return c
}

// Location is the target of a redirect.
// An empty Path keeps the current path, and Query is overlaid onto the current query.
type Location struct {
	Path  string
	Query Query
	err   error // set by RedirectTo when a path parameter isn't bound
}

// ParseLocation parses a 'path?query' reference into a [Location].
// Only the first value of a repeated query key is kept, and any fragment is ignored.
func ParseLocation(ref string) (Location, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return Location{}, fmt.Errorf("invalid location '%s': %w", ref, err)
	}
	loc := Location{Path: u.Path, Query: Query{}}
	for k, vals := range u.Query() {
		if len(vals) > 0 {
			loc.Query[k] = vals[0]
		}
	}
	return loc, nil
}

// Meta is an open bag of route metadata that the resolver carries along but never interprets.
// A [Table] keeps its own copy, and hands out copies. Values are not deep copied, so they should be immutable.
type Meta map[string]any

// Target is what a route activates: either a [View] or a [RedirectFunc].
type Target interface {
	target()
}

// View references a renderable component. The reference is opaque to the resolver.
type View struct {
	Component string
}

func (View) target() {}

// RedirectFunc computes a new [Location] from the parameters bound by the redirecting route.
// It must be pure: same params, same location, no side effects.
type RedirectFunc func(params Params) Location

func (RedirectFunc) target() {}

// Definition declares a route.
// A Definition with Children may omit both Name and Target to act as a pure grouping of its children.
// Child paths are relative to their parent's path.
type Definition struct {
	Path     string
	Name     string
	Target   Target
	Children []Definition
	Meta     Meta
}

// RedirectTo creates a [RedirectFunc] that fills ':name' segments of pathPattern from the bound params.
// Query values of the form ':name' are filled the same way, and are left out if the param isn't bound.
// A path segment whose param isn't bound fails the resolution with [ErrMissingParam].
// [NewTable] rejects a RedirectTo whose path needs a param its route doesn't capture.
//
//	RedirectTo("/disciple/:id", Query{"showCultivationAssignment": "true"})
func RedirectTo(pathPattern string, query Query) RedirectFunc {
	segments := splitPath(pathPattern)
	query = query.clone()
	return func(params Params) Location {
		path := make([]string, 0, len(segments))
		for _, seg := range segments {
			name, ok := strings.CutPrefix(seg, ":")
			if !ok {
				path = append(path, seg)
				continue
			}
			val := params[name]
			if len(val) == 0 || strings.Contains(val, "/") {
				return Location{err: fmt.Errorf("%w: redirect to '%s' needs '%s', which is not bound", ErrMissingParam, pathPattern, name)}
			}
			path = append(path, val)
		}
		loc := Location{
			Path:  "/" + strings.Join(path, "/"),
			Query: Query{},
		}
		for k, v := range query {
			if name, ok := strings.CutPrefix(v, ":"); ok {
				val, bound := params[name]
				if !bound {
					continue
				}
				v = val
			}
			loc.Query[k] = v
		}
		return loc
	}
}
