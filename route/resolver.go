package route

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"
	"strings"
)

var (
	ErrNoMatch      = errors.New("no matching route")
	ErrRedirectLoop = errors.New("too many redirects")
)

const (
	DefaultMaxRedirects = 2 // DefaultMaxRedirects is the number of redirects a resolution may follow unless overridden with [MaxRedirects].
)

// NoMatchError is returned when a path matches no route.
// This is expected for user supplied paths, and should be handled with a fallback view.
type NoMatchError struct {
	Path      string
	Redirects []string // Redirects lists the redirect routes followed before the unmatched path, if any.
}

func (e *NoMatchError) Error() string {
	if len(e.Redirects) > 0 {
		return fmt.Sprintf("%s for path '%s' (after redirects %s)", ErrNoMatch, e.Path, strings.Join(e.Redirects, " -> "))
	}
	return fmt.Sprintf("%s for path '%s'", ErrNoMatch, e.Path)
}

func (e *NoMatchError) Is(err error) bool {
	return err == ErrNoMatch
}

// RedirectLoopError is returned when resolving would follow more redirects than allowed.
// This always indicates a defect in the route table.
type RedirectLoopError struct {
	Chain []string // Chain is the sequence of redirect route names, ending with the redirect that exceeded the limit.
	Limit int
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("%s (limit %d): %s", ErrRedirectLoop, e.Limit, strings.Join(e.Chain, " -> "))
}

func (e *RedirectLoopError) Is(err error) bool {
	return err == ErrRedirectLoop
}

// Resolution is the final route of a navigation.
type Resolution struct {
	Name      string   `json:"name" yaml:"name"`
	Pattern   string   `json:"pattern" yaml:"pattern"`
	Component string   `json:"component" yaml:"component"`
	Params    Params   `json:"params" yaml:"params"`
	Query     Query    `json:"query" yaml:"query"`
	Meta      Meta     `json:"meta,omitempty" yaml:"meta,omitempty"`
	Layouts   []string `json:"layouts,omitempty" yaml:"layouts,omitempty"`     // Layouts are the components of enclosing parent routes, outermost first.
	Redirects []string `json:"redirects,omitempty" yaml:"redirects,omitempty"` // Redirects are the names of redirect routes followed to get here.
}

type resolverConf struct {
	maxRedirects int
	log          *slog.Logger
}

// Option configures a [Resolver].
type Option func(conf *resolverConf) error

// MaxRedirects sets the number of redirects a single resolution may follow.
func MaxRedirects(n int) Option {
	return func(conf *resolverConf) error {
		if n < 1 {
			return fmt.Errorf("max redirects must be >= 1, got %d", n)
		}
		conf.maxRedirects = n
		return nil
	}
}

// WithLogger sets the logger for the [Resolver].
// Redirect loops are logged at error level, and resolutions at debug level.
func WithLogger(log *slog.Logger) Option {
	return func(conf *resolverConf) error {
		if log == nil {
			return errors.New("nil logger")
		}
		conf.log = log
		return nil
	}
}

// Resolver resolves paths against a [Table], following redirects.
// No state is kept between calls, so a Resolver may be shared freely.
type Resolver struct {
	table        *Table
	maxRedirects int
	log          *slog.Logger
}

func NewResolver(table *Table, opts ...Option) (*Resolver, error) {
	if table == nil {
		return nil, errors.New("nil route table")
	}
	conf := resolverConf{
		maxRedirects: DefaultMaxRedirects,
		log:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if err := opt(&conf); err != nil {
			return nil, err
		}
	}
	return &Resolver{
		table:        table,
		maxRedirects: conf.maxRedirects,
		log:          conf.log,
	}, nil
}

// Resolve finds the route for path, following any redirects.
// A query string in path is parsed with [ParseLocation], and values in query take precedence over it.
//
// Returns a [*NoMatchError] if the path, or a redirect target, matches no route.
// Returns a [*RedirectLoopError] if more redirects than allowed would be followed.
func (r *Resolver) Resolve(path string, query Query) (*Resolution, error) {
	if strings.ContainsAny(path, "?#") {
		loc, err := ParseLocation(path)
		if err != nil {
			return nil, err
		}
		maps.Copy(loc.Query, query)
		path, query = loc.Path, loc.Query
	}
	var (
		current = Location{Path: path, Query: query.clone()}
		chain   []string
	)
	for {
		e, params, ok := r.table.match(current.Path)
		if !ok {
			r.log.Debug("No route matched", "path", current.Path, "requested", path)
			return nil, &NoMatchError{Path: current.Path, Redirects: chain}
		}
		switch target := e.target.(type) {
		case View:
			r.log.Debug("Resolved route", "path", path, "route", e.name, "redirects", len(chain))
			return &Resolution{
				Name:      e.name,
				Pattern:   e.pattern.String(),
				Component: target.Component,
				Params:    params,
				Query:     current.Query,
				Meta:      maps.Clone(e.meta),
				Layouts:   slices.Clone(e.layouts),
				Redirects: chain,
			}, nil
		case RedirectFunc:
			chain = append(chain, e.name)
			if len(chain) > r.maxRedirects {
				err := &RedirectLoopError{Chain: chain, Limit: r.maxRedirects}
				r.log.Error("Redirect limit exceeded, the route table is misconfigured", "path", path, "chain", strings.Join(chain, " -> "), "limit", r.maxRedirects)
				return nil, err
			}
			next := target(maps.Clone(params))
			if next.err != nil {
				return nil, fmt.Errorf("route '%s': %w", e.name, next.err)
			}
			current = current.follow(next)
		default:
			return nil, fmt.Errorf("route '%s' has unsupported target %T", e.name, target)
		}
	}
}

func (l Location) follow(next Location) Location {
	path := next.Path
	if len(path) == 0 {
		path = l.Path
	}
	query := l.Query.clone()
	maps.Copy(query, next.Query)
	return Location{Path: path, Query: query}
}

// ResolveURL parses a 'path?query' reference with [ParseLocation] and resolves it with [Resolver.Resolve].
func (r *Resolver) ResolveURL(ref string) (*Resolution, error) {
	loc, err := ParseLocation(ref)
	if err != nil {
		return nil, err
	}
	return r.Resolve(loc.Path, loc.Query)
}

// PathFor builds the path for a named route from params.
// Returns a [*NoMatchError] if there is no route with that name.
func (r *Resolver) PathFor(name string, params Params) (string, error) {
	e, ok := r.table.byName[name]
	if !ok {
		return "", &NoMatchError{Path: name}
	}
	path, err := e.pattern.build(params)
	if err != nil {
		return "", fmt.Errorf("route '%s': %w", name, err)
	}
	return path, nil
}

// Routes lists the routes of the underlying [Table].
func (r *Resolver) Routes() []RouteInfo {
	return r.table.Routes()
}

// MaxRedirects returns the number of redirects a resolution may follow.
func (r *Resolver) MaxRedirects() int {
	return r.maxRedirects
}
