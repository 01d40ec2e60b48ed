// Package routeconf loads route tables from YAML documents.
//
// Redirects are declared as data and compiled with [route.RedirectTo], so they stay pure:
//
//	routes:
//	  - path: /cultivation/:id
//	    name: Cultivation
//	    redirect:
//	      path: /disciple/:id
//	      query:
//	        showCultivationAssignment: "true"
package routeconf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/saylorsolutions/sectomie/route"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidConfig = errors.New("invalid route config")
)

// Document is the root of a route table document.
type Document struct {
	Routes []Entry `yaml:"routes"`
}

// Entry is one route in a [Document].
type Entry struct {
	Path      string         `yaml:"path"`
	Name      string         `yaml:"name,omitempty"`
	Component string         `yaml:"component,omitempty"`
	Redirect  *Redirect      `yaml:"redirect,omitempty"`
	Children  []Entry        `yaml:"children,omitempty"`
	Meta      map[string]any `yaml:"meta,omitempty"`
}

// Redirect declares a redirect target.
// Path segments and query values of the form ':name' are filled from the matched route's params.
type Redirect struct {
	Path  string            `yaml:"path"`
	Query map[string]string `yaml:"query,omitempty"`
}

// Load decodes a YAML document into route definitions.
// Unknown fields are rejected. The definitions are not validated as a table, that's done by [route.NewTable].
func Load(r io.Reader) ([]route.Definition, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidConfig)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(doc.Routes) == 0 {
		return nil, fmt.Errorf("%w: no routes declared", ErrInvalidConfig)
	}
	return definitions(doc.Routes, "routes")
}

// LoadFile is like [Load], but reads the document from a file.
func LoadFile(path string) ([]route.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route config: %w", err)
	}
	defs, err := Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

func definitions(entries []Entry, at string) ([]route.Definition, error) {
	defs := make([]route.Definition, len(entries))
	for i, e := range entries {
		loc := fmt.Sprintf("%s[%d]", at, i)
		if len(e.Name) > 0 {
			loc = fmt.Sprintf("%s (%s)", loc, e.Name)
		}
		def := route.Definition{
			Path: e.Path,
			Name: e.Name,
		}
		if len(e.Meta) > 0 {
			def.Meta = route.Meta(e.Meta)
		}
		switch {
		case len(e.Component) > 0 && e.Redirect != nil:
			return nil, fmt.Errorf("%w: %s: component and redirect are mutually exclusive", ErrInvalidConfig, loc)
		case len(e.Component) > 0:
			def.Target = route.View{Component: e.Component}
		case e.Redirect != nil:
			if len(e.Redirect.Path) == 0 {
				return nil, fmt.Errorf("%w: %s: redirect must have a path", ErrInvalidConfig, loc)
			}
			def.Target = route.RedirectTo(e.Redirect.Path, e.Redirect.Query)
		}
		if len(e.Children) > 0 {
			children, err := definitions(e.Children, loc+".children")
			if err != nil {
				return nil, err
			}
			def.Children = children
		}
		defs[i] = def
	}
	return defs, nil
}
