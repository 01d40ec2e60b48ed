package route

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingParam = errors.New("missing route parameter")
)

type segment struct {
	value   string
	capture bool
}

type pattern []segment

// splitPath normalizes a path into its non-empty segments, so "/", "" and "//" are all the root path.
func splitPath(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	segments := parts[:0]
	for _, part := range parts {
		if len(part) == 0 {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}

func parsePattern(path string) (pattern, error) {
	var p pattern
	for _, token := range splitPath(path) {
		name, isCapture := strings.CutPrefix(token, ":")
		if !isCapture {
			p = append(p, segment{value: token})
			continue
		}
		if len(name) == 0 {
			return nil, fmt.Errorf("empty parameter name in path '%s'", path)
		}
		p = append(p, segment{value: name, capture: true})
	}
	return p, nil
}

func (p pattern) join(child pattern) pattern {
	joined := make(pattern, 0, len(p)+len(child))
	joined = append(joined, p...)
	return append(joined, child...)
}

// duplicateCapture returns the first capture name used more than once, if any.
func (p pattern) duplicateCapture() (string, bool) {
	seen := map[string]bool{}
	for _, seg := range p {
		if !seg.capture {
			continue
		}
		if seen[seg.value] {
			return seg.value, true
		}
		seen[seg.value] = true
	}
	return "", false
}

const placeholderParam = "1"

// placeholders binds every capture of p to a sample value.
func (p pattern) placeholders() Params {
	params := Params{}
	for _, seg := range p {
		if seg.capture {
			params[seg.value] = placeholderParam
		}
	}
	return params
}

func (p pattern) statics() int {
	var n int
	for _, seg := range p {
		if !seg.capture {
			n++
		}
	}
	return n
}

func (p pattern) match(tokens []string) (Params, bool) {
	if len(tokens) != len(p) {
		return nil, false
	}
	params := Params{}
	for i, seg := range p {
		if seg.capture {
			params[seg.value] = tokens[i]
			continue
		}
		if seg.value != tokens[i] {
			return nil, false
		}
	}
	return params, true
}

func (p pattern) build(params Params) (string, error) {
	parts := make([]string, len(p))
	for i, seg := range p {
		if !seg.capture {
			parts[i] = seg.value
			continue
		}
		val := params[seg.value]
		if len(val) == 0 || strings.Contains(val, "/") {
			return "", fmt.Errorf("%w: '%s' is required and cannot be empty or contain '/'", ErrMissingParam, seg.value)
		}
		parts[i] = val
	}
	return "/" + strings.Join(parts, "/"), nil
}

func (p pattern) String() string {
	parts := make([]string, len(p))
	for i, seg := range p {
		if seg.capture {
			parts[i] = ":" + seg.value
			continue
		}
		parts[i] = seg.value
	}
	return "/" + strings.Join(parts, "/")
}
