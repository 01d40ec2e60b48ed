package route

import (
	"errors"
	"fmt"
)

// Verify resolves every redirect route of the table with placeholder params, and reports every one that fails.
// This finds redirect loops and redirects to nowhere before a user does.
func (r *Resolver) Verify() error {
	var errs []error
	for _, e := range r.table.entries {
		if _, ok := e.target.(RedirectFunc); !ok {
			continue
		}
		path, err := e.pattern.build(e.pattern.placeholders())
		if err != nil {
			errs = append(errs, fmt.Errorf("route '%s': %w", e.name, err))
			continue
		}
		if _, err := r.Resolve(path, nil); err != nil {
			errs = append(errs, fmt.Errorf("route '%s': %w", e.name, err))
		}
	}
	return errors.Join(errs...)
}
