package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Invalid(t *testing.T) {
	tests := map[string][]Definition{
		"Missing target":   {{Path: "/a", Name: "A"}},
		"Missing name":     {{Path: "/a", Target: View{"A"}}},
		"Empty component":  {{Path: "/a", Name: "A", Target: View{}}},
		"Nil redirect":     {{Path: "/a", Name: "A", Target: RedirectFunc(nil)}},
		"Duplicate name":   {{Path: "/a", Name: "A", Target: View{"A"}}, {Path: "/b", Name: "A", Target: View{"B"}}},
		"Relative top":     {{Path: "a", Name: "A", Target: View{"A"}}},
		"Empty capture":    {{Path: "/a/:", Name: "A", Target: View{"A"}}},
		"Duplicate param":  {{Path: "/a/:id/b/:id", Name: "A", Target: View{"A"}}},
		"Named group only": {{Path: "/a", Name: "A", Children: []Definition{{Path: "b", Name: "B", Target: View{"B"}}}}},
		"Nested duplicate param": {{
			Path:     "/a/:id",
			Children: []Definition{{Path: "b/:id", Name: "B", Target: View{"B"}}},
		}},
	}
	for name, defs := range tests {
		t.Run(name, func(t *testing.T) {
			table, err := NewTable(defs...)
			assert.Nil(t, table)
			assert.ErrorIs(t, err, ErrInvalidTable)
		})
	}
}

func TestNewTable_CollectsProblems(t *testing.T) {
	_, err := NewTable(
		Definition{Path: "/a", Name: "A"},
		Definition{Path: "/b", Target: View{"B"}},
		Definition{Path: "/c", Name: "C", Target: View{"C"}},
		Definition{Path: "/d", Name: "C", Target: View{"D"}},
	)
	var tableErr *TableError
	require.True(t, errors.As(err, &tableErr))
	assert.Len(t, tableErr.Problems, 3)
	assert.Contains(t, err.Error(), "route A: must have a component or redirect")
	assert.Contains(t, err.Error(), "route C: duplicate route name")
}

func TestNewTable_Groups(t *testing.T) {
	table, err := NewTable(Definition{
		Path: "/dashboard",
		Children: []Definition{
			{Path: "/events", Name: "EventsPage", Target: View{"EventsPage"}},
		},
	})
	require.NoError(t, err)
	routes := table.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/dashboard/events", routes[0].Pattern, "Child paths are always relative")
}

func TestMustTable(t *testing.T) {
	assert.Panics(t, func() {
		MustTable(Definition{Path: "/a"})
	})
	assert.NotPanics(t, func() {
		MustTable(Definition{Path: "/a", Name: "A", Target: View{"A"}})
	})
}

func TestTable_Match_DeclarationOrder(t *testing.T) {
	table := MustTable(
		Definition{Path: "/x/:a", Name: "First", Target: View{"First"}},
		Definition{Path: "/x/:b", Name: "Second", Target: View{"Second"}},
	)
	e, params, ok := table.match("/x/1")
	require.True(t, ok)
	assert.Equal(t, "First", e.name)
	assert.Equal(t, Params{"a": "1"}, params)
}

func TestNewTable_RedirectNeedsUnboundParam(t *testing.T) {
	_, err := NewTable(
		Definition{Path: "/disciples/:id", Name: "DiscipleDetail", Target: View{"DiscipleDetail"}},
		Definition{Path: "/disciples", Name: "DisciplesPage", Target: View{"DisciplesPage"}},
		Definition{
			Path: "/dashboard",
			Children: []Definition{
				{Path: "cultivation/:id", Name: "Cultivation", Target: RedirectTo("/disciples/:discipleId", nil)},
			},
		},
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTable)
	assert.ErrorIs(t, err, ErrMissingParam)
	assert.ErrorContains(t, err, "route Cultivation")
	assert.ErrorContains(t, err, "'discipleId'")
}

func TestNewTable_MetaIsCopied(t *testing.T) {
	meta := Meta{"underConstruction": true}
	table := MustTable(Definition{Path: "/resources", Name: "Resources", Target: View{"EventsPage"}, Meta: meta})
	meta["underConstruction"] = false
	meta["injected"] = "x"

	r := testResolver(t, table)
	res, err := r.Resolve("/resources", nil)
	require.NoError(t, err)
	assert.Equal(t, Meta{"underConstruction": true}, res.Meta)

	res.Meta["injected"] = "x"
	routes := r.Routes()
	routes[0].Meta["injected"] = "x"

	res, err = r.Resolve("/resources", nil)
	require.NoError(t, err)
	assert.Equal(t, Meta{"underConstruction": true}, res.Meta, "Results should not share the table's metadata")
	assert.Equal(t, Meta{"underConstruction": true}, r.Routes()[0].Meta)
}
