package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/saylorsolutions/sectomie/dispatch"
	"github.com/saylorsolutions/sectomie/internal/config"
	"github.com/saylorsolutions/sectomie/internal/logging"
	"github.com/saylorsolutions/sectomie/route"
	"github.com/saylorsolutions/sectomie/sect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_Navigate(t *testing.T) {
	a, err := New(config.Default(), logging.Discard())
	require.NoError(t, err)

	var activated []*route.Resolution
	a.Events.Subscribe(sect.EventViewActivated, func(params ...dispatch.Param) error {
		var res *route.Resolution
		if err := dispatch.MapParam(&res, params); err != nil {
			return err
		}
		activated = append(activated, res)
		return nil
	})

	res, err := a.Navigate("/cultivation/42", nil)
	require.NoError(t, err)
	assert.Equal(t, sect.RouteDiscipleDetail, res.Name)
	require.Len(t, activated, 1)
	assert.Same(t, res, activated[0])

	_, err = a.Navigate("/nonexistent", nil)
	assert.ErrorIs(t, err, route.ErrNoMatch)
	assert.Len(t, activated, 1, "Failed navigation should not activate a view")
}

func TestNew_RoutesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.yaml")
	doc := "routes:\n  - path: /only\n    name: Only\n    component: Only\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0600))

	conf := config.Default()
	conf.RoutesFile = path
	a, err := New(conf, logging.Discard())
	require.NoError(t, err)

	res, err := a.Navigate("/only", nil)
	require.NoError(t, err)
	assert.Equal(t, "Only", res.Name)
	_, err = a.Navigate("/", nil)
	assert.ErrorIs(t, err, route.ErrNoMatch, "The built-in table should be replaced")
}

func TestNew_Invalid(t *testing.T) {
	conf := config.Default()
	conf.MaxRedirects = 0
	_, err := New(conf, logging.Discard())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	conf = config.Default()
	conf.RoutesFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = New(conf, logging.Discard())
	assert.Error(t, err)

	_, err = NewWithRoutes(config.Default(), logging.Discard(), route.Definition{Path: "/broken"})
	assert.ErrorIs(t, err, route.ErrInvalidTable)
}

func TestApp_RedirectLoop(t *testing.T) {
	a, err := NewWithRoutes(config.Default(), logging.Discard(),
		route.Definition{Path: "/a", Name: "A", Target: route.RedirectTo("/b", nil)},
		route.Definition{Path: "/b", Name: "B", Target: route.RedirectTo("/a", nil)},
	)
	require.NoError(t, err)
	_, err = a.Navigate("/a", nil)
	assert.ErrorIs(t, err, route.ErrRedirectLoop)
}

func TestApp_Publish(t *testing.T) {
	a, err := New(config.Default(), logging.Discard())
	require.NoError(t, err)

	var received []sect.Breakthrough
	a.Events.Subscribe(sect.EventBreakthroughAttempted, func(params ...dispatch.Param) error {
		var b sect.Breakthrough
		if err := dispatch.MapParam(&b, params); err != nil {
			return err
		}
		received = append(received, b)
		return nil
	})

	attempt := sect.Breakthrough{DiscipleID: "7", Success: true, Realm: 2, Stage: 1}
	require.NoError(t, a.Publish(sect.EventBreakthroughAttempted, attempt))
	assert.Equal(t, []sect.Breakthrough{attempt}, received)

	assert.ErrorIs(t, a.Publish(sect.EventBreakthroughAttempted, sect.Cultivated{DiscipleID: "7"}), dispatch.ErrUnexpectedParam)
	assert.ErrorIs(t, a.Publish(sect.EventBreakthroughAttempted), dispatch.ErrMissingParam)
	assert.ErrorIs(t, a.Publish("sect-destroyed", "sect-1"), sect.ErrUnknownEvent)
	assert.Len(t, received, 1, "Rejected payloads should not be emitted")
}

func TestApp_Navigate_QueryInPath(t *testing.T) {
	a, err := New(config.Default(), logging.Discard())
	require.NoError(t, err)
	res, err := a.Navigate("/cultivation/1?from=events", nil)
	require.NoError(t, err)
	assert.Equal(t, route.Query{"from": "events", sect.CultivationAssignmentFlag: "true"}, res.Query)
}
