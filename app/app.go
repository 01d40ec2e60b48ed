// Package app wires the dispatcher and resolver into one application context.
// An [App] is created once at start and passed to whatever needs to navigate, publish, or subscribe.
package app

import (
	"fmt"
	"log/slog"

	"github.com/saylorsolutions/sectomie/dispatch"
	"github.com/saylorsolutions/sectomie/internal/config"
	"github.com/saylorsolutions/sectomie/internal/logging"
	"github.com/saylorsolutions/sectomie/route"
	"github.com/saylorsolutions/sectomie/routeconf"
	"github.com/saylorsolutions/sectomie/sect"
)

type App struct {
	Events *dispatch.Dispatcher
	Router *route.Resolver
	Log    *slog.Logger
}

// New creates an [App] from conf.
// The route table is loaded from conf.RoutesFile if set, and [sect.Routes] is used otherwise.
func New(conf config.Config, log *slog.Logger) (*App, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	defs := sect.Routes()
	if len(conf.RoutesFile) > 0 {
		var err error
		defs, err = routeconf.LoadFile(conf.RoutesFile)
		if err != nil {
			return nil, err
		}
	}
	return NewWithRoutes(conf, log, defs...)
}

// NewWithRoutes is like [New], but uses the given route definitions.
// A nil log discards all output.
func NewWithRoutes(conf config.Config, log *slog.Logger, defs ...route.Definition) (*App, error) {
	if log == nil {
		log = logging.Discard()
	}
	table, err := route.NewTable(defs...)
	if err != nil {
		return nil, err
	}
	router, err := route.NewResolver(table,
		route.MaxRedirects(conf.MaxRedirects),
		route.WithLogger(log.With("component", "router")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolver: %w", err)
	}
	return &App{
		Events: dispatch.New(dispatch.WithLogger(log.With("component", "events"))),
		Router: router,
		Log:    log,
	}, nil
}

// Publish emits evt after checking params with [sect.CheckPayload].
// Nothing is emitted if the payload doesn't match the event.
func (a *App) Publish(evt dispatch.Event, params ...dispatch.Param) error {
	if err := sect.CheckPayload(evt, params); err != nil {
		a.Log.Warn("Rejected event", "event", string(evt), "error", err)
		return err
	}
	a.Events.Emit(evt, params...)
	return nil
}

// Navigate resolves path, then publishes [sect.EventViewActivated] with the [*route.Resolution] so views can react.
// A query string in path is kept, see [route.Resolver.Resolve].
// Nothing is emitted if resolution fails.
func (a *App) Navigate(path string, query route.Query) (*route.Resolution, error) {
	res, err := a.Router.Resolve(path, query)
	if err != nil {
		return nil, err
	}
	if err := a.Publish(sect.EventViewActivated, res); err != nil {
		return nil, err
	}
	return res, nil
}
