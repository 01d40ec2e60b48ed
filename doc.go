/*
Package sectomie is the navigation and event core of a cultivation sect manager's client.

The pieces are small and meant to be used together through the app package:
  - dispatch is a synchronous publish/subscribe registry for decoupled views.
  - route resolves paths against a route table, following redirects with a bounded depth.
  - routeconf loads route tables from YAML.
  - sect declares the application's own routes and events.

The sectnav command in cmd/sectnav lists, resolves, and checks a route table from the command line.
*/
package sectomie
