/*
Package route provides table driven path matching, with redirects that can rewrite a request into a different location.

# Route Tables

A [Definition] maps a path pattern to a [Target], which is either a [View] or a [RedirectFunc].
Path patterns are '/' separated, and a segment starting with ':' captures the request token at that position into [Params].
Definitions may have Children, whose paths are relative to the parent.

Use [NewTable] to validate and compile definitions. A [Table] can't be changed after it's created.

# Resolution

A [Resolver] matches a path against a [Table]. When more than one route matches, the route with the most static segments wins.

When the matched route is a [RedirectFunc], it's called with the bound [Params] and matching starts over with the returned [Location].
The redirect's query is laid over the request's query, which is how context like an ID survives a change of path.
Resolution is bounded: following more than [DefaultMaxRedirects] redirects (or the [MaxRedirects] option) fails with a [*RedirectLoopError] instead of looping.

A path that matches nothing fails with a [*NoMatchError], and there is no default route.
Choosing a fallback view is up to the caller.
*/
package route
