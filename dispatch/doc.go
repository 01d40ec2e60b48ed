/*
Package dispatch provides a synchronous event dispatcher that allows loose coupling between components of an application.

# Design Priorities

  - It should be deterministic. Handlers run on the calling goroutine, in the order they were subscribed.
  - It should be transparent in its results by reporting handler failures, without letting one failure affect sibling handlers.
  - It should be small. The runtime contract is [Dispatcher.Subscribe], [Dispatcher.Unsubscribe], and [Dispatcher.Emit], nothing more.

# Dispatcher Primitives

Every [Event] is a string naming something that happens in an application.
It's recommended to declare the events of a domain as constants in one place, so there's a consistent, documented reference.

An event may be accompanied by [Param] values that provide more detail about the event.
A [Param] may be any type, so a [ParamAssertion] can be used to make assertions about them, and [Payload] combines assertions into a [PayloadSpec] for a whole parameter list.
For the common single payload case, [MapParam] is usually all that's needed.

# Dispatcher Initialization

Use [New] to create a [Dispatcher]. There is intentionally no global instance.
Create one at application start and pass it to every component that needs to publish or subscribe, which also lets tests create isolated instances.

Construction options configure how failures are reported:
  - [WithLogger] sets the [slog.Logger] used to log each failure.
  - [OnFailure] registers a function that receives each [SubscriberError].

# Event Flow

A [Handler] is registered for an [Event] with [Dispatcher.Subscribe].
Subscribing the same function twice will cause it to be called twice per emission.

[Dispatcher.Emit] calls every handler registered for the event when Emit was called.
A handler that returns an error or panics produces a [SubscriberError], and the remaining handlers are still called.
The same holds for a failure hook that panics.

[Dispatcher.Unsubscribe] removes all handlers for the given events, or every handler when no event is given.
There is no way to remove a single handler.
*/
package dispatch
