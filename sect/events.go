// Package sect declares the vocabulary of the sect manager: its route table and the events its views exchange.
package sect

import (
	"errors"
	"fmt"
	"slices"

	"github.com/saylorsolutions/sectomie/dispatch"
	"github.com/saylorsolutions/sectomie/route"
)

var (
	ErrUnknownEvent = errors.New("unknown event")
)

// Events exchanged between views.
// The payload of each is documented alongside it, and checked by [CheckPayload].
const (
	EventSectUpdated           dispatch.Event = "sect-updated"           // Carries the sect ID as a string.
	EventDiscipleUpdated       dispatch.Event = "disciple-updated"       // Carries the disciple ID as a string.
	EventDiscipleCultivated    dispatch.Event = "disciple-cultivated"    // Carries a [Cultivated].
	EventBreakthroughAttempted dispatch.Event = "breakthrough-attempted" // Carries a [Breakthrough].
	EventResourcesCollected    dispatch.Event = "resources-collected"    // Carries the sect ID as a string.
	EventDiscipleRecruited     dispatch.Event = "disciple-recruited"     // Carries the new disciple ID as a string.
	EventTurnEnded             dispatch.Event = "turn-ended"             // Carries the number of the turn that ended as an int.
	EventViewActivated         dispatch.Event = "view-activated"         // Carries the *route.Resolution of a completed navigation.
)

// Cultivated is the payload of [EventDiscipleCultivated].
type Cultivated struct {
	DiscipleID string `json:"discipleId" yaml:"discipleId"`
	QiGained   int    `json:"qiGained" yaml:"qiGained"`
}

// Breakthrough is the payload of [EventBreakthroughAttempted].
type Breakthrough struct {
	DiscipleID string `json:"discipleId" yaml:"discipleId"`
	Success    bool   `json:"success" yaml:"success"`
	Realm      int    `json:"realm" yaml:"realm"`
	Stage      int    `json:"stage" yaml:"stage"`
}

func valueOrPointer[T any]() dispatch.ParamAssertion {
	return dispatch.AnyPass(dispatch.IsType[T](), dispatch.IsType[*T]())
}

var payloads = map[dispatch.Event]dispatch.PayloadSpec{
	EventSectUpdated:           dispatch.Payload(dispatch.IsType[string]()),
	EventDiscipleUpdated:       dispatch.Payload(dispatch.IsType[string]()),
	EventDiscipleCultivated:    dispatch.Payload(valueOrPointer[Cultivated]()),
	EventBreakthroughAttempted: dispatch.Payload(valueOrPointer[Breakthrough]()),
	EventResourcesCollected:    dispatch.Payload(dispatch.IsType[string]()),
	EventDiscipleRecruited:     dispatch.Payload(dispatch.IsType[string]()),
	EventTurnEnded:             dispatch.Payload(dispatch.IsType[int]()),
	EventViewActivated:         dispatch.Payload(dispatch.IsType[*route.Resolution]()),
}

// Events lists every event of the sect manager, sorted by name.
func Events() []dispatch.Event {
	evts := make([]dispatch.Event, 0, len(payloads))
	for evt := range payloads {
		evts = append(evts, evt)
	}
	slices.Sort(evts)
	return evts
}

// CheckPayload reports whether params are the documented payload of evt.
// Returns [ErrUnknownEvent] for an event that isn't one of [Events].
func CheckPayload(evt dispatch.Event, params []dispatch.Param) error {
	spec, ok := payloads[evt]
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownEvent, evt)
	}
	if err := spec(params); err != nil {
		return fmt.Errorf("payload of '%s': %w", evt, err)
	}
	return nil
}
