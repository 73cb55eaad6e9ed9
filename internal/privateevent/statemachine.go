package privateevent

import (
	"strings"
	"time"

	"github.com/bandvibe/band-booking-backend/internal/apperr"
	"github.com/bandvibe/band-booking-backend/middleware"
)

// Fixed package prices, matched by substring against the event type.
const (
	PriceBaptism = 700.0
	PriceWedding = 1000.0
	PriceParty   = 500.0
)

// DerivePrice maps an event type onto its package price. Matching is
// case-insensitive and checks baptism before wedding before party.
func DerivePrice(eventType string) (float64, error) {
	lowered := strings.ToLower(eventType)
	switch {
	case strings.Contains(lowered, "baptism"):
		return PriceBaptism, nil
	case strings.Contains(lowered, "wedding"):
		return PriceWedding, nil
	case strings.Contains(lowered, "party"):
		return PriceParty, nil
	default:
		return 0, apperr.Validation("event_type %q is not offered; expected baptism, wedding or party", eventType)
	}
}

// transitionKey identifies one edge of the booking lifecycle.
type transitionKey struct {
	from  Status
	to    Status
	actor middleware.ActorKind
}

// transition carries the side effects and preconditions of an edge.
type transition struct {
	check func(ev *PrivateEvent, decision string, now time.Time) error
	apply func(ev *PrivateEvent, decision string)
}

var transitions = map[transitionKey]transition{
	{StatusRequested, StatusToBeDone, middleware.ActorBand}: {
		check: func(ev *PrivateEvent, decision string, now time.Time) error {
			if strings.TrimSpace(decision) == "" {
				return apperr.Validation("accepting a booking requires a band_decision message")
			}
			return nil
		},
		apply: func(ev *PrivateEvent, decision string) {
			ev.Status = StatusToBeDone
			ev.BandDecision = decision
		},
	},
	{StatusRequested, StatusRejected, middleware.ActorBand}: {
		apply: func(ev *PrivateEvent, decision string) {
			ev.Status = StatusRejected
			if strings.TrimSpace(decision) == "" {
				decision = DefaultRejectionMessage
			}
			ev.BandDecision = decision
		},
	},
	{StatusToBeDone, StatusDone, middleware.ActorUser}: {
		check: func(ev *PrivateEvent, decision string, now time.Time) error {
			if now.Before(ev.EventDatetime) {
				return apperr.Validation("booking %d cannot be marked done before the event takes place", ev.ID)
			}
			return nil
		},
		apply: func(ev *PrivateEvent, decision string) {
			ev.Status = StatusDone
		},
	},
}

// Apply advances ev along the lifecycle if the edge exists for this actor
// kind and its preconditions hold. Ownership is the caller's concern.
//
// Failures are classified by cause: a target that is no status at all is a
// validation error, an edge reserved for the other side of the booking is
// forbidden, re-applying the current status is a conflict, and any other
// missing edge is a validation error.
func Apply(ev *PrivateEvent, target Status, actorKind middleware.ActorKind, decision string, now time.Time) error {
	switch target {
	case StatusToBeDone, StatusRejected, StatusDone:
	default:
		return apperr.Validation("unknown target status %q", target)
	}
	tr, ok := transitions[transitionKey{ev.Status, target, actorKind}]
	if !ok {
		for key := range transitions {
			if key.from == ev.Status && key.to == target {
				return apperr.Forbidden("a %s cannot move booking %d from %s to %s", actorKind, ev.ID, ev.Status, target)
			}
		}
		if ev.Status == target {
			return apperr.Conflict("booking %d is already %s", ev.ID, target)
		}
		return apperr.Validation("booking %d cannot move from %s to %s", ev.ID, ev.Status, target)
	}
	if tr.check != nil {
		if err := tr.check(ev, decision, now); err != nil {
			return err
		}
	}
	tr.apply(ev, decision)
	return nil
}
