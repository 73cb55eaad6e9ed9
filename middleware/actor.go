package middleware

import (
	"github.com/gin-gonic/gin"
)

// ActorKind says which side of the marketplace the caller is on.
type ActorKind string

const (
	ActorUser  ActorKind = "user"
	ActorBand  ActorKind = "band"
	ActorAdmin ActorKind = "admin"
)

// Actor is the resolved identity of the current request. It replaces the
// implicit "session has user_id vs band_id" detection with an explicit
// tagged value: exactly one kind, and ID is meaningful for users and bands.
type Actor struct {
	Kind     ActorKind
	ID       uint
	Username string
}

func (a Actor) IsUser() bool  { return a.Kind == ActorUser }
func (a Actor) IsBand() bool  { return a.Kind == ActorBand }
func (a Actor) IsAdmin() bool { return a.Kind == ActorAdmin }

const actorContextKey = "actor"

// ActorFromContext pulls the Actor set by AuthMiddleware.
func ActorFromContext(c *gin.Context) (Actor, bool) {
	raw, exists := c.Get(actorContextKey)
	if !exists {
		return Actor{}, false
	}
	actor, ok := raw.(Actor)
	return actor, ok
}
