// Package authctx extracts the authenticated actor that the JWT middleware
// stashed in request locals.
package authctx

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"agrisathi/model"
)

// Actor is the resolved identity of the caller: who they are and what they
// may do. This is the {id, role} contract of the identity collaborator.
type Actor struct {
	ID   bson.ObjectID
	Role string
}

func (a Actor) IsOfficer() bool {
	return a.Role == model.RoleOfficer || a.Role == model.RoleAdmin
}

// ActorFrom reads the actor from c.Locals. The bool is false for anonymous
// or malformed requests.
func ActorFrom(c *fiber.Ctx) (Actor, bool) {
	uid, ok := c.Locals("user_id").(string)
	if !ok || uid == "" {
		return Actor{}, false
	}
	oid, err := bson.ObjectIDFromHex(uid)
	if err != nil {
		return Actor{}, false
	}
	role, _ := c.Locals("role").(string)
	if role == "" {
		role = model.RoleFarmer
	}
	return Actor{ID: oid, Role: role}, true
}
