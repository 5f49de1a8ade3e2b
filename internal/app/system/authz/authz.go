// Package authz resolves the request's authenticated identity into the
// actor ObjectID that core operations take as a parameter.
package authz

import (
	"net/http"

	"github.com/inspecthub/inspecthub/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor returns the authenticated user's ObjectID. If no user is present in
// context, or the stored id is malformed (session corruption), it fails
// closed with ok=false so callers can trust ok=true means a valid actor.
func Actor(r *http.Request) (primitive.ObjectID, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

// ActorUser returns both the parsed actor id and the session identity.
func ActorUser(r *http.Request) (primitive.ObjectID, *auth.SessionUser, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return primitive.NilObjectID, nil, false
	}
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return primitive.NilObjectID, nil, false
	}
	return oid, user, true
}
