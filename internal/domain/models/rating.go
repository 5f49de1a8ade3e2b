// internal/domain/models/rating.go
package models

import (
	"time"

	"github.com/inspecthub/inspecthub/internal/domain/apperr"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating is a member's star rating of a completed inspection. One rating per
// (inspection, user); the unique index on those fields backs that up.
type Rating struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InspectionID primitive.ObjectID `bson:"inspection_id" json:"inspection_id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Stars        int                `bson:"stars" json:"stars"`
	Comment      string             `bson:"comment,omitempty" json:"comment,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// NewRating validates the star range and builds a rating.
func NewRating(inspectionID, userID primitive.ObjectID, stars int, comment string) (Rating, error) {
	if stars < 1 || stars > 5 {
		return Rating{}, apperr.E(apperr.InvalidInput, "Rating must be between 1 and 5 stars")
	}
	return Rating{
		ID:           primitive.NewObjectID(),
		InspectionID: inspectionID,
		UserID:       userID,
		Stars:        stars,
		Comment:      comment,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
