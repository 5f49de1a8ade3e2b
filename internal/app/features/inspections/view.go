// internal/app/features/inspections/view.go
package inspections

import (
	"context"
	"time"

	userstore "github.com/inspecthub/inspecthub/internal/app/store/users"
	"github.com/inspecthub/inspecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
)

// inspectionView is the response shape for a single inspection, with the
// assignment and attendee sets expanded into user references. Ids whose
// account has been deleted are omitted.
type inspectionView struct {
	ID          string              `json:"id"`
	GroupID     string              `json:"groupId"`
	Address     string              `json:"address"`
	ScheduledAt time.Time           `json:"scheduledAt"`
	CreatorID   string              `json:"creatorId"`
	AssignedTo  []models.PublicUser `json:"assignedTo"`
	Attendees   []models.PublicUser `json:"attendees"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

type inspectionResponse struct {
	Message    string         `json:"message"`
	Inspection inspectionView `json:"inspection"`
}

type inspectionsResponse struct {
	Message     string           `json:"message"`
	Inspections []inspectionView `json:"inspections"`
}

func buildView(ctx context.Context, db *mongo.Database, insp *models.Inspection) (inspectionView, error) {
	us := userstore.New(db)

	assigned, err := us.GetManyByIDs(ctx, insp.AssignedTo)
	if err != nil {
		return inspectionView{}, err
	}
	attending, err := us.GetManyByIDs(ctx, insp.Attendees)
	if err != nil {
		return inspectionView{}, err
	}

	v := inspectionView{
		ID:          insp.ID.Hex(),
		GroupID:     insp.GroupID.Hex(),
		Address:     insp.Address,
		ScheduledAt: insp.ScheduledAt,
		CreatorID:   insp.CreatorID.Hex(),
		AssignedTo:  make([]models.PublicUser, 0, len(assigned)),
		Attendees:   make([]models.PublicUser, 0, len(attending)),
		CreatedAt:   insp.CreatedAt,
		UpdatedAt:   insp.UpdatedAt,
	}
	for _, u := range assigned {
		v.AssignedTo = append(v.AssignedTo, u.Public())
	}
	for _, u := range attending {
		v.Attendees = append(v.Attendees, u.Public())
	}
	return v, nil
}
