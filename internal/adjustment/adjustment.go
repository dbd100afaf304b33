// Package adjustment handles clock-correction requests and their HR review.
package adjustment

import (
	"context"

	"github.com/frahmantamala/timeclock/internal/core/datamodel/adjustment"
)

type ServiceAPI interface {
	Create(ctx context.Context, form CreateForm) (*adjustment.Adjustment, error)
	List(ctx context.Context) ([]adjustment.Adjustment, error)
	Review(ctx context.Context, id string, form ReviewForm) (*adjustment.Adjustment, error)
}

type UpstreamAPI interface {
	CreateAdjustment(ctx context.Context, payload adjustment.Create) (*adjustment.Adjustment, error)
	ListAdjustments(ctx context.Context) ([]adjustment.Adjustment, error)
	ReviewAdjustment(ctx context.Context, id string, status adjustment.Status, comment string) (*adjustment.Adjustment, error)
}

// Merge reconciles a list with a review outcome: the server's record replaces the entry with
// the same id, or, when the server sent no body, status and comment are patched in place.
// Last write wins.
func Merge(list []adjustment.Adjustment, id string, reviewed *adjustment.Adjustment, status adjustment.Status, comment string) []adjustment.Adjustment {
	merged := make([]adjustment.Adjustment, len(list))
	copy(merged, list)

	for i := range merged {
		if merged[i].ID != id {
			continue
		}
		if reviewed != nil {
			merged[i] = *reviewed
			continue
		}
		merged[i].Status = status
		if comment != "" {
			c := comment
			merged[i].ReviewComment = &c
		}
	}
	return merged
}
