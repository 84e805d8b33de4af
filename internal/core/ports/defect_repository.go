package ports

import (
	"context"

	"laundry/internal/core/domain/model/defect"
	"laundry/internal/core/domain/model/kernel"
)

// DefectRepository defines the persistence contract for defect reports.
type DefectRepository interface {
	Add(ctx context.Context, d *defect.Defect) error
	Update(ctx context.Context, d *defect.Defect) error
	Get(ctx context.Context, id kernel.UUID) (*defect.Defect, error)
}
