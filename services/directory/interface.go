package directory

import (
	"context"

	"carewell/models"
)

// Service serves the branch-department-doctor cascade the booking flow
// and the directory pages share.
type Service interface {
	Branches(ctx context.Context) ([]models.Branch, error)
	Departments(ctx context.Context, branchID string) ([]models.Department, error)
	Doctors(ctx context.Context, branchID, departmentID string) ([]models.Doctor, error)
}
