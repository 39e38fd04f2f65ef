// File: database/repository/directory/interface.go
package directoryRepo

import (
	"context"

	"carewell/database"
	"carewell/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type DirectoryRepository interface {
	GetBranches(ctx context.Context) ([]models.Branch, error)
	GetBranchByID(ctx context.Context, branchID string) (*models.Branch, error)
	GetDepartments(ctx context.Context) ([]models.Department, error)
	GetDepartmentByID(ctx context.Context, departmentID string) (*models.Department, error)
	GetDoctors(ctx context.Context, branchID, departmentID string) ([]models.Doctor, error)
	GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error)
}

type mongoDirectoryRepo struct {
	branches    *mongo.Collection
	departments *mongo.Collection
	doctors     *mongo.Collection
}

// NewMongoDirectoryRepo constructs a new MongoDB DirectoryRepository.
func NewMongoDirectoryRepo() DirectoryRepository {
	db := database.DB()
	return &mongoDirectoryRepo{
		branches:    db.Collection("branches"),
		departments: db.Collection("departments"),
		doctors:     db.Collection("doctors"),
	}
}
