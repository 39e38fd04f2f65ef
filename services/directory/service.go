package directory

import (
	"context"

	directoryRepo "carewell/database/repository/directory"
	"carewell/models"
)

// DefaultDirectoryService answers cascade queries straight from the
// directory collections.
type DefaultDirectoryService struct {
	Repo directoryRepo.DirectoryRepository
}

func (s *DefaultDirectoryService) Branches(ctx context.Context) ([]models.Branch, error) {
	return s.Repo.GetBranches(ctx)
}

// Departments returns all departments, or, when a branch is given, only the
// departments with at least one active doctor practicing there. The doctor
// fetch runs first so the narrowed list can never disagree with the branch.
func (s *DefaultDirectoryService) Departments(ctx context.Context, branchID string) ([]models.Department, error) {
	all, err := s.Repo.GetDepartments(ctx)
	if err != nil {
		return nil, err
	}
	if branchID == "" {
		return all, nil
	}

	doctors, err := s.Repo.GetDoctors(ctx, branchID, "")
	if err != nil {
		return nil, err
	}
	practicing := make(map[string]struct{}, len(doctors))
	for _, d := range doctors {
		practicing[d.DepartmentID] = struct{}{}
	}

	narrowed := make([]models.Department, 0, len(all))
	for _, dept := range all {
		if _, ok := practicing[dept.ID]; ok {
			narrowed = append(narrowed, dept)
		}
	}
	return narrowed, nil
}

func (s *DefaultDirectoryService) Doctors(ctx context.Context, branchID, departmentID string) ([]models.Doctor, error) {
	return s.Repo.GetDoctors(ctx, branchID, departmentID)
}
