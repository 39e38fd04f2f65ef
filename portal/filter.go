package portal

import (
	"context"

	"carewell/models"
)

// DirectoryAPI is the slice of the backend the filter cascade needs.
type DirectoryAPI interface {
	Branches(ctx context.Context) ([]models.Branch, error)
	Departments(ctx context.Context) ([]models.Department, error)
	Doctors(ctx context.Context, branchID, departmentID string) ([]models.Doctor, error)
}

// FilterChain is the branch-department-doctor cascade as an immutable
// value: every transition returns a new chain, so the rendered lists can
// never disagree with the selection that produced them.
type FilterChain struct {
	api DirectoryAPI

	allDepartments []models.Department

	Branches    []models.Branch
	Departments []models.Department
	Doctors     []models.Doctor

	BranchID     string
	DepartmentID string
	DoctorID     string
}

// NewFilterChain loads the unfiltered directory lists.
func NewFilterChain(ctx context.Context, api DirectoryAPI) (FilterChain, error) {
	branches, err := api.Branches(ctx)
	if err != nil {
		return FilterChain{}, err
	}
	departments, err := api.Departments(ctx)
	if err != nil {
		return FilterChain{}, err
	}
	doctors, err := api.Doctors(ctx, "", "")
	if err != nil {
		return FilterChain{}, err
	}

	return FilterChain{
		api:            api,
		allDepartments: departments,
		Branches:       branches,
		Departments:    departments,
		Doctors:        doctors,
	}, nil
}

// SelectBranch narrows the cascade to one branch. Department and doctor
// selections are reset, and the department list shrinks to the departments
// with at least one active doctor in the branch. The doctor fetch happens
// before anything is recomputed so a stale doctor list is never exposed.
func (f FilterChain) SelectBranch(ctx context.Context, branchID string) (FilterChain, error) {
	doctors, err := f.api.Doctors(ctx, branchID, "")
	if err != nil {
		return f, err
	}

	practicing := make(map[string]struct{}, len(doctors))
	for _, d := range doctors {
		practicing[d.DepartmentID] = struct{}{}
	}
	departments := make([]models.Department, 0, len(f.allDepartments))
	for _, dept := range f.allDepartments {
		if _, ok := practicing[dept.ID]; ok {
			departments = append(departments, dept)
		}
	}

	next := f
	next.BranchID = branchID
	next.DepartmentID = ""
	next.DoctorID = ""
	next.Departments = departments
	next.Doctors = doctors
	return next, nil
}

// SelectDepartment narrows the doctor list to the (branch?, department) pair
// and resets the doctor selection.
func (f FilterChain) SelectDepartment(ctx context.Context, departmentID string) (FilterChain, error) {
	doctors, err := f.api.Doctors(ctx, f.BranchID, departmentID)
	if err != nil {
		return f, err
	}

	next := f
	next.DepartmentID = departmentID
	next.DoctorID = ""
	next.Doctors = doctors
	return next, nil
}

// ClearBranch drops the branch filter and restores the unfiltered lists
// below it.
func (f FilterChain) ClearBranch(ctx context.Context) (FilterChain, error) {
	doctors, err := f.api.Doctors(ctx, "", "")
	if err != nil {
		return f, err
	}

	next := f
	next.BranchID = ""
	next.DepartmentID = ""
	next.DoctorID = ""
	next.Departments = f.allDepartments
	next.Doctors = doctors
	return next, nil
}

// ClearDepartment drops the department filter; the doctor list widens back to
// the branch scope.
func (f FilterChain) ClearDepartment(ctx context.Context) (FilterChain, error) {
	doctors, err := f.api.Doctors(ctx, f.BranchID, "")
	if err != nil {
		return f, err
	}

	next := f
	next.DepartmentID = ""
	next.DoctorID = ""
	next.Doctors = doctors
	return next, nil
}

// SelectDoctor picks a doctor from the current list. Picking an id that is
// not in the list is a silent no-op.
func (f FilterChain) SelectDoctor(doctorID string) FilterChain {
	for _, d := range f.Doctors {
		if d.ID == doctorID {
			next := f
			next.DoctorID = doctorID
			return next
		}
	}
	return f
}
