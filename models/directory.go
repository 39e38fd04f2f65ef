package models

// Branch is a hospital location.
type Branch struct {
	ID      string `bson:"id" json:"id"`
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address,omitempty" json:"address,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Active  bool   `bson:"active" json:"active"`
}

// Department is a medical specialty grouping doctors.
type Department struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
}

// Doctor practices one department across one or more branches.
type Doctor struct {
	ID           string   `bson:"id" json:"id"`
	Name         string   `bson:"name" json:"name"`
	Title        string   `bson:"title,omitempty" json:"title,omitempty"`
	DepartmentID string   `bson:"departmentId" json:"department_id"`
	BranchIDs    []string `bson:"branchIds" json:"branch_ids"`
	Active       bool     `bson:"active" json:"active"`
}
