package domain

// Competence is a named, org-scoped skill referenced by station requirements.
type Competence struct {
	ID    int64  `json:"id"`
	OrgID string `json:"orgID"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

// Employee is the internal identity behind the employee codes that appear in
// assignment rows. Legacy codes live in a secondary mapping table and are
// resolved as a fallback.
type Employee struct {
	ID       int64  `json:"id"`
	OrgID    string `json:"orgID"`
	Code     string `json:"code"`
	FullName string `json:"fullName"`
	IsActive bool   `json:"isActive"`
}

// EmployeeCompetence is a per-employee, per-competence integer level.
// Level 0 means the skill is absent or untrained.
type EmployeeCompetence struct {
	EmployeeID   int64 `json:"employeeID"`
	CompetenceID int64 `json:"competenceID"`
	Level        int   `json:"level"`
}
