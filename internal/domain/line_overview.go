package domain

// AssignmentSegment is one employee's presence on a machine during a shift.
// EndTime <= StartTime denotes an overnight segment.
type AssignmentSegment struct {
	EmployeeCode string `json:"employeeCode"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

// MachineDemand is one machine's gross demand hours for a shift together with
// the assignment segments recorded against it.
type MachineDemand struct {
	MachineCode   string              `json:"machineCode"`
	MachineName   string              `json:"machineName"`
	RequiredHours float64             `json:"requiredHours"`
	Assignments   []AssignmentSegment `json:"assignments"`
}

// LineMachines groups the machines of a single production line.
type LineMachines struct {
	Line     string          `json:"line"`
	Machines []MachineDemand `json:"machines"`
}

// LineOverviewData is the pre-assembled demand/assignment snapshot the gap
// engine works from. It is built fresh per request and never mutated.
type LineOverviewData struct {
	Date      string         `json:"date"`
	ShiftType string         `json:"shiftType"`
	Lines     []LineMachines `json:"lines"`
}
