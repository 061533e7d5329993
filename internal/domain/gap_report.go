package domain

type CompetenceStatus string

const (
	CompetenceStatusOK   CompetenceStatus = "OK"
	CompetenceStatusGap  CompetenceStatus = "GAP"
	CompetenceStatusRisk CompetenceStatus = "RISK"
	CompetenceStatusNoGo CompetenceStatus = "NO-GO"
)

type GapSeverity string

const (
	GapSeverityOK   GapSeverity = "OK"
	GapSeverityGap  GapSeverity = "GAP"
	GapSeverityRisk GapSeverity = "RISK"
)

type SuggestedAction string

const (
	ActionNone  SuggestedAction = "No action"
	ActionTrain SuggestedAction = "Train"
	ActionSwap  SuggestedAction = "Swap"
	ActionBuddy SuggestedAction = "Buddy"
)

// CompetenceGap records one employee falling short of one mandatory station
// requirement. Satisfied pairs are never recorded.
type CompetenceGap struct {
	Employee        string          `json:"employee"`
	EmployeeID      int64           `json:"employeeID"`
	Skill           string          `json:"skill"`
	SkillCode       string          `json:"skillCode"`
	RequiredLevel   int             `json:"requiredLevel"`
	CurrentLevel    int             `json:"currentLevel"`
	Severity        GapSeverity     `json:"severity"`
	SuggestedAction SuggestedAction `json:"suggestedAction"`
}

// MachineGapRow is the per-machine result of a gap computation: headcount
// reconciliation plus the competence verdict for the assigned crew.
type MachineGapRow struct {
	StationOrMachine     string           `json:"stationOrMachine"`
	StationOrMachineCode string           `json:"stationOrMachineCode"`
	Required             int              `json:"required"`
	Assigned             int              `json:"assigned"`
	StaffingGap          int              `json:"staffingGap"`
	CompetenceStatus     CompetenceStatus `json:"competenceStatus"`
	CompetenceGaps       []CompetenceGap  `json:"competenceGaps"`
}

// LineGapReport is the engine's output for one (org, line, date, shift).
type LineGapReport struct {
	MachineRows []MachineGapRow `json:"machineRows"`
}
