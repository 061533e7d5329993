package gaps

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

type mockDataSource struct {
	mock.Mock
}

func (m *mockDataSource) GetShiftRule(ctx context.Context, orgID, shiftType string) (*domain.ShiftRule, error) {
	args := m.Called(ctx, orgID, shiftType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftRule), args.Error(1)
}

func (m *mockDataSource) GetStations(ctx context.Context, orgID, line string, activeOnly bool) ([]*domain.Station, error) {
	args := m.Called(ctx, orgID, line, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Station), args.Error(1)
}

func (m *mockDataSource) GetStationRoleRequirements(ctx context.Context, orgID string, stationIDs []int64) ([]*domain.StationRoleRequirement, error) {
	args := m.Called(ctx, orgID, stationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StationRoleRequirement), args.Error(1)
}

func (m *mockDataSource) GetCompetences(ctx context.Context, orgID string, skillIDs []int64) ([]*domain.Competence, error) {
	args := m.Called(ctx, orgID, skillIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Competence), args.Error(1)
}

func (m *mockDataSource) ResolveEmployeeIDsByCode(ctx context.Context, orgID string, codes []string) (map[string]int64, error) {
	args := m.Called(ctx, orgID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

func (m *mockDataSource) GetEmployeeNames(ctx context.Context, orgID string, employeeIDs []int64) (map[int64]string, error) {
	args := m.Called(ctx, orgID, employeeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]string), args.Error(1)
}

func (m *mockDataSource) GetEmployeeCompetenceLevels(ctx context.Context, orgID string, employeeID int64, competenceIDs []int64, effectiveDate string) (map[int64]int, error) {
	args := m.Called(ctx, orgID, employeeID, competenceIDs, effectiveDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int), args.Error(1)
}

func dayShiftRule() *domain.ShiftRule {
	return &domain.ShiftRule{
		OrgID:        "org-1",
		ShiftType:    "DAY",
		ShiftStart:   "07:00",
		ShiftEnd:     "16:00",
		BreakMinutes: 60, // gross 540, net 480 -> 8h
	}
}

func overviewWith(machines ...domain.MachineDemand) *domain.LineOverviewData {
	return &domain.LineOverviewData{
		Date:      "2026-01-05",
		ShiftType: "DAY",
		Lines:     []domain.LineMachines{{Line: "L1", Machines: machines}},
	}
}

func params() Params {
	return Params{OrgID: "org-1", Line: "L1", Date: "2026-01-05", ShiftType: "DAY"}
}

func TestComputeLineGaps_FailsFastWithoutOrgID(t *testing.T) {
	src := new(mockDataSource)
	engine := NewEngine(src)

	p := params()
	p.OrgID = "  "

	_, err := engine.ComputeLineGaps(context.Background(), p, overviewWith())

	assert.ErrorIs(t, err, ErrMissingOrgID)
	src.AssertNotCalled(t, "GetShiftRule", mock.Anything, mock.Anything, mock.Anything)
}

func TestComputeLineGaps_NoDemandYieldsEmptyReport(t *testing.T) {
	src := new(mockDataSource)
	engine := NewEngine(src)

	t.Run("line absent from snapshot", func(t *testing.T) {
		report, err := engine.ComputeLineGaps(context.Background(), params(), &domain.LineOverviewData{
			Lines: []domain.LineMachines{{Line: "L2", Machines: []domain.MachineDemand{{MachineCode: "M1"}}}},
		})
		require.NoError(t, err)
		assert.Empty(t, report.MachineRows)
	})

	t.Run("line present with zero machines", func(t *testing.T) {
		report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith())
		require.NoError(t, err)
		assert.Empty(t, report.MachineRows)
	})

	t.Run("nil snapshot", func(t *testing.T) {
		report, err := engine.ComputeLineGaps(context.Background(), params(), nil)
		require.NoError(t, err)
		assert.Empty(t, report.MachineRows)
	})

	// no-demand short-circuits before any data access
	src.AssertNotCalled(t, "GetShiftRule", mock.Anything, mock.Anything, mock.Anything)
}

func TestComputeLineGaps_HeadcountRounding(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(dayShiftRule(), nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", mock.Anything).Return(map[string]int64{}, nil)
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", mock.Anything).Return(map[int64]string{}, nil)

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{MachineCode: "M1", MachineName: "Press", RequiredHours: 8},
		domain.MachineDemand{MachineCode: "M2", MachineName: "Mill", RequiredHours: 9},
		domain.MachineDemand{MachineCode: "M3", MachineName: "Lathe", RequiredHours: 0},
	))

	require.NoError(t, err)
	require.Len(t, report.MachineRows, 3)
	assert.Equal(t, 1, report.MachineRows[0].Required, "8h demand at 8h net is one head")
	assert.Equal(t, 2, report.MachineRows[1].Required, "9h demand at 8h net rounds up")
	assert.Equal(t, 0, report.MachineRows[2].Required, "zero demand needs nobody")
	assert.Equal(t, 1, report.MachineRows[0].StaffingGap)
	assert.Equal(t, domain.CompetenceStatusOK, report.MachineRows[0].CompetenceStatus)
}

func TestComputeLineGaps_DefaultNetHoursWithoutRule(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(nil, nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", mock.Anything).Return(map[string]int64{}, nil)
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", mock.Anything).Return(map[int64]string{}, nil)

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{MachineCode: "M1", RequiredHours: 12},
	))

	require.NoError(t, err)
	require.Len(t, report.MachineRows, 1)
	assert.Equal(t, 2, report.MachineRows[0].Required, "ceil(12 / 8.0) with the fallback net hours")
}

func TestComputeLineGaps_HeadcountCountsPeopleNotHours(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(dayShiftRule(), nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", []string{"E1"}).Return(map[string]int64{}, nil)
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", mock.Anything).Return(map[int64]string{}, nil)

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{
			MachineCode:   "M1",
			RequiredHours: 8,
			Assignments: []domain.AssignmentSegment{
				{EmployeeCode: "E1", StartTime: "07:00", EndTime: "11:00"},
				{EmployeeCode: "E1", StartTime: "12:00", EndTime: "16:00"},
				{EmployeeCode: "", StartTime: "07:00", EndTime: "16:00"},
			},
		},
	))

	require.NoError(t, err)
	require.Len(t, report.MachineRows, 1)
	assert.Equal(t, 1, report.MachineRows[0].Assigned,
		"two segments of one employee are one head; a blank code is nobody")
	assert.Equal(t, 0, report.MachineRows[0].StaffingGap)
}

func TestComputeLineGaps_StatusPrecedence(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(dayShiftRule(), nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", []string{"E1", "E2"}).
		Return(map[string]int64{"E1": 101, "E2": 102}, nil)
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{
		{ID: 1, Code: "M1", Name: "Press"},
	}, nil)
	src.On("GetStationRoleRequirements", mock.Anything, "org-1", []int64{1}).Return([]*domain.StationRoleRequirement{
		{StationID: 1, SkillID: 7, RequiredLevel: 2, IsMandatory: true},
		{StationID: 1, SkillID: 8, RequiredLevel: 2, IsMandatory: true},
	}, nil)
	src.On("GetCompetences", mock.Anything, "org-1", []int64{7, 8}).Return([]*domain.Competence{
		{ID: 7, Name: "Machine Safety", Code: "SAFETY"},
		{ID: 8, Name: "Quality Inspection", Code: "QC"},
	}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", []int64{101, 102}).
		Return(map[int64]string{101: "Alex One", 102: "Billie Two"}, nil)
	// E1 misses SAFETY entirely, E2 is exactly one level short on QC
	src.On("GetEmployeeCompetenceLevels", mock.Anything, "org-1", int64(101), []int64{7, 8}, "2026-01-05").
		Return(map[int64]int{7: 0, 8: 2}, nil)
	src.On("GetEmployeeCompetenceLevels", mock.Anything, "org-1", int64(102), []int64{7, 8}, "2026-01-05").
		Return(map[int64]int{7: 2, 8: 1}, nil)

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{
			MachineCode:   "M1",
			MachineName:   "Press",
			RequiredHours: 16,
			Assignments: []domain.AssignmentSegment{
				{EmployeeCode: "E1", StartTime: "07:00", EndTime: "16:00"},
				{EmployeeCode: "E2", StartTime: "07:00", EndTime: "16:00"},
			},
		},
	))

	require.NoError(t, err)
	require.Len(t, report.MachineRows, 1)
	row := report.MachineRows[0]

	assert.Equal(t, domain.CompetenceStatusNoGo, row.CompetenceStatus,
		"one entirely missing mandatory skill overrides every lesser severity")
	require.Len(t, row.CompetenceGaps, 2)

	byEmployee := map[int64]domain.CompetenceGap{}
	for _, g := range row.CompetenceGaps {
		byEmployee[g.EmployeeID] = g
	}
	assert.Equal(t, domain.GapSeverityRisk, byEmployee[101].Severity)
	assert.Equal(t, domain.ActionTrain, byEmployee[101].SuggestedAction)
	assert.Equal(t, domain.GapSeverityGap, byEmployee[102].Severity)
	assert.Equal(t, domain.ActionBuddy, byEmployee[102].SuggestedAction)
}

func TestComputeLineGaps_UnknownRequirementsAreNeutral(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(dayShiftRule(), nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", []string{"E1"}).
		Return(map[string]int64{"E1": 101}, nil)
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{
		{ID: 1, Code: "M1", Name: "Press"},
	}, nil)
	// station matched but nothing on record about its requirements
	src.On("GetStationRoleRequirements", mock.Anything, "org-1", []int64{1}).
		Return([]*domain.StationRoleRequirement{}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", []int64{101}).
		Return(map[int64]string{101: "Alex One"}, nil)

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{
			MachineCode:   "M1",
			RequiredHours: 8,
			Assignments:   []domain.AssignmentSegment{{EmployeeCode: "E1", StartTime: "07:00", EndTime: "16:00"}},
		},
	))

	require.NoError(t, err)
	require.Len(t, report.MachineRows, 1)
	assert.Equal(t, domain.CompetenceStatusOK, report.MachineRows[0].CompetenceStatus)
	assert.Empty(t, report.MachineRows[0].CompetenceGaps)
	src.AssertNotCalled(t, "GetEmployeeCompetenceLevels", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestComputeLineGaps_LevelFetchFailureDegradesToZeroLevels(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(dayShiftRule(), nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", []string{"E1"}).
		Return(map[string]int64{"E1": 101}, nil)
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{
		{ID: 1, Code: "M1", Name: "Press"},
	}, nil)
	src.On("GetStationRoleRequirements", mock.Anything, "org-1", []int64{1}).Return([]*domain.StationRoleRequirement{
		{StationID: 1, SkillID: 7, RequiredLevel: 2, IsMandatory: true},
	}, nil)
	src.On("GetCompetences", mock.Anything, "org-1", []int64{7}).Return([]*domain.Competence{
		{ID: 7, Name: "Machine Safety", Code: "SAFETY"},
	}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", []int64{101}).
		Return(map[int64]string{101: "Alex One"}, nil)
	src.On("GetEmployeeCompetenceLevels", mock.Anything, "org-1", int64(101), []int64{7}, "2026-01-05").
		Return(nil, errors.New("connection reset"))

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{
			MachineCode:   "M1",
			RequiredHours: 8,
			Assignments:   []domain.AssignmentSegment{{EmployeeCode: "E1", StartTime: "07:00", EndTime: "16:00"}},
		},
	))

	require.NoError(t, err, "a failed per-employee fetch must not abort the computation")
	require.Len(t, report.MachineRows, 1)
	row := report.MachineRows[0]
	require.Len(t, row.CompetenceGaps, 1)
	assert.Equal(t, 0, row.CompetenceGaps[0].CurrentLevel, "the employee degrades to no recorded competences")
	assert.Equal(t, domain.CompetenceStatusNoGo, row.CompetenceStatus)
}

func TestComputeLineGaps_StationMatchingPrefersCodeOverName(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(dayShiftRule(), nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", []string{"E1"}).
		Return(map[string]int64{"E1": 101}, nil)
	// station 1 matches M1 by name, station 2 matches M1 by code; code wins
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{
		{ID: 1, Code: "X9", Name: "Assembly"},
		{ID: 2, Code: "M1", Name: "Something Else"},
	}, nil)
	src.On("GetStationRoleRequirements", mock.Anything, "org-1", []int64{1, 2}).Return([]*domain.StationRoleRequirement{
		{StationID: 1, SkillID: 7, RequiredLevel: 3, IsMandatory: true},
		{StationID: 2, SkillID: 8, RequiredLevel: 2, IsMandatory: true},
	}, nil)
	src.On("GetCompetences", mock.Anything, "org-1", []int64{7, 8}).Return([]*domain.Competence{
		{ID: 7, Name: "Assembly Cert", Code: "ASM"},
		{ID: 8, Name: "Press Operation", Code: "PRESS"},
	}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", []int64{101}).
		Return(map[int64]string{101: "Alex One"}, nil)
	src.On("GetEmployeeCompetenceLevels", mock.Anything, "org-1", int64(101), []int64{8}, "2026-01-05").
		Return(map[int64]int{8: 1}, nil)

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{
			MachineCode:   "M1",
			MachineName:   "ASSEMBLY",
			RequiredHours: 8,
			Assignments:   []domain.AssignmentSegment{{EmployeeCode: "E1", StartTime: "07:00", EndTime: "16:00"}},
		},
	))

	require.NoError(t, err)
	require.Len(t, report.MachineRows, 1)
	require.Len(t, report.MachineRows[0].CompetenceGaps, 1)
	assert.Equal(t, "PRESS", report.MachineRows[0].CompetenceGaps[0].SkillCode,
		"the code-matched station's requirements apply, not the name-matched one's")
}

func TestComputeLineGaps_UnresolvableCodeStillCountsTowardHeadcount(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(dayShiftRule(), nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", []string{"GHOST"}).
		Return(map[string]int64{}, nil)
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{
		{ID: 1, Code: "M1", Name: "Press"},
	}, nil)
	src.On("GetStationRoleRequirements", mock.Anything, "org-1", []int64{1}).Return([]*domain.StationRoleRequirement{
		{StationID: 1, SkillID: 7, RequiredLevel: 2, IsMandatory: true},
	}, nil)
	src.On("GetCompetences", mock.Anything, "org-1", []int64{7}).Return([]*domain.Competence{
		{ID: 7, Name: "Machine Safety", Code: "SAFETY"},
	}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", []int64{}).Return(map[int64]string{}, nil)

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{
			MachineCode:   "M1",
			RequiredHours: 8,
			Assignments:   []domain.AssignmentSegment{{EmployeeCode: "GHOST", StartTime: "07:00", EndTime: "16:00"}},
		},
	))

	require.NoError(t, err)
	require.Len(t, report.MachineRows, 1)
	row := report.MachineRows[0]
	assert.Equal(t, 1, row.Assigned, "the unresolved code still fills a head")
	assert.Empty(t, row.CompetenceGaps, "but it is excluded from competence checking")
	assert.Equal(t, domain.CompetenceStatusOK, row.CompetenceStatus)
}

func TestComputeLineGaps_EndToEndScenario(t *testing.T) {
	src := new(mockDataSource)
	src.On("GetShiftRule", mock.Anything, "org-1", "DAY").Return(dayShiftRule(), nil)
	src.On("ResolveEmployeeIDsByCode", mock.Anything, "org-1", []string{"E1"}).
		Return(map[string]int64{"E1": 101}, nil)
	src.On("GetStations", mock.Anything, "org-1", "L1", true).Return([]*domain.Station{
		{ID: 1, Code: "M1", Name: "Press"},
	}, nil)
	src.On("GetStationRoleRequirements", mock.Anything, "org-1", []int64{1}).Return([]*domain.StationRoleRequirement{
		{StationID: 1, SkillID: 7, RequiredLevel: 2, IsMandatory: true},
	}, nil)
	src.On("GetCompetences", mock.Anything, "org-1", []int64{7}).Return([]*domain.Competence{
		{ID: 7, Name: "SAFETY", Code: "SAFETY"},
	}, nil)
	src.On("GetEmployeeNames", mock.Anything, "org-1", []int64{101}).
		Return(map[int64]string{101: "Alex One"}, nil)
	src.On("GetEmployeeCompetenceLevels", mock.Anything, "org-1", int64(101), []int64{7}, "2026-01-05").
		Return(map[int64]int{7: 1}, nil)

	engine := NewEngine(src)

	report, err := engine.ComputeLineGaps(context.Background(), params(), overviewWith(
		domain.MachineDemand{
			MachineCode:   "M1",
			MachineName:   "Press",
			RequiredHours: 8,
			Assignments:   []domain.AssignmentSegment{{EmployeeCode: "E1", StartTime: "07:00", EndTime: "16:00"}},
		},
	))

	require.NoError(t, err)
	require.Len(t, report.MachineRows, 1)

	row := report.MachineRows[0]
	assert.Equal(t, "Press", row.StationOrMachine)
	assert.Equal(t, "M1", row.StationOrMachineCode)
	assert.Equal(t, 1, row.Required)
	assert.Equal(t, 1, row.Assigned)
	assert.Equal(t, 0, row.StaffingGap)
	assert.Equal(t, domain.CompetenceStatusGap, row.CompetenceStatus)

	require.Len(t, row.CompetenceGaps, 1)
	gap := row.CompetenceGaps[0]
	assert.Equal(t, "Alex One", gap.Employee)
	assert.Equal(t, int64(101), gap.EmployeeID)
	assert.Equal(t, "SAFETY", gap.Skill)
	assert.Equal(t, 2, gap.RequiredLevel)
	assert.Equal(t, 1, gap.CurrentLevel)
	assert.Equal(t, domain.GapSeverityGap, gap.Severity)
	assert.Equal(t, domain.ActionBuddy, gap.SuggestedAction)

	src.AssertExpectations(t)
}
