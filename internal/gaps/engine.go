// Package gaps reconciles staffing demand against actual assignments for one
// production line, date and shift, and cross-checks the assigned crew's
// competence levels against mandatory station requirements.
package gaps

import (
	"context"
	"errors"
	"math"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/nettime"
)

// DefaultNetShiftHours is used when no shift rule exists for the requested
// shift type, or the rule yields a non-positive net duration.
const DefaultNetShiftHours = 8.0

// ErrMissingOrgID is returned before any data access when the engine is
// org-scoped and no organization was supplied.
var ErrMissingOrgID = errors.New("gaps: orgID is required")

// DataSource is the read-only boundary the engine fetches reference data
// through. Every operation is implicitly scoped to one organization.
type DataSource interface {
	GetShiftRule(ctx context.Context, orgID, shiftType string) (*domain.ShiftRule, error)
	GetStations(ctx context.Context, orgID, line string, activeOnly bool) ([]*domain.Station, error)
	GetStationRoleRequirements(ctx context.Context, orgID string, stationIDs []int64) ([]*domain.StationRoleRequirement, error)
	GetCompetences(ctx context.Context, orgID string, skillIDs []int64) ([]*domain.Competence, error)
	ResolveEmployeeIDsByCode(ctx context.Context, orgID string, codes []string) (map[string]int64, error)
	GetEmployeeNames(ctx context.Context, orgID string, employeeIDs []int64) (map[int64]string, error)
	GetEmployeeCompetenceLevels(ctx context.Context, orgID string, employeeID int64, competenceIDs []int64, effectiveDate string) (map[int64]int, error)
}

// Params identifies one (org, line, date, shift) computation. The zero value
// of AllowUnscopedOrg keeps the engine strict about org scoping; Date is
// passed through to the competence-level lookup as its effective date and is
// not otherwise interpreted.
type Params struct {
	OrgID            string
	Line             string
	Date             string
	ShiftType        string
	AllowUnscopedOrg bool
}

type Engine struct {
	src DataSource
}

func NewEngine(src DataSource) *Engine {
	return &Engine{src: src}
}

// ComputeLineGaps produces one MachineGapRow per machine of the requested
// line, in the snapshot's machine order. A line absent from the snapshot, or
// present with zero machines, yields an empty report rather than an error.
func (e *Engine) ComputeLineGaps(ctx context.Context, params Params, overview *domain.LineOverviewData) (*domain.LineGapReport, error) {
	if !params.AllowUnscopedOrg && strings.TrimSpace(params.OrgID) == "" {
		return nil, ErrMissingOrgID
	}

	report := &domain.LineGapReport{MachineRows: []domain.MachineGapRow{}}

	// 1. locate the line in the snapshot; no demand configured is not an error
	machines := findLineMachines(overview, params.Line)
	if len(machines) == 0 {
		return report, nil
	}

	// 2. net shift hours with fallback
	rule, err := e.src.GetShiftRule(ctx, params.OrgID, params.ShiftType)
	if err != nil {
		return nil, err
	}
	netShiftHours := nettime.NetShiftHours(rule)
	if rule == nil || netShiftHours <= 0 {
		netShiftHours = DefaultNetShiftHours
	}

	// 3. first pass: headcount per machine, collecting employee codes
	staffing := make([]machineStaffing, len(machines))
	allCodes := make(map[string]struct{})
	for i, machine := range machines {
		codes := distinctEmployeeCodes(machine.Assignments)
		for _, code := range codes {
			allCodes[code] = struct{}{}
		}

		required := 0
		if machine.RequiredHours > 0 {
			required = int(math.Ceil(machine.RequiredHours / netShiftHours))
		}

		staffing[i] = machineStaffing{
			codes:    codes,
			required: required,
			assigned: len(codes),
		}
	}

	// 4. batch code -> employee ID resolution; unresolvable codes drop out of
	// competence checking but already counted toward headcount above
	idByCode, err := e.src.ResolveEmployeeIDsByCode(ctx, params.OrgID, sortedKeys(allCodes))
	if err != nil {
		return nil, err
	}

	// 5. stations, their requirements and the referenced skill catalog
	reqsByStation, err := e.fetchStationRequirements(ctx, params, machines)
	if err != nil {
		return nil, err
	}

	// 6. batch employee display names and concurrent competence-level fetches
	employeeIDs := distinctIDs(idByCode)
	nameByID, err := e.src.GetEmployeeNames(ctx, params.OrgID, employeeIDs)
	if err != nil {
		return nil, err
	}
	levelsByEmployee := e.resolveCompetenceLevels(ctx, params, employeeIDs, reqsByStation.requiredSkillIDs())

	// 7. second pass: classify each machine and assemble the rows
	for i, machine := range machines {
		row := domain.MachineGapRow{
			StationOrMachine:     displayName(machine),
			StationOrMachineCode: machine.MachineCode,
			Required:             staffing[i].required,
			Assigned:             staffing[i].assigned,
			StaffingGap:          max(0, staffing[i].required-staffing[i].assigned),
			CompetenceStatus:     domain.CompetenceStatusOK,
			CompetenceGaps:       []domain.CompetenceGap{},
		}

		if reqs, ok := reqsByStation.forMachine(machine.MachineCode); ok && len(reqs) > 0 {
			crew := resolveCrew(staffing[i].codes, idByCode, nameByID)
			row.CompetenceStatus, row.CompetenceGaps = classifyMachine(crew, reqs, levelsByEmployee)
		}

		report.MachineRows = append(report.MachineRows, row)
	}

	return report, nil
}

type machineStaffing struct {
	codes    []string
	required int
	assigned int
}

// stationRequirement is one station requirement joined with its skill's
// display name and code.
type stationRequirement struct {
	skillID       int64
	skillName     string
	skillCode     string
	requiredLevel int
	isMandatory   bool
}

// requirementIndex associates machines with their matched station's
// requirements. Matching is best effort: a machine without a station simply
// has no entry.
type requirementIndex struct {
	stationByMachine map[string]int64
	reqsByStation    map[int64][]stationRequirement
}

func (ri requirementIndex) forMachine(machineCode string) ([]stationRequirement, bool) {
	stationID, ok := ri.stationByMachine[machineCode]
	if !ok {
		return nil, false
	}
	return ri.reqsByStation[stationID], true
}

// requiredSkillIDs lists the skills demanded by stations that actually
// matched a machine, so the level fetch skips irrelevant competences.
func (ri requirementIndex) requiredSkillIDs() []int64 {
	seen := make(map[int64]struct{})
	for _, stationID := range ri.stationByMachine {
		for _, req := range ri.reqsByStation[stationID] {
			seen[req.skillID] = struct{}{}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (e *Engine) fetchStationRequirements(ctx context.Context, params Params, machines []domain.MachineDemand) (requirementIndex, error) {
	index := requirementIndex{
		stationByMachine: make(map[string]int64),
		reqsByStation:    make(map[int64][]stationRequirement),
	}

	stations, err := e.src.GetStations(ctx, params.OrgID, params.Line, true)
	if err != nil {
		return index, err
	}
	if len(stations) == 0 {
		return index, nil
	}

	stationIDs := make([]int64, 0, len(stations))
	for _, station := range stations {
		stationIDs = append(stationIDs, station.ID)
	}

	requirements, err := e.src.GetStationRoleRequirements(ctx, params.OrgID, stationIDs)
	if err != nil {
		return index, err
	}

	skillIDs := make(map[int64]struct{})
	for _, req := range requirements {
		skillIDs[req.SkillID] = struct{}{}
	}

	nameBySkill := make(map[int64]string)
	codeBySkill := make(map[int64]string)
	if len(skillIDs) > 0 {
		competences, err := e.src.GetCompetences(ctx, params.OrgID, sortedIDs(skillIDs))
		if err != nil {
			return index, err
		}
		for _, competence := range competences {
			nameBySkill[competence.ID] = competence.Name
			codeBySkill[competence.ID] = competence.Code
		}
	}

	for _, req := range requirements {
		index.reqsByStation[req.StationID] = append(index.reqsByStation[req.StationID], stationRequirement{
			skillID:       req.SkillID,
			skillName:     nameBySkill[req.SkillID],
			skillCode:     codeBySkill[req.SkillID],
			requiredLevel: req.RequiredLevel,
			isMandatory:   req.IsMandatory,
		})
	}

	index.stationByMachine = matchStationsToMachines(machines, stations)

	return index, nil
}

// matchStationsToMachines associates stations with machines, exact code
// equality first, then case-insensitive name equality for machines that did
// not receive a code match. The precedence is deliberate: a name match never
// overrides a code match.
func matchStationsToMachines(machines []domain.MachineDemand, stations []*domain.Station) map[string]int64 {
	matched := make(map[string]int64)

	for _, machine := range machines {
		for _, station := range stations {
			if station.Code != "" && station.Code == machine.MachineCode {
				matched[machine.MachineCode] = station.ID
				break
			}
		}
	}

	for _, machine := range machines {
		if _, ok := matched[machine.MachineCode]; ok {
			continue
		}
		if machine.MachineName == "" {
			continue
		}
		for _, station := range stations {
			if strings.EqualFold(station.Name, machine.MachineName) {
				matched[machine.MachineCode] = station.ID
				break
			}
		}
	}

	return matched
}

// resolveCompetenceLevels fans out one level lookup per employee and gathers
// the results into a per-employee map. A failed lookup degrades that employee
// to an empty level set instead of failing the batch.
func (e *Engine) resolveCompetenceLevels(ctx context.Context, params Params, employeeIDs []int64, skillIDs []int64) map[int64]map[int64]int {
	levels := make(map[int64]map[int64]int, len(employeeIDs))
	if len(employeeIDs) == 0 || len(skillIDs) == 0 {
		return levels
	}

	results := make([]map[int64]int, len(employeeIDs))

	g, gCtx := errgroup.WithContext(ctx)
	for i, employeeID := range employeeIDs {
		g.Go(func() error {
			employeeLevels, err := e.src.GetEmployeeCompetenceLevels(gCtx, params.OrgID, employeeID, skillIDs, params.Date)
			if err != nil {
				// treated as "no recorded competences" for this employee
				results[i] = map[int64]int{}
				return nil
			}
			results[i] = employeeLevels
			return nil
		})
	}
	// goroutines never return an error; Wait only synchronizes the fan-out
	_ = g.Wait()

	for i, employeeID := range employeeIDs {
		if results[i] == nil {
			results[i] = map[int64]int{}
		}
		levels[employeeID] = results[i]
	}

	return levels
}

type crewMember struct {
	id   int64
	name string
}

// resolveCrew keeps only the assigned employees whose code resolved to an ID
// and whose ID resolved to a display name.
func resolveCrew(codes []string, idByCode map[string]int64, nameByID map[int64]string) []crewMember {
	crew := make([]crewMember, 0, len(codes))
	for _, code := range codes {
		id, ok := idByCode[code]
		if !ok {
			continue
		}
		name, ok := nameByID[id]
		if !ok {
			continue
		}
		crew = append(crew, crewMember{id: id, name: name})
	}
	return crew
}

func findLineMachines(overview *domain.LineOverviewData, line string) []domain.MachineDemand {
	if overview == nil {
		return nil
	}
	for _, l := range overview.Lines {
		if l.Line == line {
			return l.Machines
		}
	}
	return nil
}

// distinctEmployeeCodes counts people, not hours: an employee with several
// segments on a machine appears once, in first-appearance order.
func distinctEmployeeCodes(assignments []domain.AssignmentSegment) []string {
	seen := make(map[string]struct{}, len(assignments))
	codes := make([]string, 0, len(assignments))
	for _, assignment := range assignments {
		if assignment.EmployeeCode == "" {
			continue
		}
		if _, ok := seen[assignment.EmployeeCode]; ok {
			continue
		}
		seen[assignment.EmployeeCode] = struct{}{}
		codes = append(codes, assignment.EmployeeCode)
	}
	return codes
}

func displayName(machine domain.MachineDemand) string {
	if machine.MachineName != "" {
		return machine.MachineName
	}
	return machine.MachineCode
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}

func sortedIDs(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func distinctIDs(idByCode map[string]int64) []int64 {
	seen := make(map[int64]struct{}, len(idByCode))
	for _, id := range idByCode {
		seen[id] = struct{}{}
	}
	return sortedIDs(seen)
}
