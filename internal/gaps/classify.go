package gaps

import (
	"github.com/boloukiamir-bit/industrial-competence-platform-sub002/internal/domain"
)

// evaluateMandatoryOnly restricts competence evaluation to mandatory station
// requirements. Optional requirements are retrieved but produce no gaps; the
// constant names the policy so it can be revisited in one place.
const evaluateMandatoryOnly = true

// classifyMachine evaluates every crew member against the matched station's
// requirements and derives the machine's overall status.
//
// Per employee and mandatory requirement:
//   - level 0 while any level is required: RISK, suggest training, and the
//     machine as a whole is NO-GO
//   - exactly one level short: GAP, suggest a buddy
//   - more than one level short: RISK, suggest training
//
// Overall precedence is strictly NO-GO > RISK > GAP > OK. Callers must skip
// this evaluation entirely for stations with no requirements on record; that
// is "no opinion", not a verified OK.
func classifyMachine(crew []crewMember, reqs []stationRequirement, levelsByEmployee map[int64]map[int64]int) (domain.CompetenceStatus, []domain.CompetenceGap) {
	gapsFound := []domain.CompetenceGap{}

	noGo := false
	anyRisk := false
	anyGap := false

	for _, member := range crew {
		memberLevels := levelsByEmployee[member.id]

		for _, req := range reqs {
			if evaluateMandatoryOnly && !req.isMandatory {
				continue
			}

			currentLevel := memberLevels[req.skillID]
			if currentLevel >= req.requiredLevel {
				continue
			}

			severity := domain.GapSeverityRisk
			action := domain.ActionTrain

			switch {
			case currentLevel == 0 && req.requiredLevel > 0:
				// a mandatory skill missing entirely is the only NO-GO trigger
				noGo = true
				anyRisk = true
			case currentLevel >= req.requiredLevel-1:
				severity = domain.GapSeverityGap
				action = domain.ActionBuddy
				anyGap = true
			default:
				anyRisk = true
			}

			gapsFound = append(gapsFound, domain.CompetenceGap{
				Employee:        member.name,
				EmployeeID:      member.id,
				Skill:           req.skillName,
				SkillCode:       req.skillCode,
				RequiredLevel:   req.requiredLevel,
				CurrentLevel:    currentLevel,
				Severity:        severity,
				SuggestedAction: action,
			})
		}
	}

	status := domain.CompetenceStatusOK
	switch {
	case noGo:
		status = domain.CompetenceStatusNoGo
	case anyRisk:
		status = domain.CompetenceStatusRisk
	case anyGap:
		status = domain.CompetenceStatusGap
	}

	return status, gapsFound
}
