package domain

import "time"

// ShiftRule describes the clock boundaries and break policy of one shift type
// within an organization. Times are wall-clock "HH:MM" strings; a shift whose
// end is not after its start wraps past midnight.
type ShiftRule struct {
	ID               int64     `json:"id"`
	OrgID            string    `json:"orgID"`
	ShiftType        string    `json:"shiftType"`
	ShiftStart       string    `json:"shiftStart"`
	ShiftEnd         string    `json:"shiftEnd"`
	BreakMinutes     int       `json:"breakMinutes"`     // unpaid, subtracted from gross
	PaidBreakMinutes int       `json:"paidBreakMinutes"` // paid, added back
	CreatedAt        time.Time `json:"createdAt"`
	Version          int32     `json:"-"`
}
