package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type ResetPasswordMailData struct {
	FullName   string `json:"fullName"`
	OTP        string `json:"otp"`
	Expiration int    `json:"expiration"`
}

type GapAlertMailData struct {
	Line      string   `json:"line"`
	Date      string   `json:"date"`
	ShiftType string   `json:"shiftType"`
	Machines  []string `json:"machines"` // machines classified NO-GO
}
