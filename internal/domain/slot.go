package domain

type Slot struct {
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Capacity  int            `json:"capacity"`
	Mode      SchedulingMode `json:"mode"`
	RuleID    int64          `json:"rule_id"`
}

type SlotAvailability struct {
	Slot
	Booked    int `json:"booked"`
	Remaining int `json:"remaining"`
}
