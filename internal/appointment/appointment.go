package appointment

import "time"

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusAttended  Status = "attended"
	StatusNoShow    Status = "no_show"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusAttended, StatusNoShow, StatusCancelled:
		return true
	}

	return false
}

type Appointment struct {
	ID          int64
	ClientID    int64
	VehicleID   int64
	ScheduledAt time.Time
	Reason      string
	Status      Status
}
