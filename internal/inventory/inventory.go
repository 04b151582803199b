package inventory

import "time"

// Record is the on-hand stock of a single part.
type Record struct {
	ID        int64
	PartID    int64
	Quantity  int
	Location  string
	UpdatedAt time.Time
}
