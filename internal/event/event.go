// Package event announces committed domain changes: status events go to
// RabbitMQ and writes invalidate cached reports.
package event

import (
	"context"
	"time"
)

// StatusChanged is emitted after a work order status transition commits.
type StatusChanged struct {
	WorkOrderID int64     `json:"work_order_id"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	ChangedAt   time.Time `json:"changed_at"`
}

type Publisher interface {
	PublishStatusChanged(ctx context.Context, e StatusChanged) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) PublishStatusChanged(context.Context, StatusChanged) error { return nil }
func (Nop) Close() error                                              { return nil }
