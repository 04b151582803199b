package workorder

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/garage/internal/workorder"
)

type workOrderResponse struct {
	ID             int64            `json:"id"`
	ClientID       int64            `json:"client_id"`
	VehicleID      int64            `json:"vehicle_id"`
	CreatedAt      time.Time        `json:"created_at"`
	ScheduledDate  *time.Time       `json:"scheduled_date,omitempty"`
	Status         workorder.Status `json:"status"`
	EstimatedHours decimal.Decimal  `json:"estimated_hours"`
	Total          decimal.Decimal  `json:"total"`
	Notes          string           `json:"notes"`
}

type itemResponse struct {
	ID           int64              `json:"id"`
	WorkOrderID  int64              `json:"work_order_id"`
	Kind         workorder.ItemKind `json:"kind"`
	Description  string             `json:"description"`
	PartID       *int64             `json:"part_id,omitempty"`
	MechanicID   *int64             `json:"mechanic_id,omitempty"`
	Quantity     int                `json:"quantity"`
	UnitPrice    decimal.Decimal    `json:"unit_price"`
	Hours        decimal.Decimal    `json:"hours"`
	MechanicRate decimal.Decimal    `json:"mechanic_rate"`
	Subtotal     decimal.Decimal    `json:"subtotal"`
}

type statusLogResponse struct {
	ID          int64            `json:"id"`
	WorkOrderID int64            `json:"work_order_id"`
	OldStatus   workorder.Status `json:"old_status"`
	NewStatus   workorder.Status `json:"new_status"`
	ChangedAt   time.Time        `json:"changed_at"`
}

type totalResponse struct {
	WorkOrderID int64           `json:"work_order_id"`
	Total       decimal.Decimal `json:"total"`
}

func toResponse(wo *workorder.WorkOrder) workOrderResponse {
	return workOrderResponse{
		ID:             wo.ID,
		ClientID:       wo.ClientID,
		VehicleID:      wo.VehicleID,
		CreatedAt:      wo.CreatedAt,
		ScheduledDate:  wo.ScheduledDate,
		Status:         wo.Status,
		EstimatedHours: wo.EstimatedHours,
		Total:          wo.Total,
		Notes:          wo.Notes,
	}
}

func toResponseList(wos []*workorder.WorkOrder) []workOrderResponse {
	resp := make([]workOrderResponse, len(wos))
	for i, wo := range wos {
		resp[i] = toResponse(wo)
	}

	return resp
}

func toItemResponse(it *workorder.Item) itemResponse {
	return itemResponse{
		ID:           it.ID,
		WorkOrderID:  it.WorkOrderID,
		Kind:         it.Kind,
		Description:  it.Description,
		PartID:       it.PartID,
		MechanicID:   it.MechanicID,
		Quantity:     it.Quantity,
		UnitPrice:    it.UnitPrice,
		Hours:        it.Hours,
		MechanicRate: it.MechanicRate,
		Subtotal:     it.Subtotal(),
	}
}

func toStatusLogResponse(e *workorder.StatusLogEntry) statusLogResponse {
	return statusLogResponse{
		ID:          e.ID,
		WorkOrderID: e.WorkOrderID,
		OldStatus:   e.OldStatus,
		NewStatus:   e.NewStatus,
		ChangedAt:   e.ChangedAt,
	}
}
