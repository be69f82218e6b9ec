package entity

import "time"

// Estados de una orden (muestra x prueba).
const (
	OrderStatusReceived  = "Received"
	OrderStatusBatched   = "Batched"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// Prioridades.
const (
	PriorityRoutine = "routine"
	PriorityStat    = "stat"
)

// Order una muestra recibida de una organización con la prueba solicitada.
type Order struct {
	ID             string
	OrganizationID string
	LocationID     *string
	ContactID      *string
	SampleID       string
	SampleType     string
	TestMethodID   string
	BatchID        *string
	Status         string
	Priority       string
	CollectedAt    *time.Time
	ReceivedAt     time.Time
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ValidOrderStatus informa si s es un estado de orden conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusReceived, OrderStatusBatched, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
