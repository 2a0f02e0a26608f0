package domain

// Status is an order lifecycle state as reported by the order service.
// Unrecognized values coming off the wire are carried verbatim.
type Status string

const (
	StatusPending           Status = "PENDING"
	StatusInventoryReserved Status = "INVENTORY_RESERVED"
	StatusInventoryRejected Status = "INVENTORY_REJECTED"
	StatusPaymentFailed     Status = "PAYMENT_FAILED"
	StatusCompleted         Status = "COMPLETED"
	StatusFailed            Status = "FAILED"
)

// Transitions describes the backend state machine. The backend is
// authoritative; this map exists so the stub gateway and the projection
// stay consistent with it. INVENTORY_REJECTED and PAYMENT_FAILED re-enter
// PENDING through an explicit retry action.
var Transitions = map[Status]map[Status]bool{
	StatusPending:           {StatusInventoryReserved: true, StatusInventoryRejected: true},
	StatusInventoryReserved: {StatusCompleted: true, StatusPaymentFailed: true},
	StatusInventoryRejected: {StatusPending: true},
	StatusPaymentFailed:     {StatusPending: true},
	StatusCompleted:         {},
	StatusFailed:            {},
}

func CanTransition(from, to Status) bool {
	return Transitions[from][to]
}
