// Package lifecycle derives display and decision fields from raw order
// records. Every function here is pure and total: malformed input degrades
// to a safe default instead of an error, so one broken record can never
// abort rendering of a list. Safe for concurrent use.
package lifecycle

import (
	"github.com/omg-dev-tech/workshop-eda/internal/domain"
)

// Projection is the derived view of one order. It has no identity of its
// own and is recomputed from the latest snapshot on every render.
type Projection struct {
	ShortID    string
	StatusText string
	Retryable  bool
	AmountText string
	DateText   string
}

var statusText = map[domain.Status]string{
	domain.StatusPending:           "대기중",
	domain.StatusInventoryReserved: "재고확보",
	domain.StatusInventoryRejected: "재고부족",
	domain.StatusPaymentFailed:     "결제실패",
	domain.StatusCompleted:         "완료",
	domain.StatusFailed:            "실패",
}

// retryable lists the states from which the backend accepts a retry action.
// COMPLETED and FAILED are settled; retry is only meaningful before that.
var retryable = map[domain.Status]bool{
	domain.StatusPending:           true,
	domain.StatusInventoryRejected: true,
	domain.StatusPaymentFailed:     true,
	domain.StatusInventoryReserved: true,
}

// StatusText maps a status to its display label. Unknown statuses are
// returned verbatim so new backend states render instead of crashing.
func StatusText(s domain.Status) string {
	if text, ok := statusText[s]; ok {
		return text
	}
	return string(s)
}

// Retryable reports whether the backend accepts a retry for this status.
// Unknown statuses are treated as non-retryable.
func Retryable(s domain.Status) bool {
	return retryable[s]
}

// ShortID truncates an order id to its first 8 characters for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// Project derives the full display view of one order.
func Project(o domain.Order) Projection {
	return Projection{
		ShortID:    ShortID(o.ID),
		StatusText: StatusText(o.Status),
		Retryable:  Retryable(o.Status),
		AmountText: FormatAmount(o.Amount, o.Currency),
		DateText:   FormatTimestamp(o.CreatedAt),
	}
}
