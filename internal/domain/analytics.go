package domain

type EventCount struct {
	Count int64 `json:"count"`
}

type DailySummary struct {
	Date        string `json:"date"`
	TotalOrders int64  `json:"totalOrders"`
	TotalAmount int64  `json:"totalAmount"`
}
