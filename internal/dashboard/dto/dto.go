package dto

type DashboardMetrics struct {
	TotalUsers      int64   `json:"total_users,omitempty"`
	TotalOrders     int64   `json:"total_orders"`
	TotalRevenue    float64 `json:"total_revenue"`
	PlacedOrders    int64   `json:"placed_orders"`
	ShippedOrders   int64   `json:"shipped_orders"`
	DeliveredOrders int64   `json:"delivered_orders"`
	CancelledOrders int64   `json:"cancelled_orders"`
}
