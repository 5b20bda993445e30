package models

// StageCount summarizes one stage of the queue.
type StageCount struct {
	Stage          Stage   `json:"stage"`
	Waiting        int     `json:"waiting"`
	InProgress     int     `json:"in_progress"`
	AvgWaitMinutes float64 `json:"avg_wait_minutes"`
}

// QueueStats model
type QueueStats struct {
	Active       int          `json:"active"`
	HighPriority int          `json:"high_priority"`
	Stages       []StageCount `json:"stages"`
}

// DashboardSummary model
type DashboardSummary struct {
	TotalPatients       int            `json:"total_patients"`
	ActiveCases         int            `json:"active_cases"`
	DischargedToday     int            `json:"discharged_today"`
	Queue               QueueStats     `json:"queue"`
	PendingLabOrders    int            `json:"pending_lab_orders"`
	PendingPrescription int            `json:"pending_prescriptions"`
	LowStockItems       int            `json:"low_stock_items"`
	CriticalStockItems  int            `json:"critical_stock_items"`
	OutstandingBalance  float64        `json:"outstanding_balance"`
	RevenueToday        float64        `json:"revenue_today"`
	UnreadNotifications int            `json:"unread_notifications"`
	RecentPayments      []Payment      `json:"recent_payments"`
	RecentNotifications []Notification `json:"recent_notifications"`
}
