package models

import "time"

// DashboardSummary holds the headline metrics shown on the reports dashboard
type DashboardSummary struct {
	TotalProperties   int64   `json:"totalProperties"`
	TotalRooms        int64   `json:"totalRooms"`
	OccupiedRooms     int64   `json:"occupiedRooms"`
	VacantRooms       int64   `json:"vacantRooms"`
	TotalTenants      int64   `json:"totalTenants"`
	ActiveLeases      int64   `json:"activeLeases"`
	MonthlyRevenue    float64 `json:"monthlyRevenue"`
	YearlyRevenue     float64 `json:"yearlyRevenue"`
	TotalRent         float64 `json:"totalRent"`
	OutstandingAmount float64 `json:"outstandingAmount"`
	ExpiringLeases    int64   `json:"expiringLeases"`
	OpenMaintenance   int64   `json:"openMaintenance"`
	OverduePayments   int64   `json:"overduePayments"`
	OccupancyRate     string  `json:"occupancyRate"`
}

// MonthlyRevenue is one bucket of the trailing revenue trend
type MonthlyRevenue struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

// PropertyOccupancy is the per-property occupancy breakdown on the dashboard
type PropertyOccupancy struct {
	Name          string `json:"name"`
	Occupied      int    `json:"occupied"`
	Total         int    `json:"total"`
	OccupancyRate string `json:"occupancyRate"`
}

// ReportDashboard bundles everything the reports dashboard view needs
type ReportDashboard struct {
	Summary           DashboardSummary    `json:"summary"`
	MonthlyRevenue    []MonthlyRevenue    `json:"monthlyRevenue"`
	PropertyOccupancy []PropertyOccupancy `json:"propertyOccupancy"`
}

// RevenueReport lists paid payments for a date range with a per-property rollup
type RevenueReport struct {
	Payments          []Payment          `json:"payments"`
	TotalRevenue      float64            `json:"totalRevenue"`
	RevenueByProperty map[string]float64 `json:"revenueByProperty"`
	StartDate         string             `json:"startDate"`
	EndDate           string             `json:"endDate"`
}

// PaymentsSummary aggregates counts and amounts for a filtered payment list
type PaymentsSummary struct {
	Total         int     `json:"total"`
	TotalAmount   float64 `json:"totalAmount"`
	Paid          int     `json:"paid"`
	Pending       int     `json:"pending"`
	PaidAmount    float64 `json:"paidAmount"`
	PendingAmount float64 `json:"pendingAmount"`
}

// PaymentsReport is the filtered payment listing plus its summary
type PaymentsReport struct {
	Payments []Payment       `json:"payments"`
	Summary  PaymentsSummary `json:"summary"`
}

// TenantOutstanding groups pending payments owed by one tenant
type TenantOutstanding struct {
	Tenant *Tenant `json:"tenant"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// OutstandingReport lists pending payments and the per-tenant rollup
type OutstandingReport struct {
	Payments         []Payment           `json:"payments"`
	TotalOutstanding float64             `json:"totalOutstanding"`
	ByTenant         []TenantOutstanding `json:"byTenant"`
}

// PropertyOccupancyDetail is one property's row in the occupancy report
type PropertyOccupancyDetail struct {
	Property      *Property `json:"property"`
	TotalRooms    int       `json:"totalRooms"`
	OccupiedRooms int       `json:"occupiedRooms"`
	VacantRooms   int       `json:"vacantRooms"`
	OccupancyRate string    `json:"occupancyRate"`
}

// OccupancyOverall is the all-properties occupancy rollup
type OccupancyOverall struct {
	TotalRooms    int    `json:"totalRooms"`
	OccupiedRooms int    `json:"occupiedRooms"`
	VacantRooms   int    `json:"vacantRooms"`
	OccupancyRate string `json:"occupancyRate"`
}

// OccupancyReport combines per-property and overall occupancy
type OccupancyReport struct {
	Properties []PropertyOccupancyDetail `json:"properties"`
	Overall    OccupancyOverall          `json:"overall"`
}

// VacancyReport lists vacant rooms grouped by property name
type VacancyReport struct {
	VacantRooms []Room            `json:"vacantRooms"`
	ByProperty  map[string][]Room `json:"byProperty"`
}

// TenantReportEntry is one tenant's row in the tenants report. Tenants with
// no active lease still appear, with zero totals.
type TenantReportEntry struct {
	Tenant         *Tenant `json:"tenant"`
	ActiveLease    *Lease  `json:"activeLease,omitempty"`
	TotalPaid      float64 `json:"totalPaid"`
	TotalPending   float64 `json:"totalPending"`
	HasActiveLease bool    `json:"hasActiveLease"`
}

// LeaseExpiryReport lists leases ending within the requested window
type LeaseExpiryReport struct {
	Leases    []Lease `json:"leases"`
	DaysAhead int     `json:"daysAhead"`
}

// PropertyReportEntry is one property's row in the properties report
type PropertyReportEntry struct {
	Property        *Property `json:"property"`
	TotalRooms      int       `json:"totalRooms"`
	OccupiedRooms   int       `json:"occupiedRooms"`
	VacantRooms     int       `json:"vacantRooms"`
	OccupancyRate   string    `json:"occupancyRate"`
	MonthlyRevenue  float64   `json:"monthlyRevenue"`
	OpenMaintenance int       `json:"openMaintenance"`
}

// MaintenanceSummary aggregates a filtered maintenance request list
type MaintenanceSummary struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	High       int `json:"high"`
	Medium     int `json:"medium"`
	Low        int `json:"low"`
}

// MaintenanceReport is the filtered request listing plus its summary
type MaintenanceReport struct {
	Requests []MaintenanceRequest `json:"requests"`
	Summary  MaintenanceSummary   `json:"summary"`
}

// DateRange bounds a report query
type DateRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}
