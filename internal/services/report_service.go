package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abhigdrv/tenantpro/internal/models"
	"github.com/abhigdrv/tenantpro/internal/repository"
)

// DefaultExpiryWindowDays is the lease expiry window used when the caller
// does not supply one
const DefaultExpiryWindowDays = 30

// RevenueTrendMonths is the fixed number of buckets in the monthly revenue trend
const RevenueTrendMonths = 6

// ReportService derives dashboard and report views from raw entity data
type ReportService struct {
	reports     *repository.ReportRepository
	payments    *repository.PaymentRepository
	maintenance *repository.MaintenanceRepository
	logger      *logrus.Logger

	now func() time.Time
}

// NewReportService creates a new report service
func NewReportService(
	reports *repository.ReportRepository,
	payments *repository.PaymentRepository,
	maintenance *repository.MaintenanceRepository,
	logger *logrus.Logger,
) *ReportService {
	if logger == nil {
		logger = logrus.New()
	}
	return &ReportService{
		reports:     reports,
		payments:    payments,
		maintenance: maintenance,
		logger:      logger,
		now:         time.Now,
	}
}

// formatRate renders an occupancy percentage with one decimal. Zero total
// rooms yields "0.0" rather than dividing by zero.
func formatRate(occupied, total int) string {
	if total == 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(occupied)/float64(total)*100)
}

// Dashboard assembles the headline metrics, the monthly revenue trend and the
// per-property occupancy breakdown. The independent counts fan out
// concurrently; none of them depend on another.
func (s *ReportService) Dashboard(ctx context.Context) (*models.ReportDashboard, error) {
	now := s.now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	firstOfYear := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	expiryCutoff := now.AddDate(0, 0, DefaultExpiryWindowDays)

	summary := models.DashboardSummary{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		summary.TotalProperties, err = s.reports.CountProperties(gctx)
		return
	})
	g.Go(func() (err error) {
		summary.TotalRooms, err = s.reports.CountRooms(gctx)
		return
	})
	g.Go(func() (err error) {
		summary.OccupiedRooms, err = s.reports.CountRoomsByStatus(gctx, models.RoomOccupied)
		return
	})
	g.Go(func() (err error) {
		summary.VacantRooms, err = s.reports.CountRoomsByStatus(gctx, models.RoomVacant)
		return
	})
	g.Go(func() (err error) {
		summary.TotalTenants, err = s.reports.CountTenants(gctx)
		return
	})
	g.Go(func() (err error) {
		summary.ActiveLeases, err = s.reports.CountActiveLeases(gctx, now)
		return
	})
	g.Go(func() (err error) {
		summary.MonthlyRevenue, err = s.reports.SumPaidSince(gctx, firstOfMonth)
		return
	})
	g.Go(func() (err error) {
		summary.YearlyRevenue, err = s.reports.SumPaidSince(gctx, firstOfYear)
		return
	})
	g.Go(func() (err error) {
		summary.TotalRent, err = s.reports.SumAllPayments(gctx)
		return
	})
	g.Go(func() (err error) {
		summary.OutstandingAmount, err = s.reports.SumByStatus(gctx, models.PaymentPending)
		return
	})
	g.Go(func() (err error) {
		summary.ExpiringLeases, err = s.reports.CountLeasesExpiring(gctx, now, expiryCutoff)
		return
	})
	g.Go(func() (err error) {
		summary.OpenMaintenance, err = s.reports.CountMaintenanceByStatus(gctx, models.MaintenanceOpen)
		return
	})
	g.Go(func() (err error) {
		summary.OverduePayments, err = s.reports.CountPaymentsByStatus(gctx, models.PaymentOverdue)
		return
	})
	if err := g.Wait(); err != nil {
		s.logger.WithError(err).Error("Failed to gather dashboard counts")
		return nil, fmt.Errorf("failed to gather dashboard counts: %w", err)
	}

	summary.OccupancyRate = formatRate(int(summary.OccupiedRooms), int(summary.TotalRooms))

	trend, err := s.monthlyRevenueTrend(ctx, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to build revenue trend")
		return nil, err
	}

	properties, err := s.reports.PropertiesWithRooms(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to load property occupancy")
		return nil, err
	}

	occupancy := make([]models.PropertyOccupancy, 0, len(properties))
	for _, prop := range properties {
		total := len(prop.Rooms)
		occupied := 0
		for _, room := range prop.Rooms {
			if room.Status == models.RoomOccupied {
				occupied++
			}
		}
		occupancy = append(occupancy, models.PropertyOccupancy{
			Name:          prop.Name,
			Occupied:      occupied,
			Total:         total,
			OccupancyRate: formatRate(occupied, total),
		})
	}

	s.logger.WithFields(logrus.Fields{
		"properties":    summary.TotalProperties,
		"active_leases": summary.ActiveLeases,
	}).Info("Generated reports dashboard")

	return &models.ReportDashboard{
		Summary:           summary,
		MonthlyRevenue:    trend,
		PropertyOccupancy: occupancy,
	}, nil
}

// monthlyRevenueTrend returns exactly RevenueTrendMonths buckets in
// chronological order. Months with no paid payments appear with zero.
func (s *ReportService) monthlyRevenueTrend(ctx context.Context, now time.Time) ([]models.MonthlyRevenue, error) {
	trend := make([]models.MonthlyRevenue, 0, RevenueTrendMonths)
	for i := RevenueTrendMonths - 1; i >= 0; i-- {
		monthStart := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		monthEnd := monthStart.AddDate(0, 1, -1)

		amount, err := s.reports.SumPaidBetween(ctx, monthStart, monthEnd)
		if err != nil {
			return nil, fmt.Errorf("failed to sum revenue for %s: %w", monthStart.Format("Jan 2006"), err)
		}

		trend = append(trend, models.MonthlyRevenue{
			Month:  monthStart.Format("Jan 2006"),
			Amount: amount,
		})
	}
	return trend, nil
}

// Revenue lists paid payments inside [from, to] with totals and the
// per-property rollup
func (s *ReportService) Revenue(ctx context.Context, from, to time.Time) (*models.RevenueReport, error) {
	payments, err := s.payments.ListPaidInRange(ctx, from, to)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate revenue report")
		return nil, err
	}

	var total float64
	byProperty := make(map[string]float64)
	for _, p := range payments {
		total += p.Amount
		if p.Lease != nil && p.Lease.Room != nil && p.Lease.Room.Property != nil {
			byProperty[p.Lease.Room.Property.Name] += p.Amount
		}
	}

	return &models.RevenueReport{
		Payments:          payments,
		TotalRevenue:      total,
		RevenueByProperty: byProperty,
		StartDate:         from.Format("2006-01-02"),
		EndDate:           to.Format("2006-01-02"),
	}, nil
}

// Payments lists payments matching the filter with summary counts and amounts
func (s *ReportService) Payments(ctx context.Context, status string, from, to *time.Time) (*models.PaymentsReport, error) {
	payments, err := s.payments.ListFiltered(ctx, status, from, to)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate payments report")
		return nil, err
	}

	summary := models.PaymentsSummary{Total: len(payments)}
	for _, p := range payments {
		summary.TotalAmount += p.Amount
		switch p.Status {
		case models.PaymentPaid:
			summary.Paid++
			summary.PaidAmount += p.Amount
		case models.PaymentPending:
			summary.Pending++
			summary.PendingAmount += p.Amount
		}
	}

	return &models.PaymentsReport{Payments: payments, Summary: summary}, nil
}

// Outstanding lists pending payments oldest first with the per-tenant rollup.
// Tenants appear in first-seen order so the output is stable.
func (s *ReportService) Outstanding(ctx context.Context) (*models.OutstandingReport, error) {
	payments, err := s.payments.ListPending(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate outstanding report")
		return nil, err
	}

	var total float64
	byTenant := make([]models.TenantOutstanding, 0)
	index := make(map[uint]int)
	for i := range payments {
		p := &payments[i]
		total += p.Amount
		if p.Lease == nil || p.Lease.Tenant == nil {
			continue
		}
		tenant := p.Lease.Tenant
		pos, ok := index[tenant.ID]
		if !ok {
			pos = len(byTenant)
			index[tenant.ID] = pos
			byTenant = append(byTenant, models.TenantOutstanding{Tenant: tenant})
		}
		byTenant[pos].Amount += p.Amount
		byTenant[pos].Count++
	}

	return &models.OutstandingReport{
		Payments:         payments,
		TotalOutstanding: total,
		ByTenant:         byTenant,
	}, nil
}

// Occupancy computes the per-property and overall occupancy rates. Rooms in
// maintenance count as not occupied.
func (s *ReportService) Occupancy(ctx context.Context) (*models.OccupancyReport, error) {
	properties, err := s.reports.PropertiesWithRooms(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate occupancy report")
		return nil, err
	}

	report := &models.OccupancyReport{
		Properties: make([]models.PropertyOccupancyDetail, 0, len(properties)),
	}
	for i := range properties {
		prop := &properties[i]
		total := len(prop.Rooms)
		occupied := 0
		for _, room := range prop.Rooms {
			if room.Status == models.RoomOccupied {
				occupied++
			}
		}

		report.Properties = append(report.Properties, models.PropertyOccupancyDetail{
			Property:      prop,
			TotalRooms:    total,
			OccupiedRooms: occupied,
			VacantRooms:   total - occupied,
			OccupancyRate: formatRate(occupied, total),
		})

		report.Overall.TotalRooms += total
		report.Overall.OccupiedRooms += occupied
		report.Overall.VacantRooms += total - occupied
	}
	report.Overall.OccupancyRate = formatRate(report.Overall.OccupiedRooms, report.Overall.TotalRooms)

	return report, nil
}

// Vacancy lists vacant rooms grouped by property name
func (s *ReportService) Vacancy(ctx context.Context) (*models.VacancyReport, error) {
	rooms, err := s.reports.VacantRoomsWithProperty(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate vacancy report")
		return nil, err
	}

	byProperty := make(map[string][]models.Room)
	for _, room := range rooms {
		if room.Property == nil {
			continue
		}
		byProperty[room.Property.Name] = append(byProperty[room.Property.Name], room)
	}

	return &models.VacancyReport{VacantRooms: rooms, ByProperty: byProperty}, nil
}

// Tenants builds one row per tenant. Tenants without a currently active lease
// still appear, with zero totals and HasActiveLease false.
func (s *ReportService) Tenants(ctx context.Context) ([]models.TenantReportEntry, error) {
	tenants, err := s.reports.TenantsWithActiveLeases(ctx, s.now())
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate tenants report")
		return nil, err
	}

	entries := make([]models.TenantReportEntry, 0, len(tenants))
	for i := range tenants {
		tenant := &tenants[i]
		entry := models.TenantReportEntry{Tenant: tenant}

		if len(tenant.Leases) > 0 {
			lease := &tenant.Leases[0]
			entry.ActiveLease = lease
			entry.HasActiveLease = true
			for _, p := range lease.Payments {
				switch p.Status {
				case models.PaymentPaid:
					entry.TotalPaid += p.Amount
				case models.PaymentPending:
					entry.TotalPending += p.Amount
				}
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LeaseExpiry lists leases ending within the next daysAhead days, soonest
// first. Non-positive daysAhead falls back to the default window.
func (s *ReportService) LeaseExpiry(ctx context.Context, daysAhead int) (*models.LeaseExpiryReport, error) {
	if daysAhead <= 0 {
		daysAhead = DefaultExpiryWindowDays
	}
	now := s.now()

	leases, err := s.reports.LeasesExpiring(ctx, now, now.AddDate(0, 0, daysAhead))
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate lease expiry report")
		return nil, err
	}

	return &models.LeaseExpiryReport{Leases: leases, DaysAhead: daysAhead}, nil
}

// Properties builds the per-property rollup: occupancy, current-month paid
// revenue across the property's active leases, and open maintenance count
func (s *ReportService) Properties(ctx context.Context) ([]models.PropertyReportEntry, error) {
	now := s.now()
	properties, err := s.reports.PropertiesForReport(ctx, now)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate properties report")
		return nil, err
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	entries := make([]models.PropertyReportEntry, 0, len(properties))
	for i := range properties {
		prop := &properties[i]
		total := len(prop.Rooms)
		occupied := 0
		var leaseIDs []uint
		for _, room := range prop.Rooms {
			if room.Status == models.RoomOccupied {
				occupied++
			}
			for _, lease := range room.Leases {
				leaseIDs = append(leaseIDs, lease.ID)
			}
		}

		revenue, err := s.reports.SumPaidForLeases(ctx, leaseIDs, firstOfMonth)
		if err != nil {
			s.logger.WithError(err).Error("Failed to sum property revenue")
			return nil, err
		}

		openMaintenance := 0
		for _, m := range prop.Maintenance {
			if m.Status == models.MaintenanceOpen {
				openMaintenance++
			}
		}

		entries = append(entries, models.PropertyReportEntry{
			Property:        prop,
			TotalRooms:      total,
			OccupiedRooms:   occupied,
			VacantRooms:     total - occupied,
			OccupancyRate:   formatRate(occupied, total),
			MonthlyRevenue:  revenue,
			OpenMaintenance: openMaintenance,
		})
	}
	return entries, nil
}

// Maintenance lists requests matching the optional status and priority
// filters with summary counts
func (s *ReportService) Maintenance(ctx context.Context, status, priority string) (*models.MaintenanceReport, error) {
	requests, err := s.maintenance.ListFiltered(ctx, status, priority)
	if err != nil {
		s.logger.WithError(err).Error("Failed to generate maintenance report")
		return nil, err
	}

	summary := models.MaintenanceSummary{Total: len(requests)}
	for _, m := range requests {
		switch m.Status {
		case models.MaintenanceOpen:
			summary.Open++
		case models.MaintenanceInProgress:
			summary.InProgress++
		case models.MaintenanceCompleted:
			summary.Completed++
		}
		switch m.Priority {
		case models.PriorityHigh:
			summary.High++
		case models.PriorityMedium:
			summary.Medium++
		case models.PriorityLow:
			summary.Low++
		}
	}

	return &models.MaintenanceReport{Requests: requests, Summary: summary}, nil
}

// writeCSV renders rows through encoding/csv so fields containing commas or
// quotes come out properly escaped
func writeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportRevenue renders the paid payments in [from, to] as CSV
func (s *ReportService) ExportRevenue(ctx context.Context, from, to time.Time) ([]byte, error) {
	payments, err := s.payments.ListPaidInRange(ctx, from, to)
	if err != nil {
		s.logger.WithError(err).Error("Failed to export revenue report")
		return nil, err
	}

	rows := [][]string{{"Date", "Tenant", "Property", "Room", "Amount", "Payment For"}}
	for _, p := range payments {
		rows = append(rows, []string{
			p.PaymentDate.Format("2006-01-02"),
			paymentTenantName(&p),
			paymentPropertyName(&p),
			paymentRoomNumber(&p),
			fmt.Sprintf("%.2f", p.Amount),
			p.PaymentForMonth.Format("January 2006"),
		})
	}
	return writeCSV(rows)
}

// ExportPayments renders every payment as CSV
func (s *ReportService) ExportPayments(ctx context.Context) ([]byte, error) {
	payments, err := s.payments.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to export payments report")
		return nil, err
	}

	rows := [][]string{{"Date", "Tenant", "Property", "Room", "Amount", "Status", "Payment For", "Note"}}
	for _, p := range payments {
		rows = append(rows, []string{
			p.PaymentDate.Format("2006-01-02"),
			paymentTenantName(&p),
			paymentPropertyName(&p),
			paymentRoomNumber(&p),
			fmt.Sprintf("%.2f", p.Amount),
			string(p.Status),
			p.PaymentForMonth.Format("January 2006"),
			p.Note,
		})
	}
	return writeCSV(rows)
}

// ExportTenants renders one row per tenant as CSV. Tenants without an active
// lease get empty lease columns, not "null".
func (s *ReportService) ExportTenants(ctx context.Context) ([]byte, error) {
	tenants, err := s.reports.TenantsWithActiveLeases(ctx, s.now())
	if err != nil {
		s.logger.WithError(err).Error("Failed to export tenants report")
		return nil, err
	}

	rows := [][]string{{"Name", "Email", "Phone", "Property", "Room", "Lease Start", "Lease End", "Rent Amount"}}
	for i := range tenants {
		tenant := &tenants[i]
		row := []string{tenant.FullName(), tenant.Email, tenant.Phone, "", "", "", "", ""}
		if len(tenant.Leases) > 0 {
			lease := &tenant.Leases[0]
			if lease.Room != nil {
				if lease.Room.Property != nil {
					row[3] = lease.Room.Property.Name
				}
				row[4] = lease.Room.RoomNumber
			}
			row[5] = lease.StartDate.Format("2006-01-02")
			row[6] = lease.EndDate.Format("2006-01-02")
			row[7] = fmt.Sprintf("%.2f", lease.RentAmount)
		}
		rows = append(rows, row)
	}
	return writeCSV(rows)
}

func paymentTenantName(p *models.Payment) string {
	if p.Lease != nil && p.Lease.Tenant != nil {
		return p.Lease.Tenant.FullName()
	}
	return ""
}

func paymentPropertyName(p *models.Payment) string {
	if p.Lease != nil && p.Lease.Room != nil && p.Lease.Room.Property != nil {
		return p.Lease.Room.Property.Name
	}
	return ""
}

func paymentRoomNumber(p *models.Payment) string {
	if p.Lease != nil && p.Lease.Room != nil {
		return p.Lease.Room.RoomNumber
	}
	return ""
}
