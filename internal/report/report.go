// Package report rolls payment and room records up into the monthly figures
// the reports screen charts.
package report

import (
	"math"
	"time"

	"github.com/teguhahmad/kost01/internal/model"
)

// MonthRow is one calendar-month bucket of the report.
type MonthRow struct {
	Month         string      `json:"month"`
	Revenue       model.Money `json:"revenue"`
	Pending       model.Money `json:"pending"`
	Overdue       model.Money `json:"overdue"`
	OccupancyRate int         `json:"occupancy_rate"`
}

// Summary carries the report-level aggregates. TotalRevenue and
// AverageRevenue cover the requested window; TotalPending and TotalOverdue
// are global snapshots over every payment regardless of date.
type Summary struct {
	TotalRevenue   model.Money `json:"total_revenue"`
	AverageRevenue model.Money `json:"average_revenue"`
	TotalPending   model.Money `json:"total_pending"`
	TotalOverdue   model.Money `json:"total_overdue"`
}

// Report is the monthly series, oldest bucket first, plus the summary.
type Report struct {
	Months  []MonthRow `json:"months"`
	Summary Summary    `json:"summary"`
}

// DefaultWindow is the number of trailing months reported when the caller
// does not ask for a specific window.
const DefaultWindow = 6

// monthLabel matches the "MMM yyyy" labels the chart axis shows.
const monthLabel = "Jan 2006"

// Monthly buckets the payments into the trailing `months` calendar months
// ending at now's month and sums each bucket by payment status. Payments with
// no recorded date never land in a bucket but still count toward the global
// pending/overdue totals. The occupancy figure is a snapshot of the current
// room collection, so every bucket in one report carries the same value; the
// report has no historical room state to draw a real series from.
func Monthly(payments []model.Payment, rooms []model.Room, months int, now time.Time) Report {
	if months < 1 {
		months = DefaultWindow
	}

	occupancy := occupancyRate(rooms)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	rows := make([]MonthRow, 0, months)
	for i := 0; i < months; i++ {
		start := first.AddDate(0, -i, 0)
		end := start.AddDate(0, 1, 0)

		row := MonthRow{
			Month:         start.Format(monthLabel),
			OccupancyRate: occupancy,
		}
		for _, p := range payments {
			if p.Date == "" {
				continue
			}
			d, err := model.ParseDate(p.Date)
			if err != nil || d.Before(start) || !d.Before(end) {
				continue
			}
			switch p.Status {
			case model.PaymentPaid:
				row.Revenue = row.Revenue.Add(p.Amount)
			case model.PaymentPending:
				row.Pending = row.Pending.Add(p.Amount)
			case model.PaymentOverdue:
				row.Overdue = row.Overdue.Add(p.Amount)
			}
		}
		rows = append(rows, row)
	}

	// Built most-recent-first; the chart wants chronological order.
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}

	var sum Summary
	for _, row := range rows {
		sum.TotalRevenue = sum.TotalRevenue.Add(row.Revenue)
	}
	if len(rows) > 0 {
		sum.AverageRevenue = model.Money{Cents: sum.TotalRevenue.Cents / int64(len(rows))}
	}
	for _, p := range payments {
		switch p.Status {
		case model.PaymentPending:
			sum.TotalPending = sum.TotalPending.Add(p.Amount)
		case model.PaymentOverdue:
			sum.TotalOverdue = sum.TotalOverdue.Add(p.Amount)
		}
	}

	return Report{Months: rows, Summary: sum}
}

// occupancyRate is occupied rooms over all rooms as a nearest-integer
// percentage; an empty room collection yields 0.
func occupancyRate(rooms []model.Room) int {
	if len(rooms) == 0 {
		return 0
	}
	occupied := 0
	for _, r := range rooms {
		if r.Status == model.RoomOccupied {
			occupied++
		}
	}
	return int(math.Round(float64(occupied) / float64(len(rooms)) * 100))
}
