package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/MrReptiloid/HotelApp/internal/model"
)

// MonthlyBookings aggregates bookings created in one calendar month.
type MonthlyBookings struct {
	Year         int
	Month        int
	Count        int
	RevenueCents int64
}

// AdminStats is the administrator dashboard summary.
type AdminStats struct {
	TotalUsers     int
	TotalHotels    int
	TotalRooms     int
	TotalBookings  int
	ActiveBookings int
	// RevenueCents sums Confirmed and Completed bookings.
	RevenueCents    int64
	BookingsByMonth []MonthlyBookings
}

// StatsRepo computes the administrator statistics with aggregate queries.
type StatsRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewStatsRepo returns a StatsRepo bound to db.
func NewStatsRepo(db *sql.DB) *StatsRepo { return &StatsRepo{db: db, now: time.Now} }

// Stats returns the totals, the revenue and the per-month figures for the
// six months before today, newest month first.
func (r *StatsRepo) Stats(ctx context.Context) (AdminStats, error) {
	var s AdminStats
	const totals = `SELECT
	    (SELECT COUNT(*) FROM users),
	    (SELECT COUNT(*) FROM hotels),
	    (SELECT COUNT(*) FROM rooms),
	    (SELECT COUNT(*) FROM bookings),
	    (SELECT COUNT(*) FROM bookings WHERE status = ?),
	    (SELECT COALESCE(SUM(total_price_cents), 0) FROM bookings WHERE status IN (?, ?))`
	err := r.db.QueryRowContext(ctx, totals,
		string(model.StatusConfirmed), string(model.StatusConfirmed), string(model.StatusCompleted)).
		Scan(&s.TotalUsers, &s.TotalHotels, &s.TotalRooms, &s.TotalBookings, &s.ActiveBookings, &s.RevenueCents)
	if err != nil {
		return AdminStats{}, err
	}

	since := model.UTCDate(r.now()).AddDate(0, -6, 0)
	const monthly = `SELECT YEAR(created_at), MONTH(created_at), COUNT(*), COALESCE(SUM(total_price_cents), 0)
	                 FROM bookings
	                 WHERE created_at >= ?
	                 GROUP BY YEAR(created_at), MONTH(created_at)
	                 ORDER BY YEAR(created_at) DESC, MONTH(created_at) DESC
	                 LIMIT 6`
	rows, err := r.db.QueryContext(ctx, monthly, since)
	if err != nil {
		return AdminStats{}, err
	}
	defer rows.Close()

	s.BookingsByMonth = []MonthlyBookings{}
	for rows.Next() {
		var m MonthlyBookings
		if err := rows.Scan(&m.Year, &m.Month, &m.Count, &m.RevenueCents); err != nil {
			return AdminStats{}, err
		}
		s.BookingsByMonth = append(s.BookingsByMonth, m)
	}
	if err := rows.Err(); err != nil {
		return AdminStats{}, err
	}
	return s, nil
}
