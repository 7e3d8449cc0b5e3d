package tracking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/models"
)

type Reports struct {
	db *gorm.DB
}

func NewReports(db *gorm.DB) *Reports {
	return &Reports{db: db}
}

type DayCount struct {
	Day   string `json:"day"`
	Count int64  `json:"count"`
}

type PageCount struct {
	Path  string `json:"path"`
	Count int64  `json:"count"`
}

// Overview bundles the dashboard metrics for one date range.
type Overview struct {
	TotalVisits    int64       `json:"total_visits"`
	UniqueIPs      int64       `json:"unique_ips"`
	UniqueSessions int64       `json:"unique_sessions"`
	UniqueUsers    int64       `json:"unique_users"`
	VisitsByDay    []DayCount  `json:"visits_by_day"`
	PopularPages   []PageCount `json:"popular_pages"`
}

func (r *Reports) inRange(ctx context.Context, start, end time.Time) *gorm.DB {
	// end is inclusive: the range covers the whole final day.
	return r.db.WithContext(ctx).
		Model(&models.Visit{}).
		Where("created_at >= ? AND created_at < ?", start, end.Add(24*time.Hour))
}

func (r *Reports) TotalVisits(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.inRange(ctx, start, end).Count(&n).Error
	return n, err
}

func (r *Reports) UniqueIPs(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.inRange(ctx, start, end).Distinct("ip_address").Count(&n).Error
	return n, err
}

func (r *Reports) UniqueSessions(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.inRange(ctx, start, end).Distinct("session_id").Count(&n).Error
	return n, err
}

func (r *Reports) UniqueUsers(ctx context.Context, start, end time.Time) (int64, error) {
	var n int64
	err := r.inRange(ctx, start, end).
		Where("user_id IS NOT NULL").
		Distinct("user_id").
		Count(&n).Error
	return n, err
}

func (r *Reports) VisitsByDay(ctx context.Context, start, end time.Time) ([]DayCount, error) {
	var rows []DayCount
	err := r.inRange(ctx, start, end).
		Select("DATE(created_at) AS day, COUNT(*) AS count").
		Group("DATE(created_at)").
		Order("day ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *Reports) PopularPages(ctx context.Context, start, end time.Time, limit int) ([]PageCount, error) {
	if limit <= 0 {
		limit = 10
	}

	var rows []PageCount
	err := r.inRange(ctx, start, end).
		Select("path, COUNT(*) AS count").
		Group("path").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *Reports) BuildOverview(ctx context.Context, start, end time.Time) (*Overview, error) {
	total, err := r.TotalVisits(ctx, start, end)
	if err != nil {
		return nil, err
	}
	ips, err := r.UniqueIPs(ctx, start, end)
	if err != nil {
		return nil, err
	}
	sessions, err := r.UniqueSessions(ctx, start, end)
	if err != nil {
		return nil, err
	}
	users, err := r.UniqueUsers(ctx, start, end)
	if err != nil {
		return nil, err
	}
	byDay, err := r.VisitsByDay(ctx, start, end)
	if err != nil {
		return nil, err
	}
	pages, err := r.PopularPages(ctx, start, end, 10)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalVisits:    total,
		UniqueIPs:      ips,
		UniqueSessions: sessions,
		UniqueUsers:    users,
		VisitsByDay:    byDay,
		PopularPages:   pages,
	}, nil
}

// PurgeOlderThan removes visits past the retention window. Returns the
// number of rows deleted.
func (r *Reports) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.Visit{})
	return res.RowsAffected, res.Error
}
