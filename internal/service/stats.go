package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Chart kinds accepted by StatsService.Chart
const (
	ChartDaily   = "diario"
	ChartWeekly  = "semanal"
	ChartMonthly = "mes"
)

// StatsService reports revenue from delivered tickets
type StatsService interface {
	Summary(ctx context.Context) (*models.RevenueSummary, error)
	// Chart returns a series for kind; unknown kinds fall back to monthly
	Chart(ctx context.Context, kind string) (*models.RevenueChart, error)
}

type statsService struct {
	cfg Config
}

// NewStatsService creates a new stats service
func NewStatsService(cfg Config) StatsService {
	return &statsService{cfg: cfg.withDefaults()}
}

type window struct {
	label    string
	from, to time.Time
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// startOfWeek returns the Monday at or before t
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

func (s *statsService) Summary(ctx context.Context) (*models.RevenueSummary, error) {
	now := s.cfg.Clock()
	tomorrow := startOfDay(now).AddDate(0, 0, 1)
	stats := s.cfg.Store.Stats()

	var summary models.RevenueSummary
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := stats.Revenue(ctx, startOfDay(now), tomorrow)
		summary.Today = v
		return err
	})
	g.Go(func() error {
		v, err := stats.Revenue(ctx, startOfWeek(now), tomorrow)
		summary.Week = v
		return err
	})
	g.Go(func() error {
		v, err := stats.Revenue(ctx, startOfMonth(now), tomorrow)
		summary.Month = v
		return err
	})
	g.Go(func() error {
		n, err := stats.CountDelivered(ctx, startOfMonth(now), tomorrow)
		summary.DeliveredThisMonth = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (s *statsService) Chart(ctx context.Context, kind string) (*models.RevenueChart, error) {
	windows := chartWindows(strings.ToLower(strings.TrimSpace(kind)), s.cfg.Clock())
	stats := s.cfg.Store.Stats()

	chart := &models.RevenueChart{
		Labels: make([]string, len(windows)),
		Values: make([]decimal.Decimal, len(windows)),
	}
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range windows {
		chart.Labels[i] = w.label
		g.Go(func() error {
			v, err := stats.Revenue(ctx, w.from, w.to)
			chart.Values[i] = v
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return chart, nil
}

// chartWindows lists the periods of a chart, oldest first
func chartWindows(kind string, now time.Time) []window {
	today := startOfDay(now)
	var windows []window

	switch kind {
	case ChartDaily:
		for i := 6; i >= 0; i-- {
			from := today.AddDate(0, 0, -i)
			windows = append(windows, window{
				label: from.Format("2006-01-02"),
				from:  from,
				to:    from.AddDate(0, 0, 1),
			})
		}
	case ChartWeekly:
		end := today.AddDate(0, 0, 1)
		for i := 3; i >= 0; i-- {
			to := end.AddDate(0, 0, -7*i)
			windows = append(windows, window{
				label: fmt.Sprintf("Semana %d", 4-i),
				from:  to.AddDate(0, 0, -7),
				to:    to,
			})
		}
	default:
		month := startOfMonth(now)
		for i := 5; i >= 0; i-- {
			from := month.AddDate(0, -i, 0)
			windows = append(windows, window{
				label: strings.ToUpper(from.Month().String()),
				from:  from,
				to:    from.AddDate(0, 1, 0),
			})
		}
	}
	return windows
}
