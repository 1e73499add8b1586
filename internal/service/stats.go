package service

import (
	"context"
	"math"
	"time"
)

// SiteTraffic is a placeholder figure, not live telemetry; there is no
// tracking system behind it.
const SiteTraffic = 12400

type StatsRepo interface {
	TotalRevenue(ctx context.Context) (float64, error)
	CountActiveOrders(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountProductsInStock(ctx context.Context) (int64, error)
	SalesByHour(ctx context.Context, since time.Time) (map[int]float64, error)
}

type StatsService struct {
	Repo StatsRepo
	Now  func() time.Time
}

type HourSales struct {
	Hour  int     `json:"hour"`
	Sales float64 `json:"sales"`
}

type DashboardStats struct {
	TotalRevenue    float64     `json:"totalRevenue"`
	ActiveOrders    int64       `json:"activeOrders"`
	InventoryHealth int         `json:"inventoryHealth"`
	SiteTraffic     int         `json:"siteTraffic"`
	SalesActivity   []HourSales `json:"salesActivity"`
}

func (s *StatsService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	revenue, err := s.Repo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	active, err := s.Repo.CountActiveOrders(ctx)
	if err != nil {
		return nil, err
	}

	totalProducts, err := s.Repo.CountProducts(ctx)
	if err != nil {
		return nil, err
	}
	inStock, err := s.Repo.CountProductsInStock(ctx)
	if err != nil {
		return nil, err
	}

	health := 0
	if totalProducts > 0 {
		health = int(math.Round(float64(inStock) / float64(totalProducts) * 100))
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	buckets, err := s.Repo.SalesByHour(ctx, now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	// Always 24 entries, empty hours included.
	activity := make([]HourSales, 24)
	for h := 0; h < 24; h++ {
		activity[h] = HourSales{Hour: h, Sales: buckets[h]}
	}

	return &DashboardStats{
		TotalRevenue:    revenue,
		ActiveOrders:    active,
		InventoryHealth: health,
		SiteTraffic:     SiteTraffic,
		SalesActivity:   activity,
	}, nil
}
