package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/weiluntsai/backoffice-backend/pkg/db/models"
)

const (
	// DefaultExpiringDays is the expiration window applied when the caller
	// does not supply one.
	DefaultExpiringDays = 30
	// DefaultRecentLimit caps the recent-orders view.
	DefaultRecentLimit = 10
	// DefaultLowStockThreshold marks products running low.
	DefaultLowStockThreshold = 10

	recentOrderWindow = 30 * 24 * time.Hour
)

// Service aggregates the four collections into derived dashboard views.
type Service interface {
	Overview(ctx context.Context, tenantID string) (*Overview, error)
	Statistics(ctx context.Context, tenantID string) (*Statistics, error)
	ExpiringProducts(ctx context.Context, tenantID string, withinDays int) ([]ExpiringProduct, error)
	RecentOrders(ctx context.Context, tenantID string, limit int) ([]models.Order, error)
	LowStock(ctx context.Context, tenantID string, threshold int) ([]models.Product, error)
}

// Statistics is the aggregate snapshot across all four collections.
type Statistics struct {
	TotalProducts         int     `json:"totalProducts"`
	TotalOrders           int     `json:"totalOrders"`
	TotalCustomers        int     `json:"totalCustomers"`
	TotalContacts         int     `json:"totalContacts"`
	TotalProductValue     float64 `json:"totalProductValue"`
	TotalRevenue          float64 `json:"totalRevenue"`
	LowStockCount         int     `json:"lowStockCount"`
	RecentOrdersCount     int     `json:"recentOrdersCount"`
	ExpiringProductsCount int     `json:"expiringProductsCount"`
}

// Overview is the combined dashboard payload.
type Overview struct {
	Statistics       Statistics        `json:"statistics"`
	ExpiringProducts []ExpiringProduct `json:"expiringProducts"`
}

// ExpiringProduct decorates a product with the days left before expiration.
type ExpiringProduct struct {
	models.Product
	DaysRemaining int `json:"daysRemaining"`
}

type productLister interface {
	List(ctx context.Context, tenantID, search string) ([]models.Product, error)
}

type orderLister interface {
	List(ctx context.Context, tenantID, search string) ([]models.Order, error)
}

type customerLister interface {
	List(ctx context.Context, tenantID, search string) ([]models.Customer, error)
}

type contactLister interface {
	List(ctx context.Context, tenantID, search string) ([]models.Contact, error)
}

type service struct {
	products  productLister
	orders    orderLister
	customers customerLister
	contacts  contactLister
}

// NewService constructs the dashboard aggregator over the four resource
// managers.
func NewService(products productLister, orders orderLister, customers customerLister, contacts contactLister) (Service, error) {
	if products == nil || orders == nil || customers == nil || contacts == nil {
		return nil, fmt.Errorf("dashboard requires all four resource services")
	}
	return &service{
		products:  products,
		orders:    orders,
		customers: customers,
		contacts:  contacts,
	}, nil
}

type snapshot struct {
	products  []models.Product
	orders    []models.Order
	customers []models.Customer
	contacts  []models.Contact
}

// fanRead issues the four collection reads concurrently; they carry no
// ordering dependency, only the join point matters.
func (s *service) fanRead(ctx context.Context, tenantID string) (*snapshot, error) {
	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		snap.products, err = s.products.List(gctx, tenantID, "")
		return err
	})
	g.Go(func() error {
		var err error
		snap.orders, err = s.orders.List(gctx, tenantID, "")
		return err
	})
	g.Go(func() error {
		var err error
		snap.customers, err = s.customers.List(gctx, tenantID, "")
		return err
	})
	g.Go(func() error {
		var err error
		snap.contacts, err = s.contacts.List(gctx, tenantID, "")
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *service) Overview(ctx context.Context, tenantID string) (*Overview, error) {
	snap, err := s.fanRead(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	expiring := expiringFrom(snap.products, DefaultExpiringDays, time.Now())
	return &Overview{
		Statistics:       statisticsFrom(snap, expiring, time.Now()),
		ExpiringProducts: expiring,
	}, nil
}

func (s *service) Statistics(ctx context.Context, tenantID string) (*Statistics, error) {
	snap, err := s.fanRead(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	expiring := expiringFrom(snap.products, DefaultExpiringDays, time.Now())
	stats := statisticsFrom(snap, expiring, time.Now())
	return &stats, nil
}

func (s *service) ExpiringProducts(ctx context.Context, tenantID string, withinDays int) ([]ExpiringProduct, error) {
	all, err := s.products.List(ctx, tenantID, "")
	if err != nil {
		return nil, err
	}
	return expiringFrom(all, withinDays, time.Now()), nil
}

func (s *service) RecentOrders(ctx context.Context, tenantID string, limit int) ([]models.Order, error) {
	all, err := s.orders.List(ctx, tenantID, "")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return parseTimestamp(all[i].CreatedAt).After(parseTimestamp(all[j].CreatedAt))
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (s *service) LowStock(ctx context.Context, tenantID string, threshold int) ([]models.Product, error) {
	all, err := s.products.List(ctx, tenantID, "")
	if err != nil {
		return nil, err
	}
	low := make([]models.Product, 0, len(all))
	for _, p := range all {
		if p.Quantity < threshold {
			low = append(low, p)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low, nil
}

func statisticsFrom(snap *snapshot, expiring []ExpiringProduct, now time.Time) Statistics {
	stats := Statistics{
		TotalProducts:         len(snap.products),
		TotalOrders:           len(snap.orders),
		TotalCustomers:        len(snap.customers),
		TotalContacts:         len(snap.contacts),
		ExpiringProductsCount: len(expiring),
	}

	for _, p := range snap.products {
		stats.TotalProductValue += p.SellingPrice * float64(p.Quantity)
		if p.Quantity < DefaultLowStockThreshold {
			stats.LowStockCount++
		}
	}

	cutoff := now.Add(-recentOrderWindow)
	for _, o := range snap.orders {
		stats.TotalRevenue += o.UnitPrice * float64(o.Quantity)
		if created := parseTimestamp(o.CreatedAt); !created.IsZero() && created.After(cutoff) {
			stats.RecentOrdersCount++
		}
	}

	return stats
}

// expiringFrom keeps products whose expiration falls within the window,
// soonest first. A product whose date fails to parse has no expiration
// tracked and is skipped.
func expiringFrom(products []models.Product, withinDays int, now time.Time) []ExpiringProduct {
	out := make([]ExpiringProduct, 0, len(products))
	for _, p := range products {
		days, ok := daysUntil(p.ExpirationDate, now)
		if !ok {
			continue
		}
		if days < 0 || days > withinDays {
			continue
		}
		out = append(out, ExpiringProduct{Product: p, DaysRemaining: days})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysRemaining < out[j].DaysRemaining
	})
	return out
}

// daysUntil counts whole calendar days between now and the target date, both
// normalized to midnight, so "expires today" yields 0.
func daysUntil(value string, now time.Time) (int, bool) {
	target := parseTimestamp(value)
	if target.IsZero() {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)
	return int(day.Sub(today).Hours() / 24), true
}

var timestampLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05.000Z07:00",
}

func parseTimestamp(value string) time.Time {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
