package models

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/utils"
)

// PackageReceipt records one trailer delivery of packages (bultos)
// registered at the gate.
type PackageReceipt struct {
	ID         int       `gorm:"primary_key" json:"id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	Driver     string    `gorm:"size:120;not null" json:"driver"`
	Plate      string    `gorm:"size:20;not null" json:"plate"`
	ReceivedAt time.Time `gorm:"index;not null" json:"received_at"`
	Note       string    `gorm:"size:255" json:"note"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// PostCount is a physical re-count of one receipt after unloading.
type PostCount struct {
	ID             int       `gorm:"primary_key" json:"id"`
	ReceiptId      int       `gorm:"index;not null" json:"receipt_id"`
	SystemQuantity int       `gorm:"not null" json:"system_quantity"`
	RealQuantity   int       `gorm:"not null" json:"real_quantity"`
	Difference     int       `gorm:"not null" json:"difference"`
	Note           string    `gorm:"size:255" json:"note"`
	RegisteredBy   string    `gorm:"size:120" json:"registered_by"`
	RegisteredAt   time.Time `gorm:"autoCreateTime" json:"registered_at"`
}

// NewPackageReceipt is the gate registration form. Quantity and the
// timestamp arrive as free text; a blank or malformed quantity counts as
// zero and a malformed timestamp falls back to now.
type NewPackageReceipt struct {
	Quantity   string `json:"quantity"`
	Driver     string `json:"driver" binding:"required"`
	Plate      string `json:"plate" binding:"required"`
	ReceivedAt string `json:"received_at"`
	Note       string `json:"note"`
}

// CreatePackageReceipt registers a delivery.
func CreatePackageReceipt(ctx context.Context, input *NewPackageReceipt) (*PackageReceipt, error) {
	db := config.GetDB()

	qty, err := strconv.Atoi(strings.TrimSpace(input.Quantity))
	if err != nil {
		qty = 0
	}

	receipt := PackageReceipt{
		Quantity:   qty,
		Driver:     strings.TrimSpace(input.Driver),
		Plate:      strings.ToUpper(strings.TrimSpace(input.Plate)),
		ReceivedAt: utils.ParseFlexibleTime(input.ReceivedAt),
		Note:       strings.TrimSpace(input.Note),
	}
	if err := db.WithContext(ctx).Create(&receipt).Error; err != nil {
		return nil, err
	}
	return &receipt, nil
}

// PackageReceiptFilter narrows the receipt listing. From and To are
// dates (2006-01-02); a malformed date disables that bound.
type PackageReceiptFilter struct {
	Driver string
	Plate  string
	From   string
	To     string
}

// SeriesPoint is one bucket of a received-packages time series.
type SeriesPoint struct {
	Label    string `json:"label"`
	Packages int    `json:"packages"`
}

// PackageStats are the dashboard KPIs over a receipt listing.
type PackageStats struct {
	TotalPackages int           `json:"total_packages"`
	PackagesToday int           `json:"packages_today"`
	Trailers      int           `json:"trailers"`
	PerDay        []SeriesPoint `json:"per_day"`
	PerWeek       []SeriesPoint `json:"per_week"`
	PerMonth      []SeriesPoint `json:"per_month"`
}

// ListPackageReceipts returns receipts matching the filter in arrival
// order, plus KPI totals and per-day/week/month series over the match.
func ListPackageReceipts(ctx context.Context, filter PackageReceiptFilter) ([]*PackageReceipt, *PackageStats, error) {
	db := config.GetDB()

	query := db.WithContext(ctx).Model(&PackageReceipt{})
	if driver := strings.TrimSpace(filter.Driver); driver != "" {
		query = query.Where("driver LIKE ?", "%"+driver+"%")
	}
	if plate := strings.TrimSpace(filter.Plate); plate != "" {
		query = query.Where("plate LIKE ?", "%"+strings.ToUpper(plate)+"%")
	}
	if from, err := time.Parse("2006-01-02", strings.TrimSpace(filter.From)); err == nil {
		query = query.Where("received_at >= ?", from)
	}
	if to, err := time.Parse("2006-01-02", strings.TrimSpace(filter.To)); err == nil {
		query = query.Where("received_at < ?", to.AddDate(0, 0, 1))
	}

	var receipts []*PackageReceipt
	if err := query.Order("received_at ASC").Find(&receipts).Error; err != nil {
		return nil, nil, err
	}
	return receipts, buildPackageStats(receipts), nil
}

func buildPackageStats(receipts []*PackageReceipt) *PackageStats {
	stats := &PackageStats{}
	today := time.Now().UTC().Format("2006-01-02")

	// Trailers counts distinct plates; the same trailer arriving twice is
	// still one trailer.
	plates := map[string]bool{}
	perDay := map[string]int{}
	perWeek := map[string]int{}
	perMonth := map[string]int{}
	var dayOrder, weekOrder, monthOrder []string

	for _, r := range receipts {
		stats.TotalPackages += r.Quantity
		if plate := strings.TrimSpace(r.Plate); plate != "" {
			plates[plate] = true
		}

		day := r.ReceivedAt.Format("2006-01-02")
		if day == today {
			stats.PackagesToday += r.Quantity
		}

		year, week := r.ReceivedAt.ISOWeek()
		weekLabel := strconv.Itoa(year) + "-W" + strconv.Itoa(week)
		month := r.ReceivedAt.Format("2006-01")

		if _, seen := perDay[day]; !seen {
			dayOrder = append(dayOrder, day)
		}
		if _, seen := perWeek[weekLabel]; !seen {
			weekOrder = append(weekOrder, weekLabel)
		}
		if _, seen := perMonth[month]; !seen {
			monthOrder = append(monthOrder, month)
		}
		perDay[day] += r.Quantity
		perWeek[weekLabel] += r.Quantity
		perMonth[month] += r.Quantity
	}

	for _, d := range dayOrder {
		stats.PerDay = append(stats.PerDay, SeriesPoint{Label: d, Packages: perDay[d]})
	}
	for _, w := range weekOrder {
		stats.PerWeek = append(stats.PerWeek, SeriesPoint{Label: w, Packages: perWeek[w]})
	}
	for _, m := range monthOrder {
		stats.PerMonth = append(stats.PerMonth, SeriesPoint{Label: m, Packages: perMonth[m]})
	}
	stats.Trailers = len(plates)
	return stats
}

// NewPostCount is the re-count form for one receipt.
type NewPostCount struct {
	RealQuantity string `json:"real_quantity"`
	Note         string `json:"note"`
}

// RegisterPostCount stores a physical re-count against a receipt. The
// difference is real minus the quantity declared at the gate.
func RegisterPostCount(ctx context.Context, receiptId int, registeredBy string, input *NewPostCount) (*PostCount, error) {
	db := config.GetDB()

	receipt := PackageReceipt{}
	if err := db.WithContext(ctx).First(&receipt, receiptId).Error; err != nil {
		return nil, errors.New("package receipt not found")
	}

	real, err := strconv.Atoi(strings.TrimSpace(input.RealQuantity))
	if err != nil {
		real = 0
	}

	count := PostCount{
		ReceiptId:      receipt.ID,
		SystemQuantity: receipt.Quantity,
		RealQuantity:   real,
		Difference:     real - receipt.Quantity,
		Note:           strings.TrimSpace(input.Note),
		RegisteredBy:   registeredBy,
	}
	if err := db.WithContext(ctx).Create(&count).Error; err != nil {
		return nil, err
	}
	return &count, nil
}

// ListPostCounts returns every re-count, newest first.
func ListPostCounts(ctx context.Context) ([]*PostCount, error) {
	db := config.GetDB()

	var counts []*PostCount
	if err := db.WithContext(ctx).Order("registered_at DESC").Find(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}
