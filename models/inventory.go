package models

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/excel"
	"gorm.io/gorm"
)

// InventoryItem is one system-of-record row: what the system believes is
// stored at a location. The whole table is replaced on every inventory
// upload.
type InventoryItem struct {
	ID           int       `gorm:"primary_key" json:"id"`
	MaterialCode string    `gorm:"size:50;index;not null" json:"material_code"`
	MaterialText string    `gorm:"size:255;not null" json:"material_text"`
	BaseUnit     string    `gorm:"size:20;not null" json:"base_unit"`
	Location     string    `gorm:"size:50;index;not null" json:"location"`
	FreeQuantity float64   `gorm:"not null;default:0" json:"free_quantity"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// StockStatus classifies the on-hand quantity for the inventory listing.
// With no max-stock reference the bands are absolute quantities.
func (item *InventoryItem) StockStatus() string {
	switch {
	case item.FreeQuantity <= 0:
		return "vacío"
	case item.FreeQuantity <= 5:
		return "crítico"
	case item.FreeQuantity <= 15:
		return "bajo"
	default:
		return "normal"
	}
}

// ReplaceInventory swaps the entire system-of-record inventory for the
// rows of a validated upload: delete all, then insert, in one
// transaction. Returns the number of rows inserted.
func ReplaceInventory(ctx context.Context, rows []excel.Row) (int, error) {
	db := config.GetDB()

	items := make([]InventoryItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, InventoryItem{
			MaterialCode: strings.TrimSpace(r.MaterialCode),
			MaterialText: strings.TrimSpace(r.Description),
			BaseUnit:     strings.TrimSpace(r.BaseUnit),
			Location:     strings.TrimSpace(r.Location),
			FreeQuantity: r.FreeQuantity,
		})
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&InventoryItem{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(&items, 500).Error
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// ListInventory returns every inventory row ordered the way the floor
// walks the racks.
func ListInventory(ctx context.Context) ([]*InventoryItem, error) {
	db := config.GetDB()

	var items []*InventoryItem
	if err := db.WithContext(ctx).Find(&items).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool {
		return excel.LocationKeyOf(items[i].Location).Less(excel.LocationKeyOf(items[j].Location))
	})
	return items, nil
}

// SystemAggregates groups the system of record by material and location
// with free quantity summed: the system side of the reconciliation join.
func SystemAggregates(ctx context.Context) ([]excel.SystemAggregate, error) {
	db := config.GetDB()

	var results []excel.SystemAggregate
	err := db.WithContext(ctx).Model(&InventoryItem{}).
		Select("material_code, material_text AS description, base_unit AS unit, location, SUM(free_quantity) AS system_stock").
		Group("material_code, material_text, base_unit, location").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
