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

// WarehouseSlot is one row of the warehouse map: where a material lives
// plus its replenishment limits. Unlike the inventory, the map carries
// safety and maximum stock when the upload provides them.
type WarehouseSlot struct {
	ID           int       `gorm:"primary_key" json:"id"`
	MaterialCode string    `gorm:"size:50;index;not null" json:"material_code"`
	MaterialText string    `gorm:"size:255;not null" json:"material_text"`
	BaseUnit     string    `gorm:"size:20;not null" json:"base_unit"`
	Location     string    `gorm:"size:50;index;not null" json:"location"`
	FreeQuantity float64   `gorm:"not null;default:0" json:"free_quantity"`
	SafetyStock  float64   `gorm:"not null;default:0" json:"safety_stock"`
	MaxStock     float64   `gorm:"not null;default:0" json:"max_stock"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ReplaceWarehouseMap swaps the warehouse map for the rows of a new
// upload in one transaction. Returns the number of rows inserted.
func ReplaceWarehouseMap(ctx context.Context, rows []excel.Row) (int, error) {
	db := config.GetDB()

	slots := make([]WarehouseSlot, 0, len(rows))
	for _, r := range rows {
		slots = append(slots, WarehouseSlot{
			MaterialCode: strings.TrimSpace(r.MaterialCode),
			MaterialText: strings.TrimSpace(r.Description),
			BaseUnit:     strings.TrimSpace(r.BaseUnit),
			Location:     strings.TrimSpace(r.Location),
			FreeQuantity: r.FreeQuantity,
			SafetyStock:  r.SafetyStock,
			MaxStock:     r.MaxStock,
		})
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&WarehouseSlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.CreateInBatches(&slots, 500).Error
	})
	if err != nil {
		return 0, err
	}
	return len(slots), nil
}

// ListWarehouseMap returns the warehouse map ordered by location.
func ListWarehouseMap(ctx context.Context) ([]*WarehouseSlot, error) {
	db := config.GetDB()

	var slots []*WarehouseSlot
	if err := db.WithContext(ctx).Find(&slots).Error; err != nil {
		return nil, err
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return excel.LocationKeyOf(slots[i].Location).Less(excel.LocationKeyOf(slots[j].Location))
	})
	return slots, nil
}
