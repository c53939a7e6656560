package models

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/excel"
)

// InventoryHistory is one row of a named, immutable inventory snapshot.
// Snapshots are insert-only: they are never updated or replaced, so old
// uploads stay comparable.
type InventoryHistory struct {
	ID           int       `gorm:"primary_key" json:"id"`
	SnapshotId   string    `gorm:"size:64;index;not null" json:"snapshot_id"`
	SnapshotName string    `gorm:"size:150;not null" json:"snapshot_name"`
	UploadedAt   time.Time `gorm:"not null" json:"uploaded_at"`
	MaterialCode string    `gorm:"size:50;index;not null" json:"material_code"`
	MaterialText string    `gorm:"size:255;not null" json:"material_text"`
	BaseUnit     string    `gorm:"size:20;not null" json:"base_unit"`
	Location     string    `gorm:"size:50;index;not null" json:"location"`
	FreeQuantity float64   `gorm:"not null;default:0" json:"free_quantity"`
}

// SnapshotInfo summarizes one snapshot for listings.
type SnapshotInfo struct {
	SnapshotId   string    `json:"snapshot_id"`
	SnapshotName string    `json:"snapshot_name"`
	UploadedAt   time.Time `json:"uploaded_at"`
	RowCount     int       `json:"row_count"`
}

// CreateSnapshot captures an uploaded inventory as a new history
// snapshot, tagged with a generated id and a human-readable name.
func CreateSnapshot(ctx context.Context, name string, rows []excel.Row) (*SnapshotInfo, error) {
	db := config.GetDB()

	snapshotId := uuid.New().String()
	uploadedAt := time.Now().UTC()
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Inventario " + uploadedAt.Format("2006-01-02 15:04")
	}

	records := make([]InventoryHistory, 0, len(rows))
	for _, r := range rows {
		records = append(records, InventoryHistory{
			SnapshotId:   snapshotId,
			SnapshotName: name,
			UploadedAt:   uploadedAt,
			MaterialCode: strings.TrimSpace(r.MaterialCode),
			MaterialText: strings.TrimSpace(r.Description),
			BaseUnit:     strings.TrimSpace(r.BaseUnit),
			Location:     strings.TrimSpace(r.Location),
			FreeQuantity: r.FreeQuantity,
		})
	}

	if len(records) > 0 {
		if err := db.WithContext(ctx).CreateInBatches(&records, 500).Error; err != nil {
			return nil, err
		}
	}

	return &SnapshotInfo{
		SnapshotId:   snapshotId,
		SnapshotName: name,
		UploadedAt:   uploadedAt,
		RowCount:     len(records),
	}, nil
}

// ListSnapshots returns the snapshot catalog, newest first.
func ListSnapshots(ctx context.Context) ([]*SnapshotInfo, error) {
	db := config.GetDB()

	var results []*SnapshotInfo
	err := db.WithContext(ctx).Model(&InventoryHistory{}).
		Select("snapshot_id, snapshot_name, MIN(uploaded_at) AS uploaded_at, COUNT(*) AS row_count").
		Group("snapshot_id, snapshot_name").
		Order("uploaded_at DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// GetSnapshotItems returns the rows of one snapshot.
func GetSnapshotItems(ctx context.Context, snapshotId string) ([]*InventoryHistory, error) {
	db := config.GetDB()

	var items []*InventoryHistory
	if err := db.WithContext(ctx).Where("snapshot_id = ?", snapshotId).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errors.New("snapshot not found")
	}
	return items, nil
}
