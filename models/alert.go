package models

import (
	"context"
	"fmt"
	"time"

	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/excel"
)

const (
	AlertTypeDiscrepancy = "discrepancia"
	AlertSeverityHigh    = "Alta"
)

// Alert is a persisted warning for the operations dashboard.
type Alert struct {
	ID        int       `gorm:"primary_key" json:"id"`
	AlertType string    `gorm:"size:50;not null" json:"alert_type"`
	Message   string    `gorm:"size:500;not null" json:"message"`
	Severity  string    `gorm:"size:20;not null" json:"severity"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CreateDiscrepancyAlerts persists one high-severity alert per critical
// reconciliation row. Returns how many alerts were written.
func CreateDiscrepancyAlerts(ctx context.Context, rows []excel.DiscrepancyRow) (int, error) {
	db := config.GetDB()

	var alerts []Alert
	for _, row := range rows {
		if row.Status != excel.StatusCritical {
			continue
		}
		alerts = append(alerts, Alert{
			AlertType: AlertTypeDiscrepancy,
			Severity:  AlertSeverityHigh,
			Message: fmt.Sprintf("Discrepancia crítica en %s - %s: Sistema=%.2f, Conteo=%.2f",
				row.MaterialCode, row.Location, row.SystemStock, row.CountedStock),
		})
	}
	if len(alerts) == 0 {
		return 0, nil
	}

	if err := db.WithContext(ctx).CreateInBatches(&alerts, 500).Error; err != nil {
		return 0, err
	}
	return len(alerts), nil
}

// GetAllAlerts returns every alert, newest first.
func GetAllAlerts(ctx context.Context) ([]*Alert, error) {
	db := config.GetDB()

	var alerts []*Alert
	if err := db.WithContext(ctx).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
