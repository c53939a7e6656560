package models

import (
	"context"
	"sort"
	"strings"

	"github.com/josecastillovelasquez23456-dot/warehouse-mro/config"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/excel"
	"github.com/josecastillovelasquez23456-dot/warehouse-mro/utils"
)

// RunDiscrepancyReport reconciles physically counted rows against the
// system of record, persists alerts for the critical rows and returns
// the result ordered by warehouse location.
func RunDiscrepancyReport(ctx context.Context, counted []excel.Row) ([]excel.DiscrepancyRow, error) {
	logger := config.GetLogger()

	system, err := SystemAggregates(ctx)
	if err != nil {
		config.LogError(logger, "reconciliation", "RunDiscrepancyReport", "aggregating system stock", nil, err)
		return nil, err
	}

	rows := excel.Reconcile(system, counted)
	sort.SliceStable(rows, func(i, j int) bool {
		if c := excel.CompareLocations(rows[i].Location, rows[j].Location); c != 0 {
			return c < 0
		}
		return rows[i].MaterialCode < rows[j].MaterialCode
	})

	created, err := CreateDiscrepancyAlerts(ctx, rows)
	if err != nil {
		config.LogError(logger, "reconciliation", "RunDiscrepancyReport", "persisting critical alerts", nil, err)
		return nil, err
	}
	if created > 0 {
		logger.WithField("alerts", created).Info("critical discrepancies detected")
	}

	return rows, nil
}

// CountEntry is one manually entered count for an inventory item,
// keyed by the item's database id. Counted arrives as free text from
// the counting form; blanks and garbage count as zero.
type CountEntry struct {
	ItemId  int    `json:"item_id" binding:"required"`
	Counted string `json:"counted"`
}

// BuildDiscrepanciesFromCounts turns per-item manual counts into a full
// discrepancy report. Every inventory item participates; items without
// an entry are treated as counted zero, same as an empty cell in a
// counted spreadsheet.
func BuildDiscrepanciesFromCounts(ctx context.Context, entries []CountEntry) ([]excel.DiscrepancyRow, error) {
	items, err := ListInventory(ctx)
	if err != nil {
		return nil, err
	}

	countedById := make(map[int]float64, len(entries))
	for _, e := range entries {
		qty := 0.0
		if d, err := utils.ParseDecimal(strings.TrimSpace(e.Counted)); err == nil {
			qty = d.InexactFloat64()
		}
		countedById[e.ItemId] = qty
	}

	counted := make([]excel.Row, 0, len(items))
	for _, item := range items {
		counted = append(counted, excel.Row{
			MaterialCode: item.MaterialCode,
			Location:     item.Location,
			FreeQuantity: countedById[item.ID],
		})
	}

	return RunDiscrepancyReport(ctx, counted)
}
