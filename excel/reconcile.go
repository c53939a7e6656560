package excel

import "strings"

// Discrepancy statuses. Shortages get two bands (FALTA, and CRÍTICO from
// ten units missing) while any surplus, however large, is SOBRA. That
// asymmetry is warehouse policy: missing stock stops maintenance jobs,
// excess stock only ties up space.
const (
	StatusOK       = "OK"
	StatusShortage = "FALTA"
	StatusCritical = "CRÍTICO"
	StatusSurplus  = "SOBRA"
)

// MissingDescription fills the description of counted materials the
// system of record does not know.
const MissingDescription = "SIN DESCRIPCIÓN"

// criticalShortage is the signed difference at which a shortage becomes
// critical (inclusive).
const criticalShortage = -10.0

// SystemAggregate is one system-of-record row, already grouped by
// material and location with its free quantity summed.
type SystemAggregate struct {
	MaterialCode string
	Description  string
	Unit         string
	Location     string
	SystemStock  float64
}

// DiscrepancyRow is the reconciliation of one (material, location) pair:
// both stocks, the signed difference (counted minus system) and the
// derived status.
type DiscrepancyRow struct {
	MaterialCode string
	Description  string
	Unit         string
	Location     string
	SystemStock  float64
	CountedStock float64
	Difference   float64
	Status       string
}

type aggregateKey struct {
	code     string
	location string
}

func keyOf(code, location string) aggregateKey {
	return aggregateKey{
		code:     strings.TrimSpace(code),
		location: strings.TrimSpace(location),
	}
}

// Reconcile merges system-of-record aggregates with physically counted
// rows into one row per (material, location) pair, a full outer join:
// keys present on either side appear in the result. The engine is a pure
// function; persisting alerts for critical rows is the caller's job.
//
// Output order is system rows first (input order), then counted-only keys
// in first-seen order. Callers re-sort for presentation.
func Reconcile(system []SystemAggregate, counted []Row) []DiscrepancyRow {
	countedStock := make(map[aggregateKey]float64)
	countedOrder := make([]aggregateKey, 0, len(counted))
	for _, r := range counted {
		k := keyOf(r.MaterialCode, r.Location)
		if _, seen := countedStock[k]; !seen {
			countedOrder = append(countedOrder, k)
		}
		countedStock[k] += r.FreeQuantity
	}

	out := make([]DiscrepancyRow, 0, len(system)+len(countedOrder))
	inSystem := make(map[aggregateKey]bool, len(system))

	for _, s := range system {
		k := keyOf(s.MaterialCode, s.Location)
		inSystem[k] = true
		out = append(out, buildRow(k, s.Description, s.Unit, s.SystemStock, countedStock[k]))
	}

	// Counted-only keys: no system side, so stock defaults to zero and the
	// description to the sentinel text.
	for _, k := range countedOrder {
		if inSystem[k] {
			continue
		}
		out = append(out, buildRow(k, MissingDescription, "", 0, countedStock[k]))
	}

	return out
}

func buildRow(k aggregateKey, description, unit string, systemStock, countedStock float64) DiscrepancyRow {
	diff := countedStock - systemStock
	return DiscrepancyRow{
		MaterialCode: k.code,
		Description:  description,
		Unit:         unit,
		Location:     k.location,
		SystemStock:  systemStock,
		CountedStock: countedStock,
		Difference:   diff,
		Status:       classifyDifference(diff),
	}
}

func classifyDifference(diff float64) string {
	switch {
	case diff == 0:
		return StatusOK
	case diff <= criticalShortage:
		return StatusCritical
	case diff < 0:
		return StatusShortage
	default:
		return StatusSurplus
	}
}
