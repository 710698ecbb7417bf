// Package validation contains the record validation rulesets.
// The relaxed ruleset gates ordinary create/edit; the strict ruleset gates
// stage commits and is the trigger for the beast-mode grace window.
package validation

import (
	"fmt"
	"strings"

	"github.com/example/partflow/internal/models"
)

// Result reports a validation outcome with the fields that failed.
type Result struct {
	Valid         bool
	MissingFields []string
}

// Error converts the result to an error if invalid.
func (r Result) Error() error {
	if r.Valid {
		return nil
	}
	return fmt.Errorf("missing required fields: %s", strings.Join(r.MissingFields, ", "))
}

// CheckRelaxed validates a record for ordinary create/edit.
// Rules:
// - BaseID must be set
// - PartName must be set
func CheckRelaxed(rec *models.Record) Result {
	var missing []string
	if strings.TrimSpace(rec.BaseID) == "" {
		missing = append(missing, "baseId")
	}
	if strings.TrimSpace(rec.PartName) == "" {
		missing = append(missing, "partName")
	}
	return Result{Valid: len(missing) == 0, MissingFields: missing}
}

// CheckStrict validates a record for a stage commit. Everything the
// relaxed ruleset requires, plus full customer and vehicle details.
func CheckStrict(rec *models.Record) Result {
	res := CheckRelaxed(rec)
	missing := res.MissingFields
	if strings.TrimSpace(rec.CustomerName) == "" {
		missing = append(missing, "customerName")
	}
	if strings.TrimSpace(rec.CustomerPhone) == "" {
		missing = append(missing, "customerPhone")
	}
	if strings.TrimSpace(rec.CarModel) == "" {
		missing = append(missing, "carModel")
	}
	return Result{Valid: len(missing) == 0, MissingFields: missing}
}
