package validation

import (
	"testing"

	"github.com/example/partflow/internal/models"
)

func completeRecord() *models.Record {
	return &models.Record{
		ID:            "r1",
		BaseID:        "123",
		PartName:      "Brake pads",
		CarModel:      "Golf VII",
		CustomerName:  "Jane Cooper",
		CustomerPhone: "0123 456789",
	}
}

func TestCheckRelaxed(t *testing.T) {
	rec := completeRecord()
	if res := CheckRelaxed(rec); !res.Valid {
		t.Errorf("complete record failed relaxed check: %v", res.MissingFields)
	}

	rec.CustomerName = ""
	rec.CustomerPhone = ""
	rec.CarModel = ""
	if res := CheckRelaxed(rec); !res.Valid {
		t.Errorf("relaxed check must not require customer fields: %v", res.MissingFields)
	}

	rec.PartName = "  "
	res := CheckRelaxed(rec)
	if res.Valid {
		t.Error("blank part name passed relaxed check")
	}
	if len(res.MissingFields) != 1 || res.MissingFields[0] != "partName" {
		t.Errorf("missing fields = %v, want [partName]", res.MissingFields)
	}
}

func TestCheckStrict(t *testing.T) {
	if res := CheckStrict(completeRecord()); !res.Valid {
		t.Errorf("complete record failed strict check: %v", res.MissingFields)
	}

	rec := completeRecord()
	rec.CustomerName = ""
	rec.CarModel = ""
	res := CheckStrict(rec)
	if res.Valid {
		t.Error("incomplete record passed strict check")
	}
	if len(res.MissingFields) != 2 {
		t.Errorf("missing fields = %v, want customerName and carModel", res.MissingFields)
	}
	if res.Error() == nil {
		t.Error("invalid result returned nil error")
	}
}
