package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrEmptyResult is returned by Group when the query produced no rows.
var ErrEmptyResult = errors.New("no rows to report")

type groupKey struct {
	order  string
	series string
}

// Group folds flat query rows into a ReportContext. Groups are created
// lazily on the first row of each (order, series) pair and keep first-seen
// order; items keep row order.
//
// Context-level fields (order number, patient name, order date) are captured
// from the first row only. Later rows may carry different values and are
// ignored: "first wins" is the documented behavior of the budget source,
// kept here on purpose.
//
// Rows with a blank description still seed or update group metadata but add
// no visible line item.
func Group(res *QueryResult) (*ReportContext, error) {
	if res == nil || len(res.Rows) == 0 {
		return nil, ErrEmptyResult
	}

	rc := &ReportContext{}
	index := make(map[groupKey]*FormulationGroup)

	for _, row := range res.Rows {
		key := groupKey{
			order:  fieldString(row, ColOrderNumber),
			series: fieldString(row, ColSeries),
		}

		g, ok := index[key]
		if !ok {
			g = &FormulationGroup{
				OrderNumber: key.order,
				Series:      key.series,
				Volume:      fieldString(row, ColVolume),
				VolumeUnit:  fieldString(row, ColVolumeUnit),
				ListPrice:   fieldDecimal(row, ColListPrice),
				Discount:    fieldDecimal(row, ColDiscount),
			}
			index[key] = g
			rc.Groups = append(rc.Groups, g)
		}

		if desc := strings.TrimSpace(fieldString(row, ColDescription)); desc != "" {
			g.Items = append(g.Items, LineItem{
				Description: desc,
				Quantity:    fieldString(row, ColQuantity),
				Unit:        fieldString(row, ColUnit),
			})
		}

		// Set-if-absent capture from the first row carrying each field.
		if rc.OrderNumber == "" {
			rc.OrderNumber = key.order
		}
		if rc.PatientName == "" {
			rc.PatientName = fieldString(row, ColPatientName)
		}
		if rc.OrderDate.IsZero() {
			if d, ok := fieldTime(row, ColOrderDate); ok {
				rc.OrderDate = d
				rc.ValidityDate = d.AddDate(0, 0, ValidityDays)
			}
		}
	}

	return rc, nil
}

// fieldString renders a row value as a trimmed display string. Nil and
// missing values come back empty. Floats that hold whole numbers drop the
// fractional part, matching how quantities arrive from the driver.
func fieldString(row Row, key string) string {
	v, ok := row[key]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []byte:
		return strings.TrimSpace(string(t))
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int:
		return strconv.Itoa(t)
	case time.Time:
		return t.Format("02/01/2006")
	case decimal.Decimal:
		return t.String()
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// fieldDecimal coerces a monetary row value to a decimal. Null, missing and
// unparsable values coerce to zero.
func fieldDecimal(row Row, key string) decimal.Decimal {
	v, ok := row[key]
	if !ok || v == nil {
		return decimal.Zero
	}
	switch t := v.(type) {
	case decimal.Decimal:
		return t
	case float64:
		return decimal.NewFromFloat(t)
	case float32:
		return decimal.NewFromFloat32(t)
	case int64:
		return decimal.NewFromInt(t)
	case int32:
		return decimal.NewFromInt32(t)
	case int:
		return decimal.NewFromInt(int64(t))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	case []byte:
		d, err := decimal.NewFromString(strings.TrimSpace(string(t)))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// fieldTime extracts a date value. Accepts time.Time from the driver or the
// common textual forms the legacy databases emit.
func fieldTime(row Row, key string) (time.Time, bool) {
	v, ok := row[key]
	if !ok || v == nil {
		return time.Time{}, false
	}
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339} {
			if d, err := time.Parse(layout, strings.TrimSpace(t)); err == nil {
				return d, true
			}
		}
	}
	return time.Time{}, false
}
