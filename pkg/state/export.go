package state

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// MarshalTable renders a slice of uniform records as comma-separated text:
// one header row with the field names in declaration order, then one row
// per record. Every value is individually JSON-encoded before joining,
// which sidesteps comma and quote escaping entirely. Existing exports were
// produced this way, so the encoding must not change.
func MarshalTable(records any) (string, error) {
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice {
		return "", fmt.Errorf("expected a slice of records, got %T", records)
	}
	if v.Len() == 0 {
		return "", nil
	}

	elem := v.Type().Elem()
	if elem.Kind() != reflect.Struct {
		return "", fmt.Errorf("expected struct records, got %s", elem)
	}

	var headers []string
	for i := 0; i < elem.NumField(); i++ {
		headers = append(headers, fieldName(elem.Field(i)))
	}

	lines := []string{strings.Join(headers, ",")}
	for i := 0; i < v.Len(); i++ {
		record := v.Index(i)
		cells := make([]string, 0, len(headers))
		for j := 0; j < elem.NumField(); j++ {
			encoded, err := json.Marshal(record.Field(j).Interface())
			if err != nil {
				return "", fmt.Errorf("encode field %s: %w", headers[j], err)
			}
			cells = append(cells, string(encoded))
		}
		lines = append(lines, strings.Join(cells, ","))
	}

	return strings.Join(lines, "\n"), nil
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

// ExportFilename returns the dated CSV filename. The full export keeps the
// original app's "sales_dairy" spelling so files sort together with old
// exports.
func ExportFilename(all bool, now time.Time) string {
	date := now.Format(DateLayout)
	if all {
		return fmt.Sprintf("sales_dairy_all_customers_%s.csv", date)
	}
	return fmt.Sprintf("customers_%s.csv", date)
}
