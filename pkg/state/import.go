package state

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseCustomerTable reads a table produced by MarshalTable back into
// customer records. The header row decides which column feeds which field;
// unknown columns are ignored so older exports with fewer fields still
// load.
func ParseCustomerTable(content string) ([]Customer, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) < 2 {
		return nil, nil
	}

	headers := strings.Split(lines[0], ",")

	var customers []Customer
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		cells, err := splitTableRow(line)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if len(cells) != len(headers) {
			return nil, fmt.Errorf("row %d: %d columns, header has %d", i+2, len(cells), len(headers))
		}

		var c Customer
		for j, header := range headers {
			if err := assignCustomerField(&c, header, cells[j]); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", i+2, header, err)
			}
		}
		customers = append(customers, c)
	}

	return customers, nil
}

// splitTableRow splits on commas that sit outside JSON string literals
func splitTableRow(line string) ([]string, error) {
	var cells []string
	var cell strings.Builder
	inString := false
	escaped := false

	for _, r := range line {
		switch {
		case escaped:
			escaped = false
			cell.WriteRune(r)
		case r == '\\' && inString:
			escaped = true
			cell.WriteRune(r)
		case r == '"':
			inString = !inString
			cell.WriteRune(r)
		case r == ',' && !inString:
			cells = append(cells, cell.String())
			cell.Reset()
		default:
			cell.WriteRune(r)
		}
	}
	if inString {
		return nil, fmt.Errorf("unterminated quoted value")
	}
	cells = append(cells, cell.String())
	return cells, nil
}

func assignCustomerField(c *Customer, header, cell string) error {
	var value string
	if err := json.Unmarshal([]byte(cell), &value); err != nil {
		return err
	}

	switch header {
	case "id":
		c.ID = value
	case "customerName":
		c.CustomerName = value
	case "mobileNumber":
		c.MobileNumber = value
	case "referenceBy":
		c.ReferenceBy = value
	case "product":
		c.Product = value
	case "customerType":
		c.CustomerType = CustomerType(value)
	case "remark":
		c.Remark = value
	case "nextVisitDate":
		c.NextVisitDate = value
	case "nextVisitTime":
		c.NextVisitTime = value
	case "createdAt":
		c.CreatedAt = value
	}
	return nil
}
