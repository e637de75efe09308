package state

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalTableCustomers(t *testing.T) {
	customers := []Customer{
		{
			ID:            "cust_1",
			CustomerName:  "Asha Rao",
			MobileNumber:  "9876543210",
			Product:       "Product A",
			CustomerType:  NTB,
			Remark:        `Said "call later", maybe Tuesday`,
			NextVisitDate: "2024-06-12",
			NextVisitTime: "10:30",
			CreatedAt:     "2024-06-10T12:00:00Z",
		},
		{
			ID:           "cust_2",
			CustomerName: "Binod Kumar",
			MobileNumber: "9123456780",
			CustomerType: ETB,
		},
	}

	out, err := MarshalTable(customers)
	require.NoError(t, err)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,customerName,mobileNumber,referenceBy,product,customerType,remark,nextVisitDate,nextVisitTime,createdAt", lines[0])

	// Every cell is a JSON string, so the comma and quotes in the remark
	// stay inside one cell
	assert.Contains(t, lines[1], `"Said \"call later\", maybe Tuesday"`)
	assert.Contains(t, lines[1], `"cust_1"`)
	assert.Contains(t, lines[2], `"ETB"`)
}

func TestMarshalTableEmpty(t *testing.T) {
	out, err := MarshalTable([]Customer{})
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestMarshalTableRejectsNonSlice(t *testing.T) {
	_, err := MarshalTable(Customer{})
	assert.Error(t, err)
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	assert.Equal(t, "customers_2024-06-10.csv", ExportFilename(false, now))
	assert.Equal(t, "sales_dairy_all_customers_2024-06-10.csv", ExportFilename(true, now))
}

func TestParseCustomerTableRoundTrip(t *testing.T) {
	original := []Customer{
		{
			ID:            "cust_1",
			CustomerName:  "Asha Rao",
			MobileNumber:  "9876543210",
			ReferenceBy:   "Branch walk-in",
			Product:       "Product A",
			CustomerType:  NTB,
			Remark:        `Said "call later", maybe Tuesday`,
			NextVisitDate: "2024-06-12",
			NextVisitTime: "10:30",
			CreatedAt:     "2024-06-10T12:00:00Z",
		},
		{
			ID:           "cust_2",
			CustomerName: "Binod Kumar",
			MobileNumber: "9123456780",
			CustomerType: ETB,
		},
	}

	out, err := MarshalTable(original)
	require.NoError(t, err)

	parsed, err := ParseCustomerTable(out)
	require.NoError(t, err)
	assert.Equal(t, original, parsed)
}

func TestParseCustomerTableErrors(t *testing.T) {
	// Header only, nothing to import
	parsed, err := ParseCustomerTable("id,customerName\n")
	require.NoError(t, err)
	assert.Empty(t, parsed)

	// Column count mismatch
	_, err = ParseCustomerTable("id,customerName\n\"cust_1\"")
	assert.Error(t, err)

	// Unterminated string
	_, err = ParseCustomerTable("id,customerName\n\"cust_1,\"Asha\"")
	assert.Error(t, err)
}

func TestParseCustomerTableIgnoresUnknownColumns(t *testing.T) {
	content := "customerName,mobileNumber,legacyField\n\"Asha Rao\",\"9876543210\",\"ignored\""
	parsed, err := ParseCustomerTable(content)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Asha Rao", parsed[0].CustomerName)
	assert.Equal(t, "9876543210", parsed[0].MobileNumber)
}
