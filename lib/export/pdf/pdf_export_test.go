package pdfexport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"vms-console/lib/table"
	"vms-console/models"
	vmsapimodels "vms-console/models/api/vms"
)

func TestExportTable(t *testing.T) {
	t.Run("many rows span pages", func(t *testing.T) {
		vendors := []vmsapimodels.Vendor{}
		for i := 0; i < 80; i++ {
			vendors = append(vendors, vmsapimodels.Vendor{
				ID:       strings.Repeat("v", i+1),
				Username: "vendor",
				Email:    "vendor@vms.com",
			})
		}
		rendered, err := table.Render(table.VendorColumns, vendors)
		require.NoError(t, err)
		data, err := ExportTable("Vendors", rendered)
		require.NoError(t, err)
		require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	})

	t.Run("actions only", func(t *testing.T) {
		_, err := ExportTable("Empty", table.Table{Headers: []table.Header{{Key: "actions", Kind: models.ColumnActions}}})
		require.Error(t, err)
	})
}
