package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"vms-console/lib/table"
)

type Provider interface {
	// ExportTable колонки действий в выгрузку не попадают
	ExportTable(sheetName string, t table.Table) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

func (i impl) ExportTable(sheetName string, t table.Table) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("ошибка закрытия файла")
		}
	}()
	sheet := "Sheet1"
	columns := t.ExportColumns()
	headers := make([]string, 0, len(columns))
	for _, idx := range columns {
		headers = append(headers, t.Headers[idx].Title)
	}
	row, err := writeHeader(f, sheet, 0, headers)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования заголовка в xlsx")
	}
	if len(t.Rows) != 0 {
		if err = writeRows(f, sheet, t, columns, row); err != nil {
			return nil, errors.Wrap(err, "ошибка формирования таблицы с данными в xlsx")
		}
	}
	if sheetName != "" {
		if err = f.SetSheetName(sheet, sheetName); err != nil {
			return nil, errors.Wrap(err, "ошибка переименования листа xlsx")
		}
	}
	return f.WriteToBuffer()
}

func writeRows(f *excelize.File, sheet string, t table.Table, columns []int, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(columns), row+len(t.Rows)); err != nil {
		return err
	}
	for _, r := range t.Rows {
		row++
		for col, idx := range columns {
			if err := writeColumn(f, sheet, col+1, row, r.Cells[idx].Text); err != nil {
				return err
			}
		}
	}
	return nil
}
