package pdfexport

import (
	"bytes"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"vms-console/lib/table"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	margin     = 10.0
)

// ExportTable таблица на листах A4 альбомной ориентации. Колонки действий пропускаются
func ExportTable(title string, t table.Table) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("ExportTable panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	columns := t.ExportColumns()
	if len(columns) == 0 {
		return nil, errors.New("нет колонок для выгрузки")
	}
	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*margin) / float64(len(columns))

	header := func() {
		pdf.SetFont(fontFamily, "B", 10)
		pdf.SetFillColor(221, 235, 247)
		for _, idx := range columns {
			pdf.CellFormat(colWidth, lineHeight+2, tr(t.Headers[idx].Title), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont(fontFamily, "", 9)
	}

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	header()
	_, pageHeight := pdf.GetPageSize()
	for _, row := range t.Rows {
		lines := make([][]string, len(columns))
		maxLines := 1
		for i, idx := range columns {
			lines[i] = pdf.SplitText(row.Cells[idx].Text, colWidth-2)
			if len(lines[i]) > maxLines {
				maxLines = len(lines[i])
			}
		}
		rowHeight := float64(maxLines) * lineHeight
		if pdf.GetY()+rowHeight > pageHeight-margin {
			pdf.AddPage()
			header()
		}
		x, y := pdf.GetXY()
		for i := range columns {
			pdf.Rect(x+float64(i)*colWidth, y, colWidth, rowHeight, "D")
			for n, line := range lines[i] {
				pdf.SetXY(x+float64(i)*colWidth+1, y+float64(n)*lineHeight)
				pdf.CellFormat(colWidth-2, lineHeight, tr(line), "", 0, "L", false, 0, "")
			}
		}
		pdf.SetXY(x, y+rowHeight)
	}
	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err = pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
