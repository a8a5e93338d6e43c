package exporthandler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	pdfexport "vms-console/lib/export/pdf"
	xlsexport "vms-console/lib/export/xls"
	filestorage "vms-console/lib/file-storage"
	jobhandler "vms-console/lib/job"
	"vms-console/lib/table"
	vendorhandler "vms-console/lib/vendor"
	"vms-console/lib/workspace"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
)

var ErrUnknownFormat = errors.New("Unsupported export format")

var contentTypes = map[Format]string{
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatPDF:  "application/pdf",
}

type File struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	// Link временная ссылка, если выгрузка сохранена в хранилище
	Link string `json:"link,omitempty"`
}

type Provider interface {
	Jobs(ctx context.Context, ws *workspace.Workspace, format Format, search string) (File, error)
	Vendors(ctx context.Context, ws *workspace.Workspace, format Format, search string) (File, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		jobs:    jobhandler.Instance,
		vendors: vendorhandler.Instance,
		xls:     xlsexport.Instance,
		storage: filestorage.Instance,
	}
}

type impl struct {
	jobs    jobhandler.Provider
	vendors vendorhandler.Provider
	xls     xlsexport.Provider
	storage filestorage.Provider
}

func (i impl) Jobs(ctx context.Context, ws *workspace.Workspace, format Format, search string) (File, error) {
	list, err := i.jobs.Filtered(ctx, ws, search)
	if err != nil {
		return File{}, err
	}
	rendered, err := table.Render(table.JobColumns, list)
	if err != nil {
		return File{}, errors.Wrap(err, "ошибка отрисовки таблицы вакансий")
	}
	return i.export(ctx, ws, format, "Job Descriptions", "job-descriptions", rendered)
}

func (i impl) Vendors(ctx context.Context, ws *workspace.Workspace, format Format, search string) (File, error) {
	list, err := i.vendors.Filtered(ctx, ws, search)
	if err != nil {
		return File{}, err
	}
	rendered, err := table.Render(table.VendorColumns, list)
	if err != nil {
		return File{}, errors.Wrap(err, "ошибка отрисовки таблицы вендоров")
	}
	return i.export(ctx, ws, format, "Vendors", "vendors", rendered)
}

func (i impl) export(ctx context.Context, ws *workspace.Workspace, format Format, title, baseName string, rendered table.Table) (File, error) {
	contentType, ok := contentTypes[format]
	if !ok {
		return File{}, ErrUnknownFormat
	}
	file := File{
		Name:        fmt.Sprintf("%v-%v.%v", baseName, time.Now().Format("20060102-150405"), format),
		ContentType: contentType,
	}
	switch format {
	case FormatXLSX:
		buf, err := i.xls.ExportTable(title, rendered)
		if err != nil {
			return File{}, errors.Wrap(err, "ошибка выгрузки в xlsx")
		}
		file.Data = buf.Bytes()
	case FormatPDF:
		data, err := pdfexport.ExportTable(title, rendered)
		if err != nil {
			return File{}, errors.Wrap(err, "ошибка выгрузки в pdf")
		}
		file.Data = data
	}
	if i.storage == nil {
		return file, nil
	}
	link, err := i.storage.UploadExport(ctx, ws.SessionID, file.Name, file.ContentType, file.Data)
	if err != nil {
		// хранилище недоступно, отдаем файл напрямую
		log.
			WithField("session_id", ws.SessionID).
			WithError(err).
			Warn("ошибка сохранения выгрузки")
		return file, nil
	}
	file.Link = link
	return file, nil
}
