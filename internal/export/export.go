package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"accumulator/internal/apperrors"
	"accumulator/internal/attendance"
)

// Supported formats.
const (
	FormatCSV = "csv"
	FormatPDF = "pdf"
)

// Attendance export columns.
const (
	ColumnStudent   = "Student"
	ColumnTimestamp = "Timestamp"
	ColumnLocation  = "Location"
)

// Dataset defines tabular export content.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// File is a rendered export ready to be sent.
type File struct {
	Name        string
	ContentType string
	Content     []byte
}

// FromView flattens the visible records of a view, one row per record, in
// display order.
func FromView(view attendance.View) Dataset {
	data := Dataset{Headers: []string{ColumnStudent, ColumnTimestamp, ColumnLocation}}
	for _, g := range view.Groups {
		for _, r := range g.Visible {
			data.Rows = append(data.Rows, map[string]string{
				ColumnStudent:   g.Label(),
				ColumnTimestamp: attendance.FormatTimestamp(r.Timestamp),
				ColumnLocation:  r.Location,
			})
		}
	}
	return data
}

// Supported reports whether format can be rendered.
func Supported(format string) bool {
	switch strings.ToLower(format) {
	case FormatCSV, FormatPDF:
		return true
	}
	return false
}

// Render renders view in the requested format.
func Render(format string, view attendance.View) (File, error) {
	data := FromView(view)
	base := fmt.Sprintf("attendance-%s-%s", view.IntegrationID, view.Teacher.IDString())
	switch strings.ToLower(format) {
	case FormatCSV:
		content, err := RenderCSV(data)
		if err != nil {
			return File{}, err
		}
		return File{Name: base + ".csv", ContentType: "text/csv", Content: content}, nil
	case FormatPDF:
		content, err := RenderPDF(data, "Attendance of "+view.Teacher.VrchatDisplayName)
		if err != nil {
			return File{}, err
		}
		return File{Name: base + ".pdf", ContentType: "application/pdf", Content: content}, nil
	default:
		return File{}, apperrors.Clone(apperrors.ErrValidation, "unsupported export format")
	}
}

// RenderCSV produces CSV encoded bytes for the dataset.
func RenderCSV(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		record := make([]string, len(data.Headers))
		for i, header := range data.Headers {
			record[i] = row[header]
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderPDF creates a single table document with a title line.
func RenderPDF(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	widths := map[string]float64{ColumnStudent: 55, ColumnTimestamp: 50, ColumnLocation: 85}
	width := func(h string) float64 {
		if w, ok := widths[h]; ok {
			return w
		}
		return 190.0 / float64(len(data.Headers))
	}

	pdf.SetFont("Arial", "B", 10)
	for _, header := range data.Headers {
		pdf.CellFormat(width(header), 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range data.Rows {
		for _, header := range data.Headers {
			pdf.CellFormat(width(header), 7, tr(row[header]), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
