// Package export writes receipt histories as spreadsheet-friendly CSV.
package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/efekanoption-hub/FisTaray-c/internal/extraction"
)

// utf8BOM makes spreadsheet programs read Turkish characters correctly.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReceiptRow is one line of the receipt sheet.
type ReceiptRow struct {
	Merchant   string `csv:"Merchant"`
	Date       string `csv:"Date"`
	Category   string `csv:"Category"`
	VATPercent string `csv:"VAT Percent"`
	VATAmount  string `csv:"VAT Amount"`
	Total      string `csv:"Total"`
}

// AnalysisRow is one line of the per-category rollup.
type AnalysisRow struct {
	Category      string `csv:"Category"`
	ReceiptCount  int    `csv:"Receipt Count"`
	VATSubtotal   string `csv:"VAT Subtotal"`
	GrandSubtotal string `csv:"Grand Subtotal"`
}

// Writer renders sheets with a fixed field delimiter.
type Writer struct {
	delimiter rune
}

// NewWriter returns a Writer. Semicolons suit spreadsheets set to a locale
// that uses the comma as its decimal separator.
func NewWriter(delimiter rune) *Writer {
	if delimiter == 0 {
		delimiter = ','
	}
	return &Writer{delimiter: delimiter}
}

// Delimiter returns the field separator in use.
func (w *Writer) Delimiter() rune {
	return w.delimiter
}

// NewReceiptRow renders a receipt with two-decimal amounts.
func NewReceiptRow(r *extraction.Receipt) ReceiptRow {
	return ReceiptRow{
		Merchant:   r.Name,
		Date:       r.FullDate,
		Category:   string(r.Category),
		VATPercent: fmt.Sprintf("%%%d", r.VATRate),
		VATAmount:  r.VATAmount.StringFixed(2),
		Total:      r.Amount.StringFixed(2),
	}
}

// WriteReceipts writes one row per receipt, in the order given.
func (w *Writer) WriteReceipts(out io.Writer, receipts []*extraction.Receipt) error {
	rows := make([]ReceiptRow, 0, len(receipts))
	for _, r := range receipts {
		rows = append(rows, NewReceiptRow(r))
	}
	if err := w.write(out, &rows); err != nil {
		return fmt.Errorf("writing receipt sheet: %w", err)
	}
	return nil
}

// WriteAnalysis writes the per-category rollup, skipping empty categories.
func (w *Writer) WriteAnalysis(out io.Writer, receipts []*extraction.Receipt) error {
	summary := Summarize(receipts)
	rows := make([]AnalysisRow, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		rows = append(rows, AnalysisRow{
			Category:      string(c.Category),
			ReceiptCount:  c.Count,
			VATSubtotal:   c.VATTotal.StringFixed(2),
			GrandSubtotal: c.Total.StringFixed(2),
		})
	}
	if err := w.write(out, &rows); err != nil {
		return fmt.Errorf("writing analysis sheet: %w", err)
	}
	return nil
}

func (w *Writer) write(out io.Writer, rows any) error {
	if _, err := out.Write(utf8BOM); err != nil {
		return err
	}
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = w.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return err
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// ReadReceipts parses a sheet produced by WriteReceipts.
func (w *Writer) ReadReceipts(in io.Reader) ([]ReceiptRow, error) {
	br := bufio.NewReader(in)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		if _, err := br.Discard(len(utf8BOM)); err != nil {
			return nil, fmt.Errorf("skipping byte order mark: %w", err)
		}
	}

	csvReader := csv.NewReader(br)
	csvReader.Comma = w.delimiter

	var rows []ReceiptRow
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("reading receipt sheet: %w", err)
	}
	return rows, nil
}
