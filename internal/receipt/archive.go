package receipt

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/danielliedt/smart-receipt-manager/internal/cleaning"
	"github.com/danielliedt/smart-receipt-manager/internal/parsing"
)

var (
	headerColumns = []string{"receipt_id", "date", "time", "store_name", "total_sum"}
	itemColumns   = []string{"receipt_id", "item_name", "unit_price", "quantity", "category"}
)

// Archive is the long-term tabular store for parsed receipts. SaveReceipt
// returns false without writing anything when the receipt ID is already
// archived, so one receipt never shows up twice in the spreadsheets.
type Archive interface {
	SaveReceipt(header parsing.Header, items []parsing.Item) (bool, error)
}

// CSVArchive appends receipts to partitioned CSV files under a base
// directory: header rows go to header_YYYY.csv by receipt year, item rows to
// items_YYYYMM.csv by receipt month. Partitioning keeps each file small
// enough to open in a spreadsheet and makes the monthly item files natural
// reporting units.
type CSVArchive struct {
	basePath string
}

// NewCSVArchive creates a CSVArchive rooted at basePath, creating the
// directory if needed.
func NewCSVArchive(basePath string) (*CSVArchive, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}
	return &CSVArchive{basePath: basePath}, nil
}

// SaveReceipt appends the header and item rows to their partitions. The
// duplicate check scans the year partition the header would land in; a
// receipt ID is unique per store, date and time, so a second scan of the same
// paper receipt is dropped here.
func (a *CSVArchive) SaveReceipt(header parsing.Header, items []parsing.Item) (bool, error) {
	if len(header.Date) < 8 {
		return false, fmt.Errorf("malformed receipt date: %q", header.Date)
	}
	headerPath := filepath.Join(a.basePath, fmt.Sprintf("header_%s.csv", header.Date[:4]))
	itemsPath := filepath.Join(a.basePath, fmt.Sprintf("items_%s.csv", header.Date[:6]))

	exists, err := a.containsID(headerPath, header.ReceiptID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	headerRow := []string{
		header.ReceiptID,
		header.Date,
		header.Time,
		header.StoreName,
		cleaning.NormalizeCell(header.TotalSum),
	}
	if err := a.appendRows(headerPath, headerColumns, [][]string{headerRow}); err != nil {
		return false, fmt.Errorf("writing header row: %w", err)
	}

	itemRows := make([][]string, 0, len(items))
	for _, item := range items {
		itemRows = append(itemRows, []string{
			item.ReceiptID,
			item.Name,
			fmt.Sprintf("%.2f", item.UnitPrice),
			strconv.Itoa(item.Quantity),
			item.Category,
		})
	}
	if err := a.appendRows(itemsPath, itemColumns, itemRows); err != nil {
		return false, fmt.Errorf("writing item rows: %w", err)
	}

	return true, nil
}

// containsID reports whether the receipt ID appears in the first column of
// the given partition. A missing partition file means no duplicate.
func (a *CSVArchive) containsID(path, receiptID string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("opening archive partition: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return false, fmt.Errorf("reading archive partition: %w", err)
	}
	for _, record := range records {
		if len(record) > 0 && record[0] == receiptID {
			return true, nil
		}
	}
	return false, nil
}

// appendRows appends rows to a partition, writing the column header first
// when the file is newly created.
func (a *CSVArchive) appendRows(path string, columns []string, rows [][]string) error {
	info, err := os.Stat(path)
	writeHeader := os.IsNotExist(err) || (err == nil && info.Size() == 0)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening archive partition: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(columns); err != nil {
			return fmt.Errorf("writing column header: %w", err)
		}
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}
