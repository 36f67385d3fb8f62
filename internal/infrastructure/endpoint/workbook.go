package endpoint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	domainRepo "github.com/sangkips/invoice-desk/internal/domain/repository"
	"github.com/xuri/excelize/v2"
)

const (
	BillsSheet = "Bills"
	ItemsSheet = "Items"
)

// WorkbookStore appends invoices to a local .xlsx workbook laid out like the
// remote spreadsheet: one Bills sheet and one Items sheet. It answers with
// the same {status, message} contract as the web app.
type WorkbookStore struct {
	mu   sync.Mutex
	path string
}

// NewWorkbookStore creates a store writing to path. The file and its sheets
// are created on first save.
func NewWorkbookStore(path string) *WorkbookStore {
	return &WorkbookStore{path: path}
}

var _ domainRepo.InvoiceEndpoint = (*WorkbookStore)(nil)

// SaveInvoice appends the bill row and item rows. A bill number that is
// already present is rejected with a non-success status.
func (s *WorkbookStore) SaveInvoice(ctx context.Context, req *entity.SaveInvoiceRequest) (*entity.SaveInvoiceResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if req.Action != entity.SaveInvoiceAction {
		return &entity.SaveInvoiceResponse{Status: "error", Message: fmt.Sprintf("Unknown action %q", req.Action)}, nil
	}
	if len(req.BillData) != 1 || len(req.BillData[0]) < 2 {
		return &entity.SaveInvoiceResponse{Status: "error", Message: "Missing bill data"}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	billNumber := fmt.Sprint(req.BillData[0][1])
	bills, err := f.GetRows(BillsSheet)
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to read %s sheet: %w", BillsSheet, err)
	}
	for i, row := range bills {
		if i > 0 && len(row) > 1 && row[1] == billNumber {
			return &entity.SaveInvoiceResponse{Status: "error", Message: fmt.Sprintf("Bill %s is already saved", billNumber)}, nil
		}
	}
	items, err := f.GetRows(ItemsSheet)
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to read %s sheet: %w", ItemsSheet, err)
	}

	if err := appendRows(f, BillsSheet, len(bills), req.BillData); err != nil {
		return nil, err
	}
	if err := appendRows(f, ItemsSheet, len(items), req.ItemsData); err != nil {
		return nil, err
	}

	if err := f.SaveAs(s.path); err != nil {
		return nil, fmt.Errorf("endpoint: failed to save workbook %s: %w", s.path, err)
	}
	return &entity.SaveInvoiceResponse{Status: entity.StatusSuccess, Message: "Invoice saved"}, nil
}

// open loads the workbook or creates it with header rows.
func (s *WorkbookStore) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		if err := ensureSheet(f, BillsSheet, entity.BillColumns); err != nil {
			f.Close()
			return nil, err
		}
		if err := ensureSheet(f, ItemsSheet, entity.ItemColumns); err != nil {
			f.Close()
			return nil, err
		}
		return f, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("endpoint: failed to open workbook %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("endpoint: failed to create workbook dir %s: %w", dir, err)
		}
	}

	f = excelize.NewFile()
	if err := f.SetSheetName("Sheet1", BillsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("endpoint: failed to name sheet: %w", err)
	}
	if err := writeHeader(f, BillsSheet, entity.BillColumns); err != nil {
		f.Close()
		return nil, err
	}
	if err := ensureSheet(f, ItemsSheet, entity.ItemColumns); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func ensureSheet(f *excelize.File, name string, header []string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("endpoint: failed to look up sheet %s: %w", name, err)
	}
	if idx >= 0 {
		return nil
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("endpoint: failed to create sheet %s: %w", name, err)
	}
	return writeHeader(f, name, header)
}

func writeHeader(f *excelize.File, sheet string, header []string) error {
	row := make([]any, len(header))
	for i, h := range header {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return fmt.Errorf("endpoint: failed to write %s header: %w", sheet, err)
	}
	return nil
}

// appendRows writes rows after the existing used rows (existing counts the header).
func appendRows(f *excelize.File, sheet string, existing int, rows [][]any) error {
	if existing < 1 {
		existing = 1
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, existing+i+1)
		if err != nil {
			return fmt.Errorf("endpoint: bad cell for %s row %d: %w", sheet, existing+i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("endpoint: failed to append %s row: %w", sheet, err)
		}
	}
	return nil
}
