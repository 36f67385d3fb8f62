package service

import (
	"fmt"
	"strconv"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/domain/enum"
	"github.com/sangkips/invoice-desk/pkg/printer"
	"go.uber.org/zap"
)

// PrinterService renders receipts and hands them to the configured printer.
type PrinterService struct {
	printer     printer.Printer
	header      entity.ReceiptHeader
	printerType string
	format      string
	charWidth   int
	log         *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	header entity.ReceiptHeader,
	printerType string,
	format string,
	charWidth int,
	log *zap.Logger,
) *PrinterService {
	if format == "" {
		format = printer.FormatPDF
	}
	if charWidth <= 0 {
		charWidth = 32
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &PrinterService{
		printer:     p,
		header:      header,
		printerType: printerType,
		format:      format,
		charWidth:   charWidth,
		log:         log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Format     string `json:"format"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Format:     s.format,
	}
}

// Header returns the shop header printed on every receipt.
func (s *PrinterService) Header() entity.ReceiptHeader {
	return s.header
}

// BuildReceipt composes the receipt for a draft and its valid items.
func (s *PrinterService) BuildReceipt(d *entity.Draft, valid []entity.LineItem) *entity.Receipt {
	return entity.NewReceipt(s.header, d, valid)
}

// PrintReceipt renders the receipt in the configured format and prints it.
func (s *PrinterService) PrintReceipt(r *entity.Receipt) error {
	job := printer.Job{Name: r.BillNumber, Format: s.format}
	switch s.format {
	case printer.FormatESCPOS:
		job.Data = FormatReceipt(r, s.charWidth)
	default:
		data, err := RenderPDF(r)
		if err != nil {
			return err
		}
		job.Data = data
	}

	if err := s.printer.Print(job); err != nil {
		s.log.Warn("printer error",
			zap.String("bill_number", r.BillNumber),
			zap.String("format", job.Format),
			zap.Error(err))
		return fmt.Errorf("failed to print receipt: %w", err)
	}
	return nil
}

// Preview validates the draft and renders its receipt as a PDF without
// printing or submitting anything.
func (s *PrinterService) Preview(d *entity.Draft) ([]byte, *entity.Receipt, error) {
	valid, err := ValidateDraft(d)
	if err != nil {
		return nil, nil, err
	}
	r := s.BuildReceipt(d, valid)
	data, err := RenderPDF(r)
	if err != nil {
		return nil, nil, err
	}
	return data, r, nil
}

func discountLabel(item entity.LineItem) string {
	if item.DiscountValue.IsZero() {
		return "-"
	}
	if item.DiscountKind == enum.DiscountPercent {
		return item.DiscountValue.String() + "%"
	}
	return item.DiscountKind.Symbol() + " " + entity.Money(item.DiscountValue)
}

// FormatReceipt converts a Receipt into ESC/POS bytes for a thermal printer
// that fits width characters per line.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.FontDouble).
		Line(r.Header.ShopName).
		Size(printer.FontNormal).
		Bold(false)
	if r.Header.Address != "" {
		doc.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Line(r.Header.Phone)
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		Pair("Bill No:", r.BillNumber).
		Pair("Date:", r.Date).
		Pair("Customer:", r.Customer)
	if r.Mobile != "" {
		doc.Pair("Mobile:", r.Mobile)
	}
	doc.Pair("Collected By:", r.CollectedBy)
	doc.Rule('-')

	for i, item := range r.Items {
		doc.Pair(strconv.Itoa(i+1)+". "+item.Name, entity.Money(item.ComputedPrice))
		detail := fmt.Sprintf("  %s x %s", item.Quantity.String(), entity.Money(item.UnitPrice))
		if !item.DiscountValue.IsZero() {
			detail += " less " + discountLabel(item)
		}
		doc.Line(detail)
	}

	doc.Rule('-').
		Pair("Subtotal:", entity.Money(r.Totals.Subtotal)).
		Pair("Discount:", entity.Money(r.Totals.TotalDiscount)).
		Bold(true).
		Pair("TOTAL:", "Rs "+entity.Money(r.Totals.GrandTotal)).
		Bold(false)

	if r.Note != "" {
		doc.Rule('-').Line("Note: " + r.Note)
	}

	doc.Rule('-').
		Align(printer.AlignCenter).
		Feed(1).
		Line(r.Header.Footer).
		Feed(1).
		Align(printer.AlignLeft)

	doc.Feed(3).Cut()
	return doc.Bytes()
}

var receiptColumns = []printer.Column{
	{Title: "#", Width: 10, Align: "C"},
	{Title: "Item", Width: 70, Align: "L"},
	{Title: "Qty", Width: 20, Align: "R"},
	{Title: "Unit Price", Width: 30, Align: "R"},
	{Title: "Discount", Width: 25, Align: "R"},
	{Title: "Total", Width: 25, Align: "R"},
}

// RenderPDF lays the receipt out as an A4 invoice.
func RenderPDF(r *entity.Receipt) ([]byte, error) {
	doc := printer.NewPDFDocument("Invoice " + r.BillNumber)

	subtitle := r.Header.Address
	if r.Header.Phone != "" {
		if subtitle != "" {
			subtitle += " | "
		}
		subtitle += r.Header.Phone
	}
	doc.Heading(r.Header.ShopName, subtitle)

	doc.Info("Bill No", r.BillNumber).
		Info("Date", r.Date).
		Info("Customer", r.Customer)
	if r.Mobile != "" {
		doc.Info("Mobile", r.Mobile)
	}
	doc.Info("Collected By", r.CollectedBy)

	rows := make([][]string, 0, len(r.Items))
	for i, item := range r.Items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			item.Name,
			item.Quantity.String(),
			entity.Money(item.UnitPrice),
			discountLabel(item),
			entity.Money(item.ComputedPrice),
		})
	}
	doc.Table(receiptColumns, rows)

	doc.Amount("Subtotal", "Rs "+entity.Money(r.Totals.Subtotal), false).
		Amount("Total Discount", "Rs "+entity.Money(r.Totals.TotalDiscount), false).
		Amount("Grand Total", "Rs "+entity.Money(r.Totals.GrandTotal), true)

	if r.Note != "" {
		doc.Paragraph("Note: " + r.Note)
	}
	doc.Footer(r.Header.Footer)

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice pdf: %w", err)
	}
	return data, nil
}
