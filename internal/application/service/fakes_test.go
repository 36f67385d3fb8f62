package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type fakeCatalog struct {
	items []entity.CatalogItem
}

func (f *fakeCatalog) List(ctx context.Context) ([]entity.CatalogItem, error) {
	return f.items, nil
}

func (f *fakeCatalog) FindByName(ctx context.Context, name string) (*entity.CatalogItem, error) {
	for i := range f.items {
		if f.items[i].Name == name {
			it := f.items[i]
			return &it, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalog) UpsertBatch(ctx context.Context, items []entity.CatalogItem) error {
	f.items = append(f.items, items...)
	return nil
}

type fakeStaff struct {
	staff []entity.Staff
}

func (f *fakeStaff) List(ctx context.Context) ([]entity.Staff, error) {
	return f.staff, nil
}

func (f *fakeStaff) FindByID(ctx context.Context, id string) (*entity.Staff, error) {
	for i := range f.staff {
		if f.staff[i].StaffID == id {
			s := f.staff[i]
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeStaff) UpsertBatch(ctx context.Context, staff []entity.Staff) error {
	f.staff = append(f.staff, staff...)
	return nil
}

// fakeEndpoint records calls. If block is set, SaveInvoice waits on it
// after signalling entered.
type fakeEndpoint struct {
	mu      sync.Mutex
	calls   []*entity.SaveInvoiceRequest
	resp    *entity.SaveInvoiceResponse
	err     error
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeEndpoint) SaveInvoice(ctx context.Context, req *entity.SaveInvoiceRequest) (*entity.SaveInvoiceResponse, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if f.block != nil {
		if f.entered != nil {
			f.entered <- struct{}{}
		}
		<-f.block
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &entity.SaveInvoiceResponse{Status: entity.StatusSuccess, Message: "ok"}, nil
}

func (f *fakeEndpoint) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakePrinter struct {
	printed []*entity.Receipt
	err     error
}

func (f *fakePrinter) BuildReceipt(d *entity.Draft, valid []entity.LineItem) *entity.Receipt {
	return entity.NewReceipt(entity.ReceiptHeader{ShopName: "Akshaya Centre"}, d, valid)
}

func (f *fakePrinter) PrintReceipt(r *entity.Receipt) error {
	f.printed = append(f.printed, r)
	return f.err
}

var errNetwork = errors.New("dial tcp: connection refused")

func testCatalog() *fakeCatalog {
	return &fakeCatalog{items: []entity.CatalogItem{
		{Name: "Aadhaar Update", UnitPrice: decimal.NewFromInt(50)},
		{Name: "PAN Card Application", UnitPrice: decimal.NewFromInt(120)},
	}}
}

func testStaff() *fakeStaff {
	return &fakeStaff{staff: []entity.Staff{
		{StaffID: "S001", Name: "Anitha"},
		{StaffID: "S002", Name: "Rahul"},
	}}
}

// steppingClock advances one second on every call.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func counterIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("row-%d", n)
	}
}

func newTestDraftService() *DraftService {
	return NewDraftService(testCatalog(), testStaff(), DraftOptions{
		BillPrefix: "AC",
		Now:        steppingClock(),
		NewID:      counterIDs(),
	}, nil)
}
