package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/domain/enum"
	"github.com/sangkips/invoice-desk/pkg/apperror"
)

// fillDraft makes the session draft submittable: one catalog row followed
// by the trailing empty row.
func fillDraft(t *testing.T, s *DraftService) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.UpdateHeader(HeaderInput{CustomerName: strPtr("Ravi"), Note: strPtr("walk-in")}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SelectStaff(ctx, "S001"); err != nil {
		t.Fatal(err)
	}
	id := s.Snapshot().Draft.LineItems[0].ID
	if _, _, err := s.SelectItem(ctx, id, strPtr("Aadhaar Update")); err != nil {
		t.Fatal(err)
	}
}

func draftJSON(t *testing.T, s *DraftService) string {
	t.Helper()
	raw, err := json.Marshal(s.Snapshot().Draft)
	if err != nil {
		t.Fatal(err)
	}
	return string(raw)
}

func TestSubmitSuccessResetsDraft(t *testing.T) {
	drafts := newTestDraftService()
	fillDraft(t, drafts)
	before := drafts.Snapshot().Draft

	ep := &fakeEndpoint{}
	pr := &fakePrinter{}
	svc := NewSubmissionService(drafts, ep, pr, time.Second, nil)

	result, err := svc.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.Message != SubmitSuccessMessage || result.BillNumber != before.BillNumber {
		t.Fatalf("unexpected result %+v", result)
	}
	if ep.callCount() != 1 {
		t.Fatalf("endpoint calls = %d", ep.callCount())
	}

	after := drafts.Snapshot()
	if after.Draft.BillNumber == before.BillNumber {
		t.Error("bill number was not regenerated")
	}
	if len(after.Draft.LineItems) != 1 || after.Draft.LineItems[0].Name != "" {
		t.Errorf("draft not reset to one empty row: %+v", after.Draft.LineItems)
	}
	if after.Draft.CustomerName != "" || after.Draft.Note != "" || after.Draft.CollectedByStaffID != "" {
		t.Errorf("header not reset: %+v", after.Draft)
	}
	if after.State != enum.SubmissionIdle {
		t.Errorf("state = %s, want Idle", after.State)
	}

	if len(pr.printed) != 1 {
		t.Fatalf("printed %d receipts", len(pr.printed))
	}
	receipt := pr.printed[0]
	if receipt.BillNumber != before.BillNumber || len(receipt.Items) != 1 || receipt.Customer != "Ravi" {
		t.Errorf("receipt does not mirror the submitted draft: %+v", receipt)
	}
	if entity.Money(receipt.Totals.GrandTotal) != "50.00" {
		t.Errorf("receipt total = %s", entity.Money(receipt.Totals.GrandTotal))
	}

	req := ep.calls[0]
	if len(req.ItemsData) != 1 || req.BillData[0][1] != before.BillNumber {
		t.Errorf("payload does not match receipt: %+v", req)
	}
}

func TestSubmitKeepsLockedStaffAfterReset(t *testing.T) {
	drafts := newTestDraftService()
	if _, err := drafts.StartSession(context.Background(), "S002"); err != nil {
		t.Fatal(err)
	}
	if _, err := drafts.UpdateHeader(HeaderInput{CustomerName: strPtr("Ravi")}); err != nil {
		t.Fatal(err)
	}
	id := drafts.Snapshot().Draft.LineItems[0].ID
	drafts.SelectItem(context.Background(), id, strPtr("Aadhaar Update"))

	svc := NewSubmissionService(drafts, &fakeEndpoint{}, &fakePrinter{}, 0, nil)
	if _, err := svc.Submit(context.Background()); err != nil {
		t.Fatal(err)
	}
	d := drafts.Snapshot().Draft
	if !d.StaffLocked || d.CollectedByStaffID != "S002" {
		t.Fatalf("locked staff lost on reset: %+v", d)
	}
}

func TestSubmitFailureLeavesDraftUntouched(t *testing.T) {
	cases := map[string]*fakeEndpoint{
		"transport error":   {err: errNetwork},
		"explicit failure":  {resp: &entity.SaveInvoiceResponse{Status: "error", Message: "Sheet is full"}},
		"endpoint AppError": {err: apperror.NewEndpointError("Quota exceeded")},
	}
	wantMsg := map[string]string{
		"transport error":   apperror.DefaultSaveFailedMessage,
		"explicit failure":  "Sheet is full",
		"endpoint AppError": "Quota exceeded",
	}

	for name, ep := range cases {
		t.Run(name, func(t *testing.T) {
			drafts := newTestDraftService()
			fillDraft(t, drafts)
			before := draftJSON(t, drafts)

			pr := &fakePrinter{}
			svc := NewSubmissionService(drafts, ep, pr, time.Second, nil)
			_, err := svc.Submit(context.Background())
			if err == nil {
				t.Fatal("expected failure")
			}
			if err.Error() != wantMsg[name] {
				t.Errorf("message = %q, want %q", err.Error(), wantMsg[name])
			}
			if after := draftJSON(t, drafts); after != before {
				t.Errorf("draft changed on failure\nbefore: %s\nafter:  %s", before, after)
			}
			if len(pr.printed) != 0 {
				t.Error("printed on failure")
			}
			if svc.State() != enum.SubmissionIdle {
				t.Errorf("state = %s, want Idle", svc.State())
			}
		})
	}
}

func TestSubmitValidationFailureSkipsEndpoint(t *testing.T) {
	drafts := newTestDraftService()
	ep := &fakeEndpoint{}
	svc := NewSubmissionService(drafts, ep, &fakePrinter{}, 0, nil)

	_, err := svc.Submit(context.Background())
	if err == nil || err.Error() != MsgCustomerRequired {
		t.Fatalf("got %v, want customer error", err)
	}
	if ep.callCount() != 0 {
		t.Fatal("endpoint called despite validation failure")
	}

	drafts.UpdateHeader(HeaderInput{CustomerName: strPtr("Ravi")})
	drafts.SelectStaff(context.Background(), "S001")
	id := drafts.Snapshot().Draft.LineItems[0].ID
	drafts.SelectItem(context.Background(), id, strPtr("Custom with no price"))

	_, err = svc.Submit(context.Background())
	if err == nil || err.Error() != MsgNoValidItems {
		t.Fatalf("got %v, want no-valid-items error", err)
	}
	if ep.callCount() != 0 {
		t.Fatal("endpoint called despite validation failure")
	}
}

func TestSubmitRejectsConcurrentSubmitAndEdits(t *testing.T) {
	drafts := newTestDraftService()
	fillDraft(t, drafts)

	ep := &fakeEndpoint{block: make(chan struct{}), entered: make(chan struct{}, 1)}
	svc := NewSubmissionService(drafts, ep, &fakePrinter{}, 0, nil)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Submit(context.Background())
		done <- err
	}()
	<-ep.entered

	if svc.State() != enum.SubmissionSubmitting {
		t.Fatalf("state = %s, want Submitting", svc.State())
	}
	if _, err := svc.Submit(context.Background()); !errors.Is(err, apperror.ErrSubmissionInProgress) {
		t.Fatalf("second submit: got %v", err)
	}
	if _, err := drafts.UpdateHeader(HeaderInput{CustomerName: strPtr("late edit")}); !errors.Is(err, apperror.ErrDraftFrozen) {
		t.Fatalf("edit during submit: got %v", err)
	}
	if _, _, err := drafts.AddItem(); !errors.Is(err, apperror.ErrDraftFrozen) {
		t.Fatalf("add during submit: got %v", err)
	}

	close(ep.block)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if ep.callCount() != 1 {
		t.Fatalf("endpoint calls = %d, want 1", ep.callCount())
	}
}

func TestSubmitPrintFailureStillSucceeds(t *testing.T) {
	drafts := newTestDraftService()
	fillDraft(t, drafts)
	svc := NewSubmissionService(drafts, &fakeEndpoint{}, &fakePrinter{err: errors.New("paper out")}, 0, nil)

	result, err := svc.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if result.PrintWarning != "paper out" {
		t.Fatalf("print warning = %q", result.PrintWarning)
	}
}

func TestSubmitIgnoresCallerCancellation(t *testing.T) {
	drafts := newTestDraftService()
	fillDraft(t, drafts)

	var seen error
	ep := &ctxCheckingEndpoint{check: func(ctx context.Context) { seen = ctx.Err() }}
	svc := NewSubmissionService(drafts, ep, nil, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := svc.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if seen != nil {
		t.Fatalf("endpoint saw cancelled context: %v", seen)
	}
}

type ctxCheckingEndpoint struct {
	check func(ctx context.Context)
}

func (e *ctxCheckingEndpoint) SaveInvoice(ctx context.Context, req *entity.SaveInvoiceRequest) (*entity.SaveInvoiceResponse, error) {
	e.check(ctx)
	return &entity.SaveInvoiceResponse{Status: entity.StatusSuccess}, nil
}

// blockingPrinter holds PrintReceipt until release is closed.
type blockingPrinter struct {
	fakePrinter
	entered chan struct{}
	release chan struct{}
}

func (p *blockingPrinter) PrintReceipt(r *entity.Receipt) error {
	p.entered <- struct{}{}
	<-p.release
	return p.fakePrinter.PrintReceipt(r)
}

func TestSubmitPrintsOutsideSessionLock(t *testing.T) {
	drafts := newTestDraftService()
	fillDraft(t, drafts)
	billBefore := drafts.Snapshot().Draft.BillNumber

	pr := &blockingPrinter{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewSubmissionService(drafts, &fakeEndpoint{}, pr, 0, nil)

	type outcome struct {
		result *SubmitResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := svc.Submit(context.Background())
		done <- outcome{r, err}
	}()

	select {
	case <-pr.entered:
	case <-time.After(2 * time.Second):
		t.Fatal("printer was never called")
	}

	edited := make(chan error, 1)
	go func() {
		_, err := drafts.UpdateHeader(HeaderInput{CustomerName: strPtr("Next customer")})
		edited <- err
	}()
	select {
	case err := <-edited:
		if err != nil {
			t.Fatalf("edit while printing: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("draft edit blocked by printing")
	}

	view := drafts.Snapshot()
	if view.Draft.BillNumber == billBefore || view.State != enum.SubmissionIdle {
		t.Fatalf("draft not reset before printing: %+v", view)
	}

	close(pr.release)
	out := <-done
	if out.err != nil {
		t.Fatalf("submit: %v", out.err)
	}
	if len(pr.printed) != 1 || out.result.Receipt.BillNumber != billBefore {
		t.Fatalf("printed %d receipts for %+v", len(pr.printed), out.result.Receipt)
	}
}
