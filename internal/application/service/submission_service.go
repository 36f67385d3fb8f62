package service

import (
	"context"
	"time"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/domain/enum"
	"github.com/sangkips/invoice-desk/internal/domain/repository"
	"github.com/sangkips/invoice-desk/pkg/apperror"
	"go.uber.org/zap"
)

// SubmitSuccessMessage is shown to the operator after a save.
const SubmitSuccessMessage = "Invoice saved successfully"

// ReceiptPrinter renders and prints a receipt after a successful save.
type ReceiptPrinter interface {
	BuildReceipt(d *entity.Draft, valid []entity.LineItem) *entity.Receipt
	PrintReceipt(r *entity.Receipt) error
}

// SubmitResult describes a saved invoice.
type SubmitResult struct {
	Message    string          `json:"message"`
	BillNumber string          `json:"bill_number"`
	Receipt    *entity.Receipt `json:"receipt"`
	// PrintWarning is set when the invoice was saved but printing failed.
	PrintWarning string     `json:"print_warning,omitempty"`
	Draft        *DraftView `json:"draft"`
}

// SubmissionService runs the submit workflow against the draft session:
// validate, send, print and reset.
type SubmissionService struct {
	drafts   *DraftService
	endpoint repository.InvoiceEndpoint
	printer  ReceiptPrinter
	timeout  time.Duration
	log      *zap.Logger
}

// NewSubmissionService creates a new submission service. A zero timeout
// leaves the endpoint call bounded by the endpoint client alone.
func NewSubmissionService(
	drafts *DraftService,
	endpoint repository.InvoiceEndpoint,
	printer ReceiptPrinter,
	timeout time.Duration,
	log *zap.Logger,
) *SubmissionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SubmissionService{
		drafts:   drafts,
		endpoint: endpoint,
		printer:  printer,
		timeout:  timeout,
		log:      log,
	}
}

// State reports the workflow state of the session.
func (s *SubmissionService) State() enum.SubmissionState {
	s.drafts.mu.Lock()
	defer s.drafts.mu.Unlock()
	return s.drafts.state
}

// Submit validates the draft and sends it to the invoice endpoint. On
// failure the draft is left exactly as it was. On success the receipt is
// printed from the submitted data and the draft is replaced by a fresh one.
// A submit while another is in flight is rejected.
func (s *SubmissionService) Submit(ctx context.Context) (*SubmitResult, error) {
	d := s.drafts

	d.mu.Lock()
	if d.state == enum.SubmissionSubmitting {
		d.mu.Unlock()
		return nil, apperror.ErrSubmissionInProgress
	}

	d.transitionLocked(enum.SubmissionValidating)
	valid, err := ValidateDraft(d.draft)
	if err != nil {
		d.transitionLocked(enum.SubmissionFailed)
		d.transitionLocked(enum.SubmissionIdle)
		d.mu.Unlock()
		return nil, err
	}

	snapshot := d.draft.Clone()
	req := entity.BuildSaveInvoiceRequest(snapshot, valid, d.opts.Now())
	d.transitionLocked(enum.SubmissionSubmitting)
	d.mu.Unlock()

	s.log.Info("submitting invoice",
		zap.String("bill_number", snapshot.BillNumber),
		zap.Int("items", len(valid)))

	resp, sendErr := s.send(ctx, req)

	d.mu.Lock()
	if sendErr != nil {
		d.transitionLocked(enum.SubmissionFailed)
		d.transitionLocked(enum.SubmissionIdle)
		d.mu.Unlock()
		s.log.Warn("invoice save failed",
			zap.String("bill_number", snapshot.BillNumber),
			zap.Error(sendErr))
		return nil, sendErr
	}

	d.transitionLocked(enum.SubmissionSuccess)
	result := &SubmitResult{
		Message:    SubmitSuccessMessage,
		BillNumber: snapshot.BillNumber,
	}
	if s.printer != nil {
		result.Receipt = s.printer.BuildReceipt(snapshot, valid)
	}
	d.resetLocked()
	d.transitionLocked(enum.SubmissionIdle)
	result.Draft = d.viewLocked()
	d.mu.Unlock()

	s.log.Info("invoice saved",
		zap.String("bill_number", snapshot.BillNumber),
		zap.String("endpoint_message", resp.Message))

	// Printed from the saved snapshot with the session lock released.
	if result.Receipt != nil {
		if err := s.printer.PrintReceipt(result.Receipt); err != nil {
			result.PrintWarning = err.Error()
		}
	}
	return result, nil
}

// send calls the endpoint and folds an explicit rejection into an error.
// The call ignores ctx cancellation and is bounded by the timeout only.
func (s *SubmissionService) send(ctx context.Context, req *entity.SaveInvoiceRequest) (*entity.SaveInvoiceResponse, error) {
	callCtx := context.WithoutCancel(ctx)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, s.timeout)
		defer cancel()
	}

	resp, err := s.endpoint.SaveInvoice(callCtx, req)
	if err != nil {
		if apperror.IsAppError(err) {
			return nil, apperror.GetAppError(err)
		}
		s.log.Error("invoice endpoint unreachable", zap.Error(err))
		return nil, apperror.NewEndpointError("")
	}
	if resp == nil || !resp.OK() {
		msg := ""
		if resp != nil {
			msg = resp.Message
		}
		return nil, apperror.NewEndpointError(msg)
	}
	return resp, nil
}
