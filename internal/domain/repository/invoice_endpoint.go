package repository

import (
	"context"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
)

// InvoiceEndpoint is the external storage the submission workflow saves to.
//
// An error return means the invoice could not be delivered (transport
// failure, non-2xx status, unreadable reply). A nil error with a response
// whose status is not "success" is an explicit rejection.
type InvoiceEndpoint interface {
	SaveInvoice(ctx context.Context, req *entity.SaveInvoiceRequest) (*entity.SaveInvoiceResponse, error)
}
