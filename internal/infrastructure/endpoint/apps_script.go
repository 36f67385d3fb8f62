package endpoint

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sangkips/invoice-desk/internal/domain/entity"
	domainRepo "github.com/sangkips/invoice-desk/internal/domain/repository"
	"github.com/sangkips/invoice-desk/pkg/apperror"
)

const maxResponseBytes = 1 << 20

// AppsScriptClient posts invoices to a spreadsheet web app (a Google Apps
// Script deployment or anything speaking the same JSON contract).
type AppsScriptClient struct {
	url    string
	client *http.Client
}

// NewAppsScriptClient creates a client for the web app at url. A zero
// timeout leaves the call bounded only by the request context.
func NewAppsScriptClient(url string, timeout time.Duration) *AppsScriptClient {
	return &AppsScriptClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

var _ domainRepo.InvoiceEndpoint = (*AppsScriptClient)(nil)

// SaveInvoice posts the payload and decodes the {status, message} reply.
// Non-2xx replies become an endpoint AppError carrying the reply's message.
func (c *AppsScriptClient) SaveInvoice(ctx context.Context, req *entity.SaveInvoiceRequest) (*entity.SaveInvoiceResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to encode payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("endpoint: request to %s failed: %w", c.url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("endpoint: failed to read response: %w", err)
	}

	var out entity.SaveInvoiceResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := ""
		if decodeErr == nil {
			msg = out.Message
		}
		return nil, apperror.NewEndpointError(msg)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("endpoint: invalid response body: %w", decodeErr)
	}
	return &out, nil
}
