package endpoint

import (
	"fmt"
	"time"

	domainRepo "github.com/sangkips/invoice-desk/internal/domain/repository"
)

// NewEndpointFromConfig creates the invoice endpoint for endpointType:
//
//	"apps_script": POST to the spreadsheet web app at url
//	"workbook": append to the local .xlsx at workbookPath
func NewEndpointFromConfig(endpointType, url string, timeout time.Duration, workbookPath string) (domainRepo.InvoiceEndpoint, error) {
	switch endpointType {
	case "apps_script", "":
		if url == "" {
			return nil, fmt.Errorf("endpoint: URL is required for apps_script endpoint type")
		}
		return NewAppsScriptClient(url, timeout), nil
	case "workbook":
		if workbookPath == "" {
			return nil, fmt.Errorf("endpoint: workbook path is required for workbook endpoint type")
		}
		return NewWorkbookStore(workbookPath), nil
	default:
		return nil, fmt.Errorf("endpoint: unknown endpoint type %q (use apps_script or workbook)", endpointType)
	}
}
