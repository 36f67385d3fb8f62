package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-desk/internal/application/service"
	"github.com/sangkips/invoice-desk/internal/config"
	"github.com/sangkips/invoice-desk/internal/domain/entity"
	"github.com/sangkips/invoice-desk/internal/infrastructure/database"
	"github.com/sangkips/invoice-desk/internal/infrastructure/endpoint"
	"github.com/sangkips/invoice-desk/internal/infrastructure/repository"
	"github.com/sangkips/invoice-desk/internal/presentation/http/handler"
	"github.com/sangkips/invoice-desk/internal/presentation/http/routes"
	"github.com/sangkips/invoice-desk/pkg/printer"
	"github.com/spf13/viper"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type draftView struct {
	Draft struct {
		BillNumber   string `json:"bill_number"`
		CustomerName string `json:"customer_name"`
		LineItems    []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"line_items"`
	} `json:"draft"`
	Totals struct {
		GrandTotal string `json:"grand_total"`
	} `json:"totals"`
}

func setupRouter(t *testing.T) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v := viper.New()
	v.Set("RATE_LIMIT_REQUESTS", 100)
	v.Set("RATE_LIMIT_DURATION", 60)
	v.Set("SHOP_NAME", "Akshaya Centre")
	cfg := config.FromViper(v)

	log := zap.NewNop()
	db, err := database.NewDB(&config.DatabaseConfig{
		Driver:     "sqlite",
		SQLitePath: "file:" + t.Name() + "?mode=memory&cache=shared",
	}, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := database.AutoMigrate(db, log); err != nil {
		t.Fatal(err)
	}
	catalogRepo := repository.NewCatalogRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	if err := database.SeedReferenceData(context.Background(), catalogRepo, staffRepo, database.DefaultSeed(), log); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	workbook := filepath.Join(dir, "invoices.xlsx")
	printerService := service.NewPrinterService(printer.NewSpoolPrinter(filepath.Join(dir, "print")),
		entity.ReceiptHeader{ShopName: "Akshaya Centre", Footer: "Thank you for visiting Akshaya Centre!"},
		"spool", printer.FormatPDF, 32, log)
	drafts := service.NewDraftService(catalogRepo, staffRepo, service.DraftOptions{BillPrefix: "AC"}, log)
	submissions := service.NewSubmissionService(drafts, endpoint.NewWorkbookStore(workbook), printerService, 0, log)

	router := routes.Setup(&routes.Handlers{
		Catalog:    handler.NewCatalogHandler(service.NewCatalogService(catalogRepo, staffRepo)),
		Draft:      handler.NewDraftHandler(drafts),
		Submission: handler.NewSubmissionHandler(submissions),
		Printer:    handler.NewPrinterHandler(printerService, drafts),
	}, &routes.Deps{Cfg: cfg, Logger: log})
	return router, workbook
}

func do(t *testing.T, router http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var env envelope
	if rr.Header().Get("Content-Type") != "application/pdf" {
		_ = json.Unmarshal(rr.Body.Bytes(), &env)
	}
	return rr, env
}

func decodeDraft(t *testing.T, raw json.RawMessage) draftView {
	t.Helper()
	var v draftView
	if err := json.Unmarshal(raw, &v); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	return v
}

func TestHealth(t *testing.T) {
	router, _ := setupRouter(t)
	rr, _ := do(t, router, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestCatalogAndStaff(t *testing.T) {
	router, _ := setupRouter(t)
	rr, env := do(t, router, http.MethodGet, "/api/v1/catalog", nil)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("catalog: %d %s", rr.Code, rr.Body)
	}
	var items []entity.CatalogItem
	if err := json.Unmarshal(env.Data, &items); err != nil || len(items) == 0 {
		t.Fatalf("catalog data: %v %s", err, env.Data)
	}

	rr, env = do(t, router, http.MethodGet, "/api/v1/staff", nil)
	if rr.Code != http.StatusOK || !bytes.Contains(env.Data, []byte("Anitha")) {
		t.Fatalf("staff: %d %s", rr.Code, rr.Body)
	}
}

func TestInvoiceFlow(t *testing.T) {
	router, workbook := setupRouter(t)

	rr, env := do(t, router, http.MethodPost, "/api/v1/session?staffId=S001", nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("session: %d %s", rr.Code, rr.Body)
	}
	view := decodeDraft(t, env.Data)
	bill := view.Draft.BillNumber
	rowID := view.Draft.LineItems[0].ID

	rr, env = do(t, router, http.MethodPost, "/api/v1/draft/submit", nil)
	if rr.Code != http.StatusUnprocessableEntity || env.Message != service.MsgCustomerRequired {
		t.Fatalf("empty submit: %d %s", rr.Code, rr.Body)
	}

	if rr, _ = do(t, router, http.MethodPut, "/api/v1/draft/staff", map[string]string{"staff_id": "S002"}); rr.Code != http.StatusConflict {
		t.Fatalf("locked staff change: %d", rr.Code)
	}

	do(t, router, http.MethodPut, "/api/v1/draft/header", map[string]any{"customer_name": "Ravi", "mobile_number": "9876543210"})

	rr, env = do(t, router, http.MethodPut, "/api/v1/draft/items/"+rowID+"/selection", map[string]any{"selection": "Aadhaar Update"})
	if rr.Code != http.StatusOK {
		t.Fatalf("selection: %d %s", rr.Code, rr.Body)
	}

	var selected struct {
		Draft draftView `json:"draft"`
	}
	if err := json.Unmarshal(env.Data, &selected); err != nil {
		t.Fatal(err)
	}
	if len(selected.Draft.Draft.LineItems) != 2 {
		t.Fatalf("rows after selection = %d", len(selected.Draft.Draft.LineItems))
	}
	second := selected.Draft.Draft.LineItems[1].ID

	do(t, router, http.MethodPut, "/api/v1/draft/items/"+second+"/selection", map[string]any{"selection": "Typing"})
	rr, _ = do(t, router, http.MethodPatch, "/api/v1/draft/items/"+second, map[string]any{
		"quantity": "2", "unit_price": 20, "discount_value": "abc", "discount_type": "amount",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("patch: %d %s", rr.Code, rr.Body)
	}

	if rr, _ = do(t, router, http.MethodPatch, "/api/v1/draft/items/nope", map[string]any{"quantity": 1}); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown row: %d", rr.Code)
	}

	rr, _ = do(t, router, http.MethodGet, "/api/v1/draft/preview", nil)
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("preview: %d %s", rr.Code, rr.Header().Get("Content-Type"))
	}

	rr, env = do(t, router, http.MethodPost, "/api/v1/draft/submit", nil)
	if rr.Code != http.StatusOK || !env.Success {
		t.Fatalf("submit: %d %s", rr.Code, rr.Body)
	}
	var result struct {
		BillNumber string    `json:"bill_number"`
		Draft      draftView `json:"draft"`
		Receipt    struct {
			Items []json.RawMessage `json:"items"`
		} `json:"receipt"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.BillNumber != bill || len(result.Receipt.Items) != 2 {
		t.Fatalf("unexpected result %s", env.Data)
	}
	if result.Draft.Draft.BillNumber == bill || len(result.Draft.Draft.LineItems) != 1 || result.Draft.Draft.CustomerName != "" {
		t.Fatalf("draft not reset: %s", env.Data)
	}
	f, err := excelize.OpenFile(workbook)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(endpoint.BillsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[1][1] != bill {
		t.Fatalf("bills sheet = %v", rows)
	}
}

func TestSubmitRateLimited(t *testing.T) {
	router, _ := setupRouter(t)
	var last int
	for i := 0; i < 101; i++ {
		rr, _ := do(t, router, http.MethodPost, "/api/v1/draft/submit", nil)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("status after burst = %d, want 429", last)
	}
}
