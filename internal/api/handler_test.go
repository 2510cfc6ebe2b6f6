package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"intellispec/internal/metadata"
	"intellispec/internal/model"
	"intellispec/internal/store"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := filepath.Join(t.TempDir(), "intellispec.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	meta := metadata.NewProvider(t.TempDir())
	h := NewHandler(st, meta, "tenant-a")
	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r, st
}

func TestGetFields(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/doctypes/asset/fields", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		DocumentType string                  `json:"documentType"`
		Fields       []model.FieldDefinition `json:"fields"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.DocumentType != "asset" {
		t.Fatalf("unexpected documentType: %s", resp.DocumentType)
	}

	paths := map[string]bool{}
	for _, f := range resp.Fields {
		paths[f.Path] = true
	}
	for _, want := range []string{"asset_tag", "purchase.date", "specifications.dimensions.length", "legacy_id"} {
		if !paths[want] {
			t.Fatalf("missing field path %q, got %v", want, paths)
		}
	}
}

func TestGetFields_UnknownType(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/doctypes/warehouse/fields", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestPreviewMappings(t *testing.T) {
	r, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"documentType": "asset",
		"headers":      []string{"Equipment ID", "Serial Number", "Mystery Column"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/mappings/preview", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Mappings []model.ColumnMapping `json:"mappings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Mappings) != 3 {
		t.Fatalf("expected 3 mappings, got %d", len(resp.Mappings))
	}

	byCol := map[string]model.ColumnMapping{}
	for _, m := range resp.Mappings {
		byCol[m.SourceColumn] = m
	}
	if m := byCol["Equipment ID"]; m.TargetPath != "asset_tag" || m.Confidence != 98 || m.Technique != model.TechniqueAlias {
		t.Fatalf("unexpected mapping for Equipment ID: %+v", m)
	}
	if m := byCol["Serial Number"]; m.TargetPath != "serial_no" || m.Confidence != 95 || m.Technique != model.TechniqueExact {
		t.Fatalf("unexpected mapping for Serial Number: %+v", m)
	}
	if m := byCol["Mystery Column"]; m.TargetPath != model.TargetUnmapped || m.Confidence != 0 || m.Technique != model.TechniqueNone {
		t.Fatalf("unexpected mapping for Mystery Column: %+v", m)
	}
}

func TestPreviewMappings_DuplicateHeaders(t *testing.T) {
	r, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"documentType": "asset",
		"headers":      []string{"Serial Number", "Serial Number"},
	})
	req := httptest.NewRequest(http.MethodPost, "/api/mappings/preview", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestConfirmMapping_LearnedByPreview(t *testing.T) {
	r, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"documentType": "asset",
		"sourceColumn": "Mystery Column",
		"targetPath":   "notes",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/mappings/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}

	// 确认后的映射应以 historical 95 命中，且大小写无关
	body, _ = json.Marshal(map[string]any{
		"documentType": "asset",
		"headers":      []string{"MYSTERY column"},
	})
	req = httptest.NewRequest(http.MethodPost, "/api/mappings/preview", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Mappings []model.ColumnMapping `json:"mappings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	m := resp.Mappings[0]
	if m.TargetPath != "notes" || m.Confidence != 95 || m.Technique != model.TechniqueHistorical {
		t.Fatalf("unexpected mapping after confirm: %+v", m)
	}
}

func TestConfirmMapping_UnknownTarget(t *testing.T) {
	r, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]any{
		"documentType": "asset",
		"sourceColumn": "Whatever",
		"targetPath":   "no_such_field",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/mappings/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestDocuments_ListAndDelete(t *testing.T) {
	r, st := newTestRouter(t)

	doc := &model.Document{
		ID:           uuid.NewString(),
		TenantID:     "tenant-a",
		DocumentType: "asset",
		Payload:      map[string]any{"asset_tag": "PUMP-001"},
	}
	if err := st.InsertDocument(doc); err != nil {
		t.Fatalf("insert document: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/documents?type=asset", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var listResp struct {
		Total     int              `json:"total"`
		Documents []model.Document `json:"documents"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if listResp.Total != 1 || listResp.Documents[0].Payload["asset_tag"] != "PUMP-001" {
		t.Fatalf("unexpected list response: %+v", listResp)
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/documents?type=asset", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var delResp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &delResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if delResp.Deleted != 1 {
		t.Fatalf("expected 1 deleted, got %d", delResp.Deleted)
	}

	n, err := st.CountDocuments("tenant-a", "asset")
	if err != nil {
		t.Fatalf("count documents: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected empty store, got %d documents", n)
	}
}

func TestExport_Attachment(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export/asset", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") || !strings.Contains(cd, ".xlsx") {
		t.Fatalf("unexpected Content-Disposition: %q", cd)
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected workbook bytes in response body")
	}
}

func TestExport_UnknownType(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/export/warehouse", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
}

func TestStatus_CountsPerType(t *testing.T) {
	r, st := newTestRouter(t)

	for _, tag := range []string{"PUMP-001", "PUMP-002"} {
		doc := &model.Document{
			ID:           uuid.NewString(),
			TenantID:     "tenant-a",
			DocumentType: "asset",
			Payload:      map[string]any{"asset_tag": tag},
		}
		if err := st.InsertDocument(doc); err != nil {
			t.Fatalf("insert document: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Status    string         `json:"status"`
		Documents map[string]int `json:"documents"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Fatalf("unexpected status field: %s", resp.Status)
	}
	if resp.Documents["asset"] != 2 || resp.Documents["site"] != 0 {
		t.Fatalf("unexpected counts: %v", resp.Documents)
	}
}
