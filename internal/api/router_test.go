package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ukaji3/exaccum-go/pkg/exaccum"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/session"
	"github.com/xuri/excelize/v2"
)

func writeSource(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetRow("Sheet1", "A3", &[]interface{}{"no", "key", "qty"})
	f.SetSheetRow("Sheet1", "A4", &[]interface{}{1, "A", 5, 2.5, 12.5, 3, 15, 4, 20, 9.5, 47.5})
	f.SetSheetRow("Sheet1", "A5", &[]interface{}{2, "B", 10, 21, 210, 4.5, 45, 11, 110, 36.5, 365})
	if _, err := f.NewSheet("대가"); err != nil {
		t.Fatal(err)
	}
	f.SetSheetRow("대가", "A3", &[]interface{}{"x", 1})
	f.SetSheetRow("대가", "A4", &[]interface{}{"x", 2})

	path := filepath.Join(t.TempDir(), "source.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func newTestServer(t *testing.T, sourcePath string) (*httptest.Server, *session.Store) {
	t.Helper()
	store := session.NewStore(0)
	settings := Settings{
		SourcePath:   sourcePath,
		ExportPrefix: "CON-A_결과",
		ResultPrefix: "CON-A",
		Options:      exaccum.DefaultOptions(),
		Now:          func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(settings, store, logger))
	t.Cleanup(srv.Close)
	return srv, store
}

type client struct {
	t      *testing.T
	base   string
	cookie *http.Cookie
}

func (c *client) do(method, path, contentType string, body []byte) *http.Response {
	c.t.Helper()
	req, err := http.NewRequest(method, c.base+path, bytes.NewReader(body))
	if err != nil {
		c.t.Fatal(err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatal(err)
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestAddRowsAndDownload(t *testing.T) {
	srv, store := newTestServer(t, writeSource(t))
	c := &client{t: t, base: srv.URL}

	resp := c.do(http.MethodGet, "/download", "", nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("download before add: status %d, expected 409", resp.StatusCode)
	}
	resp.Body.Close()

	resp = c.do(http.MethodPost, "/rows", "application/json", []byte(`{"category":"1"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add rows: status %d", resp.StatusCode)
	}
	var added AddRowsResponse
	decode(t, resp, &added)
	if added.Detail != 2 || added.Summary != 1 || added.Error != "" {
		t.Errorf("unexpected add response %+v", added)
	}
	if len(added.Sheets) != 2 || added.Sheets[0].RowCount != 2 {
		t.Errorf("unexpected sheets %+v", added.Sheets)
	}
	if store.Len() != 1 {
		t.Errorf("expected one session, got %d", store.Len())
	}

	resp = c.do(http.MethodGet, "/download", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("download: status %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "20260102_030405.xlsx") {
		t.Errorf("unexpected Content-Disposition %q", cd)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("downloaded file is not a workbook: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 2 || got[0] != "대가" || got[1] != "집계" {
		t.Errorf("downloaded sheets %v", got)
	}

	resp = c.do(http.MethodPost, "/clear", "", nil)
	resp.Body.Close()
	var view SheetsResponse
	decode(t, c.do(http.MethodGet, "/sheets", "", nil), &view)
	if len(view.Sheets) != 0 {
		t.Errorf("expected no sheets after clear, got %+v", view.Sheets)
	}
}

func TestAddRowsFormAndErrors(t *testing.T) {
	srv, _ := newTestServer(t, writeSource(t))
	c := &client{t: t, base: srv.URL}

	resp := c.do(http.MethodPost, "/rows", "application/x-www-form-urlencoded", []byte("category=9"))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unsupported category: status %d, expected 400", resp.StatusCode)
	}
	resp.Body.Close()

	// Category 2 has no 참조 sheet and sheet index 1 holds nothing at rows 7-9.
	resp = c.do(http.MethodPost, "/rows", "application/x-www-form-urlencoded", []byte("category=2"))
	var added AddRowsResponse
	decode(t, resp, &added)
	if added.Detail != 0 || added.Summary != 1 {
		t.Errorf("unexpected counts %+v", added)
	}

	missing, _ := newTestServer(t, filepath.Join(t.TempDir(), "missing.xlsx"))
	c2 := &client{t: t, base: missing.URL}
	resp = c2.do(http.MethodPost, "/rows", "application/json", []byte(`{"category":"1"}`))
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("missing source: status %d, expected 500", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestPreviewAndRecompute(t *testing.T) {
	srv, _ := newTestServer(t, writeSource(t))
	c := &client{t: t, base: srv.URL}

	var preview PreviewResponse
	decode(t, c.do(http.MethodGet, "/preview?key=1", "", nil), &preview)
	if preview.Key != "A" || len(preview.Rows) != 1 || preview.Rows[0].EditKey() != "Sheet1_0" {
		t.Fatalf("unexpected preview %+v", preview)
	}

	body := []byte(`{"key":"A","number_values":{"Sheet1_0":2}}`)
	resp := c.do(http.MethodPost, "/recompute", "application/json", body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("recompute: status %d", resp.StatusCode)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	want := map[string]string{"C4": "2", "E4": "5", "G4": "6", "I4": "8"}
	for cell, v := range want {
		if got, _ := f.GetCellValue("Sheet1", cell); got != v {
			t.Errorf("%s = %q, expected %q", cell, got, v)
		}
	}

	resp = c.do(http.MethodPost, "/recompute", "application/json", []byte(`{"key":""}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing key: status %d, expected 400", resp.StatusCode)
	}
	resp.Body.Close()

	resp = c.do(http.MethodPost, "/recompute", "application/json", []byte(`{"key":"A","number_values":{"Sheet1_0":"x"}}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad edit: status %d, expected 400", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, writeSource(t))
	c := &client{t: t, base: srv.URL}

	var health HealthResponse
	resp := c.do(http.MethodGet, "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("health: status %d", resp.StatusCode)
	}
	decode(t, resp, &health)
	if health.Status != "ok" {
		t.Errorf("unexpected health %+v", health)
	}
}

func TestContentDisposition(t *testing.T) {
	got := contentDisposition("CON-A_결과_1.xlsx")
	if !strings.Contains(got, `filename="CON-A____1.xlsx"`) || !strings.Contains(got, "filename*=UTF-8''CON-A_%EA%B2%B0%EA%B3%BC_1.xlsx") {
		t.Errorf("contentDisposition() = %q", got)
	}
}
