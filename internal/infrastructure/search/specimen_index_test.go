package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/oksasatya/specimen-catalog/internal/domain/entity"
	"github.com/oksasatya/specimen-catalog/pkg/helpers"
)

// fakeES answers like an Elasticsearch node and records the last request.
type fakeES struct {
	method, path string
	body         map[string]any
	status       int
	response     string
}

func (f *fakeES) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.method, f.path = r.Method, r.URL.Path
	f.body = nil
	if b, _ := io.ReadAll(r.Body); len(b) > 0 {
		_ = json.Unmarshal(b, &f.body)
	}
	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")
	status := f.status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = io.WriteString(w, f.response)
}

func newTestIndex(t *testing.T, f *fakeES) *SpecimenIndex {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	es, err := helpers.NewESClient(helpers.ESConfig{Addrs: []string{srv.URL}})
	if err != nil {
		t.Fatalf("NewESClient: %v", err)
	}
	return NewSpecimenIndex(es, "specimens")
}

func TestIndexPutsDocumentUnderItsID(t *testing.T) {
	f := &fakeES{response: `{"result":"created"}`}
	x := newTestIndex(t, f)

	err := x.Index(context.Background(), &entity.Specimen{ID: "abc", NickName: "Lucy"})
	if err != nil {
		t.Fatalf("Index: %v", err)
	}
	if f.method != http.MethodPut || f.path != "/specimens/_doc/abc" {
		t.Errorf("unexpected request %s %s", f.method, f.path)
	}
	if f.body["nickName"] != "Lucy" {
		t.Errorf("expected specimen body, got %v", f.body)
	}
	if id, ok := f.body["_id"]; ok {
		t.Errorf("document source must not carry _id, got %v", id)
	}
}

func TestIndexReportsErrorStatus(t *testing.T) {
	f := &fakeES{status: http.StatusBadRequest, response: `{"error":"mapper_parsing_exception"}`}
	x := newTestIndex(t, f)
	if err := x.Index(context.Background(), &entity.Specimen{ID: "abc"}); err == nil {
		t.Error("expected error for 400 response")
	}
}

func TestRemoveIgnoresMissingDocument(t *testing.T) {
	f := &fakeES{status: http.StatusNotFound, response: `{"result":"not_found"}`}
	x := newTestIndex(t, f)
	if err := x.Remove(context.Background(), "abc"); err != nil {
		t.Errorf("expected nil for missing document, got %v", err)
	}
	if f.method != http.MethodDelete || f.path != "/specimens/_doc/abc" {
		t.Errorf("unexpected request %s %s", f.method, f.path)
	}
}

func TestSearchParsesHits(t *testing.T) {
	f := &fakeES{response: `{"hits":{"hits":[
		{"_id":"1","_source":{"nickName":"Lucy","paidValue":10}},
		{"_id":"2","_source":{"species":"erectus"}}
	]}}`}
	x := newTestIndex(t, f)

	got, err := x.Search(context.Background(), "lucy", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(got))
	}
	if got[0].ID != "1" || got[0].NickName != "Lucy" || got[1].ID != "2" {
		t.Errorf("unexpected hits: %+v", got)
	}
	if !strings.HasSuffix(f.path, "/_search") {
		t.Errorf("expected search path, got %s", f.path)
	}
	if f.body["size"] != float64(10) {
		t.Errorf("expected size 10 in query, got %v", f.body["size"])
	}
}

func TestSearchMissingIndexIsEmpty(t *testing.T) {
	f := &fakeES{status: http.StatusNotFound, response: `{"error":{"type":"index_not_found_exception"}}`}
	x := newTestIndex(t, f)
	got, err := x.Search(context.Background(), "lucy", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no hits, got %d", len(got))
	}
}
