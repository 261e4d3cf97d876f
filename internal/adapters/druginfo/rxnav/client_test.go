package rxnav

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medicine-tracker/internal/platform/httpclient"
	"medicine-tracker/internal/ports/druginfo"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	hc, err := httpclient.NewWithBaseURL(srv.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("httpclient: %v", err)
	}
	return NewClientWithHTTP(hc)
}

func TestLookup_TwoStepResolution(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/drugs.json", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("name"); got != "aspirin" {
			t.Errorf("expected name=aspirin, got %q", got)
		}
		fmt.Fprint(w, `{"drugGroup":{"drugList":{"drug":[
			{"name":"aspirin 81 MG Oral Tablet","rxcui":"243670"},
			{"name":"aspirin 325 MG Oral Tablet","rxcui":"198466"}
		]}}}`)
	})
	mux.HandleFunc("/rxcui/243670/allproperties.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"propConceptGroup":{"propConcept":[
			{"propName":"RxNorm Name","propValue":"aspirin 81 MG Oral Tablet"},
			{"propName":"Drug Class","propValue":"NSAID"},
			{"propName":"DEFINITIONAL_FEATURES","propValue":"pain relief"},
			{"propName":"Irrelevant","propValue":"ignored"}
		]}}`)
	})

	c := newTestClient(t, mux)

	info, ok, err := c.Lookup(context.Background(), "aspirin")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected a resolved lookup")
	}
	if info.Usage != "pain relief" || info.Category != "NSAID" || info.GenericName != "aspirin 81 MG Oral Tablet" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestLookup_UnknownDrug(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/drugs.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"drugGroup":{}}`)
	})

	c := newTestClient(t, mux)

	info, ok, err := c.Lookup(context.Background(), "notadrug")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if ok {
		t.Fatal("expected unresolved lookup")
	}
	if info != druginfo.Unknown() {
		t.Fatalf("expected N/A placeholders, got %+v", info)
	}
}

func TestLookup_MissingPropertiesKeepPlaceholders(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/drugs.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"drugGroup":{"drugList":{"drug":[{"name":"x","rxcui":"1"}]}}}`)
	})
	mux.HandleFunc("/rxcui/1/allproperties.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"propConceptGroup":{"propConcept":[
			{"propName":"Drug Class","propValue":""}
		]}}`)
	})

	c := newTestClient(t, mux)

	info, ok, err := c.Lookup(context.Background(), "x")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !ok {
		t.Fatal("expected resolved lookup")
	}
	// valores vacíos no pisan los placeholders
	if info.Category != druginfo.NotAvailable {
		t.Fatalf("expected N/A category, got %q", info.Category)
	}
}

func TestLookup_ServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/drugs.json", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	c := newTestClient(t, mux)

	if _, _, err := c.Lookup(context.Background(), "aspirin"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestLookup_EmptyName(t *testing.T) {
	c := newTestClient(t, http.NewServeMux())

	info, ok, err := c.Lookup(context.Background(), "   ")
	if err != nil || ok {
		t.Fatalf("expected silent miss for blank name, got ok=%v err=%v", ok, err)
	}
	if info != druginfo.Unknown() {
		t.Fatalf("expected N/A placeholders, got %+v", info)
	}
}

func TestSuggest_LimitsResults(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/drugs.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"drugGroup":{"drugList":{"drug":[
			{"name":"a","rxcui":"1"},
			{"name":"","rxcui":"2"},
			{"name":"b","rxcui":"3"},
			{"name":"c","rxcui":"4"}
		]}}}`)
	})

	c := newTestClient(t, mux)

	got, err := c.Suggest(context.Background(), "a", 2)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	// los nombres vacíos se saltan, el límite aplica sobre los válidos
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected [a b], got %v", got)
	}
}

func TestSuggest_BlankQuery(t *testing.T) {
	c := newTestClient(t, http.NewServeMux())

	got, err := c.Suggest(context.Background(), "", 5)
	if err != nil {
		t.Fatalf("suggest: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no suggestions, got %v", got)
	}
}
