package syncbox

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tradejournal/internal/models"
)

func TestUpsertAndFetchRoundTrip(t *testing.T) {
	rows := map[string][]byte{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer key-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.Method {
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			rows[r.URL.Path] = body
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			body, ok := rows[r.URL.Path]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write(body)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "key-1")
	snap := models.Snapshot{
		Trades:   []models.Trade{{ID: "t1", Symbol: "EURUSD"}},
		Accounts: []models.Account{{ID: "a1", Name: "Main"}},
	}
	if err := c.Upsert(context.Background(), "journal-1", snap); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := c.Fetch(context.Background(), "journal-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got == nil {
		t.Fatalf("fetch returned nil for existing row")
	}
	if len(got.Trades) != 1 || got.Trades[0].ID != "t1" {
		t.Fatalf("trades=%+v want one trade t1", got.Trades)
	}
}

func TestFetch_MissingRowIsNilNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "key-1")
	got, err := c.Fetch(context.Background(), "nope")
	if err != nil {
		t.Fatalf("err=%v want nil", err)
	}
	if got != nil {
		t.Fatalf("got=%+v want nil", got)
	}
}

func TestUpsert_ServerErrorSurfacesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "row locked", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "key-1")
	err := c.Upsert(context.Background(), "journal-1", models.Snapshot{})
	if err == nil {
		t.Fatalf("want error on http 500")
	}
}

func TestFetch_DecodesSnapshotShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Snapshot{
			Withdrawals: []models.Withdrawal{{ID: "w1"}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "key-1")
	got, err := c.Fetch(context.Background(), "journal-1")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got.Withdrawals) != 1 || got.Withdrawals[0].ID != "w1" {
		t.Fatalf("withdrawals=%+v want one w1", got.Withdrawals)
	}
}
