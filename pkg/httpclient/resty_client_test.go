package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientSendsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "pmbuddy" {
			t.Errorf("User-Agent = %q", got)
		}
		if got := r.Header.Get("X-Call"); got != "1" {
			t.Errorf("X-Call = %q", got)
		}
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))
	defer srv.Close()

	client := NewRestyClient(2*time.Second, map[string]string{"User-Agent": "pmbuddy"})
	resp, err := client.Get(context.Background(), srv.URL, map[string]string{"X-Call": "1"})
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusTeapot {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if string(resp.Body()) != "short and stout" {
		t.Fatalf("body = %q", resp.Body())
	}
}

func TestRestyClientReportsFinalURLAfterRedirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/pmc/articles/PMC1234567/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/articles/PMC1234567/", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/articles/PMC1234567/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html></html>"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	client := NewRestyClient(2*time.Second, nil)
	resp, err := client.Get(context.Background(), srv.URL+"/pmc/articles/PMC1234567/", nil)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode())
	}
	if want := srv.URL + "/articles/PMC1234567/"; resp.FinalURL() != want {
		t.Fatalf("FinalURL = %q, want %q", resp.FinalURL(), want)
	}
}

func TestRestyClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := NewRestyClient(50*time.Millisecond, nil)
	if _, err := client.Get(context.Background(), srv.URL, nil); err == nil {
		t.Fatalf("expected timeout error")
	}
}
