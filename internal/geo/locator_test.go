package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLocateIP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","lat":10.787,"lon":79.1378}`))
	}))
	defer srv.Close()

	loc, err := NewClientWithBaseURL(srv.URL).LocateIP(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("LocateIP: %v", err)
	}
	if loc.Lat != "10.7870" || loc.Lng != "79.1378" {
		t.Errorf("unexpected coordinates: %+v", loc)
	}
}

func TestLocateIPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"fail","message":"private range"}`))
	}))
	defer srv.Close()

	if _, err := NewClientWithBaseURL(srv.URL).LocateIP(context.Background(), "10.0.0.1"); err == nil {
		t.Fatal("expected an error for a failed lookup")
	}
}
