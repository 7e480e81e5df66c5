package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestParseRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/parse" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req ParseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.UserRequest != "survey 500 by 300 field" {
			t.Errorf("UserRequest = %q", req.UserRequest)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"status":"success","mission_spec":{"area":{"length_m":500,"width_m":300},"altitude_m":70}}`)
	}))
	defer srv.Close()

	c := NewIntakeClient(srv.URL, time.Second, quietLogger())
	spec, err := c.ParseRequest(context.Background(), "survey 500 by 300 field")
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}
	if spec.Area.LengthM != 500 || spec.Area.WidthM != 300 {
		t.Fatalf("Area = %+v, want 500x300", spec.Area)
	}
	if spec.AltitudeM == nil || *spec.AltitudeM != 70 {
		t.Fatalf("AltitudeM = %v, want 70", spec.AltitudeM)
	}
}

func TestParseRequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusBadGateway, `upstream down`},
		{"rejected", http.StatusOK, `{"status":"error","message":"no area"}`},
		{"missing spec", http.StatusOK, `{"status":"success"}`},
		{"bad json", http.StatusOK, `{`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			c := NewIntakeClient(srv.URL, time.Second, quietLogger())
			if _, err := c.ParseRequest(context.Background(), "x"); err == nil {
				t.Fatal("ParseRequest() error = nil, want error")
			}
		})
	}
}

func TestCheckHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status":"healthy","version":"2.1.0"}`)
	}))
	defer srv.Close()

	c := NewIntakeClient(srv.URL, time.Second, quietLogger())
	health, err := c.CheckHealth(context.Background())
	if err != nil {
		t.Fatalf("CheckHealth() error = %v", err)
	}
	if health.Status != "healthy" || health.Version != "2.1.0" {
		t.Fatalf("CheckHealth() = %+v", health)
	}
}
