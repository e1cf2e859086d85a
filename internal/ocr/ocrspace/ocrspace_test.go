package ocrspace

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"box-bot/internal/ocr"
)

func TestRecognizeSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parse/image" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("multipart: %v", err)
		}
		if got := r.FormValue("apikey"); got != "k123" {
			t.Errorf("apikey = %q", got)
		}
		if got := r.FormValue("language"); got != "chs" {
			t.Errorf("language = %q", got)
		}
		if got := r.FormValue("OCREngine"); got != "2" {
			t.Errorf("OCREngine = %q", got)
		}
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("file field: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ParsedResults":[{"ParsedText":"分数: 4521分"}]}`))
	}))
	defer srv.Close()

	e := New(srv.URL, "k123")
	text, err := e.Recognize(context.Background(), []byte{0xFF, 0xD8, 0x01})
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if text != "分数: 4521分" {
		t.Fatalf("text = %q", text)
	}
}

func TestRecognizeServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").Recognize(context.Background(), []byte("img"))
	if !errors.Is(err, ocr.ErrService) {
		t.Fatalf("err = %v, want ErrService", err)
	}
}

func TestRecognizeBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").Recognize(context.Background(), []byte("img"))
	if !errors.Is(err, ocr.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestRecognizeMissingResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"OCRExitCode":99}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k").Recognize(context.Background(), []byte("img"))
	if !errors.Is(err, ocr.ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestRecognizeUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := New(srv.URL, "k").Recognize(context.Background(), []byte("img"))
	if !errors.Is(err, ocr.ErrService) {
		t.Fatalf("err = %v, want ErrService", err)
	}
}
