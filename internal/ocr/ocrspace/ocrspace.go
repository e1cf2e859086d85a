package ocrspace

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"box-bot/internal/ocr"
)

// Engine talks to an OCR.space-compatible /parse/image endpoint.
type Engine struct {
	baseURL  string
	apiKey   string
	language string
	engineNo string
	httpc    *http.Client
}

func New(baseURL, apiKey string) *Engine {
	return &Engine{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		language: "chs",
		engineNo: "2",
		httpc:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (e *Engine) Name() string { return "ocrspace" }

type response struct {
	ParsedResults []struct {
		ParsedText string `json:"ParsedText"`
	} `json:"ParsedResults"`
}

func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	_ = mw.WriteField("apikey", e.apiKey)
	_ = mw.WriteField("language", e.language)
	_ = mw.WriteField("OCREngine", e.engineNo)
	fw, err := mw.CreateFormFile("file", "region.jpg")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(image); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/parse/image", &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := e.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ocr.ErrService, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		x, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("%w: status %d: %s", ocr.ErrService, resp.StatusCode, strings.TrimSpace(string(x)))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ocr.ErrParse, err)
	}
	if len(out.ParsedResults) == 0 {
		return "", fmt.Errorf("%w: missing ParsedResults", ocr.ErrParse)
	}
	return out.ParsedResults[0].ParsedText, nil
}
