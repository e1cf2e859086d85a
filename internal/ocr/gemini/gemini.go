package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"box-bot/internal/ocr"
	"box-bot/internal/util"
)

// Engine transcribes a crop with Gemini instead of the OCR service. The
// prompt asks for bare line-per-line text so the same parser consumes it.
type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	if strings.TrimSpace(model) == "" {
		model = "gemini-2.5-flash"
	}
	return &Engine{APIKey: strings.TrimSpace(apiKey), Model: model}
}

func (e *Engine) Name() string { return "gemini" }

// SetModel switches the default model, used by the /engine command.
func (e *Engine) SetModel(model string) {
	if m := strings.TrimSpace(model); m != "" {
		e.Model = m
	}
}

const instruction = `You are an OCR module. Transcribe every piece of text visible in the image, one output line per visual line, top to bottom. Plain text only, no commentary, no markdown.`

func (e *Engine) Recognize(ctx context.Context, image []byte) (string, error) {
	if e.APIKey == "" {
		return "", errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ocr.ErrService, err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}

	format := "jpeg"
	if util.SniffMimeHTTP(image) == "image/png" {
		format = "png"
	}
	resp, err := m.GenerateContent(ctx, genai.ImageData(format, image))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ocr.ErrService, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: no candidates", ocr.ErrParse)
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%w: empty transcription", ocr.ErrParse)
	}
	return b.String(), nil
}
