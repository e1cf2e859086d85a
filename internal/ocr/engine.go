package ocr

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrService: the recognizer was unreachable or refused the request.
	ErrService = errors.New("ocr service error")
	// ErrParse: the recognizer answered with an unusable body shape.
	ErrParse = errors.New("ocr response parse error")
)

// Engine recognizes the text in one cropped image. Single attempt per call;
// retries, if any, belong to the caller's transport layer.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, image []byte) (string, error)
}

// Manager holds the per-user engine selection with a process-wide default.
type Manager struct {
	def Engine
	m   sync.Map // userID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(userID string) Engine {
	if v, ok := m.m.Load(userID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(userID string, e Engine) {
	m.m.Store(userID, e)
}
