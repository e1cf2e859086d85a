package telegram

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"box-bot/internal/util"
)

var (
	errImageTooLarge = errors.New("image too large")
	errDownload      = errors.New("image download failed")
)

// maxImageBytes caps screenshot size at 5 MB, same ceiling as upstream.
const maxImageBytes = 5 * 1024 * 1024

type imageKind int

const (
	imageFileID imageKind = iota
	imageInline
)

// imageRef is the classified "qualifying image" variant: either a Telegram
// file reference to download or inline base64 bytes already decoded.
type imageRef struct {
	kind    imageKind
	fileID  string
	payload []byte
}

// classifyImage decides whether msg carries a qualifying image.
func classifyImage(msg *tgbotapi.Message) (imageRef, bool) {
	if len(msg.Photo) > 0 {
		// largest preview
		ph := msg.Photo[len(msg.Photo)-1]
		return imageRef{kind: imageFileID, fileID: ph.FileID}, true
	}
	if doc := msg.Document; doc != nil && strings.HasPrefix(doc.MimeType, "image/") {
		return imageRef{kind: imageFileID, fileID: doc.FileID}, true
	}
	if t := strings.TrimSpace(msg.Text); strings.HasPrefix(t, "base64://") || strings.HasPrefix(t, "data:image") {
		b, err := util.DecodeBase64MaybeDataURL(t)
		if err != nil {
			return imageRef{}, false
		}
		return imageRef{kind: imageInline, payload: b}, true
	}
	return imageRef{}, false
}

// spoolImage materializes the image as a temp file. Callers remove the file
// on every exit path.
func (r *Router) spoolImage(ref imageRef) (string, error) {
	data := ref.payload
	if ref.kind == imageFileID {
		file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ref.fileID})
		if err != nil {
			return "", fmt.Errorf("%w: %v", errDownload, err)
		}
		url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
		data, err = download(url)
		if err != nil {
			return "", err
		}
	}

	path := filepath.Join(os.TempDir(), "box_"+uuid.NewString()+".jpg")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func download(url string) ([]byte, error) {
	resp, err := httpClient().Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDownload, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", errDownload, resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errDownload, err)
	}
	return b, nil
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
