package telegram

import (
	"errors"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"box-bot/internal/logger"
	"box-bot/internal/ocr"
	"box-bot/internal/session"
)

const cancelKeyword = "q"

// Engines lists the recognizers the router can switch between.
type Engines struct {
	OCRSpace ocr.Engine
	Gemini   ocr.Engine
}

type Router struct {
	Bot      *tgbotapi.BotAPI
	Sessions *session.Registry
	Manager  *ocr.Manager
	Engines  Engines

	log zerolog.Logger
}

func NewRouter(bot *tgbotapi.BotAPI, reg *session.Registry, mgr *ocr.Manager, engines Engines) *Router {
	return &Router{
		Bot:      bot,
		Sessions: reg,
		Manager:  mgr,
		Engines:  engines,
		log:      logger.WithComponent("telegram"),
	}
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	msg := upd.Message
	if msg == nil || msg.From == nil {
		return
	}
	uid := strconv.FormatInt(msg.From.ID, 10)
	cid := msg.Chat.ID

	if msg.IsCommand() {
		r.handleCommand(uid, cid, msg)
		return
	}

	// cancel keyword wins while a session is armed
	if strings.EqualFold(strings.TrimSpace(msg.Text), cancelKeyword) {
		if r.Sessions.Cancel(uid) {
			r.log.Info().Str("user_id", uid).Msg("session cancelled")
			r.send(cid, msgCancelled)
		}
		return
	}

	if ref, ok := classifyImage(msg); ok {
		r.submitImage(uid, cid, ref)
		return
	}
	// anything else is not for this bot
}

func (r *Router) handleCommand(uid string, cid int64, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start", "help":
		r.send(cid, msgHelp)
	case "health":
		r.send(cid, "✅ OK")
	case "xyzw":
		r.startSession(uid, cid)
	case "engine":
		r.handleEngineCommand(uid, cid, msg.Text)
	default:
		r.send(cid, msgUnknownCommand)
	}
}

func (r *Router) startSession(uid string, cid int64) {
	sid, err := r.Sessions.Arm(uid, func(sessionID string) {
		r.log.Info().Str("user_id", uid).Str("session_id", sessionID).Msg("session timed out")
		r.send(cid, msgTimedOut)
	})
	if errors.Is(err, session.ErrAlreadyPending) {
		r.send(cid, msgAlreadyPending)
		return
	}
	if err != nil {
		r.log.Error().Err(err).Str("user_id", uid).Msg("arm failed")
		return
	}
	r.log.Info().Str("user_id", uid).Str("session_id", sid).Msg("session armed")
	r.send(cid, msgPrompt)
}

func (r *Router) submitImage(uid string, cid int64, ref imageRef) {
	// Claim the session before any processing so a duplicate image or a
	// racing deadline observes it gone.
	sid, ok := r.Sessions.Consume(uid)
	if !ok {
		return
	}
	r.log.Info().Str("user_id", uid).Str("session_id", sid).Msg("image received")
	r.send(cid, msgProcessing)
	go r.runPipeline(uid, cid, sid, ref)
}

// handleEngineCommand switches the recognizer for this user.
// Formats: /engine ocrspace | /engine gemini [model]
func (r *Router) handleEngineCommand(uid string, cid int64, cmd string) {
	args := strings.Fields(strings.TrimSpace(strings.TrimPrefix(cmd, "/engine")))
	if len(args) == 0 {
		cur := r.Manager.Get(uid).Name()
		r.send(cid, "当前识别引擎: "+cur+"\n用法:\n/engine ocrspace\n/engine gemini [model]")
		return
	}

	switch strings.ToLower(args[0]) {
	case "ocrspace":
		r.Manager.Set(uid, r.Engines.OCRSpace)
		r.send(cid, "✅ 识别引擎: ocrspace")
	case "gemini":
		eng := r.Engines.Gemini
		if eng == nil {
			r.send(cid, "❌ Gemini 未配置")
			return
		}
		type modelSetter interface{ SetModel(string) }
		if len(args) > 1 {
			if ms, ok := any(eng).(modelSetter); ok {
				ms.SetModel(args[1])
			}
		}
		r.Manager.Set(uid, eng)
		r.send(cid, "✅ 识别引擎: gemini")
	default:
		r.send(cid, "未知引擎，可用: ocrspace | gemini")
	}
}

func (r *Router) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	_, _ = r.Bot.Send(msg)
}
