package telegram

import (
	"errors"

	"box-bot/internal/crop"
	"box-bot/internal/ocr"
	"box-bot/internal/score"
)

const (
	msgHelp           = "发送 /xyzw 开始宝箱识别，随后在 60 秒内发送游戏截图。"
	msgPrompt         = "🖼️ 请发送宝箱截图（60秒内），输入 'q' 可退出识别流程"
	msgAlreadyPending = "⚠️ 您已有待处理的图片请求，请先发送截图或输入 'q' 退出"
	msgCancelled      = "已退出识别流程"
	msgTimedOut       = "❌ 图片识别超时，请重新发送图片"
	msgProcessing     = "🔍 开始处理图片..."
	msgUnknownCommand = "未知命令，发送 /help 查看用法"
)

// userMessage maps a pipeline error to its single user-visible message.
// Internal detail (HTTP status, raw lines) stays in the logs.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errImageTooLarge):
		return "图片过大，请发送小于5MB的截图"
	case errors.Is(err, errDownload):
		return "图片下载失败，请重试"
	case errors.Is(err, crop.ErrInvalidImage):
		return "图片处理失败，请确保发送的是有效的游戏截图"
	case errors.Is(err, ocr.ErrService):
		return "OCR服务连接失败，请稍后重试"
	case errors.Is(err, ocr.ErrParse):
		return "OCR响应解析失败"
	case errors.Is(err, score.ErrNoBaseline):
		return "无法解析预设积分"
	case errors.Is(err, score.ErrInsufficientLines):
		return "OCR结果行数不足，请发送完整截图"
	case errors.Is(err, score.ErrEmptyMaterial):
		return "OCR结果包含无效数字，请重试"
	default:
		return "处理失败，请重试"
	}
}
