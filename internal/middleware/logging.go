package middleware

import (
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const maxPayloadLen = 256

// Logging writes one debug line per received update and its handling time
func Logging(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			upd := c.Update()

			fields := []zap.Field{zap.Int("update_id", upd.ID)}
			if chat := c.Chat(); chat != nil {
				fields = append(fields, zap.Int64("chat_id", chat.ID))
			}
			if user := c.Sender(); user != nil && user.Username != "" {
				fields = append(fields, zap.String("username", user.Username))
			}

			switch {
			case upd.Callback != nil:
				fields = append(fields, zap.String("kind", "callback"), zap.String("payload", truncate(upd.Callback.Data)))
			case upd.Message != nil:
				fields = append(fields, zap.String("kind", "message"), zap.String("payload", truncate(c.Text())))
			}

			err := next(c)

			fields = append(fields, zap.Duration("took", time.Since(start)))
			if err != nil {
				logger.Warn("Update handled with error", append(fields, zap.Error(err))...)
				return err
			}
			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxPayloadLen {
		return s
	}
	return string(r[:maxPayloadLen]) + "..."
}
