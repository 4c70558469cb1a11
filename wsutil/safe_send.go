package wsutil

import "log/slog"

// SafeSend queues data on a client's outbound channel without blocking or
// panicking. It reports false when the channel is full or already closed.
func SafeSend(ch chan []byte, data []byte) (sent bool) {
	if ch == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			slog.Debug("send on closed channel", "tag", "wsutil", "panic", r)
			sent = false
		}
	}()
	select {
	case ch <- data:
		return true
	default:
		slog.Warn("outbound queue full, dropping message", "tag", "wsutil", "bytes", len(data))
		return false
	}
}
