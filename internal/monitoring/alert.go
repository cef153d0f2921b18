package monitoring

import (
	"github.com/rs/zerolog/log"
)

// Alert emits a structured alert line for operational events worth surfacing
// outside the normal log stream, such as a payment crossing into overdue.
func Alert(message string, labels map[string]string) {
	ev := log.Warn().Str("alert", message)
	for k, v := range labels {
		ev = ev.Str(k, v)
	}
	ev.Msg("ALERT")
}
