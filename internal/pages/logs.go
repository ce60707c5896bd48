package pages

import (
	"time"

	"github.com/vangoframework/vpmshell/internal/logbuf"
	"github.com/vangoframework/vpmshell/internal/vdom"
)

// Logs shows recent log entries, newest first.
func Logs(entries []logbuf.Entry) *vdom.VNode {
	if len(entries) == 0 {
		return page("Logs", vdom.P(vdom.Class("text-muted"), "No log entries."))
	}

	rows := make([]*vdom.VNode, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, vdom.Tr(
			vdom.ID("log-"+e.ID.String()),
			vdom.Data("level", e.Level.String()),
			vdom.Td(vdom.Time(vdom.DateTime(e.Time.Format(time.RFC3339Nano)), e.Time.Format("15:04:05.000"))),
			vdom.Td(vdom.Class("font-medium"), e.Level.String()),
			vdom.Td(e.Message),
			vdom.Td(vdom.Code(vdom.Class("text-xs"), e.String())),
		))
	}
	return page("Logs",
		vdom.Table(vdom.Class("w-full text-sm font-mono"), vdom.ID("logs"),
			vdom.Thead(vdom.Tr(
				vdom.Th(vdom.Class("text-left"), "Time"),
				vdom.Th(vdom.Class("text-left"), "Level"),
				vdom.Th(vdom.Class("text-left"), "Message"),
				vdom.Th(vdom.Class("text-left"), "Fields"),
			)),
			vdom.Tbody(rows),
		),
	)
}
