package trace

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// Format is the encoding of written events.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

func formatFor(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".json") {
		return FormatNDJSON
	}
	return FormatText
}

// FormatEvent renders one event with its trailing newline.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return eventJSON(ev)
	}
	return eventText(ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func eventJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		return nil
	}
	return append(data, '\n')
}

var kindMarks = [...]string{KindSpanBegin: "→ ", KindSpanEnd: "← ", KindPoint: "• "}

// eventText renders
//
//	[15:04:05.000000 #0042]     → long double (128-quadruple-little) {bits=128}
//
// indented two spaces per scope below the driver.
func eventText(ev *Event) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s #%04d] ", ev.Time.Format("15:04:05.000000"), ev.Seq)
	if ev.Scope > ScopeDriver {
		b.WriteString(strings.Repeat("  ", int(ev.Scope-ScopeDriver)))
	}
	if int(ev.Kind) < len(kindMarks) {
		b.WriteString(kindMarks[ev.Kind])
	}
	b.WriteString(ev.Name)
	if ev.Detail != "" {
		fmt.Fprintf(&b, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		keys := make([]string, 0, len(ev.Extra))
		for k := range ev.Extra {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + ev.Extra[k]
		}
		b.WriteString(" {" + strings.Join(pairs, ", ") + "}")
	}
	b.WriteByte('\n')
	return []byte(b.String())
}
