package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN writes an EDN rendering of v.
//
// Values go through encoding/json first so struct tags decide field names;
// camelCase keys become kebab-case keywords (meetingCode -> :meeting-code).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := ednEncoder{pretty: pretty, indent: 2}
	enc.value(&buf, x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednEncoder struct {
	pretty bool
	indent int
}

func (e ednEncoder) value(buf *bytes.Buffer, v any, level int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case string:
		buf.WriteString(strconv.Quote(t))
	case json.Number:
		buf.WriteString(t.String())
	case []any:
		e.seq(buf, '[', ']', len(t), level, func(i int) {
			e.value(buf, t[i], level+1)
		})
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.seq(buf, '{', '}', len(keys), level, func(i int) {
			buf.WriteByte(':')
			buf.WriteString(ednKeyword(keys[i]))
			buf.WriteByte(' ')
			e.value(buf, t[keys[i]], level+1)
		})
	default:
		buf.WriteString(strconv.Quote(fmt.Sprintf("%v", v)))
	}
}

func (e ednEncoder) seq(buf *bytes.Buffer, open, close byte, n, level int, elem func(int)) {
	buf.WriteByte(open)
	if n == 0 {
		buf.WriteByte(close)
		return
	}
	if e.pretty {
		buf.WriteByte('\n')
	}
	for i := 0; i < n; i++ {
		if e.pretty {
			buf.WriteString(strings.Repeat(" ", (level+1)*e.indent))
		}
		elem(i)
		if i != n-1 {
			if e.pretty {
				buf.WriteByte('\n')
			} else {
				buf.WriteByte(' ')
			}
		}
	}
	if e.pretty {
		buf.WriteByte('\n')
		buf.WriteString(strings.Repeat(" ", level*e.indent))
	}
	buf.WriteByte(close)
}

func ednKeyword(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
