package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiFaint = "\033[2m"

	timeColor  = "\033[38;2;148;163;184m"
	keyColor   = "\033[38;2;94;234;212m"
	valueColor = "\033[38;2;226;232;240m"
	errorColor = "\033[38;2;254;202;202m"
)

//nolint:gochecknoglobals // static palette
var levelColors = map[zapcore.Level]string{
	zapcore.DebugLevel:  "\033[38;2;129;140;248m",
	zapcore.InfoLevel:   "\033[38;2;16;185;129m",
	zapcore.WarnLevel:   "\033[38;2;245;158;11m",
	zapcore.ErrorLevel:  "\033[38;2;248;113;113m",
	zapcore.DPanicLevel: "\033[38;2;244;63;94m",
	zapcore.PanicLevel:  "\033[38;2;244;63;94m",
	zapcore.FatalLevel:  "\033[38;2;217;70;239m",
}

var errNotObject = errors.New("[logger]: encoded entry is not a JSON object")

// prettyEncoder renders entries through zap's JSON encoder and reformats them
// as a colored header line followed by indented fields.
type prettyEncoder struct {
	zapcore.Encoder
}

func (e *prettyEncoder) Clone() zapcore.Encoder {
	return &prettyEncoder{Encoder: e.Encoder.Clone()}
}

func newPrettyLogger(cfg *zap.Config) *zap.Logger {
	enc := &prettyEncoder{Encoder: zapcore.NewJSONEncoder(cfg.EncoderConfig)}
	core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), cfg.Level)
	return zap.New(core, zap.ErrorOutput(zapcore.AddSync(os.Stderr)))
}

func (e *prettyEncoder) EncodeEntry(entry zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	buf, err := e.Encoder.EncodeEntry(entry, fields)
	if err != nil {
		return nil, err
	}

	payload, err := unmarshalOrdered(bytes.TrimSpace(buf.Bytes()))
	if err != nil {
		// keep zap's output untouched when it is not a JSON object
		return buf, nil
	}

	buf.Reset()
	buf.AppendString(header(entry))
	for _, line := range fieldLines(payload, entry.Level) {
		buf.AppendString(line)
		buf.AppendByte('\n')
	}

	return buf, nil
}

func header(entry zapcore.Entry) string {
	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var b strings.Builder
	b.WriteString(ansiFaint + timeColor + "[" + ts.Format(time.DateTime) + "]" + ansiReset + " ")
	b.WriteString(ansiBold + levelColor(entry.Level) + entry.Level.CapitalString() + ansiReset)
	if entry.LoggerName != "" {
		b.WriteString(" " + ansiFaint + timeColor + entry.LoggerName + ansiReset)
	}
	if entry.Message != "" {
		b.WriteString(" " + messageColor(entry.Level) + entry.Message + ansiReset)
	}
	b.WriteByte('\n')
	return b.String()
}

// unmarshalOrdered decodes the top level of a JSON object keeping the key order zap wrote.
func unmarshalOrdered(data []byte) (*orderedmap.OrderedMap[string, json.RawMessage], error) {
	decoder := json.NewDecoder(bytes.NewReader(data))

	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	om := orderedmap.New[string, json.RawMessage]()
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyToken.(string)

		var value json.RawMessage
		if err = decoder.Decode(&value); err != nil {
			return nil, err
		}
		om.Set(key, value)
	}

	return om, nil
}

// fieldLines renders every non reserved field as "  key: value" in encoding order.
func fieldLines(payload *orderedmap.OrderedMap[string, json.RawMessage], level zapcore.Level) []string {
	lines := make([]string, 0, payload.Len())
	for pair := payload.Oldest(); pair != nil; pair = pair.Next() {
		switch pair.Key {
		case timeKey, levelKey, messageKey, nameKey:
			continue
		}
		lines = append(lines,
			"  "+keyColor+pair.Key+ansiReset+": "+messageColor(level)+renderValue(pair.Value)+ansiReset)
	}
	return lines
}

func renderValue(raw json.RawMessage) string {
	var str string
	if json.Unmarshal(raw, &str) == nil {
		return str
	}

	if len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
		var out bytes.Buffer
		if json.Indent(&out, raw, "  ", "  ") == nil {
			return out.String()
		}
	}
	return string(raw)
}

func levelColor(level zapcore.Level) string {
	if c, ok := levelColors[level]; ok {
		return c
	}
	return valueColor
}

func messageColor(level zapcore.Level) string {
	if level >= zapcore.ErrorLevel {
		return errorColor
	}
	return valueColor
}
