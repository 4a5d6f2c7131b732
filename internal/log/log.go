package log

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

type entry struct {
	TS        string         `json:"ts"`
	Level     string         `json:"level"`
	ReqID     string         `json:"req_id,omitempty"`
	IP        string         `json:"ip,omitempty"`
	Method    string         `json:"method,omitempty"`
	Path      string         `json:"path,omitempty"`
	Session   string         `json:"session,omitempty"`
	Action    string         `json:"action,omitempty"`
	Status    int            `json:"status,omitempty"`
	LatencyMs int64          `json:"latency_ms,omitempty"`
	Err       string         `json:"err,omitempty"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// Setup sends std log output to stdout and, when file is set, a rotated log
// file. The returned closer flushes the file sink.
func Setup(file string) io.Closer {
	if file == "" {
		log.SetOutput(os.Stdout)
		return nopCloser{}
	}
	lj := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    10, // MiB
		MaxBackups: 5,
		MaxAge:     28,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stdout, lj))
	return lj
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Writer is where fiber's access logger should write so both sinks agree.
func Writer() io.Writer { return log.Writer() }

func write(level string, c *fiber.Ctx, action string, err error, fields map[string]any) {
	e := entry{TS: time.Now().UTC().Format(time.RFC3339), Level: level, Action: action, Fields: fields}
	if c != nil {
		e.IP = c.IP()
		e.Method = c.Method()
		e.Path = c.Path()
		e.Status = c.Response().StatusCode()
		if rid, ok := c.Locals("requestid").(string); ok && rid != "" {
			e.ReqID = rid
		}
		// only a prefix of the sid is logged
		if sid := c.Cookies("sid"); len(sid) >= 8 {
			e.Session = sid[:8]
		}
		if start, ok := c.Locals("start").(time.Time); ok {
			e.LatencyMs = time.Since(start).Milliseconds()
		}
	}
	if err != nil {
		e.Err = err.Error()
	}
	b, _ := json.Marshal(e)
	log.Println(string(b))
}

func Info(c *fiber.Ctx, action string, fields map[string]any) { write("info", c, action, nil, fields) }
func Audit(c *fiber.Ctx, action string, fields map[string]any) {
	write("audit", c, action, nil, fields)
}
func Security(c *fiber.Ctx, action string, fields map[string]any) {
	write("warn", c, action, nil, fields)
}
func Error(c *fiber.Ctx, action string, err error, fields map[string]any) {
	write("error", c, action, err, fields)
}
