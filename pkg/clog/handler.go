package clog

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/apex/log"
)

// Handler is an apex/log handler writing one text line per entry: level,
// timestamp, message, then the fields sorted by name.
type Handler struct {
	mu     sync.Mutex
	Writer io.Writer
	now    func() time.Time
}

var levelToStrings = [...]string{
	log.DebugLevel: "DEBUG",
	log.InfoLevel:  "INFO",
	log.WarnLevel:  "WARN",
	log.ErrorLevel: "ERROR",
	log.FatalLevel: "FATAL",
}

func NewHandler(w io.Writer) *Handler {
	return &Handler{Writer: w, now: time.Now}
}

// Close closes the writer unless it is stdout or stderr.
func (h *Handler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.Writer == os.Stdout || h.Writer == os.Stderr {
		return nil
	}

	if c, ok := h.Writer.(io.Closer); ok {
		return c.Close()
	}

	return nil
}

func (h *Handler) HandleLog(e *log.Entry) error {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	level := "?"
	if int(e.Level) >= 0 && int(e.Level) < len(levelToStrings) {
		level = levelToStrings[e.Level]
	}

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, "%5s %s %-25s", level, h.now().Format(time.DateTime), e.Message)

	for _, name := range names {
		_, _ = fmt.Fprintf(&b, " %s=%v", name, e.Fields[name])
	}

	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.Writer.Write(b.Bytes())

	return err
}
