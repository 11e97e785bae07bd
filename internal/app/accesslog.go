package app

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/coderslab/hr-console/internal/shared"
)

// DailyWriter appends to <dir>/<prefix>_YYYYMMDD.log, switching files at
// midnight. Safe for concurrent use.
type DailyWriter struct {
	mu     sync.Mutex
	dir    string
	prefix string
	day    string
	file   *os.File
}

// NewDailyWriter constructs a writer rooted at dir.
func NewDailyWriter(dir, prefix string) *DailyWriter {
	return &DailyWriter{dir: dir, prefix: prefix}
}

func (w *DailyWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	day := time.Now().Format("20060102")
	if w.file == nil || day != w.day {
		if w.file != nil {
			_ = w.file.Close()
			w.file = nil
		}
		if err := os.MkdirAll(w.dir, 0o755); err != nil {
			return 0, err
		}
		name := filepath.Join(w.dir, fmt.Sprintf("%s_%s.log", w.prefix, day))
		file, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return 0, err
		}
		w.file = file
		w.day = day
	}
	return w.file.Write(p)
}

// Close releases the current file handle.
func (w *DailyWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

type accessRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *accessRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *accessRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

// AccessLogger writes one Common Log Format line per request, with the
// session username when one is present. Must run after the session
// middleware so the user column is populated.
func AccessLogger(out io.Writer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &accessRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			user := "-"
			if p := shared.PrincipalFromContext(r.Context()); p != nil && p.Username != "" {
				user = p.Username
			}
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			line := fmt.Sprintf("%s - %s [%s] \"%s %s %s\" %d %d\n",
				r.RemoteAddr,
				user,
				time.Now().Format("02/Jan/2006:15:04:05 -0700"),
				r.Method,
				r.URL.RequestURI(),
				r.Proto,
				status,
				rec.bytes,
			)
			_, _ = io.WriteString(out, line)
		})
	}
}
