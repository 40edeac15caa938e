package rbridge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/wvedudata/schooldata"
)

// Session implements schooldata.Source over one-shot Rscript invocations.
// A mutex serializes calls, so one Session issues at most one R process at a
// time; the adapter layer adds no further locking. Sessions hold no state
// between calls beyond configuration.
var _ schooldata.Source = (*Session)(nil)

// Session holds the Rscript path, library paths, and per-call timeout.
type Session struct {
	rscript  string
	libPaths []string
	timeout  time.Duration
	logger   *slog.Logger
	mu       sync.Mutex
}

// Option configures a Session.
type Option func(*Session)

// WithRscript sets the Rscript executable path.
func WithRscript(path string) Option {
	return func(s *Session) {
		s.rscript = path
	}
}

// WithLibPaths sets the R library paths exported as R_LIBS_USER.
func WithLibPaths(paths ...string) Option {
	return func(s *Session) {
		s.libPaths = paths
	}
}

// WithTimeout sets the per-invocation timeout. Zero disables it; callers can
// still bound individual calls through ctx.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithLogger sets the logger for bridge diagnostics. If l is nil, the
// default is left unchanged.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a Session from cfg; options override cfg fields.
// Returns an error if the Rscript path ends up empty.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	s := &Session{
		rscript:  cfg.Rscript,
		libPaths: cfg.LibPaths,
		timeout:  cfg.Timeout,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if strings.TrimSpace(s.rscript) == "" {
		return nil, fmt.Errorf("rbridge: Rscript path must not be empty")
	}
	return s, nil
}

// FetchYear calls fetch_enr(year) and decodes the resulting table.
func (s *Session) FetchYear(ctx context.Context, year int) (schooldata.Table, error) {
	return s.fetchTable(ctx, scriptFetchYear(year), nil)
}

// FetchYears calls fetch_enr_multi(years) and decodes the resulting table.
func (s *Session) FetchYears(ctx context.Context, years []int) (schooldata.Table, error) {
	return s.fetchTable(ctx, scriptFetchYears(years), nil)
}

// Tidy sends the table into R on stdin, calls tidy_enr on the rebuilt
// data.frame, and decodes the reshaped result. The upstream function's
// output is returned as-is.
func (s *Session) Tidy(ctx context.Context, t schooldata.Table) (schooldata.Table, error) {
	payload, err := json.Marshal(t)
	if err != nil {
		return schooldata.Table{}, fmt.Errorf("%w: encode table: %w", ErrBridge, err)
	}
	return s.fetchTable(ctx, scriptTidy(), payload)
}

// YearBounds calls the external year-bounds accessor.
func (s *Session) YearBounds(ctx context.Context) (schooldata.YearRange, error) {
	out, err := s.run(ctx, scriptYearBounds(), nil)
	if err != nil {
		return schooldata.YearRange{}, err
	}
	var yr schooldata.YearRange
	if err := json.Unmarshal(out, &yr); err != nil {
		return schooldata.YearRange{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return yr, nil
}

func (s *Session) fetchTable(ctx context.Context, script string, stdin []byte) (schooldata.Table, error) {
	out, err := s.run(ctx, script, stdin)
	if err != nil {
		return schooldata.Table{}, err
	}
	var t schooldata.Table
	if err := json.Unmarshal(out, &t); err != nil {
		return schooldata.Table{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := t.Validate(); err != nil {
		return schooldata.Table{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return t, nil
}

func (s *Session) run(ctx context.Context, script string, stdin []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, s.rscript, "--vanilla", "--no-echo", "-e", script)
	if len(s.libPaths) > 0 {
		cmd.Env = append(os.Environ(), "R_LIBS_USER="+strings.Join(s.libPaths, ":"))
	}
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		if stderr.Len() > 0 {
			// R warnings and messages land here; surface them without failing.
			s.logger.Warn("rscript wrote to stderr", "stderr", strings.TrimSpace(stderr.String()))
		}
		return stdout.Bytes(), nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == rErrorStatus {
		return nil, &RError{Message: strings.TrimSpace(stderr.String())}
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrRscript, s.rscript)
	}
	if ctx.Err() != nil {
		return nil, fmt.Errorf("%w: %w", ErrBridge, ctx.Err())
	}
	if stderr.Len() > 0 {
		return nil, fmt.Errorf("%w: %w: %s", ErrBridge, err, strings.TrimSpace(stderr.String()))
	}
	return nil, fmt.Errorf("%w: %w", ErrBridge, err)
}
