package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/url"
	"time"

	"github.com/vk/asmprep/internal/config"
	"github.com/vk/asmprep/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// Defaults applied by NewPublisher.
const (
	DefaultNamespace = "/"
	DefaultEvent     = "preprocess_result"
	DefaultTimeout   = 10 * time.Second
)

// Status is the final state of a run.
type Status struct {
	Input       string
	Output      string
	Success     bool
	FatalKind   string
	Message     string
	Warnings    int
	Diagnostics int
	ExitCode    int
}

// payload is the event data sent on the wire.
func (s Status) payload() map[string]any {
	return map[string]any{
		"input":       s.Input,
		"output":      s.Output,
		"success":     s.Success,
		"fatal_kind":  s.FatalKind,
		"message":     s.Message,
		"warnings":    s.Warnings,
		"diagnostics": s.Diagnostics,
		"exit_code":   s.ExitCode,
		"finished_at": time.Now().UTC().Format(time.RFC3339),
	}
}

// Publisher emits a Status once over socket.io.
type Publisher struct {
	cfg config.Notify
}

// NewPublisher returns a Publisher for the given notify configuration.
func NewPublisher(cfg config.Notify) *Publisher {
	if cfg.Namespace == "" {
		cfg.Namespace = DefaultNamespace
	}
	if cfg.Event == "" {
		cfg.Event = DefaultEvent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Publisher{cfg: cfg}
}

// Publish connects, emits the status event and disconnects. It returns an
// error if the connection could not be established within the timeout.
func (p *Publisher) Publish(ctx context.Context, status Status) error {
	logger := ctxlog.FromContext(ctx).With("url", p.cfg.URL, "namespace", p.cfg.Namespace, "event", p.cfg.Event)
	logger.Debug("Publishing build status.")

	parsedURL, err := url.Parse(p.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to parse notify URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return fmt.Errorf("notify URL %q must be absolute", p.cfg.URL)
	}

	opCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if p.cfg.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(p.cfg.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client.")
		io.Disconnect()
	}()

	done := make(chan error, 1)

	io.On(types.EventName("connect"), func(...any) {
		logger.Debug("Connected.", "sid", io.Id())
		err := io.Emit(p.cfg.Event, status.payload())
		select {
		case done <- err:
		default:
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connection refused by %s", p.cfg.URL)
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case done <- err:
		default:
		}
	})

	io.Connect()

	select {
	case <-opCtx.Done():
		return fmt.Errorf("timed out after %s while connecting to %s", p.cfg.Timeout, p.cfg.URL)
	case err := <-done:
		if err != nil {
			return fmt.Errorf("failed to emit %q: %w", p.cfg.Event, err)
		}
		logger.Info("Build status published.")
		return nil
	}
}
