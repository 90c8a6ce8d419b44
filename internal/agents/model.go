package agents

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/formatting"
	"github.com/hshahrokni2/zeldabot-pdf-docs-sub002/pkg/payload"
)

// modelAgent is an Extractor backed by a remote vision model through
// go-agents. Each Extract call creates its own agent so concurrent section
// extractions share no client state.
type modelAgent struct {
	name    string
	cfg     gaconfig.AgentConfig
	timeout time.Duration
	client  *http.Client
}

// NewModel creates a vision-model Extractor. The timeout bounds each
// extraction round trip; a timed-out call is recorded as a 504 outcome.
func NewModel(name string, cfg gaconfig.AgentConfig, timeout time.Duration) Extractor {
	return &modelAgent{
		name:    name,
		cfg:     cfg,
		timeout: timeout,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

func (m *modelAgent) Name() string {
	return m.name
}

func (m *modelAgent) Identity() Identity {
	id := Identity{}
	if m.cfg.Provider != nil {
		id.Provider = m.cfg.Provider.Name
		id.BaseURL = m.cfg.Provider.BaseURL
	}
	if m.cfg.Model != nil {
		id.Model = m.cfg.Model.Name
	}
	return id
}

func (m *modelAgent) Extract(ctx context.Context, req Request) Outcome {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	a, err := agent.New(&m.cfg)
	if err != nil {
		return Outcome{
			StatusCode:  http.StatusInternalServerError,
			ErrorReason: "create agent: " + err.Error(),
		}
	}

	resp, err := a.Vision(ctx, req.Prompt, req.Images)
	if err != nil {
		return transportOutcome(err)
	}

	data, err := formatting.Parse[payload.Value](resp.Content())
	if err != nil {
		return Outcome{
			StatusCode:  http.StatusOK,
			ErrorReason: "unparseable model output: " + err.Error(),
		}
	}

	return Outcome{
		Success:    true,
		StatusCode: http.StatusOK,
		Parsed:     true,
		Data:       data,
	}
}

// HealthCheck probes the provider endpoint. Any HTTP response counts as
// reachable; only transport-level failure reports unhealthy.
func (m *modelAgent) HealthCheck(ctx context.Context) bool {
	if m.cfg.Provider == nil || m.cfg.Provider.BaseURL == "" {
		return false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.cfg.Provider.BaseURL, nil)
	if err != nil {
		return false
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}

func transportOutcome(err error) Outcome {
	status := http.StatusBadGateway
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	return Outcome{
		StatusCode:  status,
		ErrorReason: "model call: " + err.Error(),
	}
}
