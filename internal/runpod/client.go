package runpod

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/SunbirdAI/sunbird-ai-api-sub001/internal/logger"
)

// Client defaults. The extended-polling constants are configurable fields so
// deployments can tune the recovery window without a code change.
const (
	// DefaultBaseURL is the serverless API root.
	DefaultBaseURL = "https://api.runpod.ai/v2"
	// DefaultRequestTimeout bounds a single HTTP request.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultRunTimeout bounds the primary wait for job output.
	DefaultRunTimeout = 600 * time.Second
	// DefaultPollAttempts is the number of extended-polling rounds after the
	// primary wait times out.
	DefaultPollAttempts = 6
	// DefaultPollInterval is the fixed sleep between extended-polling rounds.
	DefaultPollInterval = 5 * time.Second
	// DefaultOutputFetchTimeout bounds the output fetch attempted once a
	// polled status reports a terminal job.
	DefaultOutputFetchTimeout = 30 * time.Second

	// statusCheckInterval is the cadence of status fetches inside a bounded
	// output wait.
	statusCheckInterval = time.Second
)

// ClientOptions contains configuration options for the serverless client.
type ClientOptions struct {
	// BaseURL is the API root, without the endpoint id.
	BaseURL string

	// EndpointID identifies the remote compute endpoint.
	EndpointID string

	// APIKey is the bearer token for the serverless API.
	APIKey string

	// RequestTimeout bounds individual HTTP requests.
	RequestTimeout time.Duration

	// RunTimeout is the default primary wait used when RunJob is called with
	// a non-positive timeout.
	RunTimeout time.Duration

	// PollAttempts, PollInterval and OutputFetchTimeout shape the
	// extended-polling fallback. Zero values take the defaults above.
	PollAttempts       int
	PollInterval       time.Duration
	OutputFetchTimeout time.Duration
}

// DefaultOptions returns the default client options. Credentials are left
// empty and must be supplied by the caller.
func DefaultOptions() *ClientOptions {
	return &ClientOptions{
		BaseURL:            DefaultBaseURL,
		RequestTimeout:     DefaultRequestTimeout,
		RunTimeout:         DefaultRunTimeout,
		PollAttempts:       DefaultPollAttempts,
		PollInterval:       DefaultPollInterval,
		OutputFetchTimeout: DefaultOutputFetchTimeout,
	}
}

// Client talks to one serverless endpoint. It holds no per-job state and is
// safe for concurrent use; every RunJob call owns its own job handle.
// Construct it explicitly and inject it where needed rather than sharing a
// package-level instance.
type Client struct {
	baseURL    string
	endpointID string
	apiKey     string

	requestTimeout     time.Duration
	runTimeout         time.Duration
	pollAttempts       int
	pollInterval       time.Duration
	outputFetchTimeout time.Duration
	statusInterval     time.Duration
}

// NewClient creates a new serverless API client with the given options.
func NewClient(opts *ClientOptions) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	c := &Client{
		baseURL:            baseURL,
		endpointID:         opts.EndpointID,
		apiKey:             opts.APIKey,
		requestTimeout:     opts.RequestTimeout,
		runTimeout:         opts.RunTimeout,
		pollAttempts:       opts.PollAttempts,
		pollInterval:       opts.PollInterval,
		outputFetchTimeout: opts.OutputFetchTimeout,
		statusInterval:     statusCheckInterval,
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = DefaultRequestTimeout
	}
	if c.runTimeout <= 0 {
		c.runTimeout = DefaultRunTimeout
	}
	if c.pollAttempts <= 0 {
		c.pollAttempts = DefaultPollAttempts
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.outputFetchTimeout <= 0 {
		c.outputFetchTimeout = DefaultOutputFetchTimeout
	}
	return c, nil
}

// EndpointID returns the configured endpoint id.
func (c *Client) EndpointID() string { return c.endpointID }

func (c *Client) checkConfig() error {
	if c.endpointID == "" {
		return &ConfigError{Field: "endpoint id"}
	}
	if c.apiKey == "" {
		return &ConfigError{Field: "api key"}
	}
	return nil
}

func (c *Client) runURL() string {
	return fmt.Sprintf("%s/%s/run", c.baseURL, c.endpointID)
}

func (c *Client) statusURL(jobID string) string {
	return fmt.Sprintf("%s/%s/status/%s", c.baseURL, c.endpointID, jobID)
}

func (c *Client) cancelURL(jobID string) string {
	return fmt.Sprintf("%s/%s/cancel/%s", c.baseURL, c.endpointID, jobID)
}

type submitResponse struct {
	ID     string    `json:"id"`
	Status JobStatus `json:"status"`
}

// Submit sends the payload to the endpoint's job-creation call and returns a
// handle for the created job. Submission is never retried here: submitting
// twice risks duplicate billable work, so retry policy belongs to the caller.
func (c *Client) Submit(ctx context.Context, payload map[string]interface{}) (*Job, error) {
	if err := c.checkConfig(); err != nil {
		return nil, err
	}

	var resp submitResponse
	body := fiber.Map{"input": payload}
	if err := c.executeRequest(ctx, http.MethodPost, c.runURL(), body, &resp); err != nil {
		return nil, &ConnectionError{Op: "submit job", Err: err}
	}
	if resp.ID == "" {
		return nil, &ConnectionError{Op: "submit job", Err: errors.New("response carries no job id")}
	}

	logger.Debugf("submitted job %s to endpoint %s", resp.ID, c.endpointID)
	return &Job{client: c, id: resp.ID}, nil
}

// Details performs one best-effort status fetch for the given job. It never
// fails: on any error it returns a degenerate document carrying
// StatusUnknown, distinguishing an unhealthy observation from an unhealthy
// job. This keeps diagnostics from ever aborting orchestration.
func (c *Client) Details(ctx context.Context, jobID string) RawJobDetails {
	var details RawJobDetails
	if err := c.executeRequest(ctx, http.MethodGet, c.statusURL(jobID), nil, &details); err != nil {
		logger.Warnf("status fetch for job %s failed: %v", jobID, err)
		return RawJobDetails{
			"status": string(StatusUnknown),
			"error":  err.Error(),
		}
	}
	if details == nil {
		details = RawJobDetails{}
	}
	return details
}

// CancelJob requests cancellation of a job by id. Best-effort: a job that
// already finished cancels to a no-op on the remote side.
func (c *Client) CancelJob(ctx context.Context, jobID string) error {
	if err := c.checkConfig(); err != nil {
		return err
	}
	if err := c.executeRequest(ctx, http.MethodPost, c.cancelURL(jobID), nil, nil); err != nil {
		return &ConnectionError{Op: "cancel job " + jobID, Err: err}
	}
	return nil
}

// createAgent creates a new Fiber Agent for the given method and URL.
func (c *Client) createAgent(ctx context.Context, method, fullURL string, body interface{}) (*fiber.Agent, error) {
	var agent *fiber.Agent
	switch method {
	case http.MethodGet:
		agent = fiber.Get(fullURL)
	case http.MethodPost:
		agent = fiber.Post(fullURL)
	default:
		return nil, fmt.Errorf("unsupported HTTP method: %s", method)
	}

	// Honor the caller's deadline when it is tighter than the client default.
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < c.requestTimeout {
		agent.Timeout(time.Until(deadline))
	} else {
		agent.Timeout(c.requestTimeout)
	}

	agent.Set("Content-Type", "application/json")
	agent.Set("Accept", "application/json")
	agent.Set("Authorization", "Bearer "+c.apiKey)

	if body != nil {
		agent.JSON(body)
	}

	return agent, nil
}

// executeRequest creates an agent, sends the request, and decodes the
// response into v.
func (c *Client) executeRequest(ctx context.Context, method, fullURL string, body, v interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	agent, err := c.createAgent(ctx, method, fullURL, body)
	if err != nil {
		return err
	}

	statusCode, respBody, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("error sending request: %w", errs[0])
	}

	if statusCode < 200 || statusCode >= 300 {
		var errResp struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Error != "" {
			return &fiber.Error{Code: statusCode, Message: errResp.Error}
		}
		return &fiber.Error{Code: statusCode, Message: "unknown error"}
	}

	if v != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, v); err != nil {
			return fmt.Errorf("error decoding response: %w", err)
		}
	}

	return nil
}
