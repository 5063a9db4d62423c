// Package googletasks implements taskservice.Service on a Google Tasks list.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/slok/tasklist/internal/conventions"
	"github.com/slok/tasklist/internal/log"
	"github.com/slok/tasklist/internal/model"
)

const (
	// DefaultListID is the special ID for the user default list.
	DefaultListID = "@default"

	// APITimeout is the default timeout for API calls.
	APITimeout = 5 * time.Second

	statusCompleted   = "completed"
	statusNeedsAction = "needsAction"

	pageSize   = 100
	tasksScope = "https://www.googleapis.com/auth/tasks"
)

// ServiceConfig is the configuration for the Google Tasks task service.
type ServiceConfig struct {
	// ConfigDir has the OAuth client and token files, not used when HTTPClient is set.
	ConfigDir string
	// ListID is the Google task list used to store the tasks.
	ListID string
	// HTTPClient is an already authenticated client.
	HTTPClient *http.Client
	// Endpoint overrides the API endpoint.
	Endpoint string
	// Timeout is the timeout of every API call.
	Timeout time.Duration
	Logger  log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.HTTPClient == nil && c.ConfigDir == "" {
		return fmt.Errorf("config dir is required")
	}
	if c.ListID == "" {
		c.ListID = DefaultListID
	}
	if c.Timeout <= 0 {
		c.Timeout = APITimeout
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "taskservice.GoogleTasks"})
	return nil
}

// Service is a Google Tasks implementation of taskservice.Service.
//
// The local task ID is kept in the remote task notes, remote tasks without it use
// their remote ID.
type Service struct {
	svc     *tasks.Service
	listID  string
	timeout time.Duration
	logger  log.Logger

	mu        sync.Mutex
	remoteIDs map[string]string
}

// NewService creates a new Google Tasks task service.
func NewService(ctx context.Context, cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		c, err := newOAuthClient(ctx, cfg.ConfigDir)
		if err != nil {
			return nil, err
		}
		httpClient = c
	}
	httpClient = &http.Client{
		Transport: otelhttp.NewTransport(httpClient.Transport),
		Timeout:   httpClient.Timeout,
	}

	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("could not create tasks service: %w", err)
	}

	return &Service{
		svc:       svc,
		listID:    cfg.ListID,
		timeout:   cfg.Timeout,
		logger:    cfg.Logger,
		remoteIDs: map[string]string{},
	}, nil
}

func newOAuthClient(ctx context.Context, dir string) (*http.Client, error) {
	clientJSON, err := os.ReadFile(conventions.OAuthClientPath(dir))
	if err != nil {
		return nil, fmt.Errorf("could not read oauth client: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, tasksScope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth client: %w", err)
	}

	tokenData, err := os.ReadFile(conventions.TokenPath(dir))
	if err != nil {
		return nil, fmt.Errorf("could not read token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token)), nil
}

// LoadTasks returns all the tasks of the list in the list order.
func (s *Service) LoadTasks(ctx context.Context) ([]model.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	remote, err := s.listRemote(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.Task, 0, len(remote))
	for _, rt := range remote {
		result = append(result, toModel(rt))
	}
	return result, nil
}

// AddTask inserts a new task on the list.
func (s *Service) AddTask(ctx context.Context, task model.Task) error {
	if err := task.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, ok, err := s.resolve(ctx, task.ID); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("task %s: %w", task.ID, model.ErrAlreadyExists)
	}

	created, err := s.svc.Tasks.Insert(s.listID, fromModel(task)).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}

	s.mu.Lock()
	s.remoteIDs[task.ID] = created.Id
	s.mu.Unlock()

	s.logger.Debugf("Task %s added as remote task %s", task.ID, created.Id)
	return nil
}

// MarkComplete sets the remote task as completed.
func (s *Service) MarkComplete(ctx context.Context, taskID string) error {
	return s.patchStatus(ctx, taskID, &tasks.Task{Status: statusCompleted})
}

// MarkIncomplete sets the remote task as needing action.
func (s *Service) MarkIncomplete(ctx context.Context, taskID string) error {
	return s.patchStatus(ctx, taskID, &tasks.Task{
		Status:     statusNeedsAction,
		NullFields: []string{"Completed"},
	})
}

func (s *Service) patchStatus(ctx context.Context, taskID string, patch *tasks.Task) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	remoteID, ok, err := s.resolve(ctx, taskID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}

	_, err = s.svc.Tasks.Patch(s.listID, remoteID, patch).Context(ctx).Do()
	if err != nil {
		return wrapError(err)
	}

	s.logger.Debugf("Task %s status set to %s", taskID, patch.Status)
	return nil
}

// resolve returns the remote ID of a local task ID, listing the remote tasks when unknown.
func (s *Service) resolve(ctx context.Context, taskID string) (string, bool, error) {
	s.mu.Lock()
	remoteID, ok := s.remoteIDs[taskID]
	s.mu.Unlock()
	if ok {
		return remoteID, true, nil
	}

	if _, err := s.listRemote(ctx); err != nil {
		return "", false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	remoteID, ok = s.remoteIDs[taskID]
	return remoteID, ok, nil
}

// listRemote lists every remote task and refreshes the local to remote ID index.
func (s *Service) listRemote(ctx context.Context) ([]*tasks.Task, error) {
	var result []*tasks.Task
	err := s.svc.Tasks.List(s.listID).
		MaxResults(pageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			result = append(result, resp.Items...)
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	ids := make(map[string]string, len(result))
	for _, rt := range result {
		ids[localID(rt)] = rt.Id
	}
	s.mu.Lock()
	s.remoteIDs = ids
	s.mu.Unlock()

	return result, nil
}

func localID(rt *tasks.Task) string {
	for _, line := range strings.Split(rt.Notes, "\n") {
		if id, ok := strings.CutPrefix(strings.TrimSpace(line), conventions.GoogleTaskIDMarker); ok && id != "" {
			return id
		}
	}
	return rt.Id
}

func toModel(rt *tasks.Task) model.Task {
	return model.Task{
		ID:         localID(rt),
		Title:      rt.Title,
		IsComplete: rt.Status == statusCompleted,
	}
}

func fromModel(t model.Task) *tasks.Task {
	status := statusNeedsAction
	if t.IsComplete {
		status = statusCompleted
	}
	return &tasks.Task{
		Title:  t.Title,
		Notes:  conventions.GoogleTaskIDMarker + t.ID,
		Status: status,
	}
}

func wrapError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("google tasks: %w", model.ErrNotFound)
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("google tasks token expired or revoked: %w", err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("google tasks request timed out: %w", err)
	}
	return fmt.Errorf("google tasks: %w", err)
}
