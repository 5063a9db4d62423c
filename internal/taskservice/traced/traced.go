package traced

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/slok/tasklist/internal/model"
	"github.com/slok/tasklist/internal/taskservice"
)

const tracerName = "taskservice/traced"

// ServiceConfig is the configuration for the traced task service.
type ServiceConfig struct {
	Service        taskservice.Service
	TracerProvider trace.TracerProvider
}

func (c *ServiceConfig) defaults() error {
	if c.Service == nil {
		return fmt.Errorf("task service is required")
	}
	if c.TracerProvider == nil {
		c.TracerProvider = otel.GetTracerProvider()
	}
	return nil
}

// Service wraps a task service creating one span per call.
type Service struct {
	next   taskservice.Service
	tracer trace.Tracer
}

var _ taskservice.Service = &Service{}

// NewService returns a new traced task service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		next:   cfg.Service,
		tracer: cfg.TracerProvider.Tracer(tracerName),
	}, nil
}

func (s *Service) LoadTasks(ctx context.Context) ([]model.Task, error) {
	ctx, span := s.tracer.Start(ctx, "taskservice.LoadTasks")
	defer span.End()

	tasks, err := s.next.LoadTasks(ctx)
	if err != nil {
		endWithError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int("tasks.count", len(tasks)))
	return tasks, nil
}

func (s *Service) AddTask(ctx context.Context, task model.Task) error {
	ctx, span := s.tracer.Start(ctx, "taskservice.AddTask", trace.WithAttributes(
		attribute.String("task.id", task.ID),
	))
	defer span.End()

	err := s.next.AddTask(ctx, task)
	endWithError(span, err)
	return err
}

func (s *Service) MarkComplete(ctx context.Context, taskID string) error {
	ctx, span := s.tracer.Start(ctx, "taskservice.MarkComplete", trace.WithAttributes(
		attribute.String("task.id", taskID),
	))
	defer span.End()

	err := s.next.MarkComplete(ctx, taskID)
	endWithError(span, err)
	return err
}

func (s *Service) MarkIncomplete(ctx context.Context, taskID string) error {
	ctx, span := s.tracer.Start(ctx, "taskservice.MarkIncomplete", trace.WithAttributes(
		attribute.String("task.id", taskID),
	))
	defer span.End()

	err := s.next.MarkIncomplete(ctx, taskID)
	endWithError(span, err)
	return err
}

func endWithError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
