// Package chat sends one conversation to the configured completion endpoint and
// returns the assistant's reply.
package chat

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harunnryd/chatbot/internal/config"
	chatErrors "github.com/harunnryd/chatbot/internal/errors"
	"github.com/harunnryd/chatbot/internal/logger"
	"github.com/harunnryd/chatbot/internal/model"
	"github.com/harunnryd/chatbot/internal/model/contract"
)

// ErrorPrefix starts every reply Reply produces for a failed dispatch.
const ErrorPrefix = "An error occurred: "

// ProviderFactory builds a provider client for one dispatch.
type ProviderFactory func(ctx context.Context, cfg config.ModelConfig) (model.Provider, error)

type Dispatcher struct {
	cfg         config.ModelConfig
	logger      *slog.Logger
	mapper      chatErrors.ErrorMapper
	newProvider ProviderFactory
}

type Option func(*Dispatcher)

func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

func WithProviderFactory(f ProviderFactory) Option {
	return func(d *Dispatcher) {
		if f != nil {
			d.newProvider = f
		}
	}
}

func NewDispatcher(cfg config.ModelConfig, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		cfg:         cfg,
		logger:      logger.Discard(),
		mapper:      chatErrors.NewDefaultErrorMapper(),
		newProvider: model.NewProvider,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Model reports the model identifier every request is sent with.
func (d *Dispatcher) Model() string {
	return d.cfg.ModelName()
}

// Send builds a fresh client, issues exactly one completion request and returns the first
// choice's text. Errors carry one of the chatErrors categories.
func (d *Dispatcher) Send(ctx context.Context, messages []contract.Message) (string, error) {
	ctx, traceID := logger.EnsureTraceID(ctx)

	provider, err := d.newProvider(ctx, d.cfg)
	if err != nil {
		return "", d.fail(traceID, err)
	}

	req := contract.CompletionRequest{
		Model:       d.Model(),
		Messages:    messages,
		Temperature: d.cfg.Temperature,
	}

	d.logger.Debug("Sending completion request", "provider", provider.Name(), "model", req.Model, "messages", len(messages), "trace_id", traceID)

	resp, err := provider.Generate(ctx, req)
	if err != nil {
		return "", d.fail(traceID, err)
	}

	d.logger.Info("Response from provider", "provider", provider.Name(), "model", req.Model, "response", fmt.Sprintf("%+v", resp.Raw), "trace_id", traceID)
	return resp.Content, nil
}

// Reply is Send with every failure, panics included, folded into an
// "An error occurred: ..." string.
func (d *Dispatcher) Reply(ctx context.Context, messages []contract.Message) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("dispatch panicked: %v", r)
			d.logger.Error("Error occurred", "error", err)
			reply = FormatError(err)
		}
	}()

	reply, err := d.Send(ctx, messages)
	if err != nil {
		return FormatError(err)
	}
	return reply
}

// FormatError renders err the way Reply returns it to callers.
func FormatError(err error) string {
	return ErrorPrefix + err.Error()
}

func (d *Dispatcher) fail(traceID string, err error) error {
	mapped := d.mapper.MapError(err)
	d.logger.Error("Error occurred", "error", mapped, "category", d.mapper.Category(mapped), "trace_id", traceID)
	return mapped
}
