// Package email drafts real-world emails in two dispatches: a content-safety check on the
// request, then the draft itself.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/harunnryd/chatbot/internal/logger"
	"github.com/harunnryd/chatbot/internal/model/contract"
)

// ErrRejected is returned when the safety check does not allow the request.
var ErrRejected = errors.New("request rejected by safety check")

// RejectionMessage is what the CLI prints for a rejected request.
const RejectionMessage = "I only assist with writing real-world emails. Please ask me to draft a real email."

const safetyCheckTemplate = `
CONTENT SAFETY ANALYSIS TASK:

You are a content moderator for a professional email generator. Analyze the user input to determine if it contains genuinely harmful or inappropriate content.

ONLY BLOCK if the request contains:
- Direct hate speech, slurs, or discrimination
- Explicit profanity or vulgar language
- Clear threats or intimidation
- Personal attacks or harassment
- Sexual content or inappropriate references
- Requests to deceive, scam, or mislead others

EXAMPLES OF SAFE REQUESTS (ALLOW THESE):
- "Write a leave request email"
- "Create a complaint email about poor service"
- "Generate an urgent meeting request"
- "Write a firm but professional email about deadline concerns"

IMPORTANT:
- Professional emails can express concerns, complaints, or urgent matters
- Allow requests for legitimate business communications
- Only block genuinely harmful or inappropriate content
- When unsure about borderline cases, lean toward ALLOWING the request

USER INPUT TO ANALYZE: %q

Strictly Reply with only "yes" or "no".`

const draftTemplate = "Please write a complete email for the following request:\n\n%q"

// Sender is the slice of chat.Dispatcher the generator needs.
type Sender interface {
	Send(ctx context.Context, messages []contract.Message) (string, error)
}

type Generator struct {
	sender       Sender
	systemPrompt string
	logger       *slog.Logger
}

func NewGenerator(sender Sender, systemPrompt string, l *slog.Logger) *Generator {
	if l == nil {
		l = logger.Discard()
	}
	return &Generator{sender: sender, systemPrompt: systemPrompt, logger: l}
}

// Draft runs the safety check and, if it passes, returns the drafted email.
func (g *Generator) Draft(ctx context.Context, request string) (string, error) {
	request = strings.TrimSpace(request)
	if request == "" {
		return "", fmt.Errorf("empty email request")
	}

	ctx, traceID := logger.EnsureTraceID(ctx)

	allowed, err := g.Check(ctx, request)
	if err != nil {
		return "", err
	}
	if !allowed {
		g.logger.Info("Email request rejected", "trace_id", traceID)
		return "", ErrRejected
	}

	draft, err := g.sender.Send(ctx, g.conversation(fmt.Sprintf(draftTemplate, request)))
	if err != nil {
		return "", fmt.Errorf("draft email: %w", err)
	}
	return strings.TrimSpace(draft), nil
}

// Check asks the model whether request is acceptable. The verdict is permissive: any
// reply mentioning "yes" or "allow" passes.
func (g *Generator) Check(ctx context.Context, request string) (bool, error) {
	verdict, err := g.sender.Send(ctx, g.conversation(fmt.Sprintf(safetyCheckTemplate, request)))
	if err != nil {
		return false, fmt.Errorf("safety check: %w", err)
	}

	verdict = strings.ToLower(strings.TrimSpace(verdict))
	g.logger.Debug("Safety check verdict", "verdict", verdict, "trace_id", logger.GetTraceID(ctx))

	return strings.Contains(verdict, "allow") || strings.Contains(verdict, "yes"), nil
}

func (g *Generator) conversation(prompt string) []contract.Message {
	return []contract.Message{
		contract.System(g.systemPrompt),
		contract.User(prompt),
	}
}
