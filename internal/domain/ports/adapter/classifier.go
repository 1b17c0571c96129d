package adapter

import (
	"context"

	"honeypot-arena/internal/domain/model"
)

// Message mirrors one transcript line on the wire.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// Metadata carries the session's platform and sender context to the classifier.
type Metadata struct {
	Channel      string `json:"channel"`
	Language     string `json:"language"`
	Locale       string `json:"locale"`
	Platform     string `json:"platform"`
	SenderHeader string `json:"senderHeader"`
	SenderNumber string `json:"senderNumber"`
	InContacts   bool   `json:"inContacts"`
}

// AnalyzeRequest is the payload for one classification call. History includes
// the message under analysis as its final element.
type AnalyzeRequest struct {
	SessionID string    `json:"sessionId"`
	Message   Message   `json:"message"`
	History   []Message `json:"conversationHistory"`
	Metadata  Metadata  `json:"metadata"`
}

// ClassifierAdapter is the port for the remote scam-classification service.
// Its internal detection logic is a black box; the engine only depends on
// the verdict shape.
type ClassifierAdapter interface {
	// Analyze submits one message with its conversation history and returns
	// the classifier's verdict. Any transport error, timeout, non-2xx status
	// or malformed body is returned as an error; the verdict is never partial.
	Analyze(ctx context.Context, req AnalyzeRequest) (*model.Verdict, error)

	// Health reports whether the remote service answered a liveness probe
	// with a 2xx status within the bounded timeout.
	Health(ctx context.Context) bool
}
