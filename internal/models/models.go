package models

import "context"

// Exchange is one recorded query/response pair in a conversation
// transcript. Exchanges are append-only: a failed call never becomes
// an Exchange.
type Exchange struct {
	Query    string `json:"query"`
	Response string `json:"response"`
}

// Conversation is the serialized shape of a conversation session:
// the target it was bound to plus its transcript in insertion order.
type Conversation struct {
	ID        string     `json:"id"`
	Target    string     `json:"target"`
	Exchanges []Exchange `json:"exchanges"`
}

// Command is anything runnable resolved from the CLI arguments.
type Command interface {
	Run(ctx context.Context) error
}

// Predictor dispatches a single query over an already established
// connection. Implementations must never return a nil-ish response:
// an absent remote value is normalized to "". The optional apiName
// overrides the remote procedure the connection was configured with.
type Predictor interface {
	Predict(ctx context.Context, query string, apiName ...string) (string, error)
}
