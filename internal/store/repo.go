package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotRepo stores named state blobs. Each key holds the latest snapshot
// written under it.
type SnapshotRepo interface {
	// Load returns the blob stored under key. ok is false if nothing is stored.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, data []byte) error

	// Delete removes the given keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

// FormEventData captures a single wizard progression event.
type FormEventData struct {
	SessionID  string
	Action     string
	CategoryID string
	FormID     string
	Route      string
	Detail     string
}

// FormEventRecord is a persisted FormEventData with its ordering metadata.
type FormEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	FormEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestRecord is a persisted LLMRequestEventData.
type LLMRequestRecord struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendFormEvent records a wizard progression event.
	AppendFormEvent(ctx context.Context, data FormEventData) error

	// QueryFormEvents returns form events, newest first.
	QueryFormEvents(ctx context.Context, opts QueryOpts) ([]FormEventRecord, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns LLM request events, newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)
}
