package metrics

import (
	"sync"
	"time"

	"week-meal-planner/internal/llm"
)

// ExecutionMetric records metadata for a single LLM execution.
type ExecutionMetric struct {
	AgentName        string
	Model            string
	PromptTokens     int
	CompletionTokens int
	LatencyMS        int64
	Timestamp        time.Time
}

// Summary aggregates token totals for one agent.
type Summary struct {
	AgentName        string
	Calls            int
	PromptTokens     int
	CompletionTokens int
	TotalLatencyMS   int64
}

// Store keeps execution metrics for the lifetime of the process.
type Store struct {
	mu      sync.Mutex
	metrics []ExecutionMetric
	now     func() time.Time
}

// NewStore returns an empty metrics store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Record saves a metric.
func (s *Store) Record(m ExecutionMetric) {
	if m.Timestamp.IsZero() {
		m.Timestamp = s.now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, m)
}

// RecordUsage records a generation call. Calls that report no tokens are skipped.
func (s *Store) RecordUsage(agentName string, usage llm.TokenUsage, latency time.Duration) {
	if usage.PromptTokens == 0 && usage.CompletionTokens == 0 {
		return
	}
	s.Record(MapUsage(agentName, usage, latency))
}

// Summaries returns per-agent totals in first-seen order.
func (s *Store) Summaries() []Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := make(map[string]int)
	var out []Summary
	for _, m := range s.metrics {
		i, ok := index[m.AgentName]
		if !ok {
			i = len(out)
			index[m.AgentName] = i
			out = append(out, Summary{AgentName: m.AgentName})
		}
		out[i].Calls++
		out[i].PromptTokens += m.PromptTokens
		out[i].CompletionTokens += m.CompletionTokens
		out[i].TotalLatencyMS += m.LatencyMS
	}
	return out
}

// MapUsage helper to convert llm.TokenUsage to ExecutionMetric.
func MapUsage(agentName string, usage llm.TokenUsage, latency time.Duration) ExecutionMetric {
	return ExecutionMetric{
		AgentName:        agentName,
		Model:            usage.Model,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		LatencyMS:        latency.Milliseconds(),
	}
}
