package overlay

import (
	"sync"
	"time"

	"smurfbrief/internal/analytics"
	"smurfbrief/internal/domain"
)

// Payload is everything one evaluation publishes for rendering: the
// per-opponent briefs, the optional merged-team brief, the combined
// multi-opponent record, and any prior-encounter summaries.
type Payload struct {
	EvaluationID string                       `json:"evaluation_id"`
	Mode         string                       `json:"mode"`
	GeneratedAt  time.Time                    `json:"generated_at"`
	Players      []analytics.Brief            `json:"players"`
	Team         *analytics.TeamBrief         `json:"team,omitempty"`
	Combined     *domain.WindowedRecord       `json:"combined,omitempty"`
	AverageMMR   float64                      `json:"average_mmr,omitempty"`
	Encounters   []analytics.EncounterSummary `json:"encounters,omitempty"`
}

// Publisher holds the currently visible overlay payload. Explicit
// process-scoped state with a register/close-all lifecycle; the poller
// publishes on a new lobby and closes everything when the game ends.
type Publisher struct {
	mu      sync.RWMutex
	current *Payload
}

func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish replaces the visible payload.
func (p *Publisher) Publish(payload Payload) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = &payload
}

// CloseAll clears every visible overlay.
func (p *Publisher) CloseAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = nil
}

// Current returns the visible payload, if any.
func (p *Publisher) Current() (Payload, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.current == nil {
		return Payload{}, false
	}
	return *p.current, true
}
