package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// SearchEvent is published after every executed filter query.
type SearchEvent struct {
	QueryID     string    `json:"query_id"`
	Filter      string    `json:"filter"`
	Query       string    `json:"query"`
	Fingerprint string    `json:"fingerprint"`
	InputCount  int       `json:"input_count"`
	ResultCount int       `json:"result_count"`
	ExecutedAt  time.Time `json:"executed_at"`
}

func DecodeSearchEvent(msg kafka.Message) (SearchEvent, error) {
	var event SearchEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return SearchEvent{}, fmt.Errorf("decode search event at offset %d: %w", msg.Offset, err)
	}
	return event, nil
}
