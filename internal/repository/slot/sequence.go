package slot

import (
	"context"
	"encoding/json"

	"hvacbill/internal/domain"
	"hvacbill/internal/port"
)

type sequence struct {
	slots Slots
}

// NewSequence creates a Sequence whose counters live in CountersSlot.
func NewSequence(slots Slots) port.Sequence {
	return &sequence{slots: slots}
}

func (q *sequence) Next(ctx context.Context, name string) (int64, error) {
	var next int64
	err := q.slots.Mutate(ctx, CountersSlot, func(current []byte) ([]byte, error) {
		counters := make(map[string]int64)
		if len(current) > 0 {
			if err := json.Unmarshal(current, &counters); err != nil {
				return nil, err
			}
		}
		counters[name]++
		next = counters[name]
		return json.Marshal(counters)
	})
	if err != nil {
		return 0, &domain.StorageError{Op: "next", Collection: CountersSlot, Err: err}
	}
	return next, nil
}
