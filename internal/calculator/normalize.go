package calculator

import (
	"encoding/json"
	"fmt"
	"sort"

	"traderscout/internal/domain"
)

// NormalizeFills filters out malformed fills and orders the rest by
// timestamp ascending. The input slice is not mutated. An empty result is
// valid and propagates as "no trade history" downstream.
func NormalizeFills(fills []domain.Fill) []domain.Fill {
	out := make([]domain.Fill, 0, len(fills))
	for _, f := range fills {
		if err := f.Validate(); err != nil {
			continue
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimestampMs < out[j].TimestampMs
	})
	return out
}

// ParseFills decodes a raw upstream JSON array of fills, dropping
// malformed elements (wrong types, NaN numerics, failed validation)
// instead of failing the whole payload. It returns normalized fills and
// the number of records dropped. Only a payload that is not a JSON array
// at all is an error.
func ParseFills(data []byte) ([]domain.Fill, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("failed to decode fills payload: %w", err)
	}

	fills := make([]domain.Fill, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		var f domain.Fill
		if err := json.Unmarshal(r, &f); err != nil {
			dropped++
			continue
		}
		fills = append(fills, f)
	}

	normalized := NormalizeFills(fills)
	dropped += len(fills) - len(normalized)
	return normalized, dropped, nil
}
