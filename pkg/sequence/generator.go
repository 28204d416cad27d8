package sequence

import (
	"context"
	"fmt"

	"dukapos/internal/core/apperror"
	"dukapos/internal/core/sequence"

	"dukapos/pkg/logger"
)

// DefaultMaxRetries bounds the verify-and-retry loop.
const DefaultMaxRetries = 10

// Generator mints unique human-readable identifiers from a Counter.
//
// The counter alone does not guarantee uniqueness against documents
// inserted outside this code path (migrated data, manual fixes), so
// every candidate is verified against the target collection before it
// is handed out.
type Generator struct {
	counter    sequence.Counter
	maxRetries int
}

// NewGenerator creates a generator with the default retry limit.
func NewGenerator(counter sequence.Counter) *Generator {
	return &Generator{counter: counter, maxRetries: DefaultMaxRetries}
}

// NewGeneratorWithRetries creates a generator with a custom retry limit.
func NewGeneratorWithRetries(counter sequence.Counter, maxRetries int) *Generator {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	return &Generator{counter: counter, maxRetries: maxRetries}
}

// Generate returns prefix + zero-padded sequence value, verified free
// via exists. The sequence name is derived from the prefix, so
// "SALE-" and "ORD-" advance independently. Collisions draw a fresh
// counter value; after maxRetries collisions the call fails with
// ExhaustedRetries.
func (g *Generator) Generate(ctx context.Context, prefix string, width int, exists sequence.ExistsFunc) (string, error) {
	name := sequenceName(prefix)

	for attempt := 1; attempt <= g.maxRetries; attempt++ {
		n, err := g.counter.Next(ctx, name)
		if err != nil {
			return "", err
		}

		candidate := fmt.Sprintf("%s%0*d", prefix, width, n)

		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}

		logger.Warn(ctx, "generated number already exists, retrying",
			"candidate", candidate,
			"attempt", attempt,
			"max_retries", g.maxRetries)
	}

	return "", apperror.NewExhaustedRetries(prefix, g.maxRetries)
}

// sequenceName maps a display prefix like "SALE-" to a counter name
// like "sale_number".
func sequenceName(prefix string) string {
	name := make([]byte, 0, len(prefix)+7)
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		switch {
		case c >= 'A' && c <= 'Z':
			name = append(name, c+'a'-'A')
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			name = append(name, c)
		}
	}
	return string(name) + "_number"
}

var _ sequence.NumberGenerator = (*Generator)(nil)
