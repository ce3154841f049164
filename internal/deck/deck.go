// Package deck reads and writes deck files: portable JSON collections of
// knowledge items for sharing between users. Deck files carry content only,
// never scheduling state; imported items always start fresh.
package deck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/srs"
)

// FormatVersion is the deck file version this build reads and writes.
const FormatVersion = 1

// Deck is the on-disk deck file layout.
type Deck struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	Items      []Item    `json:"items"`
}

// Item is one entry in a deck file.
type Item struct {
	Title                string  `json:"title"`
	Content              string  `json:"content,omitempty"`
	FrequencyCoefficient float64 `json:"frequency_coefficient,omitempty"`
}

// Writer is the persistence port imports write through.
type Writer interface {
	CreateItem(ctx context.Context, item *knowledge.Item) error
}

// Export builds a deck file from the given items.
func Export(items []*knowledge.Item, now time.Time) ([]byte, error) {
	d := Deck{
		Version:    FormatVersion,
		ExportedAt: now.UTC(),
		Items:      make([]Item, 0, len(items)),
	}
	for _, it := range items {
		d.Items = append(d.Items, Item{
			Title:                it.Title,
			Content:              it.Content,
			FrequencyCoefficient: it.FrequencyCoefficient,
		})
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode deck: %w", err)
	}
	return append(data, '\n'), nil
}

// Parse validates data against the deck schema and decodes it. Validation
// runs before decoding so malformed files are rejected with a schema error
// rather than half-decoded.
func Parse(data []byte) (*Deck, error) {
	if err := validate(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	var d Deck
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("decode deck: %w", err)
	}
	if d.Version != FormatVersion {
		return nil, fmt.Errorf("unsupported deck version %d (want %d)", d.Version, FormatVersion)
	}
	return &d, nil
}

// Import creates a fresh knowledge item for every deck entry. Entries
// without a coefficient get defaultCoefficient. Returns the number of
// items created.
func Import(ctx context.Context, w Writer, d *Deck, defaultCoefficient float64, now time.Time) (int, error) {
	created := 0
	for i, entry := range d.Items {
		coeff := entry.FrequencyCoefficient
		if coeff == 0 {
			coeff = defaultCoefficient
		}
		if coeff < srs.MinFrequencyCoefficient || coeff > srs.MaxFrequencyCoefficient {
			return created, fmt.Errorf("item %d (%q): %w", i, entry.Title, srs.ErrInvalidFrequencyCoefficient)
		}
		due := now
		item := &knowledge.Item{
			Title:                entry.Title,
			Content:              entry.Content,
			FrequencyCoefficient: coeff,
			Status:               knowledge.StatusLearning,
			CreatedAt:            now,
			NextReviewAt:         &due,
		}
		if err := w.CreateItem(ctx, item); err != nil {
			return created, fmt.Errorf("create item %q: %w", entry.Title, err)
		}
		created++
	}
	return created, nil
}
