package deck

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/srs"
)

type captureWriter struct {
	items []*knowledge.Item
	err   error
}

func (c *captureWriter) CreateItem(_ context.Context, item *knowledge.Item) error {
	if c.err != nil {
		return c.err
	}
	c.items = append(c.items, item)
	return nil
}

func TestExportParse_RoundTrip(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	items := []*knowledge.Item{
		{Title: "krebs cycle", Content: "citric acid cycle in mitochondria", FrequencyCoefficient: 1.0},
		{Title: "ohm's law", Content: "V = IR", FrequencyCoefficient: 0.8},
	}

	data, err := Export(items, now)
	if err != nil {
		t.Fatal(err)
	}

	d, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if d.Version != FormatVersion {
		t.Errorf("version = %d, want %d", d.Version, FormatVersion)
	}
	if len(d.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(d.Items))
	}
	if d.Items[0].Title != "krebs cycle" || d.Items[1].FrequencyCoefficient != 0.8 {
		t.Errorf("unexpected items: %+v", d.Items)
	}
}

func TestParse_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{broken`},
		{"missing version", `{"items": []}`},
		{"missing title", `{"version": 1, "items": [{"content": "orphan"}]}`},
		{"empty title", `{"version": 1, "items": [{"title": ""}]}`},
		{"coefficient out of range", `{"version": 1, "items": [{"title": "x", "frequency_coefficient": 2.0}]}`},
		{"unknown field", `{"version": 1, "items": [], "bogus": true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParse_RejectsFutureVersion(t *testing.T) {
	_, err := Parse([]byte(`{"version": 2, "items": []}`))
	if err == nil || !strings.Contains(err.Error(), "unsupported deck version") {
		t.Errorf("expected version error, got %v", err)
	}
}

func TestImport_CreatesFreshItems(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	w := &captureWriter{}
	d := &Deck{
		Version: 1,
		Items: []Item{
			{Title: "a", FrequencyCoefficient: 1.2},
			{Title: "b"}, // no coefficient → default
		},
	}

	n, err := Import(context.Background(), w, d, 0.9, now)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("created = %d, want 2", n)
	}
	if w.items[0].FrequencyCoefficient != 1.2 {
		t.Errorf("coefficient = %v, want 1.2", w.items[0].FrequencyCoefficient)
	}
	if w.items[1].FrequencyCoefficient != 0.9 {
		t.Errorf("default coefficient = %v, want 0.9", w.items[1].FrequencyCoefficient)
	}
	for _, item := range w.items {
		if item.Status != knowledge.StatusLearning {
			t.Errorf("imported item status = %s, want learning", item.Status)
		}
		if item.ReviewCount != 0 {
			t.Error("imported items must start with no review history")
		}
		if item.NextReviewAt == nil || !item.NextReviewAt.Equal(item.CreatedAt) {
			t.Error("imported items must be due immediately")
		}
	}
}

func TestImport_InvalidDefaultCoefficient(t *testing.T) {
	d := &Deck{Version: 1, Items: []Item{{Title: "a"}}}
	_, err := Import(context.Background(), &captureWriter{}, d, 0.2, time.Now())
	if !errors.Is(err, srs.ErrInvalidFrequencyCoefficient) {
		t.Errorf("expected ErrInvalidFrequencyCoefficient, got %v", err)
	}
}

func TestImport_WriterFailureStops(t *testing.T) {
	boom := errors.New("disk full")
	w := &captureWriter{err: boom}
	d := &Deck{Version: 1, Items: []Item{{Title: "a"}, {Title: "b"}}}
	n, err := Import(context.Background(), w, d, 1.0, time.Now())
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped writer error, got %v", err)
	}
	if n != 0 {
		t.Errorf("created = %d, want 0", n)
	}
}
