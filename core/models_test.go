package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "Aluminum 6061-T6",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "A technical datasheet containing the properties of an engineering material",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("Titanium Grade 5")
	id2 := IDFromContent("Titanium Grade 2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestDocument_Source(t *testing.T) {
	doc := &Document{
		Content: "Material: Copper C110\n",
		Metadata: map[string]string{
			MetaSource:   "Copper C110",
			MetaCategory: "Metal",
		},
	}

	if got := doc.Source(); got != "Copper C110" {
		t.Errorf("Source() = %q, want %q", got, "Copper C110")
	}
}

func TestDocument_Source_Missing(t *testing.T) {
	doc := &Document{Metadata: map[string]string{}}

	if got := doc.Source(); got != "" {
		t.Errorf("Source() = %q, want empty string", got)
	}
}
