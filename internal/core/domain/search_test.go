package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth_ComputeStatus(t *testing.T) {
	tests := []struct {
		name   string
		health Health
		want   HealthStatus
		ready  bool
	}{
		{
			name:   "everything loaded",
			health: Health{Index: true, Mapping: true, Embedding: true, Enrichment: true},
			want:   HealthHealthy,
			ready:  true,
		},
		{
			name:   "enrichment missing",
			health: Health{Index: true, Mapping: true, Embedding: true},
			want:   HealthDegraded,
			ready:  true,
		},
		{
			name:   "index missing",
			health: Health{Mapping: true, Embedding: true, Enrichment: true},
			want:   HealthUnhealthy,
		},
		{
			name:   "embedding missing",
			health: Health{Index: true, Mapping: true},
			want:   HealthUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.health.ComputeStatus())
			assert.Equal(t, tt.ready, tt.health.Ready())
		})
	}
}

func TestResult_DisplayText(t *testing.T) {
	doc := Document{
		SourceText:  "نص",
		Translation: &Translation{Text: "text"},
	}

	assert.Equal(t, "text", Result{Document: doc, MatchedLanguage: LanguageEnglish}.DisplayText())
	assert.Equal(t, "نص", Result{Document: doc, MatchedLanguage: LanguageArabic}.DisplayText())
}
