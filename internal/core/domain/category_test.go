package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Category
	}{
		{
			name: "computer science by keyword",
			text: "A Survey of Machine Learning Methods",
			want: CategoryComputerScience,
		},
		{
			name: "physics by keyword",
			text: "Quantum entanglement in optical lattices",
			want: CategoryPhysics,
		},
		{
			name: "environmental by keyword",
			text: "Climate feedback loops in arctic ecosystems",
			want: CategoryEnvironmental,
		},
		{
			name: "medical by keyword",
			text: "Randomised clinical trial of a novel treatment",
			want: CategoryMedical,
		},
		{
			name: "no match defaults to general",
			text: "Minutes of the annual budget meeting",
			want: CategoryGeneral,
		},
		{
			name: "empty text is general",
			text: "",
			want: CategoryGeneral,
		},
		{
			name: "case insensitive",
			text: "NEURAL NETWORK pruning",
			want: CategoryComputerScience,
		},
		{
			name: "first matching category wins on ambiguous text",
			// Matches both CS ("algorithm") and Physics ("quantum");
			// CS is tested first.
			text: "Quantum algorithm design",
			want: CategoryComputerScience,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	// Same input must yield the same category across repeated calls.
	text := "quantum machine learning for climate models"
	first := Classify(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify(text))
	}
}

func TestClassifyFileName(t *testing.T) {
	assert.Equal(t, CategoryComputerScience, ClassifyFileName("neural-network-pruning.pdf"))
	assert.Equal(t, CategoryMedical, ClassifyFileName("patient_outcomes_2023.docx"))
	assert.Equal(t, CategoryGeneral, ClassifyFileName("holiday-photos.zip"))
}

func TestCategory_IsValid(t *testing.T) {
	for _, c := range Categories() {
		assert.True(t, c.IsValid(), "category %q should be valid", c)
	}
	assert.False(t, Category("Astrology").IsValid())
	assert.False(t, Category("").IsValid())
}
