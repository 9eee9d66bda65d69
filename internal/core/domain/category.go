package domain

import "strings"

// Category is a topic classification for a document.
type Category string

// The fixed category enumeration. Every document carries exactly one.
const (
	CategoryComputerScience Category = "Computer Science"
	CategoryPhysics         Category = "Physics"
	CategoryEnvironmental   Category = "Environmental Science"
	CategoryMedical         Category = "Medical Science"
	CategoryGeneral         Category = "General"
)

// Categories lists every valid category in classification order.
func Categories() []Category {
	return []Category{
		CategoryComputerScience,
		CategoryPhysics,
		CategoryEnvironmental,
		CategoryMedical,
		CategoryGeneral,
	}
}

// IsValid reports whether c is a member of the category enumeration.
func (c Category) IsValid() bool {
	switch c {
	case CategoryComputerScience, CategoryPhysics, CategoryEnvironmental,
		CategoryMedical, CategoryGeneral:
		return true
	default:
		return false
	}
}

// categoryKeywords maps each category to its matching keywords.
// Matching is substring-based over lower-cased input.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryComputerScience, []string{
		"algorithm", "machine learning", "neural network", "deep learning",
		"artificial intelligence", "computer vision", "natural language",
		"software", "computing", "database", "cryptograph",
	}},
	{CategoryPhysics, []string{
		"quantum", "particle", "relativity", "cosmolog", "photon",
		"thermodynamic", "astrophysic", "gravitational", "magnetism",
	}},
	{CategoryEnvironmental, []string{
		"climate", "ecosystem", "biodiversity", "sustainab", "pollution",
		"carbon emission", "renewable energy", "conservation",
	}},
	{CategoryMedical, []string{
		"clinical", "treatment", "patient", "disease", "diagnosis",
		"therapeutic", "vaccine", "epidemiolog", "oncolog",
	}},
}

// Classify maps free text to a category by keyword presence.
// Categories are tested in a fixed order, first match wins, so the result
// is deterministic even when the text matches several keyword sets.
// Text with no keyword match classifies as CategoryGeneral.
func Classify(text string) Category {
	lower := strings.ToLower(text)
	for _, set := range categoryKeywords {
		for _, kw := range set.keywords {
			if strings.Contains(lower, kw) {
				return set.category
			}
		}
	}
	return CategoryGeneral
}

// ClassifyFileName classifies a file name by treating separator characters
// as spaces, so keywords split across hyphens or underscores still match.
func ClassifyFileName(name string) Category {
	cleaned := strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)
	return Classify(cleaned)
}
