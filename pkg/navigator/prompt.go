package navigator

import (
	"fmt"
	"strings"
	"time"

	"promptly-be/pkg/apiclient"
)

const (
	placeholderPrefix     = "temp-"
	defaultRatingCategory = "Selected prompt"
)

// PromptDraft is a prompt under edit. ID is either a server id or a
// placeholder produced by PlaceholderID.
type PromptDraft struct {
	ID           string
	Category     string
	ResponseText string
	PromptType   apiclient.PromptType
	AIGenerated  bool
	Evaluation   *apiclient.Evaluation
}

func (p PromptDraft) IsPlaceholder() bool {
	return IsPlaceholderID(p.ID)
}

// RatingDraft is a user-written response submitted for evaluation.
type RatingDraft struct {
	Category     string
	ResponseText string
	Evaluation   *apiclient.Evaluation
}

func PlaceholderID(at time.Time) string {
	return fmt.Sprintf("%s%d", placeholderPrefix, at.UnixMilli())
}

func IsPlaceholderID(id string) bool {
	return strings.HasPrefix(id, placeholderPrefix)
}

func DraftFromPrompt(p apiclient.Prompt) PromptDraft {
	return PromptDraft{
		ID:           p.ID,
		Category:     p.Category,
		ResponseText: p.ResponseText,
		PromptType:   p.PromptType,
		AIGenerated:  p.AIGenerated,
		Evaluation:   p.Evaluation,
	}
}

// draftFromRating synthesizes the prompt edited on the "improve" path.
func draftFromRating(r *RatingDraft, at time.Time) PromptDraft {
	d := PromptDraft{
		ID:         PlaceholderID(at),
		Category:   defaultRatingCategory,
		PromptType: apiclient.PromptTypeUserWritten,
	}
	if r != nil {
		if r.Category != "" {
			d.Category = r.Category
		}
		d.ResponseText = r.ResponseText
		d.Evaluation = r.Evaluation
	}
	return d
}

var (
	VibeOptions        = []string{"Funny", "Straightforward", "Cheesy", "Playful", "Flirty", "Witty"}
	GenderOptions      = []string{"Male", "Female", "Non-binary"}
	OrientationOptions = []string{"Male", "Female", "Non-binary"}

	// PromptCatalogue is what RateMyPrompt lets the user pick from.
	PromptCatalogue = []string{
		"Together, we could...",
		"My simple pleasures",
		"A random fact I love is...",
		"I'm looking for...",
	}
)

// SearchPrompts filters the catalogue case-insensitively.
func SearchPrompts(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, len(PromptCatalogue))
	for _, p := range PromptCatalogue {
		if q == "" || strings.Contains(strings.ToLower(p), q) {
			out = append(out, p)
		}
	}
	return out
}
