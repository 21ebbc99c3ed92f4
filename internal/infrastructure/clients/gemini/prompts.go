package gemini

import (
	"fmt"
)

const analysisPromptTemplate = `The user is asking about the headphone: %s %s.
Act as an audiophile who wants to get other people hooked on this hobby and
provide an in-depth listening analysis.
Return JSON only (no Markdown):
{
    "specs": { "form_factor": "...", "connection": "...", "year": "...", "price": "...", "driver": "..." },
    "sound_features": ["feature 1", "feature 2"],
    "detailed_analysis": {
        "bass": "low-end description...", "mids": "midrange description...", "highs": "treble description...", "guide": "listening guide..."
    },
    "song_query": "Song Name - Artist",
    "summary": "one-sentence verdict on this headphone's strengths and weaknesses"
}`

// buildAnalysisPrompt renders the fixed analysis prompt for one
// brand/model pair. The prompt is deterministic for identical inputs.
func buildAnalysisPrompt(brand, model string) string {
	return fmt.Sprintf(analysisPromptTemplate, brand, model)
}
