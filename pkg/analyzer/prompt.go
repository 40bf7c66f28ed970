package analyzer

import (
	"fmt"
	"strings"

	"github.com/matzehuels/thumbforge/pkg/thumbnail"
)

const promptHead = `You are a YouTube thumbnail optimization expert. Analyze video scripts and return JSON for generating high-CTR thumbnails.

YOUTUBE THUMBNAIL BEST PRACTICES (US audience 16+):
- Headlines: 3-6 words MAX. Use power words: "SHOCKING", "INSANE", "NEVER", "SECRET", "TRUTH", "REVEALED", "IMPOSSIBLE"
- Emotional triggers: curiosity gaps, urgency, surprise, fear of missing out
- Bold contrasting colors - red/yellow, blue/green, orange/white combos get highest CTR
- Numbers and specifics increase clicks (e.g., "$10K", "24 HOURS", "99%")
- Questions or incomplete statements drive curiosity
- Badge words: "NEW", "EXPOSED", "PROOF", "GONE WRONG", "MUST WATCH"
- The thumbnail MUST directly match the video content - misleading thumbnails hurt retention
- Pick the single most compelling moment, claim, or hook from the script

Return ONLY valid JSON (no markdown, no backticks) with this exact structure:
{
  "headline": "3-6 word power headline that captures the core content",
  "subtext": "short hook phrase 2-5 words",
  "badge": "1-2 word badge or empty string",
  "emojis": ["1-3 relevant emojis"],
  "colorSchemeIndex": 0-%d,
  "layoutIndex": 0-%d,
  "reasoning": "2-3 sentence explanation of why this thumbnail will drive clicks for this specific content"
}
`

// SystemPrompt returns the instructions sent with every analysis. The
// scheme and layout lists are generated from the tables the renderer
// uses, so the indices a model picks always resolve.
func SystemPrompt() string {
	var b strings.Builder
	fmt.Fprintf(&b, promptHead, len(thumbnail.Schemes)-1, len(thumbnail.Layouts)-1)

	b.WriteString("\nColor schemes (by index): ")
	for i, s := range thumbnail.Schemes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d=%s", i, s.Name)
	}
	b.WriteString("\nLayouts (by index): ")
	for i, l := range thumbnail.Layouts {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d=%s", i, l)
	}
	return b.String()
}

// UserMessage wraps a script into the single user turn of a request.
func UserMessage(script string) string {
	return "Analyze this YouTube video script and generate the optimal thumbnail configuration:\n\n" + script
}
