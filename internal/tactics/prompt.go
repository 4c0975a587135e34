package tactics

import (
	"fmt"
	"strings"
)

const promptTemplate = `Create a detailed tactical analysis for %s.

Include the following sections:
1. Formation Recommendation (4-3-3, 4-2-3-1, etc.)
2. Strategic Approach (defensive/offensive balance, pressing strategy)
3. Key Tactical Considerations (opponent weaknesses to exploit)
4. Player Roles and Responsibilities
5. Set-Piece Strategy
6. In-Game Adaptability

Format the response with section headers using ** for bold text.`

// BuildPrompt renders the tactical write-up instruction for team. The
// "against" clause is present only when opponent is non-blank.
func BuildPrompt(team, opponent string) string {
	subject := strings.TrimSpace(team)
	if o := strings.TrimSpace(opponent); o != "" {
		subject += " against " + o
	}
	return fmt.Sprintf(promptTemplate, subject)
}
