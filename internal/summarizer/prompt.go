package summarizer

import (
	"fmt"
	"sort"
	"strings"
)

const promptTemplate = `You are a professional technical writer tasked with summarizing weekly accomplishments. Please analyze the following weekly accomplishment report and provide a well-organized summary.

**Instructions:**
1. Group all accomplishments by project/organization
2. Convert all tasks to past tense
3. Merge similar or related tasks into cohesive statements
4. Use clear, professional language
5. Maintain technical accuracy
6. Include any issues/challenges encountered
7. Format the output as clean markdown, each project/organization in a numbered list
8. Use numbered list (with real numbers) for sub-tasks and accomplishments

**Input Accomplishment Report:**
` + "```" + `
%s
` + "```" + `

**Required Output Format:**
` + "```markdown" + `
# Weekly Accomplishment Summary

1. [Project/Organization Name 1]
   1. [Summarized accomplishment in past tense]
   2. [Another accomplishment]
      1. [Sub-task or related accomplishment]
      2. [Another sub-task]
   3. [Any challenges or issues faced]

2. [Project/Organization Name 2]
   1. [Summarized accomplishment in past tense]
   2. [Another accomplishment]

3. Other Activities
   1. [Any miscellaneous tasks or activities]

4. Key Challenges
   1. [List any significant issues or blockers encountered]
` + "```" + `

**Guidelines for summarization:**
- Combine related sub-tasks into broader accomplishments
- Focus on outcomes and deliverables
- Mention specific technologies, tools, or metrics when relevant
- Keep bullet points concise but informative
- Ensure all accomplishments are in past tense
- Group Docker, database, testing, and infrastructure work appropriately
- Highlight performance improvements, data processing, and system optimizations
- Reference tags such as [ORG_1], [PROJECT_1], or [PERSON_1] must be preserved verbatim in the output, including their brackets
`

// BuildPrompt renders the summarization prompt for the given document.
// Repository metadata, when configured, is appended as an informational
// section so the model can link work to repositories; it takes no part in
// masking.
func BuildPrompt(text string, repos map[string][]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, promptTemplate, text)

	if len(repos) > 0 {
		b.WriteString("\n**Related repositories:**\n")
		keys := make([]string, 0, len(repos))
		for key := range repos {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			for _, url := range repos[key] {
				fmt.Fprintf(&b, "- %s: %s\n", key, url)
			}
		}
	}

	b.WriteString("\nPlease provide the summary now:\n")
	return b.String()
}
