package gateway

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fadilmartias/fairfound-coach/internal/model"
)

func profileJSON(p model.Profile) string {
	raw, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(raw)
}

func analyzePrompt(p model.Profile) string {
	return fmt.Sprintf(`
Analyze this freelancer profile for the current global market.
Profile: %s

Provide a detailed SWOT analysis, scoring, and pricing recommendations.
All scores and the market percentile are on a 0-100 scale.
List missing competencies as skillGaps, most important first; return an empty list if there are none.
Be critical but constructive.
`, profileJSON(p))
}

func roadmapPrompt(p model.Profile, gaps []string) string {
	return fmt.Sprintf(`
Create a step-by-step 4-week roadmap for this freelancer to improve their market standing.
Focus on filling these gaps: %s.
Give every step a unique id, set status to "pending" and classify it as skill, project or branding.
Profile: %s
`, strings.Join(gaps, ", "), profileJSON(p))
}

func proposalPrompt(p model.Profile, jobDescription, tone, clientName string) string {
	return fmt.Sprintf(`
Write a compelling freelance proposal/cover letter for this job.

My Profile: %s
Client Name: %s

Job Description:
%s

Tone: %s

Rules:
1. Be concise.
2. Highlight relevant skills from my profile.
3. Propose a next step.
4. Do not use placeholders like [Your Name], fill them with profile data.
`, profileJSON(p), clientOrDefault(clientName), jobDescription, tone)
}

func portfolioPrompt(p model.Profile) string {
	return fmt.Sprintf(`
Generate content for a professional portfolio website for this freelancer.
Create a catchy tagline, a professional 'about' section (SEO optimized), and 3 sample projects that would fit their skill set if they don't have detailed ones, or enhance their existing skills into project descriptions.

Profile: %s
`, profileJSON(p))
}

func menteeTasksPrompt(menteeName, focusArea, difficulty string) string {
	return fmt.Sprintf(`
Create 3 actionable learning tasks for a mentee named %s.
Focus Area: %s
Difficulty Level: %s

Every task needs a unique id, a due date label and status "pending".
`, menteeName, focusArea, difficulty)
}

func feedbackPrompt(submissionText, taskTitle string) string {
	return fmt.Sprintf(`
Act as a senior software engineer mentor.
Provide constructive feedback on this mentee submission for the task: %q.
Submission/Notes: %q

Keep it encouraging but technical.
`, taskTitle, submissionText)
}
