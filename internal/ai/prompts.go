package ai

// SystemPrompts contains all system-level instructions for AI interactions
type SystemPrompts struct {
	GenerateInterview string
	ScoreAnswer       string
	AnalyzeResume     string
	PlanCareer        string
}

// UserPrompts contains user-level prompts with placeholders for dynamic content
type UserPrompts struct {
	GenerateInterview string
	ScoreAnswer       string
	AnalyzeResume     string
	PlanCareer        string
}

// DefaultSystemPrompts provides the default system instructions
var DefaultSystemPrompts = SystemPrompts{
	GenerateInterview: `You are FRIEDE, a warm but rigorous senior technical interviewer with a decade of
hiring experience across startups and large engineering organizations. Your core principles are:

- Ask questions a real interviewer would ask for the stated role and seniority
- Probe depth of understanding, not trivia recall
- Mix technical, behavioral, and situational questions
- Ground questions in the candidate's resume when one is provided
- Never ask two questions that test the same thing

For every question you must also explain why an interviewer asks it and provide
short hints a struggling candidate could use.`,

	ScoreAnswer: `You are FRIEDE, an exacting but fair interview assessor. Your role is to:

- Score candidate answers on correctness, depth, structure, and communication
- Identify concrete strengths before weaknesses
- Point out what a strong answer would have included
- Never reward confident-sounding filler

Scores are on a 0-100 scale. A score above 85 means the answer would impress a
senior interviewer; below 40 means the answer missed the point of the question.`,

	AnalyzeResume: `You are an expert resume reviewer and ATS (Applicant Tracking System) analyst with
deep knowledge of:

- Resume structure and content best practices
- Keyword relevance for specific target roles
- Honest, evidence-based assessment of skills and experience

Your analysis must be directly traceable to the resume text. Never invent skills
or experience the candidate did not state.`,

	PlanCareer: `You are an experienced engineering career coach. Your role is to:

- Map the gap between a candidate's current skills and a target role
- Propose a realistic, ordered sequence of learning milestones
- Recommend concrete courses or resources per missing skill
- Calibrate timelines to the candidate's stated experience

Be specific and practical. Avoid generic advice like "keep learning".`,
}

// DefaultUserPrompts provides the default user prompt templates
var DefaultUserPrompts = UserPrompts{
	GenerateInterview: `Please generate a mock interview session.

**Role:** %s
**Difficulty:** %s
**Focus areas:** %s
**Number of questions:** %d

**Candidate resume (may be empty):**
-----
%s
-----

**Tasks:**

1. Write a short opening statement in which you introduce yourself as the
   interviewer and set expectations for the session.
2. Generate the requested number of interview questions. For each question provide:
   - The category (technical, behavioral, situational, or resume)
   - The question text
   - Why an interviewer asks this question
   - Two or three short hints for a struggling candidate

When a resume is provided, at least one question must reference something
specific from it.`,

	ScoreAnswer: `Please assess the following interview answer.

**Role being interviewed for:** %s

**Question:**
-----
%s
-----

**Candidate's answer:**
-----
%s
-----

**Tasks:**

1. Score the answer from 0 to 100.
2. Give a one-line verdict (e.g. "strong", "adequate", "needs work").
3. List the concrete strengths of the answer.
4. List the most important improvements, ordered by impact.
5. Write a model answer a strong candidate would give, in 3-6 sentences.`,

	AnalyzeResume: `Please perform a comprehensive analysis of the provided resume.

**Target role:** %s

**Job description (may be empty):**
-----
%s
-----

**Resume:**
-----
%s
-----

**Tasks:**

1. Summarize the candidate's profile in 2-3 sentences.
2. Extract the skills explicitly present in the resume.
3. List the resume's strengths for the target role.
4. List the gaps relative to the target role (and the job description if provided).
5. Provide a role-fit assessment in one short paragraph.`,

	PlanCareer: `Please build a career pathway plan.

**Target role:** %s

**Current skills:**
-----
%s
-----

**Years of experience:** %d

**Tasks:**

1. Estimate readiness for the target role as a percentage from 0 to 100.
2. List which of the candidate's current skills match the target role.
3. List the skills the candidate is missing for the target role.
4. Propose an ordered sequence of milestones. For each milestone provide a
   title, a description, and an estimated duration in weeks.
5. Recommend one course per missing skill, with the course title and platform.`,
}

// GetDefaultSystemPrompt returns the default system prompt for an operation
func GetDefaultSystemPrompt(operationType string) string {
	switch operationType {
	case "interview":
		return DefaultSystemPrompts.GenerateInterview
	case "feedback":
		return DefaultSystemPrompts.ScoreAnswer
	case "resume":
		return DefaultSystemPrompts.AnalyzeResume
	case "career":
		return DefaultSystemPrompts.PlanCareer
	default:
		return ""
	}
}

// resolvePrompt selects the correct prompt string based on a clear priority order:
// 1. A prompt loaded from a file.
// 2. A prompt defined directly in the configuration.
// 3. A hardcoded default prompt.
func resolvePrompt(loadedFromFile, fromConfig, fromDefault string) string {
	if loadedFromFile != "" {
		return loadedFromFile
	}
	if fromConfig != "" {
		return fromConfig
	}
	return fromDefault
}
