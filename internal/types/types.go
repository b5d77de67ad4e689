package types

// InterviewInput represents the input for generating interview questions
type InterviewInput struct {
	Role       string   `json:"role"`
	Difficulty string   `json:"difficulty"`       // "easy", "medium", "hard"
	Focus      []string `json:"focus"`            // any of "behavioral", "technical", "system_design"; empty means all
	Resume     string   `json:"resume,omitempty"` // optional resume text to personalize questions
	Count      int      `json:"count,omitempty"`  // number of questions, 0 means provider default
}

// InterviewQuestion is a single question produced for a mock interview
type InterviewQuestion struct {
	Category string   `json:"category"` // "behavioral", "technical", or "system_design"
	Question string   `json:"question"`
	WhyAsked string   `json:"whyAsked"` // why this question matters for the role
	Hints    []string `json:"hints"`    // delivery hints shown after the candidate answers
}

// InterviewOutput represents the generated mock-interview session content
type InterviewOutput struct {
	Role      string              `json:"role"`
	Opening   string              `json:"opening"` // interviewer persona opening line
	Questions []InterviewQuestion `json:"questions"`
	Provider  string              `json:"provider,omitempty"` // provider that served the request
}

// FeedbackInput represents the input for scoring a candidate answer
type FeedbackInput struct {
	Role     string `json:"role"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FeedbackOutput represents scored feedback on a candidate answer
type FeedbackOutput struct {
	Score        int      `json:"score"` // 0-100
	Verdict      string   `json:"verdict"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	ModelAnswer  string   `json:"modelAnswer"`
	Provider     string   `json:"provider,omitempty"`
}

// ResumeInput represents the input for resume analysis
type ResumeInput struct {
	Resume         string `json:"resume"`
	TargetRole     string `json:"targetRole,omitempty"`
	JobDescription string `json:"jobDescription,omitempty"`
}

// ResumeOutput represents the structured result of resume analysis
type ResumeOutput struct {
	Summary   string   `json:"summary"`
	Skills    []string `json:"skills"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
	RoleFit   string   `json:"roleFit"` // narrative fit assessment against the target role
	Provider  string   `json:"provider,omitempty"`
}

// CareerInput represents the input for career pathway planning
type CareerInput struct {
	CurrentSkills   []string `json:"currentSkills"`
	TargetRole      string   `json:"targetRole"`
	ExperienceYears int      `json:"experienceYears,omitempty"`
}

// Milestone is a single step in a career pathway
type Milestone struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	DurationWeeks int    `json:"durationWeeks"`
}

// CourseRecommendation maps a skill gap to a concrete course
type CourseRecommendation struct {
	Skill    string `json:"skill"`
	Title    string `json:"title"`
	Platform string `json:"platform"`
}

// CareerOutput represents a planned career pathway
type CareerOutput struct {
	TargetRole    string                 `json:"targetRole"`
	Readiness     int                    `json:"readiness"` // 0-100
	MatchedSkills []string               `json:"matchedSkills"`
	MissingSkills []string               `json:"missingSkills"`
	Milestones    []Milestone            `json:"milestones"`
	Courses       []CourseRecommendation `json:"courses"`
	Provider      string                 `json:"provider,omitempty"`
}
