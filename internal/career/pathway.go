// Package career builds career pathway plans from curated role and course
// maps. It is deterministic and has no external dependencies, so it can serve
// both as the offline fallback for AI-backed planning and as the ground truth
// for gap analysis.
package career

import (
	"fmt"
	"sort"
	"strings"
)

// roleProfile describes the expected skill set for a target role
type roleProfile struct {
	// canonical role name used in output
	title string
	// skills in rough learning order; earlier skills gate later ones
	skills []string
}

// roleProfiles is the curated role catalog. Lookup is by normalized substring
// match so "Senior Backend Engineer" and "backend developer" both resolve to
// the backend profile.
var roleProfiles = []struct {
	keywords []string
	profile  roleProfile
}{
	{
		keywords: []string{"frontend", "front-end", "front end", "react", "ui engineer"},
		profile: roleProfile{
			title:  "Frontend Engineer",
			skills: []string{"html", "css", "javascript", "typescript", "react", "state management", "testing", "accessibility", "performance optimization"},
		},
	},
	{
		keywords: []string{"backend", "back-end", "back end", "api", "server"},
		profile: roleProfile{
			title:  "Backend Engineer",
			skills: []string{"data structures", "sql", "rest apis", "go", "databases", "caching", "message queues", "system design", "observability"},
		},
	},
	{
		keywords: []string{"fullstack", "full-stack", "full stack"},
		profile: roleProfile{
			title:  "Full-Stack Engineer",
			skills: []string{"html", "css", "javascript", "typescript", "react", "rest apis", "sql", "databases", "system design"},
		},
	},
	{
		keywords: []string{"data scientist", "machine learning", "ml engineer", "data science"},
		profile: roleProfile{
			title:  "Data Scientist",
			skills: []string{"python", "statistics", "pandas", "sql", "data visualization", "machine learning", "deep learning", "model deployment"},
		},
	},
	{
		keywords: []string{"data engineer", "data engineering"},
		profile: roleProfile{
			title:  "Data Engineer",
			skills: []string{"python", "sql", "data modeling", "etl", "spark", "airflow", "data warehousing", "streaming"},
		},
	},
	{
		keywords: []string{"devops", "sre", "site reliability", "platform engineer", "cloud engineer"},
		profile: roleProfile{
			title:  "DevOps Engineer",
			skills: []string{"linux", "networking", "docker", "kubernetes", "terraform", "ci/cd", "monitoring", "incident response"},
		},
	},
	{
		keywords: []string{"mobile", "android", "ios", "flutter"},
		profile: roleProfile{
			title:  "Mobile Engineer",
			skills: []string{"programming fundamentals", "kotlin", "swift", "mobile ui patterns", "offline storage", "app performance", "release management"},
		},
	},
	{
		keywords: []string{"security", "pentest", "appsec"},
		profile: roleProfile{
			title:  "Security Engineer",
			skills: []string{"networking", "linux", "web security", "cryptography basics", "threat modeling", "secure code review", "incident response"},
		},
	},
}

// defaultProfile covers roles the catalog does not recognize
var defaultProfile = roleProfile{
	title:  "Software Engineer",
	skills: []string{"data structures", "algorithms", "version control", "sql", "rest apis", "testing", "system design"},
}

// courseCatalog maps a skill to a recommended course
var courseCatalog = map[string]struct {
	title    string
	platform string
}{
	"html":                     {"HTML and CSS for Modern Layouts", "freeCodeCamp"},
	"css":                      {"HTML and CSS for Modern Layouts", "freeCodeCamp"},
	"javascript":               {"JavaScript: The Complete Course", "Udemy"},
	"typescript":               {"Understanding TypeScript", "Udemy"},
	"react":                    {"React - The Complete Guide", "Udemy"},
	"state management":         {"Redux and Modern State Management", "Frontend Masters"},
	"testing":                  {"Testing JavaScript Applications", "Frontend Masters"},
	"accessibility":            {"Web Accessibility Fundamentals", "Coursera"},
	"performance optimization": {"Web Performance Fundamentals", "Frontend Masters"},
	"data structures":          {"Data Structures and Algorithms Specialization", "Coursera"},
	"algorithms":               {"Data Structures and Algorithms Specialization", "Coursera"},
	"sql":                      {"The Complete SQL Bootcamp", "Udemy"},
	"rest apis":                {"API Design and REST Fundamentals", "Pluralsight"},
	"go":                       {"Learn Go Programming", "Udemy"},
	"databases":                {"Database Systems", "Coursera"},
	"caching":                  {"Scaling with Caching Strategies", "Pluralsight"},
	"message queues":           {"Event-Driven Architecture with Message Brokers", "Udemy"},
	"system design":            {"Grokking the System Design Interview", "Educative"},
	"observability":            {"Observability Engineering Basics", "Pluralsight"},
	"python":                   {"Python for Everybody", "Coursera"},
	"statistics":               {"Statistics with Python", "Coursera"},
	"pandas":                   {"Data Analysis with Pandas", "DataCamp"},
	"data visualization":       {"Data Visualization with Python", "Coursera"},
	"machine learning":         {"Machine Learning Specialization", "Coursera"},
	"deep learning":            {"Deep Learning Specialization", "Coursera"},
	"model deployment":         {"Machine Learning Engineering for Production", "Coursera"},
	"data modeling":            {"Data Modeling Fundamentals", "Pluralsight"},
	"etl":                      {"Building ETL Pipelines", "DataCamp"},
	"spark":                    {"Big Data Analysis with Spark", "Coursera"},
	"airflow":                  {"Apache Airflow Fundamentals", "Udemy"},
	"data warehousing":         {"Data Warehouse Concepts", "Udemy"},
	"streaming":                {"Stream Processing Fundamentals", "Confluent Developer"},
	"linux":                    {"Linux Command Line Basics", "Udacity"},
	"networking":               {"Computer Networking Fundamentals", "Coursera"},
	"docker":                   {"Docker Mastery", "Udemy"},
	"kubernetes":               {"Certified Kubernetes Administrator Prep", "KodeKloud"},
	"terraform":                {"Terraform on Cloud Infrastructure", "HashiCorp Learn"},
	"ci/cd":                    {"CI/CD Pipelines with GitHub Actions", "Udemy"},
	"monitoring":               {"Monitoring and Alerting with Prometheus", "Udemy"},
	"incident response":        {"Incident Management Essentials", "PagerDuty University"},
	"version control":          {"Git and GitHub Essentials", "Coursera"},
	"kotlin":                   {"Android Development with Kotlin", "Udacity"},
	"swift":                    {"iOS Development with Swift", "Coursera"},
	"mobile ui patterns":       {"Mobile Design Patterns", "Pluralsight"},
	"offline storage":          {"Local Data Persistence on Mobile", "Pluralsight"},
	"app performance":          {"Mobile App Performance Tuning", "Udemy"},
	"release management":       {"Mobile Release Engineering", "Pluralsight"},
	"web security":             {"Web Security Fundamentals", "PortSwigger Academy"},
	"cryptography basics":      {"Cryptography I", "Coursera"},
	"threat modeling":          {"Threat Modeling Fundamentals", "Pluralsight"},
	"secure code review":       {"Secure Code Review Techniques", "Pluralsight"},
}

// ResolveProfile maps a free-form role onto a curated profile. The boolean
// reports whether the role was recognized or the generic profile was used.
func ResolveProfile(targetRole string) (string, []string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(targetRole))
	for _, entry := range roleProfiles {
		for _, kw := range entry.keywords {
			if strings.Contains(normalized, kw) {
				return entry.profile.title, entry.profile.skills, true
			}
		}
	}
	return defaultProfile.title, defaultProfile.skills, false
}

// normalizeSkill lowercases and trims a skill for comparison
func normalizeSkill(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// GapAnalysis splits a role's expected skills into matched and missing based
// on the candidate's current skills. Matching is by normalized equality or
// substring containment in either direction, so "PostgreSQL" matches "sql".
func GapAnalysis(currentSkills, expectedSkills []string) (matched, missing []string) {
	current := make([]string, 0, len(currentSkills))
	for _, s := range currentSkills {
		if n := normalizeSkill(s); n != "" {
			current = append(current, n)
		}
	}

	for _, expected := range expectedSkills {
		found := false
		for _, have := range current {
			if have == expected || strings.Contains(have, expected) || strings.Contains(expected, have) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, expected)
		} else {
			missing = append(missing, expected)
		}
	}
	return matched, missing
}

// milestoneDuration estimates weeks to close one skill gap, scaled down by
// prior experience
func milestoneDuration(experienceYears int) int {
	switch {
	case experienceYears >= 5:
		return 2
	case experienceYears >= 2:
		return 3
	default:
		return 4
	}
}

// StaticPlan builds a complete pathway plan for the target role from the
// curated maps. It always succeeds; unrecognized roles get the generic
// software engineering track.
func StaticPlan(currentSkills []string, targetRole string, experienceYears int) Plan {
	title, expected, recognized := ResolveProfile(targetRole)
	matched, missing := GapAnalysis(currentSkills, expected)

	readiness := 0
	if len(expected) > 0 {
		readiness = len(matched) * 100 / len(expected)
	}

	weeks := milestoneDuration(experienceYears)
	milestones := make([]Milestone, 0, len(missing)+1)
	for _, skill := range missing {
		milestones = append(milestones, Milestone{
			Title:         "Learn " + skill,
			Description:   fmt.Sprintf("Build working knowledge of %s and apply it in a small project you can discuss in interviews.", skill),
			DurationWeeks: weeks,
		})
	}
	milestones = append(milestones, Milestone{
		Title:         "Interview preparation",
		Description:   fmt.Sprintf("Practice mock interviews for the %s role, focusing on the newly acquired skills.", title),
		DurationWeeks: 2,
	})

	courses := make([]Course, 0, len(missing))
	seen := make(map[string]bool)
	for _, skill := range missing {
		rec, ok := courseCatalog[skill]
		if !ok || seen[rec.title] {
			continue
		}
		seen[rec.title] = true
		courses = append(courses, Course{Skill: skill, Title: rec.title, Platform: rec.platform})
	}

	return Plan{
		TargetRole:     title,
		RoleRecognized: recognized,
		Readiness:      readiness,
		MatchedSkills:  matched,
		MissingSkills:  missing,
		Milestones:     milestones,
		Courses:        courses,
	}
}

// Plan is the result of static pathway planning
type Plan struct {
	TargetRole     string
	RoleRecognized bool
	Readiness      int
	MatchedSkills  []string
	MissingSkills  []string
	Milestones     []Milestone
	Courses        []Course
}

// Milestone is a single step in the pathway
type Milestone struct {
	Title         string
	Description   string
	DurationWeeks int
}

// Course maps a skill gap to a concrete course
type Course struct {
	Skill    string
	Title    string
	Platform string
}

// KnownRoles lists the canonical role titles in the catalog, sorted
func KnownRoles() []string {
	roles := make([]string, 0, len(roleProfiles))
	for _, entry := range roleProfiles {
		roles = append(roles, entry.profile.title)
	}
	sort.Strings(roles)
	return roles
}
