package profile

import (
	"strings"

	"github.com/easyjobfind/easyjobfind/internal/francetravail"
)

// Common technologies looked up in the résumé text when no generator
// analysis is available. Order matters: it is the order skills end up in
// the profile.
var techKeywords = []struct {
	keyword string
	name    string
}{
	{"python", "Python"},
	{"java", "Java"},
	{"javascript", "JavaScript"},
	{"react", "React"},
	{"angular", "Angular"},
	{"vue", "Vue.js"},
	{"node", "Node.js"},
	{"php", "PHP"},
	{"sql", "SQL"},
	{"docker", "Docker"},
	{"kubernetes", "Kubernetes"},
	{"aws", "AWS"},
	{"git", "Git"},
	{"linux", "Linux"},
	{"mongodb", "MongoDB"},
	{"postgresql", "PostgreSQL"},
	{"mysql", "MySQL"},
	{"html", "HTML"},
	{"css", "CSS"},
	{"typescript", "TypeScript"},
	{"c#", "C#"},
	{".net", ".NET"},
	{"azure", "Azure"},
	{"tensorflow", "TensorFlow"},
	{"pytorch", "PyTorch"},
	{"excel", "Excel"},
	{"power bi", "Power BI"},
	{"tableau", "Tableau"},
}

var (
	defaultSkills    = []string{"Python", "JavaScript"}
	defaultStrengths = []string{"Adaptabilité", "Apprentissage", "Motivation"}
)

// FallbackProfile builds a profile from plain keyword detection. It is the
// degraded path when the generator is unreachable or returns garbage.
func FallbackProfile(resumeText string) Profile {
	text := strings.ToLower(resumeText)

	var skills []string
	for _, tech := range techKeywords {
		if strings.Contains(text, tech.keyword) {
			skills = append(skills, tech.name)
		}
	}
	if len(skills) == 0 {
		skills = defaultSkills
	}

	return Profile{
		JobTitle:        detectJobTitle(text),
		Skills:          skills,
		Strengths:       defaultStrengths,
		ExperienceLevel: francetravail.LevelJunior,
	}
}

func detectJobTitle(text string) string {
	switch {
	case strings.Contains(text, "data") && (strings.Contains(text, "scientist") || strings.Contains(text, "analyst")):
		return "Data Scientist"
	case strings.Contains(text, "devops"):
		return "DevOps Engineer"
	case strings.Contains(text, "frontend") || strings.Contains(text, "front-end"):
		return "Développeur Frontend"
	case strings.Contains(text, "backend") || strings.Contains(text, "back-end"):
		return "Développeur Backend"
	case strings.Contains(text, "fullstack") || strings.Contains(text, "full-stack"):
		return "Développeur Full Stack"
	default:
		return "Développeur"
	}
}
