package profile

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/easyjobfind/easyjobfind/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateJSON(ctx context.Context, system, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const systemInstruction = "Tu es un assistant expert en analyse de CV. Tu réponds uniquement en JSON valide."

// The prompt carries at most this many runes of résumé text. Anything
// past that is almost always boilerplate and only inflates token usage.
const maxResumeRunes = 5000

const defaultMaxLogLength = 200

// Extractor turns raw résumé text into a Profile, asking a generator for a
// structured analysis and falling back to keyword detection when the
// generator is absent or fails.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewExtractor(generator contentGenerator, log *zap.Logger, maxLogLength int) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Extractor{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Analyze never fails: any generator or parsing problem degrades to the
// keyword fallback so a candidate always gets a profile.
func (e *Extractor) Analyze(ctx context.Context, resumeText string) Profile {
	e.logger.Info("starting resume analysis",
		zap.Int("resume_length", utf8.RuneCountInString(resumeText)),
	)

	if e.generator == nil {
		e.logger.Info("no generator configured, using keyword fallback")
		return FallbackProfile(resumeText)
	}

	prompt := buildPrompt(resumeText)

	e.logger.Debug("generate profile request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateJSON(ctx, systemInstruction, prompt)
	if err != nil {
		e.logger.Warn("generator failed, using keyword fallback", zap.Error(err))
		return FallbackProfile(resumeText)
	}

	e.logger.Debug("generate profile response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
	)

	profile, err := parseResponse(raw)
	if err != nil {
		e.logger.Warn("unparsable generator response, using keyword fallback", zap.Error(err))
		return FallbackProfile(resumeText)
	}

	e.logger.Info("resume analysis done",
		zap.String("job_title", profile.JobTitle),
		zap.Strings("skills", profile.Skills),
		zap.String("level", profile.ExperienceLevel),
	)

	return profile
}

func buildPrompt(resumeText string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "CV:\n{{RESUME_TEXT}}\n\nJSON:"
	}

	runes := []rune(resumeText)
	if len(runes) > maxResumeRunes {
		resumeText = string(runes[:maxResumeRunes])
	}

	return strings.ReplaceAll(template, "{{RESUME_TEXT}}", resumeText)
}

type analysisResponse struct {
	JobTitle        string   `json:"metier_recherche"`
	Skills          []string `json:"competences_cles"`
	Languages       []string `json:"langages"`
	Tools           []string `json:"outils"`
	Strengths       []string `json:"points_forts"`
	ExperienceLevel string   `json:"niveau_experience"`
}

func parseResponse(raw string) (Profile, error) {
	cleaned := extractJSON(raw)

	var data analysisResponse
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return Profile{}, err
	}

	profile := Profile{
		JobTitle:        strings.TrimSpace(data.JobTitle),
		Skills:          mergeSkills(data.Skills, data.Languages, data.Tools),
		Strengths:       data.Strengths,
		ExperienceLevel: strings.ToLower(strings.TrimSpace(data.ExperienceLevel)),
	}

	fallback := FallbackProfile("")
	if profile.JobTitle == "" {
		profile.JobTitle = fallback.JobTitle
	}
	if len(profile.Skills) == 0 {
		profile.Skills = fallback.Skills
	}
	if len(profile.Strengths) == 0 {
		profile.Strengths = fallback.Strengths
	}
	if profile.ExperienceLevel == "" {
		profile.ExperienceLevel = fallback.ExperienceLevel
	}

	return profile, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
