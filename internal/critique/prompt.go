package critique

import (
	"strconv"
	"strings"
)

// SystemPrompt sets the reviewer persona.
const SystemPrompt = "You are a professional UI/UX designer providing structured feedback."

const (
	sectionOverall  = "[OVERALL RATING]"
	sectionColor    = "[COLOR CRITIQUE]"
	sectionFeedback = "[OTHER FEEDBACK]"
)

// BuildPrompt asks for a critique in three fixed sections.
func BuildPrompt(detected []string, palette []string, score float64) string {
	var positive, negative []string
	for _, d := range detected {
		switch {
		case hasTrait(PositiveTraits, d):
			positive = append(positive, d)
		case hasTrait(NegativeTraits, d):
			negative = append(negative, d)
		}
	}

	scoreText := strconv.FormatFloat(score, 'f', 1, 64)
	var b strings.Builder
	b.WriteString("Analyze this UI design with the following characteristics:\n\n")
	b.WriteString("[DETECTED FEATURES]\n")
	b.WriteString("Overall Score: " + scoreText + "/10 - " + RatingDescription(score) + "\n\n")
	b.WriteString("Strengths:\n" + joinOrNone(positive) + "\n\n")
	b.WriteString("Weaknesses:\n" + joinOrNone(negative) + "\n\n")
	b.WriteString("Color Palette: " + strings.Join(palette, ", ") + "\n\n")
	b.WriteString("[REQUIRED RESPONSE FORMAT]\n")
	b.WriteString(sectionOverall + "\n")
	b.WriteString("X/10 - Brief justification that considers the detected features\n\n")
	b.WriteString(sectionColor + "\n")
	b.WriteString("- Analyze this color palette\n")
	b.WriteString("- Evaluate harmony, contrast, and accessibility\n")
	b.WriteString("- Suggest improvements if needed\n\n")
	b.WriteString(sectionFeedback + "\n")
	b.WriteString("- Address the detected features specifically\n")
	b.WriteString("- Focus on layout, hierarchy, and usability\n")
	b.WriteString("- Provide actionable suggestions\n\n")
	b.WriteString("Important:\n")
	b.WriteString("- Maintain this exact section structure\n")
	b.WriteString("- Don't include markdown formatting\n")
	b.WriteString("- Be concise and professional\n")
	return b.String()
}

// Sections is the parsed model reply.
type Sections struct {
	OverallRating string
	ColorCritique string
	OtherFeedback string
}

// ParseSections splits a reply on the section markers. Lines before the first
// marker and other bracketed lines are dropped; markdown bold and heading
// marks are stripped.
func ParseSections(raw string) Sections {
	var overall, colorText, feedback []string
	var current *[]string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, sectionOverall):
			current = &overall
		case strings.HasPrefix(line, sectionColor):
			current = &colorText
		case strings.HasPrefix(line, sectionFeedback):
			current = &feedback
		case current != nil && line != "" && !strings.HasPrefix(line, "["):
			clean := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(line, "**", ""), "#", ""))
			if clean != "" {
				*current = append(*current, clean)
			}
		}
	}
	return Sections{
		OverallRating: strings.Join(overall, "\n"),
		ColorCritique: strings.Join(colorText, "\n"),
		OtherFeedback: strings.Join(feedback, "\n"),
	}
}

func hasTrait(traits []Trait, name string) bool {
	for _, t := range traits {
		if t.Name == name {
			return true
		}
	}
	return false
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None identified"
	}
	return strings.Join(items, ", ")
}
