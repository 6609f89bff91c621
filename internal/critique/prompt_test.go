package critique

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt([]string{"good contrast", "too much text"}, []string{"#ffffff", "#000000"}, 7.4)
	require.Contains(t, p, "Overall Score: 7.4/10 - Good design with minor improvements needed")
	require.Contains(t, p, "Strengths:\ngood contrast\n")
	require.Contains(t, p, "Weaknesses:\ntoo much text\n")
	require.Contains(t, p, "Color Palette: #ffffff, #000000")
	require.Contains(t, p, "[OVERALL RATING]\nX/10")
	require.Contains(t, p, "[COLOR CRITIQUE]")
	require.Contains(t, p, "[OTHER FEEDBACK]")
}

func TestBuildPromptNoneIdentified(t *testing.T) {
	p := BuildPrompt(nil, nil, 5)
	require.Contains(t, p, "Overall Score: 5.0/10")
	require.Contains(t, p, "Strengths:\nNone identified")
	require.Contains(t, p, "Weaknesses:\nNone identified")
}

func TestParseSections(t *testing.T) {
	raw := `Here is my review.
[OVERALL RATING]
**8/10 - Clean layout** with clear hierarchy

[COLOR CRITIQUE]
## Harmony
- Blues and whites work well
[NOTE] ignored
- Raise contrast on buttons
[OTHER FEEDBACK]
- Increase spacing between cards
#
`
	s := ParseSections(raw)
	require.Equal(t, "8/10 - Clean layout with clear hierarchy", s.OverallRating)
	require.Equal(t, "Harmony\n- Blues and whites work well\n- Raise contrast on buttons", s.ColorCritique)
	require.Equal(t, "- Increase spacing between cards", s.OtherFeedback)
}

func TestParseSectionsWithoutMarkers(t *testing.T) {
	s := ParseSections("just some text")
	require.Equal(t, Sections{}, s)
}
