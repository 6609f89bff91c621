package critique

import (
	"image"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// TopTraits is how many detected traits feed the score and the prompt.
const TopTraits = 5

// Trait is a UI characteristic with its score contribution.
type Trait struct {
	Name   string
	Weight float64
	// affinity maps measured features onto 0..1.
	affinity func(Features) float64
}

// Positive traits raise the score, negative ones lower it.
var (
	PositiveTraits = []Trait{
		{Name: "intuitive navigation", Weight: 0.9, affinity: func(f Features) float64 { return f.Whitespace*0.5 + (1-f.EdgeDensity)*0.5 }},
		{Name: "effective search functionality", Weight: 0.8, affinity: func(f Features) float64 { return 0.3 + 0.4*f.Contrast*(1-f.ColorVariety) }},
		{Name: "clean visual hierarchy", Weight: 0.85, affinity: func(f Features) float64 { return f.Whitespace*0.6 + f.Contrast*0.4 }},
		{Name: "responsive design", Weight: 0.7, affinity: func(f Features) float64 { return 0.4 + 0.3*(1-f.EdgeDensity) }},
		{Name: "consistent styling", Weight: 0.75, affinity: func(f Features) float64 { return 1 - f.ColorVariety }},
		{Name: "good contrast", Weight: 0.8, affinity: func(f Features) float64 { return f.Contrast }},
	}
	NegativeTraits = []Trait{
		{Name: "cluttered interface", Weight: -0.8, affinity: func(f Features) float64 { return f.EdgeDensity*0.7 + (1-f.Whitespace)*0.3 }},
		{Name: "poor information architecture", Weight: -0.75, affinity: func(f Features) float64 { return f.EdgeDensity*0.5 + f.ColorVariety*0.5 }},
		{Name: "inconsistent styling", Weight: -0.6, affinity: func(f Features) float64 { return f.ColorVariety }},
		{Name: "lack of visual hierarchy", Weight: -0.7, affinity: func(f Features) float64 { return (1-f.Contrast)*0.6 + (1-f.Whitespace)*0.4 }},
		{Name: "too much text", Weight: -0.65, affinity: func(f Features) float64 { return f.EdgeDensity }},
		{Name: "poor contrast", Weight: -0.8, affinity: func(f Features) float64 { return 1 - f.Contrast }},
	}
)

func allTraits() []Trait {
	out := make([]Trait, 0, len(PositiveTraits)+len(NegativeTraits))
	out = append(out, PositiveTraits...)
	return append(out, NegativeTraits...)
}

// Features are image statistics, each normalised to 0..1.
type Features struct {
	Contrast     float64
	EdgeDensity  float64
	ColorVariety float64
	Whitespace   float64
}

const (
	edgeThreshold      = 0.1
	whitespaceDistance = 0.1 * 255
	varietyBuckets     = 64
)

// Measure computes Features on a downscaled copy of img.
func Measure(img image.Image) Features {
	small := downscale(img, sampleSide)
	b := small.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return Features{}
	}

	lum := make([]float64, 0, w*h)
	pixels := make([]rgb, 0, w*h)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := small.At(x, y).RGBA()
			p := rgb{float64(r >> 8), float64(g >> 8), float64(bl >> 8)}
			pixels = append(pixels, p)
			lum = append(lum, (0.299*p[0]+0.587*p[1]+0.114*p[2])/255)
		}
	}

	var f Features
	_, std := stat.MeanStdDev(lum, nil)
	if !math.IsNaN(std) {
		f.Contrast = clamp01(std / 0.5)
	}

	var edges, pairs int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if x+1 < w {
				pairs++
				if math.Abs(lum[i]-lum[i+1]) > edgeThreshold {
					edges++
				}
			}
			if y+1 < h {
				pairs++
				if math.Abs(lum[i]-lum[i+w]) > edgeThreshold {
					edges++
				}
			}
		}
	}
	if pairs > 0 {
		f.EdgeDensity = float64(edges) / float64(pairs)
	}

	groups := buckets(pixels)
	f.ColorVariety = clamp01(float64(len(groups)) / varietyBuckets)
	if len(groups) > 0 {
		dominant := groups[0].sum
		for c := range dominant {
			dominant[c] /= float64(groups[0].count)
		}
		var near int
		for _, p := range pixels {
			if math.Sqrt(sqDist(p, dominant)) <= whitespaceDistance {
				near++
			}
		}
		f.Whitespace = float64(near) / float64(len(pixels))
	}
	return f
}

// DetectTraits ranks every trait by affinity and returns the top names.
func DetectTraits(f Features) []string {
	traits := allTraits()
	type ranked struct {
		name  string
		score float64
	}
	scored := make([]ranked, len(traits))
	for i, t := range traits {
		scored[i] = ranked{name: t.Name, score: t.affinity(f)}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	n := min(TopTraits, len(scored))
	out := make([]string, n)
	for i := range out {
		out[i] = scored[i].name
	}
	return out
}

// Score starts at a neutral 5, adds the weight of each detected trait, and
// clamps to 0..10 with one decimal.
func Score(detected []string) float64 {
	present := make(map[string]bool, len(detected))
	for _, d := range detected {
		present[d] = true
	}
	score := 5.0
	for _, t := range allTraits() {
		if present[t.Name] {
			score += t.Weight
		}
	}
	score = math.Round(score*10) / 10
	return math.Min(10, math.Max(0, score))
}

// RatingDescription summarises a score in words.
func RatingDescription(score float64) string {
	switch {
	case score >= 9:
		return "Excellent UI design"
	case score >= 7:
		return "Good design with minor improvements needed"
	case score >= 5:
		return "Average design needing several improvements"
	default:
		return "Poor design needing significant work"
	}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
