package critique

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"golang.org/x/image/draw"
)

const (
	// PaletteSize is the number of dominant colors reported.
	PaletteSize = 5

	sampleSide     = 100
	kmeansMaxIter  = 12
	minAlpha       = 128
	quantizeShift  = 4
	quantizeLevels = 1 << (8 - quantizeShift)
)

type rgb [3]float64

// downscale shrinks img so its longer side is at most maxSide pixels.
func downscale(img image.Image, maxSide int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxSide && h <= maxSide {
		return img
	}
	scale := float64(maxSide) / float64(max(w, h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// samplePixels returns the opaque pixels of img as 0..255 triples.
func samplePixels(img image.Image) []rgb {
	b := img.Bounds()
	out := make([]rgb, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < minAlpha {
				continue
			}
			out = append(out, rgb{float64(c.R), float64(c.G), float64(c.B)})
		}
	}
	return out
}

func bucketOf(p rgb) int {
	r := int(p[0]) >> quantizeShift
	g := int(p[1]) >> quantizeShift
	bl := int(p[2]) >> quantizeShift
	return (r*quantizeLevels+g)*quantizeLevels + bl
}

type bucket struct {
	key   int
	count int
	sum   rgb
}

// buckets groups pixels by quantized color, most populated first.
func buckets(pixels []rgb) []bucket {
	byKey := make(map[int]*bucket)
	for _, p := range pixels {
		k := bucketOf(p)
		bk, ok := byKey[k]
		if !ok {
			bk = &bucket{key: k}
			byKey[k] = bk
		}
		bk.count++
		for i := range p {
			bk.sum[i] += p[i]
		}
	}
	out := make([]bucket, 0, len(byKey))
	for _, bk := range byKey {
		out = append(out, *bk)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count == out[j].count {
			return out[i].key < out[j].key
		}
		return out[i].count > out[j].count
	})
	return out
}

// Palette returns up to k dominant colors of img as "#rrggbb", most common first.
// Centroids are seeded from the most populated color buckets, then refined by k-means.
func Palette(img image.Image, k int) []string {
	if k < 1 {
		k = PaletteSize
	}
	pixels := samplePixels(downscale(img, sampleSide))
	if len(pixels) == 0 {
		return []string{}
	}

	seeds := buckets(pixels)
	if len(seeds) > k {
		seeds = seeds[:k]
	}
	centroids := make([]rgb, len(seeds))
	for i, bk := range seeds {
		for c := range centroids[i] {
			centroids[i][c] = bk.sum[c] / float64(bk.count)
		}
	}

	assign := make([]int, len(pixels))
	counts := make([]int, len(centroids))
	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, p := range pixels {
			best := nearest(centroids, p)
			if iter == 0 || assign[i] != best {
				changed = true
			}
			assign[i] = best
		}
		sums := make([]rgb, len(centroids))
		for i := range counts {
			counts[i] = 0
		}
		for i, p := range pixels {
			c := assign[i]
			counts[c]++
			for ch := range p {
				sums[c][ch] += p[ch]
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for ch := range centroids[c] {
				centroids[c][ch] = sums[c][ch] / float64(counts[c])
			}
		}
		if !changed {
			break
		}
	}

	order := make([]int, len(centroids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })

	seen := make(map[string]bool, len(order))
	out := make([]string, 0, len(order))
	for _, c := range order {
		if counts[c] == 0 {
			continue
		}
		hex := toHex(centroids[c])
		if seen[hex] {
			continue
		}
		seen[hex] = true
		out = append(out, hex)
	}
	return out
}

func nearest(centroids []rgb, p rgb) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range centroids {
		d := sqDist(c, p)
		if d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

func sqDist(a, b rgb) float64 {
	var d float64
	for i := range a {
		diff := a[i] - b[i]
		d += diff * diff
	}
	return d
}

func toHex(c rgb) string {
	clamp := func(v float64) int {
		return int(math.Max(0, math.Min(255, math.Round(v))))
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(c[0]), clamp(c[1]), clamp(c[2]))
}
