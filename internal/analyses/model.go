package analyses

import "time"

// Record is one stored critique of one uploaded image.
type Record struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageKey  string    `json:"imageKey"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Result    *Result   `json:"results,omitempty"`
}

// Result is the critique payload. Every field is optional.
type Result struct {
	OverallRating string   `json:"overall_rating,omitempty"`
	ColorPalette  []string `json:"color_palette,omitempty"`
	ColorCritique string   `json:"color_critique,omitempty"`
	OtherFeedback string   `json:"other_feedback,omitempty"`
	UIScore       *float64 `json:"ui_score,omitempty"`
	Elements      []string `json:"elements,omitempty"`
}

// InferenceRequest is posted to the inference endpoint.
type InferenceRequest struct {
	ImageURL string `json:"image_url"`
	UserID   string `json:"user_id"`
}

// InferenceResponse is the flat success body of the inference endpoint.
type InferenceResponse struct {
	Status        string   `json:"status"`
	AnalysisID    string   `json:"analysis_id"`
	OverallRating string   `json:"overall_rating"`
	ColorPalette  []string `json:"color_palette"`
	ColorCritique string   `json:"color_critique"`
	OtherFeedback string   `json:"other_feedback"`
	UIScore       *float64 `json:"ui_score"`
	Elements      []string `json:"elements"`
}

// Result converts the flat response into the stored shape.
func (r InferenceResponse) Result() *Result {
	return &Result{
		OverallRating: r.OverallRating,
		ColorPalette:  r.ColorPalette,
		ColorCritique: r.ColorCritique,
		OtherFeedback: r.OtherFeedback,
		UIScore:       r.UIScore,
		Elements:      r.Elements,
	}
}
