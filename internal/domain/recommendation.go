package domain

// Recommendation modes supported by the engine.
type Mode string

const (
	ModeRule       Mode = "rule"
	ModeGenerative Mode = "generative"
)

// Provenance tags for recommendation items.
const (
	SourceRule       = "rule_based"
	SourceGenerative = "generative"
)

// Confidence scores are always kept inside this window. Values outside it are
// clamped, missing or non-numeric values fall back to ConfidenceDefault.
const (
	ConfidenceMin     = 0.50
	ConfidenceMax     = 0.95
	ConfidenceDefault = 0.75
)

// RecommendationItem is one validated output unit. The field order here is the
// wire order shown to clients; keep it stable.
type RecommendationItem struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Confidence  float64 `json:"confidence_score"`
	Reason      string  `json:"reason"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
	Source      string  `json:"source"`
}

type RecommendationResult struct {
	Items    []RecommendationItem
	CacheHit bool
}

// ClampConfidence forces a score into [ConfidenceMin, ConfidenceMax].
func ClampConfidence(v float64) float64 {
	if v < ConfidenceMin {
		return ConfidenceMin
	}
	if v > ConfidenceMax {
		return ConfidenceMax
	}
	return v
}
