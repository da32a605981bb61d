package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/merchkit/cross-sell-service/internal/catalog"
	"github.com/merchkit/cross-sell-service/internal/domain"
)

const maxReasonLen = 100

// defaultReason is used when the backend omits or empties the reason field.
const defaultReason = "Recommended"

type rawRecord map[string]any

// Normalize validates and repairs raw backend text into catalog-backed
// recommendation items, in order:
//
//	strip wrappers -> quote/comma repair -> structural completion -> parse
//	(one repair retry) -> shape validation -> field validation -> catalog
//	enrichment -> truncation to limit.
//
// Records referencing unknown product ids are dropped, never surfaced.
// An irreparable payload fails with *domain.FormatError; a payload that
// parses but yields zero resolvable records fails with
// domain.ErrEmptyRecommendation.
func Normalize(raw string, cat *catalog.Store, limit int) ([]domain.RecommendationItem, error) {
	payload := StripWrappers(raw)
	if payload == "" {
		return nil, &domain.FormatError{Msg: "no structured payload in backend response", Raw: raw}
	}

	records, err := repairAndDecode(payload)
	if err != nil {
		// The window may have anchored on a stray brace or bracket in prose
		// ahead of the real payload; retry against the other delimiter.
		if alt := alternateWindow(raw); alt != "" && alt != payload {
			records, err = repairAndDecode(alt)
		}
		if err != nil {
			return nil, &domain.FormatError{Msg: fmt.Sprintf("unparseable backend payload: %v", err), Raw: raw}
		}
	}

	items := make([]domain.RecommendationItem, 0, len(records))
	for _, rec := range records {
		id := stringField(rec, "product_id")
		if id == "" {
			id = stringField(rec, "id")
		}
		product, ok := cat.Get(id)
		if !ok {
			continue
		}

		reason := strings.TrimSpace(stringField(rec, "reason"))
		if reason == "" {
			reason = defaultReason
		}
		if runes := []rune(reason); len(runes) > maxReasonLen {
			reason = string(runes[:maxReasonLen])
		}

		// Name, category, price, description and image always come from the
		// catalog entry; the backend only supplies the id and the reason.
		items = append(items, domain.RecommendationItem{
			ProductID:   product.ID,
			Name:        product.Name,
			Category:    product.Category,
			Price:       product.Price,
			Confidence:  confidenceField(rec),
			Reason:      reason,
			Description: product.Description,
			Image:       product.Image,
			Source:      domain.SourceGenerative,
		})
	}

	if len(items) == 0 {
		return nil, domain.ErrEmptyRecommendation
	}

	// Backend ordering is preserved; only the length is trimmed.
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// repairAndDecode runs the text-repair stages over one payload window and
// parses it, with one best-effort comma-repair retry.
func repairAndDecode(payload string) ([]rawRecord, error) {
	payload = NormalizeQuotes(payload)
	payload = StripTrailingCommas(payload)
	payload = CompleteTruncated(payload)

	records, err := decodeRecords(payload)
	if err != nil {
		payload = StripTrailingCommas(InsertMissingCommas(payload))
		records, err = decodeRecords(payload)
	}
	return records, err
}

// decodeRecords parses the payload as either a bare array of records or an
// object carrying a "recommendations" array.
func decodeRecords(payload string) ([]rawRecord, error) {
	trimmed := strings.TrimSpace(payload)

	if strings.HasPrefix(trimmed, "[") {
		var records []rawRecord
		if err := json.Unmarshal([]byte(trimmed), &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var envelope map[string]any
	if err := json.Unmarshal([]byte(trimmed), &envelope); err != nil {
		return nil, err
	}
	seq, ok := envelope["recommendations"].([]any)
	if !ok {
		return nil, fmt.Errorf(`missing "recommendations" array`)
	}

	records := make([]rawRecord, 0, len(seq))
	for _, v := range seq {
		// Non-mapping entries are dropped, not fatal.
		if m, ok := v.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return records, nil
}

func stringField(rec rawRecord, key string) string {
	switch v := rec[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// confidenceField extracts the advertised confidence score. Numeric values
// are clamped into range; missing or non-numeric values get the default.
func confidenceField(rec rawRecord) float64 {
	var v float64
	switch c := rec["confidence_score"].(type) {
	case float64:
		v = c
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		if err != nil {
			return domain.ConfidenceDefault
		}
		v = parsed
	default:
		return domain.ConfidenceDefault
	}
	return math.Round(domain.ClampConfidence(v)*100) / 100
}
