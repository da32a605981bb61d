// Package prompt renders the instruction block sent to the generative
// backend. The output-contract section is load-bearing: the normalizer
// expects exactly the field set promised here.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/merchkit/cross-sell-service/internal/domain"
)

const (
	maxNameLen        = 55
	maxDescriptionLen = 180
	maxPerCategory    = 15
)

// Build renders the full prompt for one request: focal product block,
// candidate list grouped by category, and the strict JSON output contract.
// Pure function of its inputs; same inputs always produce the same string.
func Build(focal *domain.Product, candidates []*domain.Product, limit int) string {
	var b strings.Builder

	b.WriteString("You are an expert e-commerce assistant recommending complementary products.\n\n")

	b.WriteString("CURRENT PRODUCT:\n")
	fmt.Fprintf(&b, "Name: %s\n", focal.Name)
	fmt.Fprintf(&b, "Category: %s\n", focal.Category)
	fmt.Fprintf(&b, "Price: $%.2f\n", focal.Price)
	fmt.Fprintf(&b, "Description: %s\n", truncate(orDefault(focal.Description, "N/A"), maxDescriptionLen))

	b.WriteString("\nPRODUCT CATALOG:")
	writeCatalog(&b, candidates)

	fmt.Fprintf(&b, "\n\nTASK: Recommend exactly %d products from the catalog that:\n", limit)
	b.WriteString("1. Complement or enhance the current product\n")
	b.WriteString("2. Make logical sense together (accessories, related items, upgrades)\n")
	b.WriteString("3. Provide real value to the customer\n")

	b.WriteString("\nRULES:\n")
	b.WriteString("- Use ONLY product_id values from the catalog above\n")
	b.WriteString("- Provide a specific reason of 10-15 words per item\n")
	b.WriteString("- confidence_score must be a number between 0.70 and 0.95\n")

	b.WriteString("\nOUTPUT FORMAT (JSON only, no markdown):\n")
	b.WriteString("[\n")
	b.WriteString("  {\n")
	b.WriteString("    \"product_id\": \"exact_id_from_catalog\",\n")
	b.WriteString("    \"reason\": \"Why this complements the current product\",\n")
	b.WriteString("    \"confidence_score\": 0.85\n")
	b.WriteString("  }\n")
	b.WriteString("]\n")
	fmt.Fprintf(&b, "\nReturn ONLY a valid JSON array with %d items. No markdown, no explanations.", limit)

	return b.String()
}

// writeCatalog groups candidates by category (alphabetical) and renders each
// entry as "id: name ($price)", capped per category.
func writeCatalog(b *strings.Builder, candidates []*domain.Product) {
	byCategory := make(map[string][]*domain.Product)
	var categories []string
	for _, p := range candidates {
		if _, seen := byCategory[p.Category]; !seen {
			categories = append(categories, p.Category)
		}
		byCategory[p.Category] = append(byCategory[p.Category], p)
	}
	sort.Strings(categories)

	for _, cat := range categories {
		fmt.Fprintf(b, "\n%s:\n", strings.ToUpper(cat))
		items := byCategory[cat]
		if len(items) > maxPerCategory {
			items = items[:maxPerCategory]
		}
		for _, p := range items {
			fmt.Fprintf(b, "  %s: %s ($%.2f)\n", p.ID, truncate(p.Name, maxNameLen), p.Price)
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
