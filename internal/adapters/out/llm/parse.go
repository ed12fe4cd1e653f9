package llm

import (
	"strings"

	"ordering/internal/core/domain/model/intent"

	"github.com/tidwall/gjson"
)

// ParseOutput turns the model's text into an Intent. ok is false when the text
// is not a JSON object, in which case the classifier apology is returned.
func ParseOutput(content string) (intent.Intent, bool) {
	raw := stripFences(content)
	if !gjson.Valid(raw) || !gjson.Parse(raw).IsObject() {
		return intent.ClassifierFailure(), false
	}

	out := gjson.Parse(raw)
	entities := out.Get("entities")

	parts := intent.Parts{
		Kind:    out.Get("intent").String(),
		Address: firstString(entities, "shippingAddress", "location", "address"),
		Reply:   out.Get("reply").String(),
	}

	entities.Get("items").ForEach(func(_, item gjson.Result) bool {
		phrase := firstString(item, "productName", "productPhrase", "name")
		if phrase == "" {
			return true
		}

		quantity := 1
		if q := item.Get("quantity"); q.Exists() {
			quantity = int(q.Int())
		}

		parts.Items = append(parts.Items, intent.ItemRequest{
			ProductPhrase: phrase,
			Quantity:      quantity,
			Action:        intent.ParseAction(item.Get("action").String()),
		})
		return true
	})

	return intent.FromParts(parts), true
}

func firstString(r gjson.Result, paths ...string) string {
	for _, path := range paths {
		if v := strings.TrimSpace(r.Get(path).String()); v != "" {
			return v
		}
	}
	return ""
}

// stripFences removes a surrounding markdown code fence.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
