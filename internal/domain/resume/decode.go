// Package resume decodes stored résumé documents into the shape the
// keyword extractor reads. Decoding is tolerant: malformed skills or
// summary fields become empty values instead of errors.
package resume

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

// nameFields are checked in order when a skill item is an object
var nameFields = []string{"name", "skill", "label", "title"}

// Decode parses one résumé from raw JSON. Only a payload that is not a
// JSON object at all is an error.
func Decode(data []byte) (domain.ResumeDocument, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.ResumeDocument{}, fmt.Errorf("resume: decode document: %w", err)
	}
	return FromMap(raw), nil
}

// DecodeMany parses either a JSON array of résumés or a single résumé object
func DecodeMany(data []byte) ([]domain.ResumeDocument, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, fmt.Errorf("resume: decode list: %w", err)
		}
		out := make([]domain.ResumeDocument, 0, len(items))
		for _, item := range items {
			doc, err := Decode(item)
			if err != nil {
				continue
			}
			out = append(out, doc)
		}
		return out, nil
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return []domain.ResumeDocument{doc}, nil
}

// FromMap projects a generic document onto domain.ResumeDocument
func FromMap(raw map[string]any) domain.ResumeDocument {
	doc := domain.ResumeDocument{
		ID:      idString(first(raw, "_id", "id")),
		UserID:  idString(first(raw, "userId", "user_id")),
		Summary: stringValue(raw["summary"]),
	}

	categories, _ := raw["skills"].([]any)
	for _, c := range categories {
		category, ok := c.(map[string]any)
		if !ok {
			continue
		}
		items, _ := category["items"].([]any)
		if len(items) == 0 {
			items, _ = category["skills"].([]any)
		}

		resolved := make([]string, 0, len(items))
		for _, item := range items {
			if s := itemName(item); s != "" {
				resolved = append(resolved, s)
			}
		}

		doc.Skills = append(doc.Skills, domain.SkillCategory{
			Category: stringValue(first(category, "category", "name")),
			Items:    resolved,
		})
	}

	return doc
}

func itemName(item any) string {
	switch v := item.(type) {
	case string:
		return strings.TrimSpace(v)
	case map[string]any:
		for _, field := range nameFields {
			if s := strings.TrimSpace(stringValue(v[field])); s != "" {
				return s
			}
		}
	}
	return ""
}

func first(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

// idString accepts plain strings and extended-JSON {"$oid": "..."} ids
func idString(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case map[string]any:
		return stringValue(id["$oid"])
	case float64:
		return fmt.Sprint(id)
	}
	return ""
}
