// Package keyword derives search keywords from résumé content.
package keyword

import (
	"regexp"
	"strings"

	"github.com/honeycarbs/jobfeed/internal/domain"
)

var (
	tokenPattern  = regexp.MustCompile(`^[a-z0-9-]+$`)
	punctReplacer = strings.NewReplacer(
		".", " ", ",", " ", "/", " ", "#", " ", "!", " ", "$", " ", "%", " ",
		"^", " ", "&", " ", "*", " ", ";", " ", ":", " ", "{", " ", "}", " ",
		"=", " ", "-", " ", "_", " ", "`", " ", "~", " ", "(", " ", ")", " ",
	)
)

// Extract returns the unique, lowercase keyword set for the given résumés.
// Skill items are taken whole; summaries are tokenized and filtered.
// The result order is unspecified.
func Extract(resumes []domain.ResumeDocument) []string {
	set := make(map[string]struct{})

	for _, r := range resumes {
		for _, category := range r.Skills {
			for _, item := range category.Items {
				if kw := normalize(item); kw != "" {
					set[kw] = struct{}{}
				}
			}
		}

		for _, token := range Tokenize(r.Summary) {
			set[token] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for kw := range set {
		if len(kw) <= 1 || IsStopword(kw) {
			continue
		}
		out = append(out, kw)
	}
	return out
}

// Tokenize splits free text into keyword candidates
func Tokenize(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	fields := strings.Fields(punctReplacer.Replace(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		token := strings.ToLower(f)
		if len(token) <= 1 || !tokenPattern.MatchString(token) || IsStopword(token) {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// IsStopword reports whether word is in the stopword list, ignoring case
func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
