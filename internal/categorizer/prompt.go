package categorizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Totarae/linkbucket/internal/model"
)

// ErrParse ответ модели не удалось разобрать как {"bucket", "isNew"}.
var ErrParse = errors.New("could not parse categorization response")

var jsonObjectRe = regexp.MustCompile(`\{[^}]+\}`)

const promptTemplate = `You are a link categorization assistant. Given a saved link, suggest the best bucket/category for it.

Link details:
- Title: %s
- Domain: %s
- URL: %s

User's existing buckets: %s

Instructions:
1. If an existing bucket fits well, return its exact name
2. If no bucket fits, suggest a new short category name (1-2 words, like "Tech", "News", "Shopping", "Work", "Learning")
3. Return ONLY a JSON object, nothing else

Response format:
{"bucket": "bucket name here", "isNew": true/false}

Examples:
- Tech article on existing "Tech" bucket: {"bucket": "Tech", "isNew": false}
- Recipe site with no food bucket: {"bucket": "Recipes", "isNew": true}`

// BuildPrompt собирает запрос к модели.
func BuildPrompt(title, domain, rawURL string, bucketNames []string) string {
	if strings.TrimSpace(title) == "" {
		title = "Unknown"
	}
	if strings.TrimSpace(domain) == "" {
		domain = "Unknown"
	}
	existing := "None yet"
	if len(bucketNames) > 0 {
		existing = strings.Join(bucketNames, ", ")
	}
	return fmt.Sprintf(promptTemplate, title, domain, rawURL, existing)
}

// ParseSuggestion разбирает ответ модели. Сначала весь текст целиком,
// затем первая подстрока в фигурных скобках.
func ParseSuggestion(text string) (model.Suggestion, error) {
	if s, err := decodeSuggestion(strings.TrimSpace(text)); err == nil {
		return s, nil
	}
	match := jsonObjectRe.FindString(text)
	if match == "" {
		return model.Suggestion{}, ErrParse
	}
	s, err := decodeSuggestion(match)
	if err != nil {
		return model.Suggestion{}, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return s, nil
}

func decodeSuggestion(text string) (model.Suggestion, error) {
	var s model.Suggestion
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return model.Suggestion{}, err
	}
	s.Bucket = strings.TrimSpace(s.Bucket)
	if s.Bucket == "" {
		return model.Suggestion{}, errors.New("empty bucket name")
	}
	return s, nil
}
