package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/feral-file/media-monitor/internal/domain"
)

// ErrorKind categorizes a classification failure
type ErrorKind string

const (
	// ErrorKindTransport covers HTTP failures and timeouts
	ErrorKindTransport ErrorKind = "transport"
	// ErrorKindEmptyResponse means the model returned no candidate text
	ErrorKindEmptyResponse ErrorKind = "empty_response"
	// ErrorKindInvalidJSON means the model output is not JSON
	ErrorKindInvalidJSON ErrorKind = "invalid_json"
	// ErrorKindSchema means required fields are missing or a value is out of range
	ErrorKindSchema ErrorKind = "schema"
)

// ClassificationError is returned by a Classifier when an attempt fails
type ClassificationError struct {
	Kind ErrorKind
	Err  error
}

func (e *ClassificationError) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Err.Error())
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// NewClassificationError wraps err with a kind
func NewClassificationError(kind ErrorKind, err error) *ClassificationError {
	return &ClassificationError{Kind: kind, Err: err}
}

// IsClassificationError reports whether err is a ClassificationError of the given kind
func IsClassificationError(err error, kind ErrorKind) bool {
	var ce *ClassificationError
	return errors.As(err, &ce) && ce.Kind == kind
}

// ActorQuote is a verbatim quote attributed to an actor
type ActorQuote struct {
	Actor   string `json:"actor"`
	Quote   string `json:"quote"`
	Context string `json:"context,omitempty"`
}

// Classification is the validated structured output of a classifier
type Classification struct {
	Topics      []string
	Actors      []string
	Locations   []string
	Language    *string
	IsEditorial *bool
	Sentiment   *domain.Sentiment
	ActorQuotes []ActorQuote
	// Raw is the model output as returned, kept for audit
	Raw json.RawMessage
}

// Classifier defines the interface of a structured-output LLM client
//
//go:generate mockgen -source=classifier.go -destination=../mocks/classifier.go -package=mocks -mock_names=Classifier=MockClassifier
type Classifier interface {
	// Classify sends the prompt and returns the validated classification.
	// Failures are returned as *ClassificationError.
	Classify(ctx context.Context, prompt string, schema map[string]interface{}) (*Classification, error)
}

// classificationPayload mirrors the response schema. List fields are pointers
// so a missing key can be told apart from an empty list.
type classificationPayload struct {
	Topics      *[]string    `json:"topics"`
	Actors      *[]string    `json:"actors"`
	Locations   *[]string    `json:"locations"`
	Language    *string      `json:"language"`
	IsEditorial *bool        `json:"is_editorial"`
	Sentiment   *string      `json:"sentiment"`
	ActorQuotes []ActorQuote `json:"actor_quotes"`
}

// DecodeClassification parses and validates a model output.
// Markdown code fences around the JSON are tolerated.
func DecodeClassification(text string) (*Classification, error) {
	text = stripCodeFence(text)
	if text == "" {
		return nil, NewClassificationError(ErrorKindEmptyResponse, errors.New("model returned no text"))
	}

	var payload classificationPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, NewClassificationError(ErrorKindSchema, fmt.Errorf("field %s has the wrong type", typeErr.Field))
		}
		return nil, NewClassificationError(ErrorKindInvalidJSON, err)
	}

	var missing []string
	if payload.Topics == nil {
		missing = append(missing, "topics")
	}
	if payload.Actors == nil {
		missing = append(missing, "actors")
	}
	if payload.Locations == nil {
		missing = append(missing, "locations")
	}
	if len(missing) > 0 {
		return nil, NewClassificationError(ErrorKindSchema, fmt.Errorf("missing required fields: %s", strings.Join(missing, ", ")))
	}

	result := &Classification{
		Topics:      trimAll(*payload.Topics),
		Actors:      trimAll(*payload.Actors),
		Locations:   trimAll(*payload.Locations),
		IsEditorial: payload.IsEditorial,
		ActorQuotes: payload.ActorQuotes,
		Raw:         json.RawMessage(text),
	}

	if payload.Language != nil {
		if lang := strings.ToLower(strings.TrimSpace(*payload.Language)); lang != "" {
			result.Language = &lang
		}
	}

	if payload.Sentiment != nil {
		if value := strings.ToLower(strings.TrimSpace(*payload.Sentiment)); value != "" {
			sentiment := domain.Sentiment(value)
			if !domain.IsValidSentiment(sentiment) {
				return nil, NewClassificationError(ErrorKindSchema, fmt.Errorf("invalid sentiment %q", *payload.Sentiment))
			}
			result.Sentiment = &sentiment
		}
	}

	return result, nil
}

// ResponseSchema returns the structured-output schema in the Gemini OpenAPI subset
func ResponseSchema() map[string]interface{} {
	stringArray := map[string]interface{}{
		"type":  "ARRAY",
		"items": map[string]interface{}{"type": "STRING"},
	}
	return map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"topics":       stringArray,
			"actors":       stringArray,
			"locations":    stringArray,
			"language":     map[string]interface{}{"type": "STRING"},
			"is_editorial": map[string]interface{}{"type": "BOOLEAN"},
			"sentiment": map[string]interface{}{
				"type": "STRING",
				"enum": []string{
					string(domain.SentimentPositive),
					string(domain.SentimentNegative),
					string(domain.SentimentNeutral),
				},
			},
			"actor_quotes": map[string]interface{}{
				"type": "ARRAY",
				"items": map[string]interface{}{
					"type": "OBJECT",
					"properties": map[string]interface{}{
						"actor":   map[string]interface{}{"type": "STRING"},
						"quote":   map[string]interface{}{"type": "STRING"},
						"context": map[string]interface{}{"type": "STRING"},
					},
					"required": []string{"actor", "quote"},
				},
			},
		},
		"required": []string{"topics", "actors", "locations"},
	}
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if i := strings.Index(text, "\n"); i >= 0 {
		// drop the language tag line
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
