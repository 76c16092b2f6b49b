// Package extraction turns free-text model output into celebrity results.
//
// The JSON payload is located with a greedy pattern that spans from the first
// opening brace or bracket to the last matching closer. Prose containing stray
// braces around the payload can defeat it; callers treat every failure as a
// failed request and never return partial results.
package extraction

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/dalfonso89/multitool-api/internal/models"
)

// Kind classifies an extraction failure
type Kind int

const (
	KindNoJSONFound Kind = iota
	KindMalformedJSON
)

func (kind Kind) String() string {
	switch kind {
	case KindNoJSONFound:
		return "NoJsonFound"
	case KindMalformedJSON:
		return "MalformedJson"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is
var (
	ErrNoJSONFound   = errors.New("model response does not contain JSON")
	ErrMalformedJSON = errors.New("model response contains malformed JSON")
)

// ExtractionError describes why a model response could not be turned into results
type ExtractionError struct {
	Kind      Kind
	Details   string
	Candidate string
	Cause     error
}

func (e *ExtractionError) Error() string {
	if e.Details == "" {
		return e.sentinel().Error()
	}
	return fmt.Sprintf("%s: %s", e.sentinel().Error(), e.Details)
}

// Is matches ErrNoJSONFound or ErrMalformedJSON according to Kind
func (e *ExtractionError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func (e *ExtractionError) sentinel() error {
	if e.Kind == KindNoJSONFound {
		return ErrNoJSONFound
	}
	return ErrMalformedJSON
}

var candidatePattern = regexp.MustCompile(`\{[\s\S]*\}|\[[\s\S]*\]`)

// FindCandidate returns the span of rawText believed to hold the JSON payload
func FindCandidate(rawText string) (string, bool) {
	location := candidatePattern.FindStringIndex(rawText)
	if location == nil {
		return "", false
	}
	return rawText[location[0]:location[1]], true
}

// ExtractCelebrities parses the celebrity array embedded in rawText and computes
// each age against the calendar year of now. Input order is preserved.
func ExtractCelebrities(rawText string, now time.Time) ([]models.CelebrityResult, error) {
	candidate, found := FindCandidate(rawText)
	if !found {
		return nil, &ExtractionError{Kind: KindNoJSONFound}
	}

	var records []models.CelebrityRecord
	if err := json.Unmarshal([]byte(candidate), &records); err != nil {
		return nil, &ExtractionError{
			Kind:      KindMalformedJSON,
			Details:   err.Error(),
			Candidate: candidate,
			Cause:     err,
		}
	}

	currentYear := now.Year()
	results := make([]models.CelebrityResult, 0, len(records))
	for index, record := range records {
		if record.Name == nil || record.BirthYear == nil {
			return nil, &ExtractionError{
				Kind:      KindMalformedJSON,
				Details:   fmt.Sprintf("record %d must have \"nome\" and \"anoNascimento\"", index),
				Candidate: candidate,
			}
		}
		results = append(results, models.CelebrityResult{
			Name: *record.Name,
			Age:  currentYear - *record.BirthYear,
		})
	}

	return results, nil
}
