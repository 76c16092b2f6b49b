package extraction

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalfonso89/multitool-api/internal/models"
)

var referenceTime = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

func TestExtractCelebrities(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []models.CelebrityResult
	}{
		{
			name: "bare array",
			raw:  `[{"nome":"Ana","anoNascimento":1990,"principaisConquistas":["x"]},{"nome":"Bia","anoNascimento":1990}]`,
			expected: []models.CelebrityResult{
				{Name: "Ana", Age: 36},
				{Name: "Bia", Age: 36},
			},
		},
		{
			name: "fenced with prose",
			raw: "Claro! Aqui está:\n```json\n[\n  {\"nome\": \"Zé\", \"anoNascimento\": 1961, \"principaisConquistas\": [\"a\", \"b\", \"c\"]},\n" +
				"  {\"nome\": \"Lia\", \"anoNascimento\": 2001, \"principaisConquistas\": []}\n]\n```\nEspero ter ajudado.",
			expected: []models.CelebrityResult{
				{Name: "Zé", Age: 65},
				{Name: "Lia", Age: 25},
			},
		},
		{
			name:     "empty array",
			raw:      "[]",
			expected: []models.CelebrityResult{},
		},
		{
			name: "order preserved without dedupe",
			raw:  `[{"nome":"B","anoNascimento":2000},{"nome":"A","anoNascimento":1980},{"nome":"B","anoNascimento":2000}]`,
			expected: []models.CelebrityResult{
				{Name: "B", Age: 26},
				{Name: "A", Age: 46},
				{Name: "B", Age: 26},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ExtractCelebrities(tt.raw, referenceTime)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, results)
		})
	}
}

func TestExtractCelebritiesUsesCurrentYear(t *testing.T) {
	raw := `[{"nome":"Ana","anoNascimento":1990},{"nome":"Bia","anoNascimento":1990}]`
	now := time.Now()

	results, err := ExtractCelebrities(raw, now)
	require.NoError(t, err)
	require.Len(t, results, 2)

	for _, result := range results {
		assert.Equal(t, now.Year()-1990, result.Age)
	}
	assert.Equal(t, "Ana", results[0].Name)
	assert.Equal(t, "Bia", results[1].Name)
}

func TestExtractCelebritiesErrors(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		sentinel error
		kind     Kind
	}{
		{name: "plain prose", raw: "Desculpe, não posso ajudar com isso.", sentinel: ErrNoJSONFound, kind: KindNoJSONFound},
		{name: "empty text", raw: "", sentinel: ErrNoJSONFound, kind: KindNoJSONFound},
		{name: "unclosed array", raw: `[{"nome":"Ana"`, sentinel: ErrNoJSONFound, kind: KindNoJSONFound},
		{name: "broken json", raw: `[{"nome":"Ana",}]`, sentinel: ErrMalformedJSON, kind: KindMalformedJSON},
		{name: "object instead of array", raw: `{"nome":"Ana","anoNascimento":1990}`, sentinel: ErrMalformedJSON, kind: KindMalformedJSON},
		{name: "missing birth year", raw: `[{"nome":"Ana"}]`, sentinel: ErrMalformedJSON, kind: KindMalformedJSON},
		{name: "missing name", raw: `[{"anoNascimento":1990}]`, sentinel: ErrMalformedJSON, kind: KindMalformedJSON},
		{name: "non integer birth year", raw: `[{"nome":"Ana","anoNascimento":"1990"}]`, sentinel: ErrMalformedJSON, kind: KindMalformedJSON},
		{name: "null record", raw: `[null]`, sentinel: ErrMalformedJSON, kind: KindMalformedJSON},
		{
			name:     "stray braces around payload",
			raw:      `Formato {nome}: [{"nome":"Ana","anoNascimento":1990}] fim {ok}`,
			sentinel: ErrMalformedJSON,
			kind:     KindMalformedJSON,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := ExtractCelebrities(tt.raw, referenceTime)
			require.Error(t, err)
			assert.Nil(t, results)

			assert.True(t, errors.Is(err, tt.sentinel), "errors.Is(%v, %v)", err, tt.sentinel)

			var extractionError *ExtractionError
			require.True(t, errors.As(err, &extractionError))
			assert.Equal(t, tt.kind, extractionError.Kind)
		})
	}
}

func TestMalformedJSONCarriesDetails(t *testing.T) {
	_, err := ExtractCelebrities(`texto [1, 2,] texto`, referenceTime)

	var extractionError *ExtractionError
	require.True(t, errors.As(err, &extractionError))
	assert.Equal(t, "[1, 2,]", extractionError.Candidate)
	assert.NotEmpty(t, extractionError.Details)
	assert.Contains(t, err.Error(), ErrMalformedJSON.Error())
}

func TestFindCandidate(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		candidate string
		found     bool
	}{
		{name: "array", raw: "a [1] b", candidate: "[1]", found: true},
		{name: "object", raw: `x {"a":1} y`, candidate: `{"a":1}`, found: true},
		{name: "greedy to last closer", raw: "[1] and [2]", candidate: "[1] and [2]", found: true},
		{name: "multiline", raw: "{\n\"a\": 1\n}", candidate: "{\n\"a\": 1\n}", found: true},
		{name: "none", raw: "nothing here", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate, found := FindCandidate(tt.raw)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.candidate, candidate)
		})
	}
}
