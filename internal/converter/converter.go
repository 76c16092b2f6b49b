// Package converter implements the unit conversion calculator.
package converter

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dalfonso89/multitool-api/internal/models"
)

// Kind classifies a conversion failure
type Kind int

const (
	KindMissingParameter Kind = iota
	KindInvalidNumber
	KindUnsupportedConversion
)

func (kind Kind) String() string {
	switch kind {
	case KindMissingParameter:
		return "MissingParameter"
	case KindInvalidNumber:
		return "InvalidNumber"
	case KindUnsupportedConversion:
		return "UnsupportedConversion"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is; a *ConversionError matches the one of its kind
var (
	ErrMissingParameter      = errors.New("missing parameter")
	ErrInvalidNumber         = errors.New("invalid number")
	ErrUnsupportedConversion = errors.New("unsupported conversion")
)

// ConversionError is returned by Convert. Message is safe to show to clients.
type ConversionError struct {
	Kind     Kind
	Message  string
	FromUnit string
	ToUnit   string
}

func (e *ConversionError) Error() string {
	return e.Message
}

// Is matches the sentinel of the same kind
func (e *ConversionError) Is(target error) bool {
	switch target {
	case ErrMissingParameter:
		return e.Kind == KindMissingParameter
	case ErrInvalidNumber:
		return e.Kind == KindInvalidNumber
	case ErrUnsupportedConversion:
		return e.Kind == KindUnsupportedConversion
	}
	return false
}

type unitPair struct {
	from string
	to   string
}

// conversions is the table of supported unit pairs
var conversions = map[unitPair]func(float64) float64{
	{from: "cm", to: "inch"}: func(value float64) float64 { return value / 2.54 },
	{from: "inch", to: "cm"}: func(value float64) float64 { return value * 2.54 },
}

// Convert validates the raw query values and converts value from fromUnit to toUnit.
// Validation runs in order: presence, numeric value, supported pair.
func Convert(fromUnit, toUnit, value string) (models.ConversionResult, error) {
	if fromUnit == "" || toUnit == "" || value == "" {
		return models.ConversionResult{}, &ConversionError{
			Kind:     KindMissingParameter,
			Message:  "Parâmetros 'from', 'to', e 'value' são obrigatórios.",
			FromUnit: fromUnit,
			ToUnit:   toUnit,
		}
	}

	numericValue, parseError := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if parseError != nil || math.IsNaN(numericValue) || math.IsInf(numericValue, 0) {
		return models.ConversionResult{}, &ConversionError{
			Kind:     KindInvalidNumber,
			Message:  "O parâmetro 'value' deve ser um número válido.",
			FromUnit: fromUnit,
			ToUnit:   toUnit,
		}
	}

	convert, supported := conversions[unitPair{from: fromUnit, to: toUnit}]
	if !supported {
		return models.ConversionResult{}, &ConversionError{
			Kind:     KindUnsupportedConversion,
			Message:  fmt.Sprintf("A conversão de '%s' para '%s' não é suportada.", fromUnit, toUnit),
			FromUnit: fromUnit,
			ToUnit:   toUnit,
		}
	}

	return models.ConversionResult{
		FromUnit:   fromUnit,
		ToUnit:     toUnit,
		InputValue: numericValue,
		Result:     round2(convert(numericValue)),
	}, nil
}

// SupportedPairs lists the supported conversions as "from->to", sorted
func SupportedPairs() []string {
	pairs := make([]string, 0, len(conversions))
	for pair := range conversions {
		pairs = append(pairs, pair.from+"->"+pair.to)
	}
	sort.Strings(pairs)
	return pairs
}

// round2 rounds half away from zero to two decimal places
func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
