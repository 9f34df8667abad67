package validator

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrEmptyStation indicates the station name is empty after trimming
	ErrEmptyStation = errors.New("station name cannot be empty")

	// ErrStationTooLong indicates the station name exceeds MaxStationNameLength runes
	ErrStationTooLong = errors.New("station name is too long")
)

// MaxStationNameLength caps user-supplied station names
const MaxStationNameLength = 120

// separatorReplacer turns the punctuation that varies between line tables into spaces
var separatorReplacer = strings.NewReplacer(
	"(", " ",
	")", " ",
	"/", " ",
	"-", " ",
	"—", " ",
	"–", " ",
)

// Normalize canonicalizes a station name into the key used for every lookup.
// "Zócalo/Tenochtitlan" and " zócalo (Tenochtitlan) " both become "zócalo tenochtitlan".
func Normalize(text string) string {
	if text == "" {
		return ""
	}
	t := strings.ToLower(strings.TrimSpace(text))
	t = separatorReplacer.Replace(t)
	return strings.Join(strings.Fields(t), " ")
}

// Fold returns Normalize(text) with diacritics removed.
// It is only meant for fuzzy matching; graph identity always uses Normalize.
func Fold(text string) string {
	key := Normalize(text)
	if key == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, key)
	if err != nil {
		return key
	}
	return folded
}

// StationNameValidator validates station names typed by users
type StationNameValidator struct{}

// NewStationNameValidator creates a new station name validator instance
func NewStationNameValidator() *StationNameValidator {
	return &StationNameValidator{}
}

// Validate trims the name and checks it is usable as a query.
// Returns the trimmed name; it does not check that the station exists.
func (v *StationNameValidator) Validate(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrEmptyStation
	}
	if utf8.RuneCountInString(trimmed) > MaxStationNameLength {
		return "", ErrStationTooLong
	}
	return trimmed, nil
}

// SameStation reports whether two names refer to the same physical place
func (v *StationNameValidator) SameStation(a, b string) bool {
	ka := Normalize(a)
	return ka != "" && ka == Normalize(b)
}

// IsValid is a convenience method that returns true if the name is valid
func (v *StationNameValidator) IsValid(name string) bool {
	_, err := v.Validate(name)
	return err == nil
}
