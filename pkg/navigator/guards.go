package navigator

import (
	"errors"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// GateError is a rejected forward transition. Title and Message are shown to
// the user verbatim.
type GateError struct {
	Title   string
	Message string
}

func (e *GateError) Error() string {
	return e.Title + ": " + e.Message
}

func gate(title, message string) *GateError {
	return &GateError{Title: title, Message: message}
}

// AsGateError unwraps err into a *GateError when it is one.
func AsGateError(err error) (*GateError, bool) {
	var g *GateError
	if errors.As(err, &g) {
		return g, true
	}
	return nil, false
}

var (
	errNameRequired     = gate("Name Required", "Please enter your name.")
	errInvalidAge       = gate("Invalid Age", "Please enter a valid age.")
	errGenderOrient     = gate("Selection Required", "Please select your gender and at least one orientation.")
	errVibesRequired    = gate("Selection Required", "Please pick at least one vibe.")
	errInterestsTooFew  = gate("More Interests Needed", "Please list at least 3 interests.")
	errTraitRequired    = gate("One More Thing!", "Please tell us about a specific interest or trait.")
	errPromptRequired   = gate("Prompt Required", "Please select a prompt to rate.")
	errResponseRequired = gate("Response Required", "Please write your response before continuing.")
	errEmailRequired    = gate("Error", "Please enter your email address.")
	errCodeRequired     = gate("Verification failed", "Please enter the code we emailed you.")
)

const (
	MaxAge           = 120
	maxAgeDigits     = 3
	MinInterestCount = 3
)

var (
	nonDigits         = regexp.MustCompile(`[^0-9]`)
	interestSeparator = regexp.MustCompile(`[,\n]+`)
)

func ValidateName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errNameRequired
	}
	return trimmed, nil
}

// ParseAge accepts 1..120 after stripping non-digit characters.
func ParseAge(input string) (int, error) {
	digits := nonDigits.ReplaceAllString(input, "")
	if digits == "" || len(digits) > maxAgeDigits {
		return 0, errInvalidAge
	}
	age, err := strconv.Atoi(digits)
	if err != nil || age <= 0 || age > MaxAge {
		return 0, errInvalidAge
	}
	return age, nil
}

// ValidateGenderOrientation only accepts values from GenderOptions and
// OrientationOptions, the same set the profile endpoint allows.
func ValidateGenderOrientation(gender string, orientation []string) (string, []string, error) {
	g := strings.TrimSpace(gender)
	cleaned := compact(orientation)
	if !slices.Contains(GenderOptions, g) || len(cleaned) == 0 {
		return "", nil, errGenderOrient
	}
	for _, o := range cleaned {
		if !slices.Contains(OrientationOptions, o) {
			return "", nil, errGenderOrient
		}
	}
	return g, cleaned, nil
}

func ValidateVibes(vibes []string) ([]string, error) {
	cleaned := compact(vibes)
	if len(cleaned) == 0 {
		return nil, errVibesRequired
	}
	return cleaned, nil
}

// ParseInterests splits on commas and newlines, trims, and drops blanks.
func ParseInterests(input string) ([]string, error) {
	parts := interestSeparator.Split(input, -1)
	interests := compact(parts)
	if len(interests) < MinInterestCount {
		return nil, errInterestsTooFew
	}
	return interests, nil
}

func ValidateUniqueTrait(trait string) (string, error) {
	trimmed := strings.TrimSpace(trait)
	if trimmed == "" {
		return "", errTraitRequired
	}
	return trimmed, nil
}

func ValidateRating(category, response string) (string, string, error) {
	c := strings.TrimSpace(category)
	if c == "" {
		return "", "", errPromptRequired
	}
	r := strings.TrimSpace(response)
	if r == "" {
		return "", "", errResponseRequired
	}
	return c, r, nil
}

func ValidateResponse(response string) (string, error) {
	r := strings.TrimSpace(response)
	if r == "" {
		return "", errResponseRequired
	}
	return r, nil
}

func ValidateEmail(email string) (string, error) {
	e := strings.TrimSpace(email)
	if e == "" {
		return "", errEmailRequired
	}
	return e, nil
}

func ValidateCode(code string) (string, error) {
	c := strings.TrimSpace(code)
	if c == "" {
		return "", errCodeRequired
	}
	return c, nil
}

// compact trims every entry and drops the empty ones, keeping order.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}
