// Package ssml renders plain text and voice options into an SSML document.
package ssml

import (
	"encoding/xml"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// DefaultLocale is used when neither a locale nor a voice is given.
const DefaultLocale = "en-US"

// TextOptions describes how plain text should be spoken.
type TextOptions struct {
	Text   string
	Voice  string
	Locale string

	// Pitch and Rate accept SSML prosody values ("+10%", "-2st", "120Hz",
	// "x-slow") or a bare float, which is read as a relative change
	// (0.5 means +50%).
	Pitch string
	Rate  string

	Style       string
	Role        string
	StyleDegree *float64
}

// Roles accepted by mstts:express-as.
var Roles = []string{
	"Girl", "Boy", "YoungAdultFemale", "YoungAdultMale",
	"OlderAdultFemale", "OlderAdultMale", "SeniorFemale", "SeniorMale",
}

var (
	pitchKeywords = []string{"default", "x-low", "low", "medium", "high", "x-high"}
	rateKeywords  = []string{"default", "x-slow", "slow", "medium", "fast", "x-fast"}

	percentRe  = regexp.MustCompile(`^[+-]?\d+(\.\d+)?%$`)
	hertzRe    = regexp.MustCompile(`^[+-]?\d+(\.\d+)?Hz$`)
	semitoneRe = regexp.MustCompile(`^[+-]\d+(\.\d+)?st$`)
	factorRe   = regexp.MustCompile(`^\d+(\.\d+)?f$`)
)

// OptionError reports a text option that cannot be rendered.
type OptionError struct {
	Option string
	Value  string
	Reason string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Option, e.Value, e.Reason)
}

// NormalizePitch validates p and converts a bare float to a percentage.
func NormalizePitch(p string) (string, error) {
	p = strings.TrimSpace(p)
	switch {
	case p == "":
		return "", nil
	case slices.Contains(pitchKeywords, p), percentRe.MatchString(p), hertzRe.MatchString(p), semitoneRe.MatchString(p):
		return p, nil
	}
	if v, err := strconv.ParseFloat(p, 64); err == nil {
		return relative(v), nil
	}
	return "", &OptionError{Option: "pitch", Value: p, Reason: "expected a keyword, a percentage, Hz, semitones (+2st) or a float"}
}

// NormalizeRate validates r. A value such as "1.5f" is a multiplier of
// the default rate and is passed through as the bare number.
func NormalizeRate(r string) (string, error) {
	r = strings.TrimSpace(r)
	switch {
	case r == "":
		return "", nil
	case slices.Contains(rateKeywords, r), percentRe.MatchString(r):
		return r, nil
	case factorRe.MatchString(r):
		return strings.TrimSuffix(r, "f"), nil
	}
	if v, err := strconv.ParseFloat(r, 64); err == nil {
		return relative(v), nil
	}
	return "", &OptionError{Option: "rate", Value: r, Reason: "expected a keyword, a percentage, a multiplier (1.5f) or a float"}
}

func relative(v float64) string {
	return fmt.Sprintf("%+.2f%%", v*100)
}

// ValidateStyleDegree checks that d lies in [0.01, 2].
func ValidateStyleDegree(d float64) error {
	if d < 0.01 || d > 2 {
		return &OptionError{Option: "style degree", Value: strconv.FormatFloat(d, 'g', -1, 64), Reason: "must be between 0.01 and 2"}
	}
	return nil
}

// ValidateRole checks r against Roles.
func ValidateRole(r string) error {
	if r == "" || slices.Contains(Roles, r) {
		return nil
	}
	return &OptionError{Option: "role", Value: r, Reason: "must be one of " + strings.Join(Roles, ", ")}
}

// DefaultVoice returns the stock voice for locale.
func DefaultVoice(locale string) (string, bool) {
	v, ok := defaultVoices[locale]
	return v, ok
}

// Locales lists the locales that have a default voice, sorted.
func Locales() []string {
	return slices.Sorted(maps.Keys(defaultVoices))
}

// Resolve fills in the locale and voice defaults and validates every
// option, returning a copy ready for rendering.
func (o TextOptions) Resolve() (TextOptions, error) {
	if o.Locale == "" {
		o.Locale = localeOf(o.Voice)
	}
	if o.Voice == "" {
		v, ok := DefaultVoice(o.Locale)
		if !ok {
			return o, &OptionError{Option: "locale", Value: o.Locale, Reason: "no default voice, pass --voice"}
		}
		o.Voice = v
	}

	var err error
	if o.Pitch, err = NormalizePitch(o.Pitch); err != nil {
		return o, err
	}
	if o.Rate, err = NormalizeRate(o.Rate); err != nil {
		return o, err
	}
	if o.StyleDegree != nil {
		if err := ValidateStyleDegree(*o.StyleDegree); err != nil {
			return o, err
		}
	}
	if err := ValidateRole(o.Role); err != nil {
		return o, err
	}
	return o, nil
}

// localeOf extracts "en-US" from "en-US-JennyNeural"; it falls back to
// DefaultLocale.
func localeOf(voice string) string {
	parts := strings.SplitN(voice, "-", 3)
	if len(parts) == 3 {
		return parts[0] + "-" + parts[1]
	}
	return DefaultLocale
}

// Interpolate renders o as an Azure SSML document with voice selection,
// optional mstts:express-as and optional prosody.
func Interpolate(o TextOptions) (string, error) {
	o, err := o.Resolve()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<speak xmlns="http://www.w3.org/2001/10/synthesis" xmlns:mstts="http://www.w3.org/2001/mstts" version="1.0" xml:lang="`)
	escape(&b, o.Locale)
	b.WriteString(`"><voice name="`)
	escape(&b, o.Voice)
	b.WriteString(`">`)

	express := o.Style != "" || o.Role != "" || o.StyleDegree != nil
	if express {
		b.WriteString("<mstts:express-as")
		writeAttr(&b, "style", o.Style)
		writeAttr(&b, "role", o.Role)
		if o.StyleDegree != nil {
			writeAttr(&b, "styledegree", strconv.FormatFloat(*o.StyleDegree, 'f', -1, 64))
		}
		b.WriteString(">")
	}
	writeProsody(&b, o)
	if express {
		b.WriteString("</mstts:express-as>")
	}
	b.WriteString("</voice></speak>")
	return b.String(), nil
}

// Portable renders o as plain SSML 1.0 with only prosody. Voice selection
// and style are left to the provider.
func Portable(o TextOptions) (string, error) {
	var err error
	if o.Pitch, err = NormalizePitch(o.Pitch); err != nil {
		return "", err
	}
	if o.Rate, err = NormalizeRate(o.Rate); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString("<speak>")
	writeProsody(&b, o)
	b.WriteString("</speak>")
	return b.String(), nil
}

func writeProsody(b *strings.Builder, o TextOptions) {
	if o.Rate == "" && o.Pitch == "" {
		escape(b, o.Text)
		return
	}
	b.WriteString("<prosody")
	writeAttr(b, "rate", o.Rate)
	writeAttr(b, "pitch", o.Pitch)
	b.WriteString(">")
	escape(b, o.Text)
	b.WriteString("</prosody>")
}

func writeAttr(b *strings.Builder, name, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(name)
	b.WriteString(`="`)
	escape(b, value)
	b.WriteString(`"`)
}

// escape writes s with XML special characters replaced. It is used for
// both text and attribute values.
func escape(b *strings.Builder, s string) {
	_ = xml.EscapeText(b, []byte(s))
}
