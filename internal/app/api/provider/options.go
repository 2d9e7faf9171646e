package provider

import (
	"net/url"
	"strconv"
)

// Models used by the option table.
const (
	ModelLatestGeneral = "nova-3"
	ModelGeneral       = "general"
)

// Options is the provider configuration derived from a Language.
type Options struct {
	SmartFormat bool   `json:"smart_format"`
	Model       string `json:"model"`
	Language    string `json:"language,omitempty"`
	Tier        string `json:"tier,omitempty"`
	Version     string `json:"version,omitempty"`
}

// OptionsFor returns the options for a language hint. Korean uses the
// enhanced general beta model; every other hint gets the latest general model.
func OptionsFor(lang Language) Options {
	if lang == LanguageKorean {
		return Options{
			SmartFormat: true,
			Model:       ModelGeneral,
			Language:    string(LanguageKorean),
			Tier:        "enhanced",
			Version:     "beta",
		}
	}
	return Options{
		SmartFormat: true,
		Model:       ModelLatestGeneral,
	}
}

// Query encodes the options as listen query parameters. Empty fields are omitted.
func (o Options) Query() url.Values {
	q := url.Values{}
	q.Set("smart_format", strconv.FormatBool(o.SmartFormat))
	if o.Model != "" {
		q.Set("model", o.Model)
	}
	if o.Language != "" {
		q.Set("language", o.Language)
	}
	if o.Tier != "" {
		q.Set("tier", o.Tier)
	}
	if o.Version != "" {
		q.Set("version", o.Version)
	}
	return q
}
