package config

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/Layr-Labs/hourglass-monorepo/logDecoder/pkg/events"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/yaml"
)

const (
	EnvPrefix = "LOG_DECODER"

	Debug             = "debug"
	IncludeSafeEvents = "include-safe-events"
)

type EventConfig struct {
	Name      string `json:"name" yaml:"name"`
	Signature string `json:"signature" yaml:"signature"`
}

func (ec *EventConfig) Validate(path *field.Path) field.ErrorList {
	var allErrors field.ErrorList
	if ec.Signature == "" {
		return append(allErrors, field.Required(path.Child("signature"), "signature is required"))
	}
	e, err := events.ParseEventSignature(ec.Signature)
	if err != nil {
		return append(allErrors, field.Invalid(path.Child("signature"), ec.Signature, err.Error()))
	}
	if ec.Name != "" && ec.Name != e.Name {
		allErrors = append(allErrors, field.Invalid(path.Child("name"), ec.Name, fmt.Sprintf("does not match signature name '%s'", e.Name)))
	}
	return allErrors
}

type DecoderConfig struct {
	Debug             bool          `json:"debug" yaml:"debug"`
	IncludeSafeEvents bool          `json:"includeSafeEvents" yaml:"includeSafeEvents"`
	Events            []EventConfig `json:"events" yaml:"events"`
}

func (dc *DecoderConfig) Validate() error {
	var allErrors field.ErrorList
	if len(dc.Events) == 0 && !dc.IncludeSafeEvents {
		allErrors = append(allErrors, field.Required(field.NewPath("events"), "at least one event is required"))
	}
	for i := range dc.Events {
		allErrors = append(allErrors, dc.Events[i].Validate(field.NewPath("events").Index(i))...)
	}
	return allErrors.ToAggregate()
}

// BuildEvents parses the configured events, preceded by the Safe events when enabled.
func (dc *DecoderConfig) BuildEvents() ([]*events.Event, error) {
	var out []*events.Event
	if dc.IncludeSafeEvents {
		out = append(out, events.SafeEvents()...)
	}
	for _, ec := range dc.Events {
		e, err := events.ParseEventSignature(ec.Signature)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse event '%s'", ec.Name)
		}
		out = append(out, e)
	}
	return out, nil
}

func NewDecoderConfigFromJsonBytes(data []byte) (*DecoderConfig, error) {
	var c DecoderConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal DecoderConfig from JSON")
	}
	return &c, nil
}

func NewDecoderConfigFromYamlBytes(data []byte) (*DecoderConfig, error) {
	var c DecoderConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal DecoderConfig from YAML")
	}
	return &c, nil
}

// NewDecoderConfig builds a config from flags and environment bound through viper.
func NewDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		Debug:             viper.GetBool(NormalizeFlagName(Debug)),
		IncludeSafeEvents: viper.GetBool(NormalizeFlagName(IncludeSafeEvents)),
	}
}

// ApplyOverrides replaces file values with flags or environment variables that were
// explicitly set. Unset flags keep the file value, so a file without includeSafeEvents
// registers no Safe events unless the flag or env var says otherwise.
func (dc *DecoderConfig) ApplyOverrides() {
	if key := NormalizeFlagName(Debug); viper.IsSet(key) {
		dc.Debug = viper.GetBool(key)
	}
	if key := NormalizeFlagName(IncludeSafeEvents); viper.IsSet(key) {
		dc.IncludeSafeEvents = viper.GetBool(key)
	}
}

var matchNonSnake = regexp.MustCompile(`[^a-z0-9_]`)

// KebabToSnakeCase converts flag names such as "include-safe-events" into viper keys.
func KebabToSnakeCase(s string) string {
	return matchNonSnake.ReplaceAllString(strings.ReplaceAll(strings.ToLower(s), "-", "_"), "_")
}

func NormalizeFlagName(name string) string {
	return KebabToSnakeCase(name)
}
