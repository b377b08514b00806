package simulator

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"

	"github.com/deanturpin/lft/internal/exitengine"
	"github.com/deanturpin/lft/internal/strategy"
	"github.com/deanturpin/lft/pkg/errors"
)

// Config is the immutable parameter set for one simulation run. Passing it
// in at construction rather than reading ambient state lets concurrent runs
// use different parameters.
type Config struct {
	// InitialCapital is the starting cash in USD.
	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital" validate:"gt=0" jsonschema:"title=Initial Capital,description=Starting cash for the run in USD,minimum=0"`
	// Notional is the dollar amount used to size each fractional-share
	// purchase.
	Notional float64 `yaml:"notional" json:"notional" validate:"gt=0" jsonschema:"title=Notional,description=Dollar amount per trade,minimum=0"`
	// MaxHoldBars forces a timed exit after this many ticks. 0 disables the
	// cutoff.
	MaxHoldBars int `yaml:"max_hold_bars" json:"max_hold_bars" validate:"gte=0" jsonschema:"title=Max Hold Bars,description=Force an exit after this many bars (0 disables)"`
	// MinConfidence is the confidence floor a signal must meet to open a
	// position. 0 treats confidence as purely advisory.
	MinConfidence float64 `yaml:"min_confidence" json:"min_confidence" validate:"gte=0,lte=1" jsonschema:"title=Min Confidence,description=Entry confidence floor in [0-1]"`
	// Exits holds the base take-profit, stop-loss and trailing-stop
	// thresholds. Take-profit and stop-loss widen with intrabar noise.
	Exits exitengine.Config `yaml:"exits" json:"exits" validate:"required"`
	// Spreads maps instrument classes to bid/ask spread fractions.
	Spreads exitengine.SpreadModel `yaml:"spreads" json:"spreads"`
	// Signals holds the strategy thresholds.
	Signals strategy.Config `yaml:"signals" json:"signals" validate:"required"`
	// StartTime and EndTime optionally clamp the replayed window.
	StartTime optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start of the replayed period"`
	EndTime   optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end of the replayed period"`
}

// DefaultConfig returns the parameters used by the live trader: $10k
// capital, $100 notional, two-hour hold limit on one-minute bars.
func DefaultConfig() Config {
	return Config{
		InitialCapital: 10000,
		Notional:       100,
		MaxHoldBars:    120,
		MinConfidence:  0,
		Exits:          exitengine.DefaultConfig(),
		Spreads:        exitengine.DefaultSpreadModel(),
		Signals:        strategy.DefaultConfig(),
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid simulator config", err)
	}

	if err := c.Spreads.Validate(); err != nil {
		return err
	}

	return nil
}

// UnmarshalYAML implements custom unmarshaling for Config.
func (c *Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type plainConfig struct {
		InitialCapital float64                `yaml:"initial_capital"`
		Notional       float64                `yaml:"notional"`
		MaxHoldBars    int                    `yaml:"max_hold_bars"`
		MinConfidence  float64                `yaml:"min_confidence"`
		Exits          exitengine.Config      `yaml:"exits"`
		Spreads        exitengine.SpreadModel `yaml:"spreads"`
		Signals        strategy.Config        `yaml:"signals"`
		StartTime      *time.Time             `yaml:"start_time"`
		EndTime        *time.Time             `yaml:"end_time"`
	}

	var config plainConfig
	if err := unmarshal(&config); err != nil {
		return err
	}

	c.InitialCapital = config.InitialCapital
	c.Notional = config.Notional
	c.MaxHoldBars = config.MaxHoldBars
	c.MinConfidence = config.MinConfidence
	c.Exits = config.Exits
	c.Spreads = config.Spreads
	c.Signals = config.Signals

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config.
func (c *Config) GenerateSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(c)
	schema.Title = "simulator-config"
	schema.Description = "Configuration schema for the replay simulator"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON generates an indented JSON schema string for the
// Config.
func (c *Config) GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(c.GenerateSchema(), "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}
