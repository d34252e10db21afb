package pipeline

const (
	// DefaultThousandsSeparator is used by the numeric variant when no
	// separator is configured.
	DefaultThousandsSeparator = ","
	// DefaultDecimalsSeparator is used by the numeric variant when no
	// separator is configured.
	DefaultDecimalsSeparator = "."
)

// Restrictor vets a candidate state value on every change. Returning false
// drops the change.
type Restrictor func(value any) bool

// Modifier transforms a value on its way to the element (display) or to the
// state (commit).
type Modifier func(value any) any

// Config describes the formatting and validation knobs of a field binding.
// The zero value is valid. Function-valued knobs cannot be decoded from
// documents; see Registry for the named equivalents.
type Config struct {
	// ThousandsSeparator is inserted into the integer part by the numeric
	// variant. Defaults to ",".
	ThousandsSeparator string `json:"thousandsSeparator,omitempty" yaml:"thousandsSeparator,omitempty"`
	// DecimalsSeparator separates the fractional part for display. Defaults
	// to ".".
	DecimalsSeparator string `json:"decimalsSeparator,omitempty" yaml:"decimalsSeparator,omitempty"`
	// MaxDecimalPlaces rejects candidates with more fractional digits. Zero
	// also rejects any candidate containing a decimal point.
	MaxDecimalPlaces *int `json:"maxDecimalPlaces,omitempty" yaml:"maxDecimalPlaces,omitempty"`
	// MaxIntegerLength rejects candidates with more integer digits.
	MaxIntegerLength *int `json:"maxIntegerLength,omitempty" yaml:"maxIntegerLength,omitempty"`
	// OnlyPositives rejects negative candidates, including a bare "-".
	OnlyPositives bool `json:"onlyPositives,omitempty" yaml:"onlyPositives,omitempty"`
	// NumberOfDecimalsAlwaysAppearing pads the displayed fractional part
	// with trailing zeros.
	NumberOfDecimalsAlwaysAppearing int `json:"numberOfDecimalsAlwaysAppearing,omitempty" yaml:"numberOfDecimalsAlwaysAppearing,omitempty"`
	// ElementValueForUndefinedOrNull replaces the empty display string when
	// the formatted value is nil.
	ElementValueForUndefinedOrNull *string `json:"elementValueForUndefinedOrNull,omitempty" yaml:"elementValueForUndefinedOrNull,omitempty"`
	// IsCheckbox forces the boolean (checked) prop shape. When nil it is
	// inferred from the current value.
	IsCheckbox *bool `json:"isCheckbox,omitempty" yaml:"isCheckbox,omitempty"`

	ValueRestrictors      []Restrictor `json:"-" yaml:"-"`
	ElementValueModifiers []Modifier   `json:"-" yaml:"-"`
	StateModifiers        []Modifier   `json:"-" yaml:"-"`
}

// Settings is a fully resolved Config. Every transformation consumes Settings
// so that defaults are decided in exactly one place.
type Settings struct {
	ThousandsSeparator              string
	DecimalsSeparator               string
	MaxDecimalPlaces                *int
	MaxIntegerLength                *int
	OnlyPositives                   bool
	NumberOfDecimalsAlwaysAppearing int
	EmptyValue                      string
	Checkbox                        bool

	Restrictors      []Restrictor
	ElementModifiers []Modifier
	StateModifiers   []Modifier
}

// Resolve fills in defaults and decides the checkbox shape. current is the
// field's present value (already unwrapped from any updatable wrapper) and is
// only consulted when IsCheckbox is unset.
func (c Config) Resolve(current any) Settings {
	s := Settings{
		ThousandsSeparator:              c.ThousandsSeparator,
		DecimalsSeparator:               c.DecimalsSeparator,
		MaxDecimalPlaces:                cloneInt(c.MaxDecimalPlaces),
		MaxIntegerLength:                cloneInt(c.MaxIntegerLength),
		OnlyPositives:                   c.OnlyPositives,
		NumberOfDecimalsAlwaysAppearing: c.NumberOfDecimalsAlwaysAppearing,
		Restrictors:                     append([]Restrictor(nil), c.ValueRestrictors...),
		ElementModifiers:                append([]Modifier(nil), c.ElementValueModifiers...),
		StateModifiers:                  append([]Modifier(nil), c.StateModifiers...),
	}
	if s.ThousandsSeparator == "" {
		s.ThousandsSeparator = DefaultThousandsSeparator
	}
	if s.DecimalsSeparator == "" {
		s.DecimalsSeparator = DefaultDecimalsSeparator
	}
	if s.NumberOfDecimalsAlwaysAppearing < 0 {
		s.NumberOfDecimalsAlwaysAppearing = 0
	}
	if c.ElementValueForUndefinedOrNull != nil {
		s.EmptyValue = *c.ElementValueForUndefinedOrNull
	}
	if c.IsCheckbox != nil {
		s.Checkbox = *c.IsCheckbox
	} else {
		_, s.Checkbox = current.(bool)
	}
	return s
}

// Merge overlays the non-zero knobs of other onto c. Function lists are
// appended.
func (c Config) Merge(other Config) Config {
	out := c
	if other.ThousandsSeparator != "" {
		out.ThousandsSeparator = other.ThousandsSeparator
	}
	if other.DecimalsSeparator != "" {
		out.DecimalsSeparator = other.DecimalsSeparator
	}
	if other.MaxDecimalPlaces != nil {
		out.MaxDecimalPlaces = cloneInt(other.MaxDecimalPlaces)
	}
	if other.MaxIntegerLength != nil {
		out.MaxIntegerLength = cloneInt(other.MaxIntegerLength)
	}
	if other.OnlyPositives {
		out.OnlyPositives = true
	}
	if other.NumberOfDecimalsAlwaysAppearing != 0 {
		out.NumberOfDecimalsAlwaysAppearing = other.NumberOfDecimalsAlwaysAppearing
	}
	if other.ElementValueForUndefinedOrNull != nil {
		value := *other.ElementValueForUndefinedOrNull
		out.ElementValueForUndefinedOrNull = &value
	}
	if other.IsCheckbox != nil {
		value := *other.IsCheckbox
		out.IsCheckbox = &value
	}
	out.ValueRestrictors = append(append([]Restrictor(nil), c.ValueRestrictors...), other.ValueRestrictors...)
	out.ElementValueModifiers = append(append([]Modifier(nil), c.ElementValueModifiers...), other.ElementValueModifiers...)
	out.StateModifiers = append(append([]Modifier(nil), c.StateModifiers...), other.StateModifiers...)
	return out
}

// Int returns a pointer to v, for the optional integer knobs.
func Int(v int) *int {
	return &v
}

// Bool returns a pointer to v, for IsCheckbox.
func Bool(v bool) *bool {
	return &v
}

// String returns a pointer to v, for ElementValueForUndefinedOrNull.
func String(v string) *string {
	return &v
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
