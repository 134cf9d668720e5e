package duration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// maxExactInt is the largest integer every float64 below it can represent exactly.
const maxExactInt = 1 << 53

// cborEncMode encodes durations deterministically, shrinking floats where lossless.
var cborEncMode cbor.EncMode

// cborDecMode decodes durations.
var cborDecMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		ShortestFloat: cbor.ShortestFloat16,
		NaNConvert:    cbor.NaNConvert7e00,
		InfConvert:    cbor.InfConvertFloat16,
		IndefLength:   cbor.IndefLengthForbidden,
	}
	cborEncMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create duration CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthAllowed,
	}
	cborDecMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create duration CBOR decoder mode: %v", err))
	}
}

// integral returns the millisecond count as an int64 when it is a whole
// number small enough to be exact.
func (d Duration) integral() (int64, bool) {
	if d.ms != math.Trunc(d.ms) || math.Abs(d.ms) >= maxExactInt {
		return 0, false
	}
	return int64(d.ms), true
}

// MarshalText encodes non-negative whole values as "<n>ms", which Parse
// accepts. Anything else is encoded as a plain decimal millisecond count.
func (d Duration) MarshalText() ([]byte, error) {
	if n, ok := d.integral(); ok && n >= 0 {
		return []byte(strconv.FormatInt(n, 10) + string(UnitMillisecond)), nil
	}
	return []byte(strconv.FormatFloat(d.ms, 'f', -1, 64)), nil
}

// UnmarshalText accepts a unit-suffixed string or a plain decimal
// millisecond count.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := parseValue(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// parseValue parses the unit grammar first and falls back to a bare number.
func parseValue(s string) (Duration, error) {
	if ms, err := Parse(s); err == nil {
		return Duration{ms: ms}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Duration{}, &FormatError{Input: s}
	}
	return finite(f, s)
}

// finite rejects NaN and infinite millisecond counts from any decoder.
func finite(ms float64, input string) (Duration, error) {
	if math.IsInf(ms, 0) || math.IsNaN(ms) {
		return Duration{}, &FormatError{Input: input}
	}
	return Duration{ms: ms}, nil
}

// ParseValue parses a unit-suffixed string or a plain finite millisecond
// count such as "1500" or "-2.5".
func ParseValue(s string) (Duration, error) {
	return parseValue(s)
}

// MarshalJSON encodes d as a JSON number of milliseconds.
func (d Duration) MarshalJSON() ([]byte, error) {
	if n, ok := d.integral(); ok {
		return []byte(strconv.FormatInt(n, 10)), nil
	}
	return json.Marshal(d.ms)
}

// UnmarshalJSON accepts a number of milliseconds, a string understood by
// UnmarshalText, or an object of Components.
func (d *Duration) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("decoding duration: empty JSON value")
	}

	switch data[0] {
	case 'n':
		// null leaves d unchanged, as encoding/json does for other types.
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding duration: %w", err)
		}
		return d.UnmarshalText([]byte(s))
	case '{':
		var c Components
		if err := json.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("decoding duration components: %w", err)
		}
		v, err := finite(c.Total(), fmt.Sprintf("%+v", c))
		if err != nil {
			return err
		}
		*d = v
		return nil
	}

	var ms float64
	if err := json.Unmarshal(data, &ms); err != nil {
		return fmt.Errorf("decoding duration: %w", err)
	}
	*d = Duration{ms: ms}
	return nil
}

// MarshalYAML encodes d as a YAML number of milliseconds.
func (d Duration) MarshalYAML() (any, error) {
	if n, ok := d.integral(); ok {
		return n, nil
	}
	return d.ms, nil
}

// UnmarshalYAML accepts a number of milliseconds, a string understood by
// UnmarshalText, or a mapping of Components.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!null":
			return nil
		case "!!int", "!!float":
			var ms float64
			if err := node.Decode(&ms); err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			v, err := finite(ms, node.Value)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			*d = v
			return nil
		default:
			v, err := parseValue(node.Value)
			if err != nil {
				return fmt.Errorf("line %d: %w", node.Line, err)
			}
			*d = v
			return nil
		}
	case yaml.MappingNode:
		var c Components
		if err := node.Decode(&c); err != nil {
			return fmt.Errorf("line %d: decoding duration components: %w", node.Line, err)
		}
		v, err := finite(c.Total(), fmt.Sprintf("%+v", c))
		if err != nil {
			return fmt.Errorf("line %d: %w", node.Line, err)
		}
		*d = v
		return nil
	case yaml.AliasNode:
		return d.UnmarshalYAML(node.Alias)
	default:
		return fmt.Errorf("line %d: cannot decode YAML node kind %d as duration", node.Line, node.Kind)
	}
}

// MarshalCBOR encodes d as a CBOR float of milliseconds.
func (d Duration) MarshalCBOR() ([]byte, error) {
	return cborEncMode.Marshal(d.ms)
}

// cborMajorMap is the CBOR major type of maps.
const cborMajorMap = 5

// UnmarshalCBOR accepts any CBOR number, a text string understood by
// UnmarshalText, or a map of Components keyed by integer.
func (d *Duration) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return fmt.Errorf("decoding duration: empty CBOR item")
	}

	if data[0]>>5 == cborMajorMap {
		var c Components
		if err := cborDecMode.Unmarshal(data, &c); err != nil {
			return fmt.Errorf("decoding duration components: %w", err)
		}
		v, err := finite(c.Total(), fmt.Sprintf("%+v", c))
		if err != nil {
			return err
		}
		*d = v
		return nil
	}

	var v any
	if err := cborDecMode.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding duration: %w", err)
	}

	var ms float64
	switch x := v.(type) {
	case nil:
		return nil
	case uint64:
		ms = float64(x)
	case int64:
		ms = float64(x)
	case float64:
		ms = x
	case float32:
		ms = float64(x)
	case string:
		return d.UnmarshalText([]byte(x))
	default:
		return fmt.Errorf("decoding duration: unsupported CBOR value of type %T", v)
	}

	out, err := finite(ms, strconv.FormatFloat(ms, 'g', -1, 64))
	if err != nil {
		return err
	}
	*d = out
	return nil
}

// EncodeCBOR encodes d with the package's deterministic CBOR mode.
func EncodeCBOR(d Duration) ([]byte, error) {
	return cborEncMode.Marshal(d)
}

// DecodeCBOR decodes a CBOR item produced by EncodeCBOR or any CBOR number.
func DecodeCBOR(data []byte) (Duration, error) {
	var d Duration
	if err := cborDecMode.Unmarshal(data, &d); err != nil {
		return Duration{}, err
	}
	return d, nil
}
