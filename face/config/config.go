// Package config turns a raw, decoded configuration document into a
// validated component.ClockConfig.
//
// The raw form is the nested map/slice shape produced by encoding/json,
// gopkg.in/yaml.v3 or BurntSushi/toml. Validation stops at the first problem.
package config

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strings"

	"clockface/face/clockmath"
	"clockface/face/component"
)

// ConfigError reports the first invalid or missing field.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

const (
	minTimezone = -12
	maxTimezone = 14

	maxScale    = 16
	maxDecimals = 6
	maxNotches  = 360
	maxWidth    = 16

	// DefaultBorderColor is white in RGB565.
	DefaultBorderColor component.Color = 0xFFFF
)

// Load validates raw and builds the clock configuration.
func Load(raw map[string]any) (*component.ClockConfig, error) {
	if raw == nil {
		return nil, &ConfigError{Reason: "empty configuration"}
	}
	r := &reader{obj: raw}

	cfg := &component.ClockConfig{
		Orientation: r.intRange("orientation", 0, 3),
		Background:  r.color("background"),
	}
	items := r.list("components")
	if r.err != nil {
		return nil, r.err
	}

	cfg.Components = make([]component.Component, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("components[%d]", i)
		obj, ok := asObject(item)
		if !ok {
			return nil, &ConfigError{Field: path, Reason: "must be an object"}
		}
		c, err := loadComponent(path, obj)
		if err != nil {
			return nil, err
		}
		cfg.Components = append(cfg.Components, c)
	}

	if sub, ok := r.optionalObject("sleep"); ok {
		sr := &reader{obj: sub, prefix: "sleep."}
		cfg.Sleep = &component.SleepWindow{
			Start:          sr.intRange("start", 0, 23),
			End:            sr.intRange("end", 0, 23),
			TimezoneOffset: sr.optIntRange(0, minTimezone, maxTimezone, "timezone_offset", "timezone"),
		}
		if sr.err != nil {
			return nil, sr.err
		}
	}
	if sub, ok := r.optionalObject("network"); ok {
		nr := &reader{obj: sub, prefix: "network."}
		cfg.Network = &component.Network{
			SSID:     nr.str("ssid"),
			Password: nr.optStr("password"),
		}
		if nr.err != nil {
			return nil, nr.err
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return cfg, nil
}

func loadComponent(path string, obj map[string]any) (component.Component, error) {
	r := &reader{obj: obj, prefix: path + "."}

	kind := component.Kind(r.str("type"))
	if r.err != nil {
		return nil, r.err
	}
	if !knownKind(kind) {
		return nil, &ConfigError{
			Field:  path + ".type",
			Reason: fmt.Sprintf("unknown component type %q (want one of %s)", kind, kindList()),
		}
	}

	common := component.Common{
		Position:       r.point("position"),
		Color:          r.color("color"),
		TimezoneOffset: r.optIntRange(0, minTimezone, maxTimezone, "timezone_offset", "timezone"),
	}

	var c component.Component
	switch kind {
	case component.KindDigitalDateTime:
		c = &component.DigitalDateTime{
			Common: common,
			Format: r.str("format"),
			Scale:  r.optIntRange(1, 1, maxScale, "scale"),
		}
	case component.KindCountdownTimer:
		c = &component.CountdownTimer{
			Common:   common,
			Deadline: r.deadline(0),
			Format:   r.str("format"),
			Scale:    r.optIntRange(1, 1, maxScale, "scale"),
		}
	case component.KindBarCountdown:
		c = &component.BarCountdown{
			Common:      common,
			Deadline:    r.deadline(1),
			Size:        r.size("size"),
			Direction:   r.intRange("direction", 0, 3),
			Countup:     r.optFlag("countup"),
			BorderColor: r.optColor(DefaultBorderColor, "border_color"),
		}
	case component.KindPercentCountdown:
		c = &component.PercentCountdown{
			Common:   common,
			Deadline: r.deadline(1),
			Decimals: r.intRange("decimals", 0, maxDecimals),
			Countup:  r.optFlag("countup"),
			Scale:    r.optIntRange(1, 1, maxScale, "scale"),
		}
	case component.KindAnalogHand:
		c = &component.AnalogHand{
			Common:          common,
			Length:          r.intRange("length", 1, math.MaxInt16),
			Width:           r.optIntRange(1, 1, maxWidth, "width"),
			DurationSeconds: r.intRangeAlias(1, math.MaxInt32, "duration_seconds", "duration"),
		}
	case component.KindFaceCircle:
		fc := &component.FaceCircle{
			Common:  common,
			Radius:  r.intRange("radius", 1, math.MaxInt16),
			Notches: r.intRange("notches", 0, maxNotches),
			Style:   component.FaceStyle(r.intRange("style", 0, 3)),
			Length:  r.intRange("length", 0, math.MaxInt16),
		}
		if r.err == nil && fc.Length > fc.Radius {
			r.fail("length", fmt.Sprintf("must not exceed radius %d", fc.Radius), nil)
		}
		c = fc
	default:
		return nil, fmt.Errorf("config: unhandled kind %q", kind)
	}
	if r.err != nil {
		return nil, r.err
	}
	return c, nil
}

func knownKind(k component.Kind) bool {
	for _, known := range component.Kinds {
		if k == known {
			return true
		}
	}
	return false
}

func kindList() string {
	names := make([]string, len(component.Kinds))
	for i, k := range component.Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// reader pulls typed fields out of one object. The first failure sticks and
// every later call returns a zero value.
type reader struct {
	obj    map[string]any
	prefix string
	err    error
}

func (r *reader) fail(field, reason string, err error) {
	if r.err != nil {
		return
	}
	r.err = &ConfigError{Field: r.prefix + field, Reason: reason, Err: err}
}

// lookup returns the first present key of names.
func (r *reader) lookup(names ...string) (string, any, bool) {
	for _, n := range names {
		if v, ok := r.obj[n]; ok && v != nil {
			return n, v, true
		}
	}
	return names[0], nil, false
}

func (r *reader) str(name string) string {
	if r.err != nil {
		return ""
	}
	v, ok := r.obj[name]
	if !ok || v == nil {
		r.fail(name, "is required", nil)
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, fmt.Sprintf("must be a string, got %T", v), nil)
		return ""
	}
	if strings.TrimSpace(s) == "" {
		r.fail(name, "must not be empty", nil)
		return ""
	}
	return s
}

func (r *reader) optStr(name string) string {
	if r.err != nil {
		return ""
	}
	v, ok := r.obj[name]
	if !ok || v == nil {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail(name, fmt.Sprintf("must be a string, got %T", v), nil)
		return ""
	}
	return s
}

func (r *reader) intRange(name string, lo, hi int) int {
	return r.intRangeAlias(lo, hi, name)
}

func (r *reader) intRangeAlias(lo, hi int, names ...string) int {
	if r.err != nil {
		return 0
	}
	name, v, ok := r.lookup(names...)
	if !ok {
		r.fail(name, "is required", nil)
		return 0
	}
	return r.checkRange(name, v, lo, hi)
}

func (r *reader) optIntRange(def, lo, hi int, names ...string) int {
	if r.err != nil {
		return 0
	}
	name, v, ok := r.lookup(names...)
	if !ok {
		return def
	}
	return r.checkRange(name, v, lo, hi)
}

func (r *reader) checkRange(name string, v any, lo, hi int) int {
	n, ok := toInt(v)
	if !ok {
		r.fail(name, fmt.Sprintf("must be an integer, got %v", v), nil)
		return 0
	}
	if n < int64(lo) || n > int64(hi) {
		r.fail(name, fmt.Sprintf("%d out of range %d..%d", n, lo, hi), nil)
		return 0
	}
	return int(n)
}

func (r *reader) color(name string) component.Color {
	if r.err != nil {
		return 0
	}
	v, ok := r.obj[name]
	if !ok || v == nil {
		r.fail(name, "is required", nil)
		return 0
	}
	return r.checkColor(name, v)
}

func (r *reader) optColor(def component.Color, name string) component.Color {
	if r.err != nil {
		return 0
	}
	v, ok := r.obj[name]
	if !ok || v == nil {
		return def
	}
	return r.checkColor(name, v)
}

func (r *reader) checkColor(name string, v any) component.Color {
	n, ok := toInt(v)
	if !ok || n < 0 || n > math.MaxUint32 {
		r.fail(name, fmt.Sprintf("must be a color value 0..%d, got %v", uint32(math.MaxUint32), v), nil)
		return 0
	}
	return component.Color(n)
}

func (r *reader) optFlag(name string) bool {
	if r.err != nil {
		return false
	}
	v, ok := r.obj[name]
	if !ok || v == nil {
		return false
	}
	if b, ok := v.(bool); ok {
		return b
	}
	n, ok := toInt(v)
	if !ok || (n != 0 && n != 1) {
		r.fail(name, fmt.Sprintf("must be a boolean or 0/1, got %v", v), nil)
		return false
	}
	return n == 1
}

func (r *reader) pair(name string) (int, int) {
	if r.err != nil {
		return 0, 0
	}
	v, ok := r.obj[name]
	if !ok || v == nil {
		r.fail(name, "is required", nil)
		return 0, 0
	}
	items, ok := asList(v)
	if !ok || len(items) != 2 {
		r.fail(name, "must be a two-element integer array", nil)
		return 0, 0
	}
	a, okA := toInt(items[0])
	b, okB := toInt(items[1])
	if !okA || !okB || a < math.MinInt16 || a > math.MaxInt16 || b < math.MinInt16 || b > math.MaxInt16 {
		r.fail(name, "must be a two-element integer array", nil)
		return 0, 0
	}
	return int(a), int(b)
}

func (r *reader) point(name string) clockmath.Point {
	x, y := r.pair(name)
	return clockmath.Point{X: x, Y: y}
}

func (r *reader) size(name string) component.Size {
	w, h := r.pair(name)
	if r.err == nil && (w < 1 || h < 1) {
		r.fail(name, fmt.Sprintf("must be positive, got %dx%d", w, h), nil)
	}
	return component.Size{W: w, H: h}
}

func (r *reader) deadline(minRepetition int) component.Deadline {
	var d component.Deadline
	s := r.str("end_date")
	if r.err != nil {
		return d
	}
	dt, err := clockmath.ParseDateTime(s)
	if err != nil {
		r.fail("end_date", err.Error(), err)
		return d
	}
	d.EndDate = dt
	d.RepetitionDays = r.intRangeAlias(minRepetition, 36600, "repetition_days", "repetition")
	return d
}

func (r *reader) list(name string) []any {
	if r.err != nil {
		return nil
	}
	v, ok := r.obj[name]
	if !ok || v == nil {
		r.fail(name, "is required", nil)
		return nil
	}
	items, ok := asList(v)
	if !ok {
		r.fail(name, fmt.Sprintf("must be an array, got %T", v), nil)
		return nil
	}
	return items
}

func (r *reader) optionalObject(name string) (map[string]any, bool) {
	if r.err != nil {
		return nil, false
	}
	v, ok := r.obj[name]
	if !ok || v == nil {
		return nil, false
	}
	obj, ok := asObject(v)
	if !ok {
		r.fail(name, fmt.Sprintf("must be an object, got %T", v), nil)
		return nil, false
	}
	return obj, true
}

func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = val
		}
		return out, true
	}
	return nil, false
}

// asList accepts any slice or array; decoders differ in element types.
func asList(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func toInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), n <= math.MaxInt64
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		return int64(n), n <= math.MaxInt64
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}
	return 0, false
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, false
	}
	return int64(f), true
}
