// Package codec holds the JSON serialization settings shared by a store and
// its backends.
//
// A Config is an immutable value. Default returns the shared default
// settings; With returns a modified copy and never changes the receiver, so a
// Config can be passed between goroutines and components freely:
//
//	pretty := codec.Default().With(codec.WithIndent("  "))
//	data, err := pretty.Marshal(doc)
package codec

import (
	"bytes"
	"errors"
	"io"

	json "github.com/goccy/go-json"
)

// ErrTrailingData is returned by Unmarshal when data holds more than one JSON value.
var ErrTrailingData = errors.New("codec: unexpected data after top-level JSON value")

// Config describes how documents are encoded and decoded.
type Config struct {
	indent                string
	escapeHTML            bool
	disallowUnknownFields bool
	useNumber             bool
}

// Option changes one setting of a Config copy.
type Option func(*Config)

var defaultConfig = Config{
	escapeHTML: false,
	useNumber:  true,
}

// Default returns the shared default configuration: compact output, no HTML
// escaping, numbers decoded into interface values as json.Number, and
// unknown fields ignored.
func Default() Config {
	return defaultConfig
}

// NewDefault builds a fresh configuration with the default settings.
func NewDefault() Config {
	return Config{
		escapeHTML: defaultConfig.escapeHTML,
		useNumber:  defaultConfig.useNumber,
	}
}

// With returns a copy of c with opts applied.
func (c Config) With(opts ...Option) Config {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// WithIndent pretty-prints output using indent for each nesting level.
func WithIndent(indent string) Option {
	return func(c *Config) { c.indent = indent }
}

// WithEscapeHTML escapes <, > and & inside strings.
func WithEscapeHTML(escape bool) Option {
	return func(c *Config) { c.escapeHTML = escape }
}

// WithDisallowUnknownFields makes decoding into structs fail on fields the
// struct does not declare.
func WithDisallowUnknownFields(disallow bool) Option {
	return func(c *Config) { c.disallowUnknownFields = disallow }
}

// WithUseNumber decodes numbers held in interface values as json.Number
// instead of float64.
func WithUseNumber(use bool) Option {
	return func(c *Config) { c.useNumber = use }
}

func (c Config) Indent() string              { return c.indent }
func (c Config) EscapeHTML() bool            { return c.escapeHTML }
func (c Config) DisallowUnknownFields() bool { return c.disallowUnknownFields }
func (c Config) UseNumber() bool             { return c.useNumber }

// Marshal encodes v without a trailing newline.
func (c Config) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes data, which must hold exactly one JSON value, into v.
// v is left untouched when data is not valid JSON.
func (c Config) Unmarshal(data []byte, v any) error {
	if !json.Valid(data) {
		if err := c.Decode(bytes.NewReader(data), new(any)); err != nil {
			return err
		}
		return ErrTrailingData
	}
	return c.Decode(bytes.NewReader(data), v)
}

// Encode writes v to w followed by a newline.
func (c Config) Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(c.escapeHTML)
	if c.indent != "" {
		enc.SetIndent("", c.indent)
	}
	return enc.Encode(v)
}

// Decode reads the next JSON value from r into v.
func (c Config) Decode(r io.Reader, v any) error {
	dec := json.NewDecoder(r)
	if c.disallowUnknownFields {
		dec.DisallowUnknownFields()
	}
	if c.useNumber {
		dec.UseNumber()
	}
	return dec.Decode(v)
}

// Valid reports whether data is a single well-formed JSON value.
func Valid(data []byte) bool {
	return json.Valid(data)
}
