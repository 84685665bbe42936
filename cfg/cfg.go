package cfg

import (
	_ "embed"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"

	"simple_yaml_parser/util/logger"
)

//go:embed default.yaml
var defCfgBytes []byte

// Root represents root settings of the program
type Root struct {
	Scanner Scanner `koanf:"scanner"`
	Output  Output  `koanf:"output"`
	Source  Source  `koanf:"source"`
}

// Scanner represents document scanning settings
type Scanner struct {
	// IndentSize represents amount of columns forming one nesting level, a tab character counts as that many columns
	IndentSize int `koanf:"indent_size"`

	// Strict specifies if keys without values and case variants of true, false and null should be reported as errors
	Strict bool `koanf:"strict"`

	// DetectNumbers specifies if unquoted numeric scalars should be reported as numbers instead of strings
	DetectNumbers bool `koanf:"detect_numbers"`
}

// Output represents settings of the scan results output
type Output struct {
	// Format represents output format, can be one of: text, json, table
	Format Format `koanf:"format"`

	// Color specifies if text output should be colored
	Color bool `koanf:"color"`

	// RenderMultiline specifies if block scalars should be printed dedented (and folded) instead of raw
	RenderMultiline bool `koanf:"render_multiline"`

	// Limit represents maximum amount of values to read from every document. 0 means no limit.
	Limit int `koanf:"limit"`
}

// Source represents settings of reading documents
type Source struct {
	// RespTimeout represents response timeout for documents given as URL
	RespTimeout time.Duration `koanf:"resp_timeout"`

	// Insecure specifies if TLS certificates of documents given as URL should not be verified
	Insecure bool `koanf:"insecure"`

	// Workers represents amount of documents to scan simultaneously
	Workers int `koanf:"workers"`
}

// Format represents output format
type Format string

const (
	Text  Format = "text"
	JSON  Format = "json"
	Table Format = "table"
)

// Formats returns every supported output format
func Formats() []Format {
	return []Format{Text, JSON, Table}
}

// DamagedConfigError represents error thrown if program config is missing unexpected fields
type DamagedConfigError struct {
	MissingFields []string
}

// Error is used to satisfy golang error interface
func (e DamagedConfigError) Error() string {
	msg := "Existing program config is missing unexpected fields. Create new config or add missing fields manually"
	return fmt.Sprintf("%v: %v", msg, strings.Join(e.MissingFields, ", "))
}

// BadValueError represents error thrown if program config has invalid value
type BadValueError struct {
	Field  string
	Value  any
	Reason string
}

// Error is used to satisfy golang error interface
func (e BadValueError) Error() string {
	return fmt.Sprintf("%v: %v; Value: %v", e.Field, e.Reason, e.Value)
}

// Init returns config instance and false if config at <cfgFilePath> already exist.
//
// If config does not exist, creates a default, returns empty instance and true.
//
// Can return errors defined in this package: DamagedConfigError, BadValueError.
func Init(log *logger.Logger, cfgFilePath string) (Root, bool, error) {
	log.Info("Reading program config")

	ko := koanf.New(".")

	loadConfig := func() error {
		return ko.Load(file.Provider(cfgFilePath), yaml.Parser())
	}

	writeDefConfig := func() error {
		return os.WriteFile(cfgFilePath, defCfgBytes, 0644)
	}

	// Load config file into koanf or create a new if not exist
	var root Root
	if err := loadConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("Config file not found, creating a default")
			if err := writeDefConfig(); err != nil {
				return root, false, errors.Wrap(err, "Write default config")
			}
			return root, true, nil
		} else {
			return root, false, errors.Wrap(err, "Load config")
		}
	}

	// Decode loaded config file into structure
	decoder := mapstructure.ComposeDecodeHookFunc(
		// Lowercase output format
		func(from, to reflect.Type, fromData any) (any, error) {
			if to == reflect.TypeOf(Format("")) && from.Kind() == reflect.String {
				return Format(strings.ToLower(reflect.ValueOf(fromData).String())), nil
			}
			return fromData, nil
		},
		// Default decoders
		mapstructure.StringToTimeDurationHookFunc(),
	)
	metadata := mapstructure.Metadata{}
	err := ko.UnmarshalWithConf("", &root, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:           decoder,
			ErrorUnused:          true,
			IgnoreUntaggedFields: true,
			Metadata:             &metadata,
			Result:               &root,
			WeaklyTypedInput:     true,
			ZeroFields:           true,
		},
	})
	if err != nil {
		return root, false, errors.Wrap(err, "Decode config")
	}

	// Fields added after the first release can be missing, others mean the config is damaged
	defCfg := NewDefCfg()
	knownFields := map[string]func(){
		"output.render_multiline": func() { root.Output.RenderMultiline = defCfg.Output.RenderMultiline },
		"output.limit":            func() { root.Output.Limit = defCfg.Output.Limit },
		"source.insecure":         func() { root.Source.Insecure = defCfg.Source.Insecure },
		"source.workers":          func() { root.Source.Workers = defCfg.Source.Workers },
	}
	missingFields, _ := lo.Difference(metadata.Unset, lo.Keys(knownFields))
	if len(missingFields) > 0 {
		err := DamagedConfigError{MissingFields: missingFields}
		return root, false, errors.Wrap(err, "Check config")
	}
	for _, field := range metadata.Unset {
		log.WarnFi("Config is missing field, using default value", "field", field)
		knownFields[field]()
	}

	if err := root.Validate(); err != nil {
		return root, false, errors.Wrap(err, "Validate config")
	}

	return root, false, nil
}

// Validate returns BadValueError if any setting of <r> is out of range
func (r Root) Validate() error {
	if r.Scanner.IndentSize < 1 {
		return BadValueError{Field: "scanner.indent_size", Value: r.Scanner.IndentSize, Reason: "Should be positive"}
	}
	if !lo.Contains(Formats(), r.Output.Format) {
		reason := fmt.Sprintf("Should be one of %v", Formats())
		return BadValueError{Field: "output.format", Value: r.Output.Format, Reason: reason}
	}
	if r.Output.Limit < 0 {
		return BadValueError{Field: "output.limit", Value: r.Output.Limit, Reason: "Should not be negative"}
	}
	if r.Source.RespTimeout <= 0 {
		return BadValueError{Field: "source.resp_timeout", Value: r.Source.RespTimeout, Reason: "Should be positive"}
	}
	if r.Source.Workers < 1 {
		return BadValueError{Field: "source.workers", Value: r.Source.Workers, Reason: "Should be positive"}
	}
	return nil
}

// NewDefCfg returns default config as written in "default.yaml" file
func NewDefCfg() Root {
	return Root{
		Scanner: Scanner{
			IndentSize:    2,
			Strict:        false,
			DetectNumbers: false,
		},
		Output: Output{
			Format:          Text,
			Color:           true,
			RenderMultiline: true,
			Limit:           0,
		},
		Source: Source{
			RespTimeout: time.Second * 10,
			Insecure:    false,
			Workers:     4,
		},
	}
}
