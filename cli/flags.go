package cli

import (
	"os"

	"github.com/cockroachdb/errors"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/sirupsen/logrus"
)

// Stdin represents source name to read a document from standard input
const Stdin = "-"

// Flags represents command line flags
type Flags struct {
	Version        bool         `short:"v" long:"version"        description:"Print the program version"`
	LogLevel       logrus.Level `short:"l" long:"logLevel"       description:"Logging level. Can be from 0 (least verbose) to 6 (most verbose)"`
	ProgramCfgPath string       `short:"c" long:"programCfgPath" description:"Program config file path to read from or initialize a default"`
	IndentSize     int          `short:"i" long:"indentSize"     description:"Amount of columns forming one nesting level, a tab counts as that many columns. Overrides config value if set"`
	Format         string       `short:"f" long:"format"         description:"Output format. Overrides config value if set" choice:"text" choice:"json" choice:"table"`
	Strict         bool         `short:"s" long:"strict"         description:"Report keys without values and case variants of true, false and null as errors"`
	Numbers        bool         `short:"n" long:"numbers"        description:"Report unquoted numeric values as numbers"`
	Limit          int          `short:"m" long:"limit"          description:"Maximum amount of values to read from every document. Overrides config value if set"`

	Args struct {
		Sources []string `positional-arg-name:"SOURCE" description:"Document file path, URL or '-' for standard input. Built-in sample document is used if none given"`
	} `positional-args:"yes"`
}

// Parse returns a structure initialized with command line arguments and error if parsing failed
func Parse() (Flags, error) {
	return parse(os.Args[1:])
}

// parse returns a structure initialized with <args> and error if parsing failed
func parse(args []string) (Flags, error) {
	flags := Flags{
		// Set defaults
		LogLevel:       logrus.InfoLevel,
		ProgramCfgPath: "simple_yaml_parser.yaml",
	}
	parser := goFlags.NewParser(&flags, goFlags.Options(goFlags.Default))
	_, err := parser.ParseArgs(args)
	return flags, errors.Wrap(err, "Parse CLI arguments")
}

// IsErrOfType returns true if <err> is of type <t>
func IsErrOfType(err error, t goFlags.ErrorType) bool {
	goFlagsErr := &goFlags.Error{}
	if ok := errors.As(err, &goFlagsErr); ok && goFlagsErr.Type == t {
		return true
	}
	return false
}
