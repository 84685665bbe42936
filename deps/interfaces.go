package deps

import (
	"simple_yaml_parser/cfg"
	"simple_yaml_parser/util/logger"
)

// Global represents global dependencies holder interface
type Global interface {
	Log() *logger.Logger
	Cfg() cfg.Root
}
