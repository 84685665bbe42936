package main

import (
	"fmt"
	"io"
	"os"

	"github.com/adampresley/sigint"
	goFlags "github.com/jessevdk/go-flags"
	"github.com/samber/lo"

	"simple_yaml_parser/batch"
	"simple_yaml_parser/cfg"
	"simple_yaml_parser/cli"
	"simple_yaml_parser/printer"
	"simple_yaml_parser/source"
	"simple_yaml_parser/util/copier"
	"simple_yaml_parser/util/logger"
	"simple_yaml_parser/util/network"
	"simple_yaml_parser/util/tw"
)

const version = "v1.0.0"

func main() {
	os.Exit(run(os.Stdout))
}

// run scans documents given in command line arguments, writes results to <out> and returns exit code
func run(out io.Writer) int {
	// Init logger
	log := logger.New(logger.InfoLevel)

	// Parse command line arguments
	log.Debug("Parsing command line arguments")
	flags, err := cli.Parse()
	if flags.Version {
		fmt.Fprintln(out, version)
		return 0
	}
	if cli.IsErrOfType(err, goFlags.ErrHelp) {
		// Help message will be prined by go-flags
		return 0
	}
	if err != nil {
		log.Error(err)
		return 2
	}
	log.SetLevel(flags.LogLevel)

	// Read program config
	programCfg, isNewCfg, err := cfg.Init(log, flags.ProgramCfgPath)
	if err != nil {
		log.Error(err)
		return 2
	}
	if isNewCfg {
		log.Infof("New config is written to %v, please verify it and start this program again", flags.ProgramCfgPath)
		return 0
	}
	programCfg = applyFlags(programCfg, flags)
	if err := programCfg.Validate(); err != nil {
		log.Error(err)
		return 2
	}

	// Scan documents, finishing early on interrupt
	httpClient := network.NewHttpClient(programCfg.Source.Insecure, programCfg.Source.RespTimeout)
	batchRepo := batch.NewRepo(log, programCfg, httpClient)
	sigint.ListenForSIGINT(func() {
		log.Warn("Interrupted, finishing current documents")
		batchRepo.Stop()
	})

	var results []batch.Result
	if sources := flags.Args.Sources; len(sources) > 0 {
		log.InfoFi("Scanning documents", "amount", len(sources))
		results = batchRepo.Scan(sources)
	} else {
		log.Info("No documents given, scanning built-in sample")
		results = batchRepo.ScanDocs([]source.Document{source.Sample()})
	}

	// Print results
	printerRepo := printer.NewRepo(log, tw.New(out), programCfg, out)
	if err := printerRepo.Print(results); err != nil {
		log.Error(err)
		return 2
	}

	failed := lo.CountBy(results, func(res batch.Result) bool { return res.Failed() })
	if failed > 0 {
		log.WarnFi("Some documents failed", "failed", failed, "total", len(results))
		return 1
	}
	return 0
}

// applyFlags returns deep copy of <c> with settings overridden by command line <flags>
func applyFlags(c cfg.Root, flags cli.Flags) cfg.Root {
	out := copier.MustDeep(c)
	if flags.IndentSize > 0 {
		out.Scanner.IndentSize = flags.IndentSize
	}
	if flags.Strict {
		out.Scanner.Strict = true
	}
	if flags.Numbers {
		out.Scanner.DetectNumbers = true
	}
	if flags.Format != "" {
		out.Output.Format = cfg.Format(flags.Format)
	}
	if flags.Limit > 0 {
		out.Output.Limit = flags.Limit
	}
	return out
}
