// cmd/entra-bulk/main.go
//
// Entry point for entra-bulk. Run it next to a user_data.csv roster and it
// writes bulk_create.csv for the Entra ID bulk-create upload.
//
// Flow:
// 1. Load configuration (defaults, bulkcreate.yaml, environment, flags)
// 2. Set up logging and the operator prompt
// 3. Run the pipeline: read roster, build rows, write the output file

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	goversion "github.com/caarlos0/go-version"

	"github.com/kingrea/entra-bulk/internal/config"
	"github.com/kingrea/entra-bulk/internal/logging"
	"github.com/kingrea/entra-bulk/internal/pipeline"
	"github.com/kingrea/entra-bulk/internal/prompt"
	"github.com/kingrea/entra-bulk/internal/roster"
)

var (
	version   = "0.1.0"
	commit    = ""
	treeState = ""
	date      = ""
	builtBy   = ""
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one invocation and returns the process exit code. Every exit
// goes through its return so deferred cleanup such as closing the log file
// always happens.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet(config.Application, flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file (defaults to ./"+config.DefaultFile+" when present)")
	input := fs.String("input", "", "roster CSV to read (default "+config.DefaultInput+")")
	output := fs.String("output", "", "bulk-create CSV to write (default "+config.DefaultOutput+")")
	domain := fs.String("domain", "", "domain appended to user principal names (default "+config.DefaultDomain+")")
	promptMode := fs.String("prompt", "", "how long names are disambiguated: auto, console or tui")
	licenseColumn := fs.String("license-column", "", "roster column holding the license (default "+config.DefaultLicenseColumn+")")
	resolveNames := fs.Bool("resolve-license-names", false, "treat the license column as license names and map them to SKU ids")
	debug := fs.Bool("debug", false, "enable debug logging")
	logFile := fs.String("log-file", "", "append logs to this file instead of stderr")
	logFormat := fs.String("log-format", "", "log format: text or json")
	initConfig := fs.Bool("init", false, "write a commented "+config.DefaultFile+" and exit")
	showVersion := fs.Bool("version", false, "print version information and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	fail := func(format string, args ...any) int {
		fmt.Fprintf(stderr, "Error: "+format+"\n", args...)
		return 1
	}

	if *showVersion {
		fmt.Fprintln(stdout, buildVersion(version, commit, date, builtBy, treeState).String())
		return 0
	}

	if *initConfig {
		path := *configPath
		if path == "" {
			path = config.DefaultFile
		}
		created, err := config.WriteDefault(path)
		if err != nil {
			return fail("write config: %v", err)
		}
		if created {
			fmt.Fprintf(stdout, "Wrote %s\n", path)
		} else {
			fmt.Fprintf(stdout, "%s already exists, leaving it unchanged\n", path)
		}
		return 0
	}

	if err := config.LoadDotEnv(); err != nil {
		return fail("load .env: %v", err)
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fail("load config: %v", err)
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	str := func(name string, v *string) *string {
		if set[name] {
			return v
		}
		return nil
	}
	overrides := config.Overrides{
		Input:         str("input", input),
		Output:        str("output", output),
		Domain:        str("domain", domain),
		Prompt:        str("prompt", promptMode),
		LicenseColumn: str("license-column", licenseColumn),
		LogFile:       str("log-file", logFile),
		LogFormat:     str("log-format", logFormat),
		Debug:         *debug,
	}
	if set["resolve-license-names"] {
		overrides.ResolveLicenseNames = resolveNames
	}
	cfg.Apply(overrides)
	if err := cfg.Finalize(); err != nil {
		return fail("%v", err)
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fail("%v", err)
	}
	logger, err := logging.New(
		logging.WithLevel(level),
		logging.WithFormat(logging.Format(cfg.Log.Format)),
		logging.WithOutput(stderr),
		logging.WithFile(cfg.Log.File),
	)
	if err != nil {
		return fail("%v", err)
	}
	defer logger.Close()
	if cfg.Source != "" {
		logger.Debug("config loaded", "file", cfg.Source)
	}

	mode, err := prompt.ParseMode(cfg.Prompt)
	if err != nil {
		return fail("%v", err)
	}
	disambiguator, err := prompt.New(mode, stdin, stdout)
	if err != nil {
		return fail("%v", err)
	}

	_, err = pipeline.Run(pipeline.Options{
		Input:               cfg.Input,
		Output:              cfg.Output,
		Columns:             roster.InputColumns{DisplayName: cfg.Columns.DisplayName, License: cfg.Columns.License},
		Domain:              cfg.Domain,
		Disambiguator:       disambiguator,
		ResolveLicenseNames: cfg.Licenses.ResolveNames,
		Logger:              logger.Logger,
		Stdout:              stdout,
	})
	if err != nil {
		if cfg.Log.File != "" {
			logger.Error("run failed", "error", err)
		}
		return fail("%v", err)
	}
	return 0
}

func buildVersion(version, commit, date, builtBy, treeState string) goversion.Info {
	return goversion.GetVersionInfo(
		goversion.WithAppDetails(config.Application, config.Description, config.WebSite),
		func(i *goversion.Info) {
			if commit != "" {
				i.GitCommit = commit
			}
			if version != "" {
				i.GitVersion = version
			}
			if treeState != "" {
				i.GitTreeState = treeState
			}
			if date != "" {
				i.BuildDate = date
			}
			if builtBy != "" {
				i.BuiltBy = builtBy
			}
		},
	)
}
