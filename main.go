package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/repr"
	"github.com/coreos/pkg/capnslog"
	"github.com/urfave/cli/v2"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/golox/config"
	"github.com/pontaoski/golox/lexer"
	"github.com/pontaoski/golox/lox"
	"github.com/pontaoski/golox/parser"
	"github.com/pontaoski/golox/reader"
)

var plog = capnslog.NewPackageLogger("github.com/pontaoski/golox", "main")

const (
	exitUsage   = 64
	exitStatic  = 65
	exitRuntime = 70
	exitIO      = 74
)

// debug is set once the log level is known; host errors then carry traces.
var debug bool

func printHostError(err error) {
	if debug {
		tracerr.PrintSourceColor(err)
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func settingsOf(c *cli.Context) config.Config {
	if s, ok := c.App.Metadata["settings"].(config.Config); ok {
		return s
	}
	return config.Default()
}

func setup(c *cli.Context) error {
	path := config.Locate(c.String("config"))
	settings := config.Default()
	if path != "" {
		var err error
		if settings, err = config.Load(path); err != nil {
			printHostError(err)
			return cli.Exit("", exitIO)
		}
	}

	if c.IsSet("log-level") {
		settings.LogLevel = c.String("log-level")
	}
	if c.IsSet("max-depth") {
		settings.MaxCallDepth = c.Int("max-depth")
	}

	level, err := capnslog.ParseLevel(settings.LogLevel)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid log level %q", settings.LogLevel), exitUsage)
	}
	debug = level >= capnslog.DEBUG
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, debug))
	capnslog.SetGlobalLogLevel(level)
	plog.Debugf("settings from %q: %s", path, repr.String(settings))

	c.App.Metadata["settings"] = settings
	return nil
}

func newRunner(settings config.Config) *lox.Runner {
	runner := lox.NewRunner(os.Stdout, consoleReporter{os.Stderr})
	runner.Interpreter().MaxDepth = settings.MaxCallDepth
	return runner
}

func read(path string) (string, error) {
	src, err := reader.ReadSource(path)
	if err != nil {
		printHostError(err)
		return "", cli.Exit("", exitIO)
	}
	return src, nil
}

func runFile(c *cli.Context, path string) error {
	src, err := read(path)
	if err != nil {
		return err
	}

	outcome, err := newRunner(settingsOf(c)).Run(src)
	if err != nil {
		printHostError(err)
		return cli.Exit("", exitRuntime)
	}
	switch outcome {
	case lox.StaticError:
		return cli.Exit("", exitStatic)
	case lox.RuntimeError:
		return cli.Exit("", exitRuntime)
	}
	return nil
}

func oneFile(c *cli.Context) (string, error) {
	if c.Args().Len() != 1 {
		return "", cli.Exit(fmt.Sprintf("Usage: golox %s <file>", c.Command.Name), exitUsage)
	}
	return c.Args().First(), nil
}

func main() {
	app := &cli.App{
		Name:      "golox",
		Usage:     "run lox scripts",
		ArgsUsage: "[script]",
		Metadata:  map[string]interface{}{},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "settings file (default ./" + config.FileName + " or ~/" + config.FileName + ")",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "CRITICAL, ERROR, WARNING, NOTICE, INFO, DEBUG or TRACE",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "maximum call depth, 0 for no limit",
			},
		},
		Before: setup,
		ExitErrHandler: func(context *cli.Context, err error) {
			if _, ok := err.(cli.ExitCoder); ok {
				cli.HandleExitCoder(err)
				return
			}
			printHostError(err)
			os.Exit(exitIO)
		},
		Action: func(c *cli.Context) error {
			switch c.Args().Len() {
			case 0:
				return repl(settingsOf(c))
			case 1:
				return runFile(c, c.Args().First())
			}
			return cli.Exit("Usage: golox [script]", exitUsage)
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run a script, - for stdin",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path, err := oneFile(c)
					if err != nil {
						return err
					}
					return runFile(c, path)
				},
			},
			{
				Name:  "repl",
				Usage: "start an interactive session",
				Action: func(c *cli.Context) error {
					return repl(settingsOf(c))
				},
			},
			{
				Name:      "tokens",
				Usage:     "print the tokens of a script",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path, err := oneFile(c)
					if err != nil {
						return err
					}
					src, err := read(path)
					if err != nil {
						return err
					}

					tokens, errs := lexer.Scan(src)
					for _, tok := range tokens {
						fmt.Printf("%d\t%s\n", tok.Line, tok)
					}
					return staticExit(errs)
				},
			},
			{
				Name:      "ast",
				Usage:     "dump the syntax tree of a script",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path, err := oneFile(c)
					if err != nil {
						return err
					}
					src, err := read(path)
					if err != nil {
						return err
					}

					tokens, lexErrs := lexer.Scan(src)
					stmts, parseErrs := parser.Parse(tokens)
					repr.Println(stmts)
					return staticExit(append(lexErrs, parseErrs...))
				},
			},
			{
				Name:      "init",
				Usage:     "write a default settings file",
				ArgsUsage: "[path]",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						path = config.FileName
					}
					if _, err := os.Stat(path); err == nil {
						return cli.Exit(fmt.Sprintf("%s already exists", path), 1)
					}
					if err := config.Write(path, config.Default()); err != nil {
						printHostError(err)
						return cli.Exit("", exitIO)
					}
					fmt.Printf("wrote %s\n", path)
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUsage)
	}
}
