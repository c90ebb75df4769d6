package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/ztrue/tracerr"

	"github.com/pontaoski/golox/config"
)

// repl runs each entered line on one shared runner. Errors on a line are
// reported and forgotten; only host failures end the session.
func repl(settings config.Config) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := config.ExpandHome(settings.History)
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	runner := newRunner(settings)
	for {
		line, err := ln.Prompt(settings.Prompt)
		if err == liner.ErrPromptAborted {
			continue
		} else if err == io.EOF {
			fmt.Println()
			return nil
		} else if err != nil {
			return tracerr.Wrap(err)
		}

		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if _, err := runner.Run(line); err != nil {
			printHostError(err)
		}
	}
}
