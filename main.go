package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	"github.com/sergev/amm/diagnostic"
	"github.com/sergev/amm/interpreter"
	"github.com/sergev/amm/runtime"
)

func main() {
	args := os.Args[1:]
	switch len(args) {
	case 0:
		runREPL()
	case 1:
		runFile(args[0])
	default:
		diagnostic.ReportUsage(os.Stdout, "Usage: amm [File]")
	}
}

func runFile(path string) {
	in := runtime.NewInterpreter()
	if err := runtime.EvaluateFile(in, path); err != nil {
		diagnostic.ReportUsage(os.Stdout, err.Error())
	}
}

func runREPL() {
	in := runtime.NewInterpreter()
	if isatty.IsTerminal(os.Stdin.Fd()) {
		runInteractiveREPL(in)
		return
	}
	runBufferedREPL(in, bufio.NewReader(os.Stdin))
}

// runBufferedREPL serves non-interactive stdin (piped or redirected):
// no prompt is printed, no history is kept, but the line-at-a-time,
// exit-on-blank-line contract from spec.md §6 is identical.
func runBufferedREPL(in *interpreter.Interpreter, reader *bufio.Reader) {
	for {
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			diagnostic.ReportUsage(os.Stdout, err.Error())
			return
		}
		if strings.TrimSpace(line) == "" {
			return
		}
		runtime.EvaluateString(in, line)
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

// runInteractiveREPL serves a real terminal: liner.NewLiner gives
// history navigation and Ctrl-C abort handling, with history persisted
// to ~/.amm_history across sessions.
func runInteractiveREPL(in *interpreter.Interpreter) {
	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := replHistoryPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	for {
		line, err := state.Prompt("> ")
		if err != nil {
			switch {
			case errors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				continue
			case errors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				diagnostic.ReportUsage(os.Stdout, err.Error())
				return
			}
		}
		if strings.TrimSpace(line) == "" {
			return
		}
		state.AppendHistory(line)
		runtime.EvaluateString(in, line)
	}
}

func replHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".amm_history")
}
