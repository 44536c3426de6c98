// Package cli wires the grid core onto a command-line front end: a
// cobra root command that drops into a line-oriented REPL over an
// in-memory sheet.Sheet.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/latticecell/gridcore/position"
	"github.com/latticecell/gridcore/sheet"
)

var rootCmd = &cobra.Command{
	Use:   "gridctl",
	Short: "gridctl - a spreadsheet formula engine REPL",
	Long: `gridctl drops into an interactive session over an in-memory grid.
Nothing is ever written to or read from disk; the grid lives only for
the lifetime of the process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Execute runs the root command.
func Execute(ctx context.Context, version, commit, date string) error {
	versionStr := version
	if versionStr == "" {
		versionStr = "dev"
	}
	if commit != "" {
		versionStr += fmt.Sprintf(" (commit: %s)", commit)
	}
	if date != "" {
		versionStr += fmt.Sprintf(" built: %s", date)
	}

	return fang.Execute(ctx, rootCmd,
		fang.WithVersion(versionStr),
	)
}

// runREPL reads one command per line from in and writes results to out
// until in is exhausted. Supported commands: set, get, text, clear,
// size, print values, print texts.
func runREPL(in io.Reader, out io.Writer) error {
	s := sheet.New()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := dispatch(s, line, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func dispatch(s *sheet.Sheet, line string, out io.Writer) error {
	fields := strings.SplitN(line, " ", 3)
	switch fields[0] {
	case "set":
		if len(fields) < 3 {
			return fmt.Errorf("usage: set <ref> <text>")
		}
		pos := position.Parse(strings.ToUpper(fields[1]))
		return s.SetCell(pos, fields[2])

	case "get":
		if len(fields) < 2 {
			return fmt.Errorf("usage: get <ref>")
		}
		pos := position.Parse(strings.ToUpper(fields[1]))
		c, err := s.GetCell(pos)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, renderValue(c.Value()))
		return nil

	case "text":
		if len(fields) < 2 {
			return fmt.Errorf("usage: text <ref>")
		}
		pos := position.Parse(strings.ToUpper(fields[1]))
		c, err := s.GetCell(pos)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, c.Text())
		return nil

	case "clear":
		if len(fields) < 2 {
			return fmt.Errorf("usage: clear <ref>")
		}
		pos := position.Parse(strings.ToUpper(fields[1]))
		return s.ClearCell(pos)

	case "size":
		size := s.PrintableSize()
		fmt.Fprintf(out, "%d %d\n", size.Rows, size.Cols)
		return nil

	case "print":
		if len(fields) < 2 {
			return fmt.Errorf("usage: print values|texts")
		}
		switch strings.TrimSpace(fields[1]) {
		case "values":
			return s.PrintValues(out)
		case "texts":
			return s.PrintTexts(out)
		default:
			return fmt.Errorf("usage: print values|texts")
		}

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

func renderValue(v sheet.CellValue) string {
	switch v.Kind {
	case sheet.KindEmpty:
		return ""
	case sheet.KindNumber:
		return fmt.Sprintf("%g", v.Number)
	case sheet.KindError:
		return v.Err.Error()
	default:
		return v.Text
	}
}
