package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpalmerr/courtboard"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// onceCmd runs a single refresh and prints the rendered status.
var onceCmd = &cobra.Command{
	Use:   "once",
	Short: "Refresh once and print the status",
	Long: `Fetch the status endpoint once and print the rendered label and
room list, without starting the dashboard.

The label is coloured when stdout is a terminal. Use --html to print the
list markup exactly as it would be written to the page.

Example:
  courtboard once -c config.yaml
  courtboard once -c config.yaml --html`,
	RunE: runOnce,
}

func init() {
	rootCmd.AddCommand(onceCmd)

	onceCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	onceCmd.Flags().Bool("html", false, "print the list as HTML")
	_ = onceCmd.MarkFlagRequired("config")
}

func runOnce(cmd *cobra.Command, args []string) error {
	_, b, err := loadBoard(cmd, newLogger(slog.LevelWarn))
	if err != nil {
		return err
	}
	defer b.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := b.Refresh(ctx).Wait(ctx)
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	asHTML, _ := cmd.Flags().GetBool("html")
	out := cmd.OutOrStdout()
	printResult(out, result, asHTML, isTerminal(out))
	return nil
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printResult(w io.Writer, r courtboard.RenderResult, asHTML, color bool) {
	label := r.Label
	if color {
		code := ansiRed
		if r.Color == "green" {
			code = ansiGreen
		}
		label = code + label + ansiReset
	}
	fmt.Fprintln(w, label)

	if asHTML {
		if r.ListHTML != "" {
			fmt.Fprintln(w, r.ListHTML)
		}
		return
	}

	for _, g := range r.Groups {
		if g.Day != "" {
			fmt.Fprintf(w, "%s:\n", g.Day)
		}
		for _, room := range g.Rooms {
			fmt.Fprintf(w, "  - %s\n", room)
		}
	}
}
