package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/confchat/internal/present"
	"github.com/mithrel/confchat/internal/wire"
)

const (
	defaultPager = "less -FRSX"
	fallbackWide = 80
)

// presentOptions resolves output options from config (already merged with
// command flags) and the terminal.
func presentOptions(cmd *cobra.Command, app *wire.App) (present.Options, error) {
	raw := app.Cfg.GetString("render.mode")
	mode, ok := present.ParseMode(raw)
	if !ok {
		return present.Options{}, fmt.Errorf("invalid --output: %s", raw)
	}
	noHeaders, _ := cmd.Flags().GetBool("noheaders")
	width := app.Cfg.GetInt("render.width")
	if width <= 0 {
		width = terminalWidth(cmd.OutOrStdout())
	}
	return present.Options{
		Mode:       mode,
		JSONIndent: app.Cfg.GetBool("render.json_indent"),
		Headers:    app.Cfg.GetBool("render.headers") && !noHeaders,
		Width:      width,
		Style:      app.Cfg.GetString("render.style"),
	}, nil
}

func terminalWidth(out io.Writer) int {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return fallbackWide
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallbackWide
	}
	return w
}

// withPager pipes write through $PAGER when out is a terminal.
func withPager(ctx context.Context, out, errOut io.Writer, write func(io.Writer) error) error {
	outFile, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(outFile.Fd())) {
		return write(out)
	}
	pager := os.Getenv("PAGER")
	if pager == "" {
		pager = defaultPager
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", pager)
	cmd.Stdout = outFile
	if errFile, ok := errOut.(*os.File); ok {
		cmd.Stderr = errFile
	} else {
		cmd.Stderr = os.Stderr
	}
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return write(out)
	}
	if err := cmd.Start(); err != nil {
		return write(out)
	}
	writeErr := write(stdin)
	_ = stdin.Close()
	waitErr := cmd.Wait()
	if writeErr != nil {
		return writeErr
	}
	return waitErr
}
