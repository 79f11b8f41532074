package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mithrel/confchat/internal/present"
	"github.com/mithrel/confchat/internal/present/format"
	"github.com/mithrel/confchat/pkg/chat"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Parse one assistant reply and render its blocks",
		Long:  "Parse one assistant reply (a file, or stdin when no file or '-' is given) into blocks and render them.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			opts, err := presentOptions(cmd, app)
			if err != nil {
				return err
			}
			blocks, digest := app.Cache.Parse(text)
			app.Log.Printf("render: digest=%s blocks=%d mode=%s", digest, len(blocks), opts.Mode)

			if opts.Mode == present.ModeTUI {
				opts.Status = "1 reply"
				msgs := []format.Rendered{{Index: 1, Role: chat.RoleAssistant, Digest: digest, Blocks: blocks}}
				return present.RenderTranscript(cmd.Context(), cmd.OutOrStdout(), msgs, opts)
			}
			return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				return present.RenderBlocks(cmd.Context(), w, blocks, opts)
			})
		},
	}
	addRenderFlags(cmd)
	return cmd
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}
