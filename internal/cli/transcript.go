package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mithrel/confchat/internal/editor"
	"github.com/mithrel/confchat/internal/present"
	"github.com/mithrel/confchat/internal/present/format"
	"github.com/mithrel/confchat/internal/util"
	"github.com/mithrel/confchat/internal/wire"
	"github.com/mithrel/confchat/pkg/chat"
)

func newTranscriptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transcript",
		Aliases: []string{"t"},
		Short:   "Work with saved conversations",
	}
	cmd.AddCommand(newTranscriptShowCmd())
	cmd.AddCommand(newTranscriptSearchCmd())
	cmd.AddCommand(newTranscriptViewCmd())
	cmd.AddCommand(newTranscriptAddCmd())
	return cmd
}

func newTranscriptShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Render every message of a transcript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			tr, err := loadTranscriptFile(args[0])
			if err != nil {
				return err
			}
			return renderMessages(cmd, app, renderTranscript(app, tr, nil))
		},
	}
	addRenderFlags(cmd)
	return cmd
}

func newTranscriptSearchCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <file> <query>",
		Short: "Fuzzy search messages of a transcript",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			tr, err := loadTranscriptFile(args[0])
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = app.Cfg.GetInt("search.limit")
			}
			query := strings.Join(args[1:], " ")
			candidates := make([]string, len(tr))
			for i, m := range tr {
				candidates[i] = m.Content
			}
			hits := util.RankMatches(query, candidates, limit)
			app.Log.Printf("search: query=%q hits=%d", query, len(hits))
			if len(hits) == 0 {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "no matches")
				return nil
			}
			return renderMessages(cmd, app, renderTranscript(app, tr, hits))
		},
	}
	addRenderFlags(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum results (0 uses config)")
	return cmd
}

func newTranscriptViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Browse a transcript interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			tr, err := loadTranscriptFile(args[0])
			if err != nil {
				return err
			}
			opts, err := presentOptions(cmd, app)
			if err != nil {
				return err
			}
			opts.Mode = present.ModeTUI
			opts.Status = "loaded " + args[0]
			if fi, err := os.Stat(args[0]); err == nil {
				opts.Status += " (" + humanize.Bytes(uint64(fi.Size())) + ")"
			}
			return present.RenderTranscript(cmd.Context(), cmd.OutOrStdout(), renderTranscript(app, tr, nil), opts)
		},
	}
	cmd.Flags().Int("width", 0, "wrap width (0 uses config, then the terminal)")
	return cmd
}

func newTranscriptAddCmd() *cobra.Command {
	var roleName string
	var edit bool
	var noGreeting bool
	cmd := &cobra.Command{
		Use:   "add <file> [text...]",
		Short: "Append a message to a transcript (created if missing)",
		Long:  "Append a message to a transcript. Text comes from the arguments, from $EDITOR with --edit, or from stdin. A new transcript starts with the configured chat.greeting unless --no-greeting is set.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			path := args[0]
			role, err := chat.ParseRole(roleName)
			if err != nil {
				return err
			}
			tr, existed, err := loadForAppend(path)
			if err != nil {
				return err
			}

			text := strings.Join(args[1:], " ")
			switch {
			case edit:
				tmp, err := editor.TempPath(fmt.Sprintf("msg-%d", len(tr)+1))
				if err != nil {
					return err
				}
				out, _, err := editor.OpenAt(cmd.Context(), tmp, []byte(editor.ComposeMessage(string(role), text)))
				if err != nil {
					return err
				}
				edited, body := editor.ParseEditedMessage(string(out))
				if role, err = chat.ParseRole(edited); err != nil {
					return err
				}
				text = body
			case text == "":
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}
			if strings.TrimSpace(text) == "" {
				return chat.ErrEmptyMessage
			}

			if greeting := app.Cfg.GetString("chat.greeting"); !existed && !noGreeting && greeting != "" {
				tr = append(tr, chat.Message{Role: chat.RoleAssistant, Content: greeting})
			}
			tr = append(tr, chat.Message{Role: role, Content: text})
			var buf bytes.Buffer
			if err := chat.WriteTranscript(&buf, tr); err != nil {
				return err
			}
			if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
				return err
			}
			app.Log.Printf("transcript: appended %s message to %s", role, path)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", len(tr), role, tr[len(tr)-1].Preview(60))
			return nil
		},
	}
	cmd.Flags().StringVar(&roleName, "role", string(chat.RoleUser), "message role: user|assistant")
	cmd.Flags().BoolVarP(&edit, "edit", "e", false, "compose the message in $EDITOR")
	cmd.Flags().BoolVar(&noGreeting, "no-greeting", false, "do not seed a new transcript with chat.greeting")
	_ = cmd.RegisterFlagCompletionFunc("role", completeFrom(string(chat.RoleUser), string(chat.RoleAssistant)))
	return cmd
}

// loadForAppend reads the transcript at path for appending. A missing file
// yields an empty transcript; a file holding anything but a JSON transcript
// is refused so it is never rewritten.
func loadForAppend(path string) (tr chat.Transcript, existed bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] != '[' {
		return nil, true, fmt.Errorf("%s is not a JSON transcript; refusing to rewrite it", path)
	}
	tr, err = chat.LoadTranscript(bytes.NewReader(data))
	return tr, true, err
}

func loadTranscriptFile(path string) (chat.Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return chat.LoadTranscript(f)
}

// renderTranscript parses the selected messages (all when only is nil).
// Indexes are 1-based positions in the transcript.
func renderTranscript(app *wire.App, tr chat.Transcript, only []int) []format.Rendered {
	if only == nil {
		only = make([]int, len(tr))
		for i := range tr {
			only[i] = i
		}
	}
	out := make([]format.Rendered, 0, len(only))
	for _, i := range only {
		blocks, digest := app.Cache.Parse(tr[i].Content)
		out = append(out, format.Rendered{Index: i + 1, Role: tr[i].Role, Digest: digest, Blocks: blocks})
	}
	return out
}

func renderMessages(cmd *cobra.Command, app *wire.App, msgs []format.Rendered) error {
	opts, err := presentOptions(cmd, app)
	if err != nil {
		return err
	}
	if opts.Mode == present.ModeTUI {
		opts.Status = fmt.Sprintf("%d messages", len(msgs))
		return present.RenderTranscript(cmd.Context(), cmd.OutOrStdout(), msgs, opts)
	}
	return withPager(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
		return present.RenderTranscript(cmd.Context(), w, msgs, opts)
	})
}
