package editor

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	// CommentPrefix marks template lines dropped after editing. '#' is
	// markdown, so it cannot be used here.
	CommentPrefix = "%%"
	RolePrefix    = "Role:"
	separator     = "---"
)

// ComposeMessage creates the text presented to the editor.
func ComposeMessage(role, body string) string {
	var b bytes.Buffer
	b.WriteString(CommentPrefix + " confchat message\n")
	b.WriteString(CommentPrefix + " Lines starting with '" + CommentPrefix + "' above '" + separator + "' are ignored.\n")
	b.WriteString(CommentPrefix + " Role is user or assistant. After '---', write the message.\n")
	b.WriteString(RolePrefix + " " + role + "\n")
	b.WriteString(separator + "\n")
	if body != "" {
		if !strings.HasSuffix(body, "\n") {
			body += "\n"
		}
		b.WriteString(body)
	}
	return b.String()
}

// ParseEditedMessage extracts the role and body from editor output.
// Comment lines are dropped only in the header; body lines after the
// separator are kept verbatim apart from trailing blank lines.
func ParseEditedMessage(s string) (role, body string) {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	inBody := false
	var bodyLines []string
	for _, line := range lines {
		if inBody {
			bodyLines = append(bodyLines, line)
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), CommentPrefix) {
			continue
		}
		switch {
		case strings.HasPrefix(line, RolePrefix):
			role = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(line, RolePrefix)))
		case strings.TrimSpace(line) == separator:
			inBody = true
		}
	}
	return role, strings.TrimRight(strings.Join(bodyLines, "\n"), "\n \t")
}

// PreferredEditor finds a suitable editor from env or common defaults.
func PreferredEditor() (string, error) {
	if v := os.Getenv("VISUAL"); v != "" {
		return v, nil
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e, nil
	}
	for _, cand := range []string{"nvim", "vim", "vi", "nano"} {
		if p, err := exec.LookPath(cand); err == nil {
			return p, nil
		}
	}
	return "", errors.New("no editor found; set $EDITOR or $VISUAL")
}

// TempPath returns a scratch file path for composing a message.
func TempPath(name string) (string, error) {
	file := sanitize(name) + ".confchat.md"
	if xdg := os.Getenv("XDG_RUNTIME_DIR"); xdg != "" {
		return filepath.Join(xdg, "confchat", file), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "confchat", "edit", file), nil
}

func sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "message"
	}
	return b.String()
}

// OpenAt writes initial to path, runs the editor on it and returns the
// final bytes and whether they changed.
func OpenAt(ctx context.Context, path string, initial []byte) (final []byte, changed bool, err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, false, err
	}
	if err := os.WriteFile(path, initial, fs.FileMode(0o600)); err != nil {
		return nil, false, err
	}
	defer os.Remove(path)

	ed, err := PreferredEditor()
	if err != nil {
		return nil, false, err
	}
	// Run through a shell so VISUAL/EDITOR may carry flags.
	cmd := exec.CommandContext(ctx, "sh", "-c", "$EDITORCMD \"$FILEPATH\"")
	cmd.Env = append(os.Environ(), "EDITORCMD="+ed, "FILEPATH="+path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return nil, false, err
	}
	out, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	return out, !bytes.Equal(out, initial), nil
}
