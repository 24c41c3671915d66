package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"filetalk/pkg/formspec"
	"filetalk/pkg/journal"
	"filetalk/pkg/patchboard"

	"github.com/spf13/cobra"
)

// newInboxCmd creates the "filetalk inbox" command group.
func newInboxCmd(flags *cliFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "Inspect and consume the INBOX directory",
	}

	cmd.AddCommand(
		newInboxListCmd(flags),
		newInboxListenCmd(flags),
	)

	return cmd
}

// newInboxListCmd creates "filetalk inbox list".
func newInboxListCmd(flags *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List parseable messages waiting in the INBOX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runInboxList(cmd.OutOrStdout(), cfg)
		},
	}
}

// runInboxList scans the inbox and prints each message without consuming it.
func runInboxList(w io.Writer, cfg config) error {
	inbox := formspec.ResolveInbox(cfg.Inbox)
	messages := patchboard.Scan(inbox)
	if len(messages) == 0 {
		fmt.Fprintln(w, "no messages")
		return nil
	}
	st := newStyles()
	for _, m := range messages {
		channel, _ := m.Envelope["channel"].(string)
		fmt.Fprintf(w, "%s  %s\n", filepath.Base(m.Path), st.Muted.Render("channel="+channel))
	}
	return nil
}

// newInboxListenCmd creates "filetalk inbox listen".
func newInboxListenCmd(flags *cliFlags) *cobra.Command {
	var (
		interval time.Duration
		once     bool
		saveDir  string
	)

	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Consume INBOX messages as they arrive",
		Long: `Polls the INBOX directory and consumes every parseable message.
Text messages ("channel":"text" with a string signal) carry form-spec DSL;
their payload is printed, or saved under --save-dir as a .formspec file.
Every parsed message is deleted after being observed, whatever its channel.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			return runInboxListen(cmd.Context(), cmd.OutOrStdout(), cfg, interval, once, saveDir)
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "poll interval")
	cmd.Flags().BoolVar(&once, "once", false, "scan once and exit")
	cmd.Flags().StringVar(&saveDir, "save-dir", "", "save text payloads as files instead of printing them")

	return cmd
}

// runInboxListen is the consumption loop: scan, act, delete, repeat.
// An fsnotify watcher shortens the wait when the platform supports it;
// polling continues regardless.
func runInboxListen(ctx context.Context, w io.Writer, cfg config, interval time.Duration, once bool, saveDir string) error {
	inbox := formspec.ResolveInbox(cfg.Inbox)

	watcher := patchboard.WatchInbox(inbox)
	defer watcher.Close()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := consumeInbox(ctx, w, cfg, inbox, saveDir); err != nil {
			return err
		}
		if once {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		case <-wakeChan(watcher):
		}
	}
}

// wakeChan returns the watcher's wake channel, or a never-firing channel
// when no watcher could be started.
func wakeChan(w *patchboard.Watcher) <-chan struct{} {
	if w == nil {
		return nil
	}
	return w.Wake()
}

// consumeInbox performs one scan pass. Every successfully parsed message
// is deleted after being acted on, regardless of channel.
func consumeInbox(ctx context.Context, w io.Writer, cfg config, inbox, saveDir string) error {
	for _, m := range patchboard.Scan(inbox) {
		if patchboard.IsTextMessage(m.Envelope) {
			text, _ := m.Envelope["signal"].(string)
			if err := deliverText(w, saveDir, m.Path, text); err != nil {
				return err
			}
		}

		channel, _ := m.Envelope["channel"].(string)
		recordJournal(ctx, w, cfg, journal.DirectionConsume, channel, filepath.Base(m.Path))

		// Consumed once observed; removal failure just means a re-read
		// next pass.
		_ = os.Remove(m.Path)
	}
	return nil
}

// deliverText hands a received DSL payload to the user: saved as a file
// next to its message id, or printed with a header.
func deliverText(w io.Writer, saveDir, msgPath, text string) error {
	if saveDir == "" {
		st := newStyles()
		fmt.Fprintf(w, "%s\n%s\n", st.OK.Render("received "+filepath.Base(msgPath)), text)
		return nil
	}
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return fmt.Errorf("create save directory: %w", err)
	}
	base := filepath.Base(msgPath)
	name := base[:len(base)-len(filepath.Ext(base))] + ".formspec"
	path := filepath.Join(saveDir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("save text payload: %w", err)
	}
	fmt.Fprintf(w, "saved %s\n", path)
	return nil
}
