package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iiroan/themectl/internal/storage"
	"github.com/iiroan/themectl/internal/theme"
	"github.com/iiroan/themectl/internal/ui"
)

var watchJSON bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the theme every time it changes",
	Long: `Follow the desktop color-scheme preference and print one line per change
of mode or resolved theme until interrupted. With the file storage backend,
modes set by other themectl processes are picked up as well.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchJSON, "json", false, "Print one JSON object per line")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := openSession()
	if err != nil {
		return err
	}
	defer closeSession(s)

	out := cmd.OutOrStdout()
	changes := make(chan theme.State, 16)
	unsubscribe := s.store.Subscribe(func(st theme.State) {
		select {
		case changes <- st:
		default:
			logger.Warn("dropping theme change, output is not keeping up", "resolved", st.Resolved)
		}
	})
	defer unsubscribe()

	reload := make(chan struct{}, 1)
	if fs, ok := s.kv.(*storage.FileStore); ok {
		stopFileWatch, err := fs.Watch(func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})
		if err != nil {
			logger.Warn("changes made by other processes will not be followed", "error", err)
		} else {
			logger.Debug("following preferences file", "path", fs.Path())
			defer stopFileWatch()
		}
	}

	if err := writeWatchLine(out, s.store.State()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-reload:
			if err := s.store.Reload(); err != nil {
				logger.Warn("could not reload stored theme", "error", err)
			}
		case st := <-changes:
			if err := writeWatchLine(out, st); err != nil {
				return err
			}
		}
	}
}

func writeWatchLine(w io.Writer, st theme.State) error {
	if watchJSON {
		data, err := json.Marshal(struct {
			Time string `json:"time"`
			theme.State
		}{Time: time.Now().Format(time.RFC3339), State: st})
		if err != nil {
			return fmt.Errorf("marshaling state: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	styles := ui.Current()
	_, err := fmt.Fprintf(w, "%s %s %s\n",
		styles.MutedStyle.Render(time.Now().Format(time.Kitchen)),
		styles.Value.Render(st.Resolved.String()),
		styles.Hint.Render(fmt.Sprintf("(mode %s, system %s)", st.Mode, st.System)),
	)
	return err
}
