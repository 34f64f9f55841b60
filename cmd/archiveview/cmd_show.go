package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/user/archiveview/internal/config"
	"github.com/user/archiveview/internal/controller"
	"github.com/user/archiveview/internal/page"
	"github.com/user/archiveview/internal/stats"
	"github.com/user/archiveview/internal/view"
	"github.com/user/archiveview/pkg/archive"
)

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().Bool("stats", false, "print message and token counts per speaker")
}

var showCmd = &cobra.Command{
	Use:   "show <id|path>...",
	Short: "Show the transcript of one or more sessions",
	Long: `Show renders the transcript of each given session. An argument is either
a session id or a page path such as /archive/<id>; the id is taken from the
last path segment. Sessions are fetched concurrently and printed in argument
order.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		withStats, _ := cmd.Flags().GetBool("stats")

		var counter *stats.Counter
		if withStats {
			c, err := stats.New(cfg.Stats.Model)
			if err != nil {
				return fmt.Errorf("create token counter: %w", err)
			}
			counter = c
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		results := make([]transcript, len(args))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(cfg.MaxConcurrent)
		for i, arg := range args {
			g.Go(func() error {
				results[i] = loadTranscript(gctx, cfg, arg)
				return nil
			})
		}
		_ = g.Wait()

		stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
		var failed []string
		for i, r := range results {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			if r.err != "" {
				fmt.Fprintf(stderr, "%s: %s\n", args[i], r.err)
				failed = append(failed, args[i])
				continue
			}
			fmt.Fprintln(stdout, r.meta)
			if err := writeNodes(stdout, cfg.Format, r.nodes); err != nil {
				return fmt.Errorf("write transcript: %w", err)
			}
			if counter != nil && r.record != nil {
				fmt.Fprintln(stdout)
				if err := counter.Summarize(r.record).Write(stdout); err != nil {
					return fmt.Errorf("write stats: %w", err)
				}
			}
		}
		if len(failed) > 0 {
			return errors.New("could not show " + strings.Join(failed, ", "))
		}
		return nil
	},
}

type transcript struct {
	meta   string
	nodes  []view.Node
	record *archive.Record
	err    string
}

func loadTranscript(ctx context.Context, cfg *config.Config, arg string) transcript {
	path := arg
	if !strings.Contains(arg, "/") {
		path = "/archive/" + arg
	}

	nodes := page.NewNodeMount()
	meta := page.NewTextBox()
	p := &page.Page{
		Transcript: nodes,
		Meta:       meta,
		Location:   page.StaticLocation(path),
	}
	source := &recordingSource{Source: newSource(cfg)}
	controller.NewDetail(source, p, page.StatusFor(p), controllerOptions(cfg)...).Load(ctx)

	if nodes.Replacements() == 0 {
		return transcript{err: meta.Text()}
	}
	return transcript{meta: meta.Text(), nodes: nodes.Nodes(), record: source.last()}
}

// recordingSource keeps the last record it returned.
type recordingSource struct {
	archive.Source
	mu     sync.Mutex
	record *archive.Record
}

func (s *recordingSource) Conversation(ctx context.Context, id string) (*archive.Record, error) {
	record, err := s.Source.Conversation(ctx, id)
	if err == nil {
		s.mu.Lock()
		s.record = record
		s.mu.Unlock()
	}
	return record, err
}

func (s *recordingSource) last() *archive.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}
