package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kamusis/verbmotion/internal/motion"
	"github.com/kamusis/verbmotion/internal/parser"
	"github.com/kamusis/verbmotion/internal/skeleton"
	"github.com/kamusis/verbmotion/internal/tier1"
	"github.com/kamusis/verbmotion/internal/watch"
)

var (
	flagServeSubject string
	flagServeNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Resolve phrases read line by line from stdin",
	Long: `Serve keeps the engine loaded and answers one JSON line per input line.
With --subject each answer carries the motion plan for that subject.
Template files are reloaded when they change. An empty line or EOF ends
the session.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeSubject, "subject", "", "Also emit the motion plan for this noun's skeleton")
	serveCmd.Flags().BoolVar(&flagServeNoWatch, "no-watch", false, "Do not reload templates on change")
	rootCmd.AddCommand(serveCmd)
}

// serveReply is one output line.
type serveReply struct {
	Text   string        `json:"text"`
	Result *tier1.Result `json:"result"`
	Plan   *motion.Plan  `json:"plan,omitempty"`
	Error  string        `json:"error,omitempty"`
}

func runServe(cmd *cobra.Command, _ []string) error {
	e, err := loadEngine(true)
	if err != nil {
		return err
	}
	defer e.close()
	for _, w := range e.warnings {
		logger.Warn("template issue", zap.String("template_id", w.TemplateID), zap.String("severity", string(w.Severity)), zap.String("message", w.Message))
	}
	e.orch.InitEmbeddingWorker()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !flagServeNoWatch {
		w, err := watch.New(e.cfg.TemplatesDir, 0, logger, func() {
			warnings, err := e.reload()
			if err != nil {
				logger.Error("template reload failed", zap.Error(err))
				return
			}
			logger.Info("templates reloaded", zap.Int("templates", e.library.Size()), zap.Int("warnings", len(warnings)))
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			logger.Warn("template watcher disabled", zap.Error(err))
		} else {
			defer w.Stop()
		}
	}

	return serveLoop(ctx, e, cmd.InOrStdin(), stdout)
}

func serveLoop(ctx context.Context, e *engine, in io.Reader, out io.Writer) error {
	enc := json.NewEncoder(out)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			return nil
		}
		reply := serveReply{Text: text, Result: e.orch.Resolve(ctx, text)}
		if reply.Result != nil && reply.Result.Template != nil && flagServeSubject != "" {
			plan, err := e.parser.Parse(reply.Result.Template, skeleton.ForNoun(flagServeSubject).PartInfos(), parser.Options{Overrides: &reply.Result.Overrides})
			if err != nil {
				reply.Error = err.Error()
			} else {
				reply.Plan = plan
			}
		}
		if err := enc.Encode(reply); err != nil {
			return fmt.Errorf("cannot write reply: %w", err)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
	return scanner.Err()
}
