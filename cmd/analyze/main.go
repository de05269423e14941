package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"corretor/config"
	"corretor/models"
	"corretor/scorecard"
	"corretor/services"
	"corretor/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type analyzer interface {
	Analyze(ctx context.Context, essay string) (services.Analysis, error)
}

type analyzerFactory func(ctx context.Context, cfg *config.Config, log *zap.Logger) (analyzer, error)

func geminiAnalyzer(ctx context.Context, cfg *config.Config, log *zap.Logger) (analyzer, error) {
	gen, err := services.NewGeminiGenerator(ctx, cfg.Gemini)
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return services.NewAnalysisService(gen, services.DefaultRubric(), log), nil
}

type options struct {
	configPath string
	jsonOut    bool
	verbose    bool
	logger     *zap.Logger
}

func newRootCmd(newAnalyzer analyzerFactory) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Score an essay against the five-competency rubric",
		Long: `analyze sends an essay to the grading model and prints its scorecard.

The essay is read from the given file, or from stdin when no file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zc := zap.NewProductionConfig()
			zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if opts.verbose {
				zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			opts.logger, err = zc.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts, newAnalyzer)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "print the raw JSON envelope instead of the scorecard")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	return cmd
}

func readEssay(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read essay: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}

func runAnalyze(cmd *cobra.Command, args []string, opts *options, newAnalyzer analyzerFactory) error {
	essay, err := readEssay(cmd, args)
	if err != nil {
		return err
	}

	words := utils.WordCount(essay)
	if !utils.MeetsMinWords(essay) {
		return fmt.Errorf("a redação precisa de pelo menos %d palavras (atual: %d)", utils.MinWords, words)
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	a, err := newAnalyzer(cmd.Context(), cfg, opts.logger)
	if err != nil {
		return err
	}

	result, err := a.Analyze(cmd.Context(), essay)
	if err != nil {
		opts.logger.Debug("analysis failed", zap.Error(err))
		return errors.New(userMessage(err))
	}

	out := cmd.OutOrStdout()
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(models.AnalyzeResponse{Success: true, Data: result.Raw})
	}

	fmt.Fprintf(out, "Palavras: %d (%s)\n\n", words, utils.WordCountBand(words))
	fmt.Fprintln(out, scorecard.Render(result.Scorecard))
	if result.Fallback {
		fmt.Fprintln(out, "\n(análise provisória: a resposta do modelo não pôde ser lida)")
	} else if result.Partial {
		fmt.Fprintln(out, "\n(análise parcial: alguns campos da resposta do modelo não puderam ser exibidos; use --json)")
	}
	return nil
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrEssayTooShort):
		return models.MsgEssayTooShort
	case errors.Is(err, services.ErrProviderAuth):
		return joinMessage(models.MsgAuthError, models.MsgAuthErrorDetail)
	case errors.Is(err, services.ErrProviderRateLimited):
		return joinMessage(models.MsgRateLimited, models.MsgRateLimitedDetail)
	default:
		return joinMessage(models.MsgInternalError, models.MsgInternalErrorDetail)
	}
}

func joinMessage(parts ...string) string {
	return strings.Join(parts, ": ")
}

func main() {
	if err := newRootCmd(geminiAnalyzer).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", err)
		os.Exit(1)
	}
}
