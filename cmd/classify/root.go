package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/adapter/client"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/adapter/inference"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/adapter/repository/memory"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/config"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/logger"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/infrastructure/storage"
	"github.com/Prakhar9001/Fake-news-detection-system/internal/usecase"
)

const (
	outputText = "text"
	outputJSON = "json"
)

type rootFlags struct {
	model   string
	server  string
	output  string
	lines   bool
	timeout time.Duration
	verbose bool
}

// batchClassifier is satisfied by the local usecase and the API client
type batchClassifier interface {
	ClassifyBatch(ctx context.Context, input *usecase.ClassifyBatchInput) (*usecase.ClassifyBatchOutput, error)
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "newsguard-classify [text...]",
		Short: "Label news text as REAL or FAKE",
		Long: "Classifies each argument as a separate text. Without arguments the whole of\n" +
			"stdin is read as one text, or one text per line with --lines.",
		Example: "  newsguard-classify \"Scientists confirm water is wet\"\n" +
			"  cat article.txt | newsguard-classify --output json\n" +
			"  newsguard-classify --server http://localhost:8080 \"Shocking miracle cure\"",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, &flags, args)
		},
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.model, "model", "", "Model artifact path or s3:// URI (default from config)")
	f.StringVar(&flags.server, "server", "", "Classify through a running API at this base URL instead of loading the model")
	f.StringVarP(&flags.output, "output", "o", outputText, "Output format: text or json")
	f.BoolVar(&flags.lines, "lines", false, "Treat each stdin line as a separate text")
	f.DurationVar(&flags.timeout, "timeout", time.Minute, "Overall timeout")
	f.BoolVarP(&flags.verbose, "verbose", "v", false, "Log model loading to stderr")

	return cmd
}

func runClassify(cmd *cobra.Command, flags *rootFlags, args []string) error {
	if flags.output != outputText && flags.output != outputJSON {
		return fmt.Errorf("unknown output format %q", flags.output)
	}

	texts := args
	if len(texts) == 0 {
		var err error
		texts, err = readTexts(cmd.InOrStdin(), flags.lines)
		if err != nil {
			return err
		}
	}
	for _, t := range texts {
		if strings.TrimSpace(t) == "" {
			return errors.New("please enter some text to analyze")
		}
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
	defer cancel()

	classifier, err := newClassifier(ctx, cmd, flags, len(texts))
	if err != nil {
		return err
	}

	out, err := classifier.ClassifyBatch(ctx, &usecase.ClassifyBatchInput{Texts: texts})
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	if flags.output == outputJSON {
		return writeJSON(cmd.OutOrStdout(), out.Results)
	}
	return writeText(cmd.OutOrStdout(), texts, out.Results)
}

func newClassifier(ctx context.Context, cmd *cobra.Command, flags *rootFlags, n int) (batchClassifier, error) {
	if flags.server != "" {
		return client.NewAPIClient(flags.server, flags.timeout), nil
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flags.model != "" {
		cfg.Model.Path = flags.model
	}

	level := "warn"
	if flags.verbose {
		level = "info"
	}
	log := logger.New(&config.LogConfig{Level: level, Format: "console"}, cmd.ErrOrStderr())

	model, err := inference.Load(ctx, storage.NewArtifactStore(cfg.Model), cfg.Model.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load model from %s: %w", cfg.Model.Path, err)
	}
	log.Info("Model loaded", zap.String("version", model.Version()), zap.String("path", cfg.Model.Path))

	return usecase.NewClassifyUsecase(
		model,
		memory.NewCheckRepository(0),
		nil,
		nil,
		log,
		usecase.Limits{MaxTextBytes: cfg.Model.MaxTextBytes, MaxBatchSize: max(n, cfg.Model.MaxBatchSize)},
	), nil
}

func readTexts(r io.Reader, perLine bool) ([]string, error) {
	if !perLine {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return []string{string(b)}, nil
	}

	var texts []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	if len(texts) == 0 {
		return []string{""}, nil
	}
	return texts, nil
}

func writeJSON(w io.Writer, results []*usecase.ClassifyOutput) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(results) == 1 {
		return enc.Encode(results[0])
	}
	return enc.Encode(results)
}

func writeText(w io.Writer, texts []string, results []*usecase.ClassifyOutput) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LABEL\tCONFIDENCE\tTEXT")
	for i, r := range results {
		fmt.Fprintf(tw, "%s\t%.1f%%\t%s\n", r.Label, r.Confidence*100, excerpt(texts[i], 60))
	}
	return tw.Flush()
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
