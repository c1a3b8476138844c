package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"feature-diff/core/config"
	"feature-diff/core/database"
	"feature-diff/core/diff"
	"feature-diff/core/logger"
	"feature-diff/core/storage"
	"feature-diff/feature/compare"
	"feature-diff/feature/dataset"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// Flags for the compare command
	sourceA     string
	sourceB     string
	keyA        string
	keyB        string
	fieldMaps   []string
	mappingFile string
	withShape   bool
	outputName  string
	locale      string
	tolerance   float64
)

// compareCmd compares two keyed datasets and writes their differences.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Create difference records for two feature datasets",
	Long: `Compare two datasets sorted on a key field and write one row per
added, deleted, edited or null-key record.

Datasets are named by handle: db:<table>, file:<path.geojson> or
s3://<bucket>/<object.geojson>. Outputs use the same handles; files and
objects receive JSON lines.

Examples:
  # Keys only
  compare --a db:streets_2023 --b db:streets_2024 --key-a STREET_ID

  # Flag name changes and compare shapes
  compare --a db:streets_2023 --b db:streets_2024 --key-a STREET_ID \
    --map NAME=ST_NAME:NAME --shape

  # Field maps from a YAML file, output as JSON lines
  compare --a file:old.geojson --b file:new.geojson --key-a CODE \
    --mapping-file fields.yaml --out file:diff.jsonl`,
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&sourceA, "a", "", "First (older) dataset handle")
	compareCmd.Flags().StringVar(&sourceB, "b", "", "Second (newer) dataset handle")
	compareCmd.Flags().StringVar(&keyA, "key-a", "", "Key field of the first dataset")
	compareCmd.Flags().StringVar(&keyB, "key-b", "", "Key field of the second dataset (defaults to --key-a)")
	compareCmd.Flags().StringArrayVar(&fieldMaps, "map", nil, "Field map OUT=fieldA:fieldB, OUT=field or FIELD (repeatable)")
	compareCmd.Flags().StringVar(&mappingFile, "mapping-file", "", "YAML file with field maps")
	compareCmd.Flags().BoolVar(&withShape, "shape", false, "Compare shapes")
	compareCmd.Flags().StringVar(&outputName, "out", "", "Output handle (defaults to COMPARE_OUTPUT)")
	compareCmd.Flags().StringVar(&locale, "locale", "", "Collation locale for text keys, or \"binary\" (defaults to COMPARE_LOCALE)")
	compareCmd.Flags().Float64Var(&tolerance, "tolerance", -1, "XY tolerance for shape comparison (defaults to COMPARE_XY_TOLERANCE)")

	_ = compareCmd.MarkFlagRequired("a")
	_ = compareCmd.MarkFlagRequired("b")
	_ = compareCmd.MarkFlagRequired("key-a")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer l.Sync()

	req, err := buildRequest(cmd)
	if err != nil {
		return err
	}

	kinds, err := handleKinds(req.SourceA, req.SourceB, req.Output, cfg.Compare.Output)
	if err != nil {
		return err
	}

	var db *gorm.DB
	if kinds[dataset.KindTable] {
		if db, err = database.Connect(cfg.Database); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
	}

	var client storage.Client
	if kinds[dataset.KindObject] {
		if client, err = storage.NewClient(cfg.Storage); err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := compare.NewService(db, client, cfg.Storage.Region, cfg.Compare, 1, l)
	run, err := svc.Compare(ctx, req, percentProgress(l))
	if err != nil {
		return err
	}

	l.Info("Difference report",
		zap.String("output", run.Request.Output),
		zap.Int64("records_read", run.Summary.Consumed),
		zap.Int64("differences", run.Summary.Emitted),
		zap.Int64("unchanged", run.Summary.Unchanged),
	)
	return nil
}

// buildRequest assembles the comparison request from the command flags.
func buildRequest(cmd *cobra.Command) (compare.Request, error) {
	req := compare.Request{
		SourceA: sourceA,
		SourceB: sourceB,
		KeyA:    keyA,
		KeyB:    keyB,
		Shape:   withShape,
		Output:  outputName,
		Locale:  locale,
	}
	if cmd.Flags().Changed("tolerance") {
		tol := tolerance
		req.XYTolerance = &tol
	}

	if mappingFile != "" {
		fields, err := diff.LoadCorrespondenceFile(mappingFile)
		if err != nil {
			return compare.Request{}, err
		}
		req.Fields = fields.Entries()
	}
	if len(fieldMaps) > 0 {
		fields, err := diff.ParseCorrespondence(fieldMaps)
		if err != nil {
			return compare.Request{}, err
		}
		req.Fields = append(req.Fields, fields.Entries()...)
	}
	return req, nil
}

// handleKinds reports which kinds of handles a run touches, so that only the
// backends in use are connected. An empty output falls back to defaultOutput.
func handleKinds(a, b, out, defaultOutput string) (map[dataset.Kind]bool, error) {
	if out == "" {
		out = defaultOutput
	}
	kinds := make(map[dataset.Kind]bool, 3)
	for _, s := range []string{a, b, out} {
		h, err := dataset.ParseHandle(s)
		if err != nil {
			return nil, err
		}
		kinds[h.Kind] = true
	}
	return kinds, nil
}

// percentProgress logs once per percent of the combined input, or every
// progressStep records when the input size is unknown.
func percentProgress(l *zap.Logger) compare.ProgressFunc {
	const progressStep = 10000
	last := int64(-1)
	return func(consumed, total int64) {
		if total <= 0 {
			if step := consumed / progressStep; step > last {
				last = step
				if step > 0 {
					l.Info("Comparing", zap.Int64("records_read", consumed))
				}
			}
			return
		}
		percent := consumed * 100 / total
		if percent == last {
			return
		}
		last = percent
		l.Info("Comparing", zap.Int64("percent", percent), zap.Int64("records_read", consumed), zap.Int64("records_total", total))
	}
}
