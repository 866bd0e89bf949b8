package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"labelforge/pkg/label"
)

var (
	verbose     bool
	orientation string
	scale       float64
	outPath     string
	templateDir string
	iconDir     string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "labelforge",
	Short: "labelforge - batch product label document generator",
	Long: `labelforge renders batches of product records into printable
label sheets (docx), one grid page per chunk of records.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		label.SetLogger(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var renderCmd = &cobra.Command{
	Use:   "render [records-file]",
	Short: "Render a records file into a label sheet document",
	Long: `Reads a YAML (or JSON) list of record maps and renders them as a
label sheet in the requested orientation.

Example:
  labelforge render records.yaml --orientation horizontal --out labels.docx`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var orientationsCmd = &cobra.Command{
	Use:   "orientations",
	Short: "List supported label orientations and their grid shapes",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, o := range label.Orientations() {
			shape := o.Shape()
			fmt.Fprintf(cmd.OutOrStdout(), "%-12s %d x %d (%d labels per page)\n",
				o, shape.Rows, shape.Cols, o.Capacity())
		}
		return nil
	},
}

func runRender(cmd *cobra.Command, args []string) error {
	records, err := loadRecords(args[0])
	if err != nil {
		return err
	}

	o, err := label.ParseOrientation(orientation)
	if err != nil {
		return err
	}

	cfg := label.ConfigFromEnvironment()
	if templateDir != "" {
		cfg.TemplateDir = templateDir
	}
	engine, err := label.NewEngine(cfg)
	if err != nil {
		return err
	}
	if iconDir != "" {
		engine.Icons = label.DirIconResolver{Dir: iconDir}
	}

	out, err := engine.Generate(records, o, scale)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	path := outPath
	if path == "" {
		path = strings.TrimSuffix(args[0], ".yaml") + ".docx"
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	logger.Info("label sheet written",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.String("orientation", string(o)))
	return nil
}

// loadRecords reads a list of record maps. YAML is a superset of JSON,
// so both record file flavors parse with one decoder.
func loadRecords(path string) ([]label.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var raw []map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	records := make([]label.Record, 0, len(raw))
	for _, m := range raw {
		records = append(records, label.Record(m))
	}
	return records, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	renderCmd.Flags().StringVarP(&orientation, "orientation", "O", "horizontal", "label orientation (mini, vertical, horizontal, double, inventory)")
	renderCmd.Flags().Float64VarP(&scale, "scale", "s", 0, "font scale factor (0 uses the configured default)")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default: records file with .docx extension)")
	renderCmd.Flags().StringVar(&templateDir, "template-dir", "", "directory of base template overrides")
	renderCmd.Flags().StringVar(&iconDir, "icon-dir", "", "directory of compliance icon assets")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(orientationsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
