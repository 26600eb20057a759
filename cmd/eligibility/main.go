package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/career-guide-api/internal/dto"
	"github.com/noah-isme/career-guide-api/internal/models"
	"github.com/noah-isme/career-guide-api/internal/repository"
	"github.com/noah-isme/career-guide-api/internal/service"
	"github.com/noah-isme/career-guide-api/pkg/catalog"
)

type checkOptions struct {
	catalogPath string
	level       string
	board       string
	percentage  float64
	stream      string
	output      string
	band        float64
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eligibility",
		Short:         "Offline college eligibility checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCmd())
	return root
}

func newCheckCmd() *cobra.Command {
	opts := &checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Evaluate a student profile against a catalog file",
		Example: "  eligibility check --catalog data/colleges.yaml --level puc --board cbse --percentage 82 --stream science\n" +
			"  eligibility check --catalog data/colleges.yaml --level class10 --board state --percentage 71 --output csv",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.catalogPath, "catalog", "data/colleges.yaml", "catalog seed file (.yaml, .yml or .json)")
	flags.StringVar(&opts.level, "level", "", "student level: class10 or puc")
	flags.StringVar(&opts.board, "board", "", "examination board")
	flags.Float64Var(&opts.percentage, "percentage", -1, "aggregate percentage (0-100)")
	flags.StringVar(&opts.stream, "stream", "", "PUC stream: science, commerce or arts")
	flags.StringVarP(&opts.output, "output", "o", "table", "output format: table, json or csv")
	flags.Float64Var(&opts.band, "band", service.DefaultBorderlineBand, "percentage points below a cutoff still reported as borderline")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log evaluation details to stderr")
	_ = cmd.MarkFlagRequired("level")
	_ = cmd.MarkFlagRequired("board")
	_ = cmd.MarkFlagRequired("percentage")
	return cmd
}

func runCheck(ctx context.Context, out io.Writer, opts *checkOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.band <= 0 || opts.band > 100 {
		return fmt.Errorf("band must be greater than 0 and at most 100, got %v", opts.band)
	}
	colleges, err := catalog.Load(opts.catalogPath)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	logger := zap.NewNop()
	if opts.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return err
		}
		defer logger.Sync() //nolint:errcheck
	}

	catalogSvc := service.NewCollegeService(repository.NewStaticCollegeRepository(colleges), nil, nil, logger)
	svc := service.NewEligibilityService(service.EligibilityServiceParams{
		Catalog:        catalogSvc,
		BorderlineBand: opts.band,
		Logger:         logger,
	})

	percentage := opts.percentage
	req := service.CheckRequest{Level: opts.level, Board: opts.board, Percentage: &percentage, Stream: opts.stream}

	switch strings.ToLower(opts.output) {
	case "csv":
		file, err := svc.Export(ctx, req, service.ExportFormatCSV)
		if err != nil {
			return err
		}
		_, err = out.Write(file.Payload)
		return err
	case "json":
		report, _, err := svc.Check(ctx, req)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(dto.NewEligibilityCheckResponse(report))
	case "table":
		report, _, err := svc.Check(ctx, req)
		if err != nil {
			return err
		}
		return writeTable(out, dto.NewEligibilityCheckResponse(report))
	default:
		return fmt.Errorf("unknown output format %q", opts.output)
	}
}

func writeTable(out io.Writer, resp dto.EligibilityCheckResponse) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tCOLLEGE\tSTATUS\tCUTOFF\tMARGIN\tNOTE")
	for _, result := range resp.Results {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			result.Badge,
			result.CollegeName,
			result.Status.Label(),
			optionalPercent(result.CutoffPercentage),
			optionalPercent(result.Delta),
			note(result.Reason, string(result.RequiredStream)),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "\n%d colleges: %d eligible, %d borderline, %d not eligible (board: %s)\n",
		resp.Summary.Total, resp.Summary.Eligible, resp.Summary.Borderline, resp.Summary.NotEligible, resp.NormalizedBoard)
	return err
}

func optionalPercent(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func note(reason models.EligibilityReason, requiredStream string) string {
	switch reason {
	case models.ReasonNoCutoff:
		return "no published cutoff"
	case models.ReasonStreamMismatch:
		return "requires " + requiredStream + " stream"
	case models.ReasonBorderlineBand:
		return "within borderline band"
	case models.ReasonBelowCutoff:
		return "below cutoff"
	}
	return ""
}
