package main

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rgehrsitz/basereg/internal/compare"
	"github.com/rgehrsitz/basereg/internal/config"
	"github.com/rgehrsitz/basereg/internal/output"
	"github.com/rgehrsitz/basereg/internal/transform"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var saveExtensions = map[string]string{
	"json":        "json",
	"csv":         "csv",
	"summary-csv": "csv",
	"html":        "html",
}

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [request-file]",
		Short: "Calculate the regulatory base for a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unsupported format %q (available: %s; aliases: %s)", format,
					strings.Join(output.AvailableFormatterNames(), ", "),
					strings.Join(output.AvailableFormatAliases(), ", "))
			}

			logger := cliLogger(cmd, "text")
			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine, _, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			logger.WithField("run_id", runID).Debugf("simulating %s", args[0])
			outcome, err := engine.Simulate(*req)
			if err != nil {
				return err
			}

			if save, _ := cmd.Flags().GetBool("save"); save {
				ext, ok := saveExtensions[formatter.Name()]
				if !ok {
					ext = "txt"
				}
				filename, err := output.WriteFormatted(formatter, outcome, ext)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s (run %s)\n", filename, runID)
				return nil
			}

			data, err := formatter.Format(outcome)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, console-lite, json, csv, summary-csv, html)")
	cmd.Flags().Bool("save", false, "Write the report to a timestamped file instead of stdout")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [request-file]",
		Short: "Compare the reform and legacy schemes for a request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := cliLogger(cmd, "text")
			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine, _, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}

			compSet, err := compare.NewCompareEngine(engine).Compare(*req)
			if err != nil {
				return err
			}
			compSet.RequestPath = args[0]

			var out string
			switch format, _ := cmd.Flags().GetString("format"); format {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
				out += "\n"
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet) + "\n"
			case "table", "":
				out = (&compare.TableFormatter{}).Format(compSet)
			default:
				return fmt.Errorf("unsupported format %q (table, csv, json, compact)", format)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "table", "Output format (table, csv, json, compact)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [request-file]",
		Short: "Validate a request file without computing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅ %s is valid: %d records, retirement %s, %s, %s\n",
				args[0], len(req.Records), req.RetirementMonth, req.AccessRegime, req.Sex)
			return nil
		},
	}
}

func configInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config-info",
		Short: "Summarise the loaded reference tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := referenceDir(cmd)
			ref, err := config.NewReferenceLoader(dir).Load()
			if err != nil {
				return fmt.Errorf("failed to load reference data from %s: %w", dir, err)
			}
			info := config.Describe(dir, ref)

			var data []byte
			if format, _ := cmd.Flags().GetString("format"); format == "json" {
				data, err = json.MarshalIndent(info, "", "  ")
				data = append(data, '\n')
			} else {
				data, err = yaml.Marshal(info)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "yaml", "Output format (yaml, json)")
	return cmd
}

func whatIfCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "what-if [request-file]",
		Short: "Compare a request against a transformed variant",
		Long: `Applies transforms to a request and compares the chosen regulatory base before and after.

Transforms use the form name:key=value,key=value, for example:
  basereg what-if request.yaml -t postpone_retirement:months=12
  basereg what-if request.yaml -t add_contribution:month=03/2010,amount=1200.50`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := transform.NewTransformRegistry()
			if list, _ := cmd.Flags().GetBool("list"); list {
				for _, name := range registry.List() {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			specs, _ := cmd.Flags().GetStringArray("transform")
			if len(specs) == 0 {
				return fmt.Errorf("at least one --transform is required (see --list)")
			}
			transforms, err := registry.ParseTransformSpecs(specs)
			if err != nil {
				return err
			}

			logger := cliLogger(cmd, "text")
			base, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			variant, err := transform.ApplyTransforms(base, transforms)
			if err != nil {
				return err
			}
			engine, _, err := loadEngine(cmd, logger)
			if err != nil {
				return err
			}

			res, err := compare.NewCompareEngine(engine).CompareWhatIf(*base, *variant, transform.Describe(transforms))
			if err != nil {
				return err
			}

			if format, _ := cmd.Flags().GetString("format"); format == "json" {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), compare.FormatWhatIf(res))
			return nil
		},
	}
	cmd.Flags().StringArrayP("transform", "t", nil, "Transform to apply (repeatable)")
	cmd.Flags().Bool("list", false, "List available transforms")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
