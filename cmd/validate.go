package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/inspire-dojson/api"
	"github.com/lehigh-university-libraries/inspire-dojson/format"
	"github.com/lehigh-university-libraries/inspire-dojson/schema"
	"github.com/lehigh-university-libraries/inspire-dojson/value"
)

var (
	validateInput   string
	validateVerbose bool
	validateKind    string
)

var validateCmd = &cobra.Command{
	Use:   "validate [format]",
	Short: "Translate records and check them without writing output",
	Long: `Translate records and check the structural guarantees of the result:
a known $schema, a collection, no empty values, no duplicated list
elements and well-formed record links.

Arguments:
  format  Input format (marcxml, cds, json); defaults to marcxml

Input defaults to stdin. The command fails when any record has a violation.

Examples:
  inspire-dojson validate -i records.xml
  inspire-dojson validate json -i record.json --verbose
  cat cds.xml | inspire-dojson validate cds`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateInput, "input", "i", "", "Input file (default: stdin)")
	validateCmd.Flags().StringVar(&validateKind, "kind", "", "Entity rules for MARCXML input (default: detect from 980 markers)")
	validateCmd.Flags().BoolVarP(&validateVerbose, "verbose", "v", false, "Show detailed information")
}

func runValidate(cmd *cobra.Command, args []string) (err error) {
	fromFormat := "marcxml"
	if len(args) == 1 {
		fromFormat = args[0]
	}

	var input io.Reader
	var inputName string

	if validateInput != "" {
		f, openErr := os.Open(validateInput)
		if openErr != nil {
			return fmt.Errorf("opening input file: %w", openErr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
		inputName = validateInput
	} else {
		input = os.Stdin
		inputName = "stdin"
	}

	parser, err := format.GetParser(fromFormat)
	if err != nil {
		return fmt.Errorf("unknown format %q: %w", fromFormat, err)
	}

	parseOpts := format.NewParseOptions()
	parseOpts.SourceName = inputName
	parseOpts.Kind = validateKind

	records, err := parser.Parse(input, parseOpts)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	invalid := 0
	for i, rec := range records {
		result := api.Validate(rec)
		for _, e := range result.Errors {
			fmt.Printf("record %d: %s\n", i+1, e.Error())
		}
		if !result.IsValid() {
			invalid++
		}
	}

	if validateVerbose {
		fmt.Println("\nRecord summary:")
		for i, r := range records {
			fmt.Printf("\n  Record %d:\n", i+1)
			fmt.Printf("    Schema: %s\n", schema.Stem(value.Text(r["$schema"])))
			fmt.Printf("    Collections: %v\n", value.Strings(r["_collections"]))
			if title := recordTitle(r); title != "" {
				fmt.Printf("    Title: %s\n", truncate(title, 60))
			}
			if id := value.Text(r["control_number"]); id != "" {
				fmt.Printf("    Control number: %s\n", id)
			}
			fmt.Printf("    Fields: %d\n", len(r))
		}
	}

	if invalid > 0 {
		return fmt.Errorf("%d of %d records from %s have violations", invalid, len(records), inputName)
	}

	fmt.Printf("✓ Valid: translated %d records from %s\n", len(records), inputName)
	return nil
}

// recordTitle picks the display name of a record whatever its kind.
func recordTitle(r map[string]any) string {
	for _, path := range []string{
		"titles.0.title",
		"name.value",
		"journal_title.title",
		"legacy_name",
		"legacy_ICN",
		"position",
	} {
		if s := value.GetText(r, path); s != "" {
			return s
		}
	}
	return ""
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
