package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/inspire-dojson/format"
)

var (
	inputFile  string
	outputFile string
	pretty     bool
	kind       string
)

var convertCmd = &cobra.Command{
	Use:   "convert <from> <to>",
	Short: "Convert records between formats",
	Long: `Convert records from one format to another.

Arguments:
  from    Source format (marcxml, cds, json)
  to      Target format (json, marcxml, marcjson)

Input defaults to stdin, output defaults to stdout.

Examples:
  # MARCXML to JSON (stdin to stdout)
  cat record.xml | inspire-dojson convert marcxml json

  # Input and output files
  inspire-dojson convert marcxml json -i record.xml -o record.json --pretty

  # JSON back to MARCXML with https links
  inspire-dojson convert json marcxml -i record.json --scheme https

  # CDS MARCXML to INSPIRE JSON
  inspire-dojson convert cds json -i cds.xml

  # Force the job rules, which marker detection refuses
  inspire-dojson convert marcxml json -i job.xml --kind jobs`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	convertCmd.Flags().StringVar(&kind, "kind", "", "Entity rules for MARCXML input (default: detect from 980 markers)")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	fromFormat := args[0]
	toFormat := args[1]

	// Resolve formats before touching any file
	parser, err := format.GetParser(fromFormat)
	if err != nil {
		return fmt.Errorf("unknown source format %q: %w", fromFormat, err)
	}
	serializer, err := format.GetSerializer(toFormat)
	if err != nil {
		return fmt.Errorf("unknown target format %q: %w", toFormat, err)
	}

	var input io.Reader
	var inputName string

	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
		inputName = inputFile
	} else {
		input = os.Stdin
		inputName = "stdin"
	}

	var output io.Writer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	} else {
		output = os.Stdout
	}

	parseOpts := format.NewParseOptions()
	parseOpts.SourceName = inputName
	parseOpts.Kind = kind

	records, err := parser.Parse(input, parseOpts)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	slog.Info("parsed records", "count", len(records), "source", inputName, "format", fromFormat)

	serializeOpts := format.NewSerializeOptions()
	serializeOpts.Pretty = pretty

	if err := serializer.Serialize(output, records, serializeOpts); err != nil {
		return fmt.Errorf("serializing output: %w", err)
	}

	return nil
}
