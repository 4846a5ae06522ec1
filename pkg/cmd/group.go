package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	log "github.com/authzed/multidict/internal/logging"
	"github.com/authzed/multidict/pkg/bugs"
	"github.com/authzed/multidict/pkg/genutil/mapz"
)

const stdinName = "<stdin>"

// GroupConfig is the configuration for the group command.
type GroupConfig struct {
	// Separator splits each input line into key and value.
	Separator string

	AllowDuplicates bool
	IgnoreCase      bool

	// Output is one of "text", "json" or "yaml".
	Output string

	// Remove lists pairs, joined by Separator, removed after every input is
	// loaded.
	Remove []string

	PrintMetrics bool
}

func GroupExample(programName string) string {
	return fmt.Sprintf(`	%s:
		%s group roles.txt

	%s:
		cat roles.txt | %s group --ignore-case --allow-duplicates --output json

	%s:
		%s group --separator ": " --remove "admin: bob" roles.txt
`,
		color.YellowString("Group a file"),
		programName,
		color.GreenString("Group stdin, keeping duplicates"),
		programName,
		color.CyanString("Custom separator"),
		programName,
	)
}

func RegisterGroupFlags(cmd *cobra.Command, config *GroupConfig) error {
	cmd.Flags().StringVar(&config.Separator, "separator", "=", "separator between the key and the value of each line")
	cmd.Flags().BoolVar(&config.AllowDuplicates, "allow-duplicates", false, "keep equal values for the same key")
	cmd.Flags().BoolVar(&config.IgnoreCase, "ignore-case", false, "compare keys case-insensitively")
	cmd.Flags().StringVar(&config.Output, "output", "text", `output format ("text", "json", "yaml")`)
	cmd.Flags().StringArrayVar(&config.Remove, "remove", nil, "pair to remove after loading, joined by the separator (repeatable)")
	cmd.Flags().BoolVar(&config.PrintMetrics, "print-metrics", false, "print dictionary metrics to stderr after grouping")
	return nil
}

func NewGroupCommand(programName string, config *GroupConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "group [files...]",
		Short:   "group key-value lines by key",
		Long:    "Reads key-value lines from files, or stdin when none are given, and prints the values grouped by key. Blank lines and lines starting with # are skipped.",
		Example: GroupExample(programName),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Run(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args)
		},
	}
}

// Complete validates the configuration and creates the dictionary it
// describes. The caller must Close the dictionary.
func (c *GroupConfig) Complete() (*mapz.MultipleDictionary[string, string], error) {
	if c.Separator == "" {
		return nil, errors.New("separator must not be empty")
	}

	switch c.Output {
	case "text", "json", "yaml":
	default:
		return nil, fmt.Errorf("unknown output format %q", c.Output)
	}

	keyComparer := mapz.StringComparer()
	if c.IgnoreCase {
		keyComparer = mapz.CaseInsensitiveStringComparer()
	}

	return mapz.NewMultipleDictionaryWithComparers[string, string](
		c.AllowDuplicates,
		keyComparer,
		mapz.StringComparer(),
		mapz.WithMetricsName("group"),
	)
}

// Run groups the pairs read from the named files, or from stdin if there are
// none, and writes the result to out.
func (c *GroupConfig) Run(stdin io.Reader, out, errOut io.Writer, files []string) error {
	dict, err := c.Complete()
	if err != nil {
		return err
	}
	defer dict.Close()

	if len(files) == 0 {
		if f, ok := stdin.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			log.Warn().Msg("reading pairs from the terminal; end input with Ctrl-D")
		}

		if err := c.load(dict, stdin, stdinName); err != nil {
			return err
		}
	}

	for _, name := range files {
		if err := c.loadFile(dict, name); err != nil {
			return err
		}
	}

	for _, pair := range c.Remove {
		key, value, ok := strings.Cut(pair, c.Separator)
		if !ok {
			return fmt.Errorf("invalid --remove pair %q: missing separator %q", pair, c.Separator)
		}

		if !dict.Remove(strings.TrimSpace(key), strings.TrimSpace(value)) {
			log.Info().Str("pair", pair).Msg("pair to remove was not present")
		}
	}

	log.Debug().Object("dictionary", dict).Msg("grouped input")

	if err := c.write(dict, out); err != nil {
		return err
	}

	if c.PrintMetrics {
		return printMetrics(errOut)
	}
	return nil
}

func (c *GroupConfig) loadFile(dict *mapz.MultipleDictionary[string, string], name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	return c.load(dict, f, name)
}

func (c *GroupConfig) load(dict *mapz.MultipleDictionary[string, string], r io.Reader, name string) error {
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, c.Separator)
		if !ok {
			return fmt.Errorf("%s:%d: missing separator %q", name, lineNumber, c.Separator)
		}

		dict.Add(strings.TrimSpace(key), strings.TrimSpace(value))
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}

	log.Debug().Str("input", name).Int("lines", lineNumber).Msg("loaded input")
	return nil
}

func (c *GroupConfig) write(dict *mapz.MultipleDictionary[string, string], out io.Writer) error {
	keys := dict.Keys()
	slices.Sort(keys)

	switch c.Output {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(groupedValues(dict, keys))

	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(groupedValues(dict, keys)); err != nil {
			return err
		}
		return encoder.Close()

	default:
		for _, key := range keys {
			values, ok := dict.Get(key)
			if !ok {
				return bugs.MustBugf("listed key %q not found", key)
			}

			if _, err := fmt.Fprintf(out, "%s (%d)\n", color.CyanString(key), len(values)); err != nil {
				return err
			}

			for _, value := range values {
				if _, err := fmt.Fprintf(out, "  %s\n", value); err != nil {
					return err
				}
			}
		}
		return nil
	}
}

func groupedValues(dict *mapz.MultipleDictionary[string, string], keys []string) map[string][]string {
	grouped := make(map[string][]string, len(keys))
	for _, key := range keys {
		grouped[key], _ = dict.Get(key)
	}
	return grouped
}

func printMetrics(out io.Writer) error {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}

	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), "multidict_") {
			continue
		}

		if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
			return err
		}
	}
	return nil
}
