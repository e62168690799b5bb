package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/olgasafonova/finnish-id-mcp-server/internal/finland"
	"github.com/olgasafonova/finnish-id-mcp-server/internal/version"
)

// ErrInvalid is returned when --exit-code is set and the identifier is invalid.
var ErrInvalid = errors.New("identifier is invalid")

const usageText = `Usage: fiid <Finnish SSN or Business ID>
Example: fiid 131052-308T
Example: fiid 2464491-9
`

type outputOptions struct {
	explain  bool
	exitCode bool
	noColor  bool
}

// RootCmd returns the fiid root command. With one argument it detects the
// identifier kind, validates it and prints true or false.
func RootCmd() *cobra.Command {
	opts := &outputOptions{}

	cmd := &cobra.Command{
		Use:     "fiid [identifier]",
		Short:   "Validate Finnish personal identity codes and business IDs",
		Version: version.String(),
		Long: `fiid validates Finnish identifiers:
- personal identity codes (henkilötunnus) such as 131052-308T
- business IDs (Y-tunnus) such as 2464491-9

A 9-character input with a hyphen at position 8 is checked as a business ID,
anything else as a personal identity code.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_, err := fmt.Fprint(cmd.OutOrStdout(), usageText)
				return err
			}
			return report(cmd.OutOrStdout(), finland.Validate(args[0]), opts)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.explain, "explain", "e", false, "Print the kind and the rejection reason")
	cmd.PersistentFlags().BoolVar(&opts.exitCode, "exit-code", false, "Exit with status 1 when the identifier is invalid")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if opts.noColor || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		}
	}

	cmd.AddCommand(ssnCmd(opts))
	cmd.AddCommand(businessIDCmd(opts))
	cmd.AddCommand(checkCmd())

	return cmd
}

// ssnCmd validates its argument as a personal identity code
func ssnCmd(opts *outputOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ssn <code>",
		Aliases: []string{"hetu"},
		Short:   "Validate a personal identity code (henkilötunnus)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return report(cmd.OutOrStdout(), finland.ValidateAs(args[0], finland.KindSSN), opts)
		},
	}
}

// businessIDCmd validates its argument as a business ID
func businessIDCmd(opts *outputOptions) *cobra.Command {
	var normalize bool

	cmd := &cobra.Command{
		Use:     "business-id <id>",
		Aliases: []string{"ytunnus", "y-tunnus"},
		Short:   "Validate a business ID (Y-tunnus)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if normalize {
				if normalized, err := finland.NormalizeBusinessID(id); err == nil {
					id = normalized
				}
			}
			return report(cmd.OutOrStdout(), finland.ValidateAs(id, finland.KindBusinessID), opts)
		},
	}

	cmd.Flags().BoolVarP(&normalize, "normalize", "n", false, "Strip spaces and FI prefix and insert the hyphen before validating")
	return cmd
}

// report prints a validation result in plain or explained form.
func report(w io.Writer, r finland.Result, opts *outputOptions) error {
	if opts.explain {
		if _, err := fmt.Fprintln(w, explain(r)); err != nil {
			return err
		}
	} else if _, err := fmt.Fprintln(w, strconv.FormatBool(r.Valid)); err != nil {
		return err
	}

	if opts.exitCode && !r.Valid {
		return ErrInvalid
	}
	return nil
}

func explain(r finland.Result) string {
	if r.Valid {
		return fmt.Sprintf("%s %s %s",
			color.New(color.FgGreen).Sprint("VALID"), r.Kind.Name(), r.Input)
	}
	return fmt.Sprintf("%s %s %s: %s (%s)",
		color.New(color.FgRed).Sprint("INVALID"), r.Kind.Name(), r.Input,
		color.New(color.FgYellow).Sprint(r.Message), r.Reason)
}
