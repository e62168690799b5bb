package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olgasafonova/finnish-id-mcp-server/internal/finland"
)

// checkCmd completes an identifier by computing its check character
func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <ssn|business-id> <payload>",
		Short: "Compute the check character of a partial identifier",
		Long: `Compute the trailing check character:
- ssn: payload is DDMMYY, the century marker and the individual number, e.g. 131052-308
- business-id: payload is the 7-digit number, e.g. 2464491

The completed identifier is printed.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, payload := args[0], args[1]

			switch kind {
			case "ssn", "hetu":
				code, err := finland.CompleteSSN(payload)
				if err != nil {
					return fmt.Errorf("cannot complete ssn: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
				return err

			case "business-id", "ytunnus", "y-tunnus":
				d, ok := finland.BusinessIDCheckDigit(payload)
				if !ok {
					if len(payload) == 7 && isDigits(payload) {
						return fmt.Errorf("business ID number %s cannot carry a valid check digit", payload)
					}
					return fmt.Errorf("business ID number must be 7 digits, got %q", payload)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s-%d\n", payload, d)
				return err
			}

			return fmt.Errorf("unknown identifier kind %q (expected ssn or business-id)", kind)
		},
	}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
