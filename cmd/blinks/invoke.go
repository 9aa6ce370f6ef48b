package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/blinks/pkg/domain"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <action>",
	Short: "Invoke a single action and print the result envelope",
	Long: `Validates the parameters, calls the Blinks service and prints the
{success, result, error} envelope as JSON.

With --dry-run nothing is sent; the resolved URL is printed instead.`,
	Example: `  blinks invoke marginfi_supply --account <pubkey> --param token=USDC --param amount=100
  blinks invoke jupiter_swap --param token_in=SOL --param token_out=USDC --param amount=0.5 --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rawParams, _ := cmd.Flags().GetStringArray("param")
		params, err := parseParams(rawParams)
		if err != nil {
			return err
		}
		account, _ := cmd.Flags().GetString("account")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		client, _, err := bootstrap(cmd)
		if err != nil {
			return err
		}

		req := domain.ActionRequest{Action: args[0], Params: params, Account: account}
		if dryRun {
			u, err := client.BuildURL(req)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), u)
			return nil
		}

		return writeResult(cmd.OutOrStdout(), client.Invoke(cmd.Context(), req))
	},
}

// parseParams turns repeated key=value flags into a parameter map.
// Values stay strings; numeric parameters accept numeric strings.
func parseParams(raw []string) (map[string]any, error) {
	params := make(map[string]any, len(raw))
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --param %q: expected key=value", kv)
		}
		if _, dup := params[key]; dup {
			return nil, fmt.Errorf("duplicate --param %q", key)
		}
		params[key] = value
	}
	return params, nil
}

func writeResult(w io.Writer, res domain.ActionResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func init() {
	rootCmd.AddCommand(invokeCmd)
	invokeCmd.Flags().String("account", "", "Public key of the transaction sender")
	invokeCmd.Flags().StringArrayP("param", "p", nil, "Action parameter as key=value (repeatable)")
	invokeCmd.Flags().Bool("dry-run", false, "Print the resolved URL without calling the service")
}
