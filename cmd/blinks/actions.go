package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/blinks/internal/presentation/tui"
	"github.com/aretw0/blinks/pkg/catalog"
)

var actionsCmd = &cobra.Command{
	Use:   "actions",
	Short: "List the registered actions",
	Long:  `Prints the action catalog as markdown, rendered for the terminal when stdout is one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		protocol, _ := cmd.Flags().GetString("protocol")

		client, _, err := bootstrap(cmd)
		if err != nil {
			return err
		}

		if err := checkProtocol(client.Registry().Protocols(), protocol); err != nil {
			return err
		}

		actions := filterProtocol(client.Actions(), protocol)
		return printCatalog(cmd.OutOrStdout(), actions, isTerminal(cmd.OutOrStdout()))
	},
}

// checkProtocol accepts an empty filter or one of the registered protocols.
func checkProtocol(known []string, protocol string) error {
	if protocol == "" || slices.Contains(known, protocol) {
		return nil
	}
	return fmt.Errorf("unknown protocol %q (known: %s)", protocol, strings.Join(known, ", "))
}

func filterProtocol(actions []catalog.Action, protocol string) []catalog.Action {
	if protocol == "" {
		return actions
	}
	var out []catalog.Action
	for _, a := range actions {
		if a.Protocol == protocol {
			out = append(out, a)
		}
	}
	return out
}

func printCatalog(w io.Writer, actions []catalog.Action, render bool) error {
	md := tui.CatalogMarkdown(actions)
	if render {
		out, err := tui.NewRenderer()(md)
		if err == nil {
			md = out
		}
	}
	_, err := fmt.Fprint(w, md)
	return err
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func init() {
	rootCmd.AddCommand(actionsCmd)
	actionsCmd.Flags().String("protocol", "", "Only list actions of this protocol")
}
