package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"autocritique/internal/ui"
	"autocritique/internal/verify"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [file]",
	Short: "Check fenced Go fragments in a file (or stdin) for syntax and heuristic test results",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	printer := ui.New()

	var data []byte
	var err error
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
	} else {
		data, err = io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}

	outcomes := verify.Verify(cmd.Context(), string(data))
	if len(outcomes) == 0 {
		printer.Info("no Go code fragments found")
		return nil
	}

	failed := false
	for _, o := range outcomes {
		printer.Verification(o.Fragment, string(o.Result), o.Detail)
		if o.Result == verify.ResultFail || !o.SyntaxValid {
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("verification found problems in %d fragment(s)", len(outcomes))
	}
	return nil
}
