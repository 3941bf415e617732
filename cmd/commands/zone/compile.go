package zone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"nathanbeddoewebdev/leasedns/internal/tinydnsbin"
	"nathanbeddoewebdev/leasedns/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// CompileCommand returns the "zone compile" command.
func CompileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Run " + tinydnsbin.DefaultBinary + " on the zone",
		Long: `Run the tinydns-data compiler in the zone root, turning the data file
into the data.cdb the server actually reads. A non-zero exit is
reported with the exit code.`,
		Args:         cobra.ExactArgs(0),
		RunE:         runCompile,
		SilenceUsage: true,
	}

	return cmd
}

func runCompile(cmd *cobra.Command, args []string) error {
	root := cmd.Flag("root").Value.String()

	compiler := &tinydnsbin.Compiler{
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}

	var err error
	if term.IsTerminal(int(os.Stdout.Fd())) {
		err = tui.RunWithSpinner("Compiling zone...", func(ctx context.Context) error {
			return compiler.Run(ctx, root)
		})
	} else {
		err = compiler.Run(cmd.Context(), root)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Compiled %s.\n", filepath.Join(root, "data.cdb"))
	return nil
}
