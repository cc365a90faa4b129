package cli

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rshade/tdsdose/pkg/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(ver string) *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tdsdose version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if short {
				cmd.Println(ver)
				return nil
			}
			cmd.Printf("tdsdose %s\n", ver)
			if commit := version.GetCommit(); commit != "" {
				cmd.Printf("commit: %s\n", commit)
			}
			cmd.Printf("go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "print only the version number")

	return cmd
}
