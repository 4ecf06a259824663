package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chukul/awsctx/internal"
	"github.com/chukul/awsctx/internal/ui"
	"github.com/spf13/cobra"
)

func printLogo(w io.Writer) {
	// Gradient colors (Blue -> Purple -> Pink)
	line := "  awsctx"
	fmt.Fprintln(w)
	for i, char := range line {
		ratio := float64(i) / float64(len(line))

		var r, g, b int
		if ratio < 0.5 {
			subRatio := ratio * 2
			r = int(170 * subRatio)
			g = int(176 * (1 - subRatio))
			b = 255
		} else {
			subRatio := (ratio - 0.5) * 2
			r = int(170*(1-subRatio) + 255*subRatio)
			g = 0
			b = int(255*(1-subRatio) + 128*subRatio)
		}

		fmt.Fprintf(w, "\x1b[1;38;2;%d;%d;%dm%c\x1b[0m", r, g, b, char)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "\x1b[1m  Switch AWS profiles and keep SSO sessions fresh\x1b[0m")
	fmt.Fprintln(w)
}

type rootOptions struct {
	current   bool
	refresh   bool
	whoami    bool
	debug     bool
	shellInit bool
}

var rootFlags rootOptions

var rootCmd = &cobra.Command{
	Use:   "awsctx [PROFILE]",
	Short: "awsctx switches between AWS profiles",
	Long: `awsctx lists the profiles defined in ~/.aws/credentials and ~/.aws/config,
remembers the one you pick and opens a new shell with AWS_PROFILE set.
SSO profiles are logged in with 'aws sso login' when no cached session is valid.`,
	Example: `  awsctx                  list the profiles
  awsctx <PROFILE>        switch to profile <PROFILE>
  awsctx -c, --current    show the current profile name
  awsctx -r [PROFILE]     log in again to an SSO profile
  awsctx -h, --help       show this message`,
	Args:          cobra.MaximumNArgs(1),
	Version:       internal.CurrentVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(rootFlags.debug)
		if err != nil {
			return err
		}
		a.stdout = cmd.OutOrStdout()
		a.stderr = cmd.ErrOrStderr()
		return a.run(cmd.Context(), rootFlags, args)
	},
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&rootFlags.current, "current", "c", false, "Show the current profile name")
	f.BoolVarP(&rootFlags.refresh, "refresh", "r", false, "Run 'aws sso login' for PROFILE (default: current profile)")
	f.BoolVarP(&rootFlags.whoami, "whoami", "w", false, "Show the caller identity of PROFILE (default: current profile)")
	f.BoolVar(&rootFlags.debug, "debug", false, "Enable debug logging")
	f.BoolVar(&rootFlags.shellInit, "init", false, "Print shell integration code")
	rootCmd.MarkFlagsMutuallyExclusive("current", "refresh", "whoami", "init")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Execute runs the CLI and exits with the resulting status code.
func Execute() {
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printLogo(os.Stdout)
	}
	os.Exit(exitCode(os.Stderr, rootCmd.Execute()))
}

// exitCode reports err on w and maps it to a process status. Cancelling the
// picker is not an error, and a failed login keeps the login command's status.
func exitCode(w io.Writer, err error) int {
	if err == nil || errors.Is(err, ui.ErrCancelled) {
		return 0
	}

	var loginErr *internal.LoginError
	if errors.As(err, &loginErr) {
		if loginErr.Code > 0 {
			return loginErr.Code
		}
		fmt.Fprintf(w, "❌ %v\n", err)
		return 1
	}

	if errors.Is(err, internal.ErrNoProfiles) {
		fmt.Fprintln(w, "No AWS profiles found.")
		return 1
	}

	fmt.Fprintf(w, "❌ %v\n", err)
	return 1
}
