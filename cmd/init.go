package cmd

import (
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"
)

func detectShell(shell string) string {
	fields := strings.Fields(shell)
	if len(fields) == 0 {
		if runtime.GOOS == "windows" {
			return "powershell"
		}
		return "bash"
	}
	name := filepath.Base(fields[0])
	return strings.TrimSuffix(name, ".exe")
}

// printShellInit writes a snippet that exports the remembered profile in
// every new shell.
func printShellInit(w io.Writer, shell string) {
	name := detectShell(shell)

	fmt.Fprintf(w, "# awsctx shell integration for %s\n", name)
	fmt.Fprintln(w, "# Add this to your shell config file:")
	fmt.Fprintln(w, "# - Bash: ~/.bashrc or ~/.bash_profile")
	fmt.Fprintln(w, "# - Zsh: ~/.zshrc")
	fmt.Fprintln(w, "# - Fish: ~/.config/fish/config.fish")
	fmt.Fprintln(w)

	switch name {
	case "fish":
		printFishIntegration(w)
	case "powershell", "pwsh":
		printPowerShellIntegration(w)
	default:
		printBashZshIntegration(w)
	}
}

const bashZshIntegration = `# Export the profile selected with awsctx
if command -v awsctx >/dev/null 2>&1; then
  export AWS_PROFILE="$(awsctx --current 2>/dev/null)"
fi

# Show the active profile in your prompt (optional)
awsctx_prompt() {
  [ -n "$AWS_PROFILE" ] && printf '☁️  %s ' "$AWS_PROFILE"
}

# PS1='$(awsctx_prompt)\u@\h:\w\$ '
# PROMPT='$(awsctx_prompt)%n@%m:%~%# '

alias actx='awsctx'`

const fishIntegration = `# Export the profile selected with awsctx
if type -q awsctx
    set -gx AWS_PROFILE (awsctx --current 2>/dev/null)
end

alias actx='awsctx'`

const powerShellIntegration = `# Export the profile selected with awsctx
if (Get-Command awsctx -ErrorAction SilentlyContinue) {
    $env:AWS_PROFILE = (awsctx --current)
}

Set-Alias actx awsctx`

func printBashZshIntegration(w io.Writer) {
	io.WriteString(w, bashZshIntegration+"\n")
}

func printFishIntegration(w io.Writer) {
	io.WriteString(w, fishIntegration+"\n")
}

func printPowerShellIntegration(w io.Writer) {
	io.WriteString(w, powerShellIntegration+"\n")
}
