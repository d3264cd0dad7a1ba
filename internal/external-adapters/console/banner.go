package console

import (
	"fmt"
	"io"
)

const banner = `
██╗  ██╗███████╗ █████╗ ██████╗ ██╗     ███████╗███████╗███████╗
██║  ██║██╔════╝██╔══██╗██╔══██╗██║     ██╔════╝██╔════╝██╔════╝
███████║█████╗  ███████║██║  ██║██║     █████╗  ███████╗███████╗
██╔══██║██╔══╝  ██╔══██║██║  ██║██║     ██╔══╝  ╚════██║╚════██║
██║  ██║███████╗██║  ██║██████╔╝███████╗███████╗███████║███████║
╚═╝  ╚═╝╚══════╝╚═╝  ╚═╝╚═════╝ ╚══════╝╚══════╝╚══════╝╚══════╝
				automate your automation™

`

// PrintBanner writes the ASCII banner
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, banner+"\n")
}

// PrintUsage writes the option summary and examples
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, `OPTIONS:
-t, --target			Path of the target ELF to analyze
-a, --analyzer			Path to Ghidra's 'analyzeHeadless' script
-f, --folder			Name of the Ghidra project folder to create
-p, --project			Name of the Ghidra project to create
-s, --script			Script name to run in analyzer (repeatable)
-d, --dependencies		Find and analyze dependencies for ELF
-r, --resolver			Dependency resolver: ldd (default) or elf
-l, --log-dir			Directory for the run log (default: /tmp)
-y, --yes			Run without asking for confirmation
-c, --config			YAML config file
    --sha256			Expected SHA-256 of the target, hex
    --signature			Detached OpenPGP signature of the target
    --keyring			Public keyring used to check --signature
    --min-analyzer-version	Required Ghidra version, e.g. ">= 10.3"
-v, --verbose			Show debug output
    --no-color			Disable colored output
    --no-banner			Do not print the banner
-h, --help			Print this

EXAMPLES:
usage: ./headless -t <target> -a <analyzeHeadless_path> -s <script> -d
usage: ./headless -t /usr/bin/objdump -a /home/user/Ghidra/ghidra_9.0.1/support/analyzeHeadless
usage: ./headless -t <target> -a <analyzeHeadless> -s "MyScript.py <script_arg1> <script_arg2>"
`)
}
