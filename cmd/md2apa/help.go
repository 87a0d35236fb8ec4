package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2apa <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert     Convert markdown files to APA documents")
	fmt.Fprintln(w, "  check       List markdown the converter renders as plain text")
	fmt.Fprintln(w, "  preview     Show the document in the terminal")
	fmt.Fprintln(w, "  config      Print or create a config file")
	fmt.Fprintln(w, "  doctor      Check the PDF browser setup")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2apa help <command>' for details on a specific command.")
	fmt.Fprintln(w, "'md2apa paper.md' is shorthand for 'md2apa convert paper.md'.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2apa convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to APA formatted documents.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: docx (default), html, pdf, txt")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Title Page:")
	fmt.Fprintln(w, "      --title <s>           Paper title (default: first # heading, then file name)")
	fmt.Fprintln(w, "      --author <s>          Author name (required)")
	fmt.Fprintln(w, "      --institution <s>     Institutional affiliation")
	printDateHelp(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Abstract:")
	fmt.Fprintln(w, "      --abstract <s>        Abstract text")
	fmt.Fprintln(w, "      --abstract-file <p>   Read the abstract from a file")
	fmt.Fprintln(w, "      --keywords <a,b>      Keywords line (default: placeholder)")
	fmt.Fprintln(w, "      --no-abstract         Omit the abstract page")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML/PDF Styling:")
	fmt.Fprintln(w, "      --style <name|path>   Style name or CSS file")
	fmt.Fprintln(w, "      --highlight <s>       Code highlighting style (default: github)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom styles/ and templates/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "      --no-lint             Do not report unsupported markdown")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing and debug logs")
}

func printDateHelp(w io.Writer) {
	fmt.Fprintln(w, "      --date <s>            Date: \"auto\" (default), \"auto:FORMAT\", or literal")
	fmt.Fprintln(w, "                            Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets: apa, iso, european, us, long")
	fmt.Fprintln(w, "                            Use [text] to escape literals: [Fall] YYYY")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2apa check <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List markdown constructs that convert renders as plain text, one per")
	fmt.Fprintln(w, "line as path:line: message [rule]. Exits 1 when anything is found.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quiet               Print findings only, no summary")
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2apa preview <file> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show the APA document as text. Wraps at the terminal width, or at")
	fmt.Fprintln(w, "80 columns when output is piped.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --width <n>           Wrap column")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --title, --author, --institution, --date, --keywords")
	fmt.Fprintln(w, "      --abstract, --abstract-file, --no-abstract")
	fmt.Fprintln(w, "                            Same as convert")
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2apa config [init [path]]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the default configuration as YAML. 'init' writes it to path")
	fmt.Fprintf(w, "(default %s) unless the file exists.\n", defaultConfigFile)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2apa doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check that a browser is available for PDF output.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2apa version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2apa help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
