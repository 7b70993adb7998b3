package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: devdiary <command> [flags] [input]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Generate the diary site")
	fmt.Fprintln(w, "  check      Inspect project logs without writing anything")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'devdiary help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: devdiary build [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate a ru/en static site from <name>_log project folders.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Directory containing *_log folders (default: input.dir from config)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel projects (0 = auto)")
	fmt.Fprintln(w, "      --default-locale <s>    Language of unsuffixed files: ru, en")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --title <s>             Site title, never linked")
	fmt.Fprintln(w, "      --url <url>             Fallback project URL")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Styling:")
	fmt.Fprintln(w, "      --template <name>       Template name or path")
	fmt.Fprintln(w, "      --style <name>          Style name or path")
	fmt.Fprintln(w, "      --asset-path <dir>      Custom asset directory")
	fmt.Fprintln(w, "      --no-style              Disable CSS styling")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Links:")
	fmt.Fprintln(w, "      --no-links              Disable project link injection")
	fmt.Fprintln(w, "      --link-mode <s>         Injection mode: segments, dom")
	fmt.Fprintln(w, "      --link-lookahead <n>    Segments scanned for a closing </a>")
	fmt.Fprintln(w, "      --link-project-pages    Also inject links on project pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show per-project timing and pages")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment (flags > environment > config file > defaults):")
	fmt.Fprintln(w, "  DEVDIARY_CONFIG, DEVDIARY_INPUT_DIR, DEVDIARY_OUTPUT_DIR, DEVDIARY_SITE_URL,")
	fmt.Fprintln(w, "  DEVDIARY_STYLE, DEVDIARY_DEFAULT_LOCALE, DEVDIARY_WORKERS")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: devdiary check [input] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report stages, intros, URLs, translations, and screenshots per project.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --json                  Print the report as JSON")
	fmt.Fprintln(w, "  -q, --quiet                 Only print when problems are found")
	fmt.Fprintln(w, "  -v, --verbose               List untranslated stages")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: devdiary version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: devdiary help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
