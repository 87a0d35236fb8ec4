package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash       Shell = "bash"
	ShellZsh        Shell = "zsh"
	ShellFish       Shell = "fish"
	ShellPowerShell Shell = "powershell"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = errors.New("unsupported shell")

type flagType int

const (
	flagString flagType = iota
	flagBool
	flagInt
	flagEnum
	flagFile
	flagDir
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Type     flagType
	Desc     string
	Values   []string // enum values
	FileGlob string   // comma separated, e.g. "*.yaml,*.yml"
}

// commandDef describes a command for completion.
type commandDef struct {
	Name        string
	Desc        string
	Flags       []flagDef
	Args        []string // fixed positional values
	TakesFiles  bool
	FilePattern string
}

type completionMeta struct {
	Values   []string
	FileGlob string
	IsDir    bool
}

// flagCompletionMeta holds the completion hints that a FlagSet cannot
// express. Names, types and descriptions come from the FlagSets.
var flagCompletionMeta = map[string]completionMeta{
	"format": {Values: []string{"docx", "html", "pdf", "txt"}},

	"config":        {FileGlob: "*.yaml,*.yml"},
	"style":         {FileGlob: "*.css"},
	"abstract-file": {FileGlob: "*.txt,*.md"},

	"output":     {IsDir: true},
	"asset-path": {IsDir: true},
}

const markdownGlob = "*.md,*.markdown"

// extractFlagsFromFlagSet lists the flags of fs enriched with
// flagCompletionMeta, in the FlagSet's sorted order.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			switch {
			case len(meta.Values) > 0:
				fd.Type = flagEnum
				fd.Values = meta.Values
			case meta.FileGlob != "":
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			case meta.IsDir:
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
func getCommands() []commandDef {
	doctor := flag.NewFlagSet("doctor", flag.ContinueOnError)
	doctor.Bool("json", false, "print results as JSON")

	commands := []commandDef{
		{
			Name:        "convert",
			Desc:        "Convert markdown files to APA documents",
			Flags:       extractFlagsFromFlagSet(newConvertFlagSet(&convertFlags{})),
			TakesFiles:  true,
			FilePattern: markdownGlob,
		},
		{
			Name:        "check",
			Desc:        "List markdown rendered as plain text",
			Flags:       extractFlagsFromFlagSet(newCheckFlagSet(&checkFlags{})),
			TakesFiles:  true,
			FilePattern: markdownGlob,
		},
		{
			Name:        "preview",
			Desc:        "Show the document in the terminal",
			Flags:       extractFlagsFromFlagSet(newPreviewFlagSet(&previewFlags{})),
			TakesFiles:  true,
			FilePattern: markdownGlob,
		},
		{Name: "config", Desc: "Print or create a config file", Args: []string{"init"}},
		{Name: "doctor", Desc: "Check the PDF browser setup", Flags: extractFlagsFromFlagSet(doctor)},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish), string(ShellPowerShell)},
		},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command"},
	}

	help := &commands[len(commands)-1]
	help.Args = commandNames(commands)
	return commands
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell) error {
	var script string
	switch shell {
	case ShellBash:
		script = generateBash(getCommands())
	case ShellZsh:
		script = generateZsh(getCommands())
	case ShellFish:
		script = generateFish(getCommands())
	case ShellPowerShell:
		script = generatePowerShell(getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish, powershell)", ErrUnsupportedShell, shell)
	}

	if _, err := io.WriteString(w, script); err != nil {
		return fmt.Errorf("writing completion script: %w", err)
	}
	return nil
}

func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagNames returns "--long" and "-s" spellings of each flag.
func flagNames(flags []flagDef) []string {
	var names []string
	for _, f := range flags {
		names = append(names, "--"+f.Long)
		if f.Short != "" {
			names = append(names, "-"+f.Short)
		}
	}
	return names
}

// globExtensions turns "*.yaml,*.yml" into ["yaml", "yml"].
func globExtensions(glob string) []string {
	var exts []string
	for _, g := range strings.Split(glob, ",") {
		if ext := strings.TrimPrefix(strings.TrimSpace(g), "*."); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

func generateBash(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# bash completion for md2apa\n\n")
	b.WriteString("_md2apa_completions() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=\"${COMP_WORDS[1]}\"\n\n")
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(commandNames(cmds), " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)

		var valued []flagDef
		for _, f := range c.Flags {
			if f.Type != flagBool {
				valued = append(valued, f)
			}
		}
		if len(valued) > 0 {
			b.WriteString("        case \"${prev}\" in\n")
			for _, f := range valued {
				pattern := "--" + f.Long
				if f.Short != "" {
					pattern += "|-" + f.Short
				}
				fmt.Fprintf(&b, "        %s)\n", pattern)
				switch f.Type {
				case flagEnum:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(f.Values, " "))
				case flagFile:
					fmt.Fprintf(&b, "            COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\"))\n",
						strings.Join(globExtensions(f.FileGlob), "|"))
				case flagDir:
					b.WriteString("            COMPREPLY=($(compgen -d -- \"${cur}\"))\n")
				default:
					b.WriteString("            COMPREPLY=()\n")
				}
				b.WriteString("            return\n")
				b.WriteString("            ;;\n")
			}
			b.WriteString("        esac\n")
		}

		if len(c.Flags) > 0 {
			b.WriteString("        if [[ ${cur} == -* ]]; then\n")
			fmt.Fprintf(&b, "            COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(flagNames(c.Flags), " "))
			b.WriteString("            return\n")
			b.WriteString("        fi\n")
		}

		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "        COMPREPLY=($(compgen -f -X '!*.@(%s)' -- \"${cur}\") $(compgen -d -- \"${cur}\"))\n",
				strings.Join(globExtensions(c.FilePattern), "|"))
		default:
			b.WriteString("        COMPREPLY=()\n")
		}
		b.WriteString("        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("shopt -s extglob\n")
	b.WriteString("complete -F _md2apa_completions md2apa\n")
	return b.String()
}

// zshEscape escapes text for a single-quoted _arguments spec.
func zshEscape(s string) string {
	r := strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`)
	return r.Replace(s)
}

func zshAction(f flagDef) string {
	switch f.Type {
	case flagBool:
		return ""
	case flagEnum:
		return ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		globs := strings.ReplaceAll(f.FileGlob, ",", " ")
		return ":file:_files -g \"" + globs + "\""
	case flagDir:
		return ":directory:_files -/"
	default:
		return ":" + f.Long + ": "
	}
}

func generateZsh(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("#compdef md2apa\n\n")
	b.WriteString("_md2apa() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    if (( CURRENT == 2 )); then\n")
	b.WriteString("        _describe 'command' commands\n")
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")
	b.WriteString("    local cmd=\"${words[2]}\"\n")
	b.WriteString("    shift words\n")
	b.WriteString("    (( CURRENT-- ))\n\n")
	b.WriteString("    case \"${cmd}\" in\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "    %s)\n", c.Name)
		b.WriteString("        _arguments")
		for _, f := range c.Flags {
			desc := zshEscape(f.Desc)
			action := zshAction(f)
			if f.Short != "" {
				fmt.Fprintf(&b, " \\\n            '(-%s --%s)'{-%s,--%s}'[%s]%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
			} else {
				fmt.Fprintf(&b, " \\\n            '--%s[%s]%s'", f.Long, desc, action)
			}
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, " \\\n            '1:argument:(%s)'", strings.Join(c.Args, " "))
		case c.TakesFiles:
			globs := strings.ReplaceAll(c.FilePattern, ",", " ")
			fmt.Fprintf(&b, " \\\n            '*:file:_files -g \"%s\"'", globs)
		}
		b.WriteString("\n        ;;\n")
	}

	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("compdef _md2apa md2apa\n")
	return b.String()
}

func fishEscape(s string) string {
	return strings.ReplaceAll(s, "'", `\'`)
}

func generateFish(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# fish completion for md2apa\n\n")
	b.WriteString("function __fish_md2apa_needs_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -eq 1\n")
	b.WriteString("end\n\n")
	b.WriteString("function __fish_md2apa_using_command\n")
	b.WriteString("    set -l cmd (commandline -opc)\n")
	b.WriteString("    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]\n")
	b.WriteString("end\n\n")
	b.WriteString("complete -c md2apa -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c md2apa -n __fish_md2apa_needs_command -a %s -d '%s'\n", c.Name, fishEscape(c.Desc))
	}

	for _, c := range cmds {
		cond := fmt.Sprintf("-n '__fish_md2apa_using_command %s'", c.Name)
		if len(c.Flags) > 0 || len(c.Args) > 0 || c.TakesFiles {
			b.WriteString("\n")
		}
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "complete -c md2apa %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -l %s -d '%s'", f.Long, fishEscape(f.Desc))
			switch f.Type {
			case flagEnum:
				fmt.Fprintf(&b, " -x -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -x -a '(__fish_complete_directories)'")
			case flagString, flagInt:
				b.WriteString(" -x")
			}
			b.WriteString("\n")
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c md2apa %s -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.TakesFiles:
			fmt.Fprintf(&b, "complete -c md2apa %s -F\n", cond)
		}
	}
	return b.String()
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func psList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = psQuote(s)
	}
	return "@(" + strings.Join(quoted, ", ") + ")"
}

func generatePowerShell(cmds []commandDef) string {
	var b strings.Builder

	b.WriteString("# powershell completion for md2apa\n\n")
	b.WriteString("Register-ArgumentCompleter -Native -CommandName md2apa -ScriptBlock {\n")
	b.WriteString("    param($wordToComplete, $commandAst, $cursorPosition)\n\n")
	b.WriteString("    $elements = @($commandAst.CommandElements | ForEach-Object { $_.ToString() })\n\n")

	b.WriteString("    $commands = [ordered]@{\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psQuote(c.Desc))
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $flags = @{\n")
	for _, c := range cmds {
		if len(c.Flags) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name), psList(flagNames(c.Flags)))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    $values = @{\n")
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Type != flagEnum {
				continue
			}
			names := []string{"--" + f.Long}
			if f.Short != "" {
				names = append(names, "-"+f.Short)
			}
			for _, n := range names {
				fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name+":"+n), psList(f.Values))
			}
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(&b, "        %s = %s\n", psQuote(c.Name+":"), psList(c.Args))
		}
	}
	b.WriteString("    }\n\n")

	b.WriteString("    if ($elements.Count -lt 2 -or ($elements.Count -eq 2 -and $wordToComplete -ne '')) {\n")
	b.WriteString("        $commands.GetEnumerator() | Where-Object { $_.Key -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_.Key, $_.Key, 'ParameterValue', $_.Value)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	b.WriteString("    $cmd = $elements[1]\n")
	b.WriteString("    $prev = if ($wordToComplete -ne '') { $elements[-2] } else { $elements[-1] }\n")
	b.WriteString("    $key = \"${cmd}:$prev\"\n")
	b.WriteString("    if (-not $values.ContainsKey($key) -and $prev -eq $cmd) { $key = \"${cmd}:\" }\n\n")
	b.WriteString("    if ($values.ContainsKey($key)) {\n")
	b.WriteString("        $values[$key] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("        return\n")
	b.WriteString("    }\n\n")

	b.WriteString("    if ($wordToComplete -like '-*' -and $flags.ContainsKey($cmd)) {\n")
	b.WriteString("        $flags[$cmd] | Where-Object { $_ -like \"$wordToComplete*\" } | ForEach-Object {\n")
	b.WriteString("            [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterName', $_)\n")
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")
	return b.String()
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}
	if len(args) > 1 {
		return fmt.Errorf("%w: completion takes one shell name", errUsage)
	}
	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2apa completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w, "Supported shells: bash, zsh, fish, powershell")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(md2apa completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(md2apa completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    md2apa completion fish > ~/.config/fish/completions/md2apa.fish")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  PowerShell:")
	fmt.Fprintln(w, "    # Add to $PROFILE:")
	fmt.Fprintln(w, "    md2apa completion powershell | Out-String | Invoke-Expression")
}
