package cli

import (
	"fmt"
	"io"
	"strings"
)

// FlagCompletion describes a CLI flag for shell completion generation.
// All shell completion functions generate from this registry, so adding
// a new flag only requires appending to flagRegistry.
type FlagCompletion struct {
	Long       string   // long flag name without "--" (e.g., "help")
	Short      string   // short flag without "-" (e.g., "h")
	Help       string   // description text
	Values     []string // suggested completion values (nil = boolean/no suggestions)
	ValueName  string   // label for the value in zsh (e.g., "duration")
	IsFile     bool     // true if the flag takes a file path
	IsDistance bool     // true if values come from the distance registry (dynamic)
}

// flagRegistry is the central list of all CLI flags for completion generation.
var flagRegistry = []FlagCompletion{
	{Long: "help", Short: "h", Help: "Show help message"},
	{Long: "version", Short: "V", Help: "Show version information"},
	{Long: "serve", Help: "Run the HTTP measurement API"},
	{Long: "addr", Help: "Listen address for the API", Values: []string{":8080", "localhost:8080"}, ValueName: "address"},
	{Long: "tui", Help: "Run the interactive dashboard"},
	{Long: "interactive", Short: "i", Help: "Run the measurement REPL"},
	{Long: "agent-id", Help: "Agent identifier recorded in results", ValueName: "id"},
	{Long: "prompt", Help: "Prompt submitted to the agent", ValueName: "text"},
	{Long: "responses-file", Help: "File of pre-recorded responses", IsFile: true, ValueName: "file"},
	{Long: "samples", Help: "Number of responses to collect", Values: []string{"3", "5", "10", "20"}, ValueName: "count"},
	{Long: "distance", Help: "Distance function to use", IsDistance: true, ValueName: "distance"},
	{Long: "parallel-pairs", Help: "Workers for pairwise distances", Values: []string{"1", "2", "4", "8"}, ValueName: "count"},
	{Long: "pattern", Help: "Interaction pattern", Values: []string{"sequential", "parallel", "hierarchical"}, ValueName: "pattern"},
	{Long: "baseline-a", Help: "Solo performance of agent A", ValueName: "score"},
	{Long: "baseline-b", Help: "Solo performance of agent B", ValueName: "score"},
	{Long: "coordinated", Help: "Joint coordinated performance", ValueName: "score"},
	{Long: "agent-b-id", Help: "Identifier of the second agent", ValueName: "id"},
	{Long: "openai-model", Help: "Chat model for live sampling", Values: []string{"gpt-4o-mini", "gpt-4o"}, ValueName: "model"},
	{Long: "temperature", Help: "Sampling temperature", ValueName: "value"},
	{Long: "timeout", Help: "Maximum measurement time", Values: []string{"30s", "1m", "5m", "10m"}, ValueName: "duration"},
	{Long: "output", Short: "o", Help: "Output file path", IsFile: true, ValueName: "file"},
	{Long: "quiet", Short: "q", Help: "Quiet mode for scripts"},
	{Long: "verbose", Short: "v", Help: "Enable debug logging"},
	{Long: "completion", Help: "Generate completion script", Values: []string{"bash", "zsh", "fish", "powershell"}, ValueName: "shell"},
}

// GenerateCompletion generates a shell completion script for the specified shell.
//
// Parameters:
//   - out: The writer to output the completion script.
//   - shell: The shell type ("bash", "zsh", "fish", "powershell").
//   - distances: List of available distance function names.
//
// Returns:
//   - error: An error if the shell is not supported.
func GenerateCompletion(out io.Writer, shell string, distances []string) error {
	switch shell {
	case "bash":
		return generateBashCompletion(out, distances)
	case "zsh":
		return generateZshCompletion(out, distances)
	case "fish":
		return generateFishCompletion(out, distances)
	case "powershell", "ps":
		return generatePowerShellCompletion(out, distances)
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: bash, zsh, fish, powershell)", shell)
	}
}

// formatDistanceList joins distance function names with space separators.
func formatDistanceList(distances []string) string {
	return strings.Join(distances, " ")
}

// generateBashCompletion generates a Bash completion script.
func generateBashCompletion(out io.Writer, distances []string) error {
	// Build opts string from registry
	var opts []string
	for _, f := range flagRegistry {
		if f.Long != "" {
			opts = append(opts, "--"+f.Long)
		}
		if f.Short != "" {
			opts = append(opts, "-"+f.Short)
		}
	}

	// Build case entries from registry: dynamic distance values first, then
	// file completion, then static value lists.
	type caseEntry struct {
		patterns []string
		body     string
	}
	var orderedCases []caseEntry

	for _, f := range flagRegistry {
		if f.IsDistance {
			orderedCases = append(orderedCases, caseEntry{
				patterns: []string{"--" + f.Long},
				body:     `COMPREPLY=( $(compgen -W "${distances}" -- "${cur}") )`,
			})
		}
	}

	var filePatterns []string
	for _, f := range flagRegistry {
		if f.IsFile {
			if f.Long != "" {
				filePatterns = append(filePatterns, "--"+f.Long)
			}
			if f.Short != "" {
				filePatterns = append(filePatterns, "-"+f.Short)
			}
		}
	}
	if len(filePatterns) > 0 {
		orderedCases = append(orderedCases, caseEntry{
			patterns: filePatterns,
			body: `# File/directory completion
            COMPREPLY=( $(compgen -f -- "${cur}") )`,
		})
	}

	for _, f := range flagRegistry {
		if !f.IsDistance && !f.IsFile && len(f.Values) > 0 {
			orderedCases = append(orderedCases, caseEntry{
				patterns: []string{"--" + f.Long},
				body:     fmt.Sprintf(`COMPREPLY=( $(compgen -W "%s" -- "${cur}") )`, strings.Join(f.Values, " ")),
			})
		}
	}

	// Format case entries
	var caseBody strings.Builder
	for _, c := range orderedCases {
		caseBody.WriteString("        ")
		caseBody.WriteString(strings.Join(c.patterns, "|"))
		caseBody.WriteString(")\n")
		caseBody.WriteString("            ")
		caseBody.WriteString(c.body)
		caseBody.WriteString("\n            return 0\n            ;;\n")
	}

	distanceList := formatDistanceList(distances)

	script := fmt.Sprintf(`# Bash completion script for certmeter
# Add this to your ~/.bashrc or ~/.bash_completion

_certmeter_completions() {
    local cur prev opts distances
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main options
    opts="%s"

    # Available distance functions
    distances="%s"

    case "${prev}" in
%s    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _certmeter_completions certmeter
`, strings.Join(opts, " "), distanceList, caseBody.String())

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion bash generation failed: %w", err)
	}
	return nil
}

// generateZshCompletion generates a Zsh completion script.
func generateZshCompletion(out io.Writer, distances []string) error {
	// Build _arguments entries from registry
	var args []string
	for _, f := range flagRegistry {
		args = append(args, zshArgEntry(f))
	}

	distanceList := formatDistanceList(distances)

	script := fmt.Sprintf(`#compdef certmeter

# Zsh completion script for certmeter
# Add this to your ~/.zshrc or place in $fpath

_certmeter() {
    local -a distances
    distances=(%s)

    _arguments -s \
%s
}

_certmeter "$@"
`, distanceList, strings.Join(args, " \\\n"))

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion zsh generation failed: %w", err)
	}
	return nil
}

// zshArgEntry formats a single FlagCompletion as a zsh _arguments entry.
func zshArgEntry(f FlagCompletion) string {
	// Build the value suffix
	valueSuffix := ""
	if f.IsFile {
		valueSuffix = fmt.Sprintf(":%s:_files", f.ValueName)
	} else if f.IsDistance {
		valueSuffix = fmt.Sprintf(":%s:($distances)", f.ValueName)
	} else if len(f.Values) > 0 {
		valueSuffix = fmt.Sprintf(":%s:(%s)", f.ValueName, strings.Join(f.Values, " "))
	} else if f.ValueName != "" {
		// Value-taking flag with no suggestions (e.g., --prompt)
		valueSuffix = fmt.Sprintf(":%s:", f.ValueName)
	}

	if f.Long != "" && f.Short != "" {
		// Has both short and long form
		return fmt.Sprintf("        '(-%s --%s)'{-%s,--%s}'[%s]%s'",
			f.Short, f.Long, f.Short, f.Long, f.Help, valueSuffix)
	}
	if f.Long != "" {
		return fmt.Sprintf("        '--%s[%s]%s'", f.Long, f.Help, valueSuffix)
	}
	// Short only
	return fmt.Sprintf("        '-%s[%s]%s'", f.Short, f.Help, valueSuffix)
}

// generateFishCompletion generates a Fish completion script.
func generateFishCompletion(out io.Writer, distances []string) error {
	var lines []string

	lines = append(lines, "# Fish completion script for certmeter")
	lines = append(lines, "# Add this to ~/.config/fish/completions/certmeter.fish")
	lines = append(lines, "")
	lines = append(lines, "# Disable file completion by default")
	lines = append(lines, "complete -c certmeter -f")
	lines = append(lines, "")

	// Group flags into sections for comments.
	type section struct {
		comment string
		flags   []FlagCompletion
	}

	sections := []section{
		{comment: "# Help and version", flags: filterFlags("help", "version")},
		{comment: "# Modes", flags: filterFlags("serve", "addr", "tui", "interactive")},
		{comment: "# Consistency measurement", flags: filterFlags("agent-id", "prompt", "responses-file", "samples", "distance", "parallel-pairs")},
		{comment: "# Coordination measurement", flags: filterFlags("pattern", "baseline-a", "baseline-b", "coordinated", "agent-b-id")},
		{comment: "# Agent backend", flags: filterFlags("openai-model", "temperature")},
		{comment: "# Output options", flags: filterFlags("timeout", "output", "quiet", "verbose")},
		{comment: "# Completion", flags: filterFlags("completion")},
	}

	distanceList := formatDistanceList(distances)

	for _, sec := range sections {
		lines = append(lines, sec.comment)
		for _, f := range sec.flags {
			lines = append(lines, fishCompleteLine(f, distanceList))
		}
		lines = append(lines, "")
	}

	script := strings.Join(lines, "\n")

	_, err := fmt.Fprint(out, script)
	if err != nil {
		return fmt.Errorf("completion fish generation failed: %w", err)
	}
	return nil
}

// filterFlags returns flags from the registry matching the given long names.
func filterFlags(names ...string) []FlagCompletion {
	var result []FlagCompletion
	for _, name := range names {
		for _, f := range flagRegistry {
			if f.Long == name {
				result = append(result, f)
				break
			}
		}
	}
	return result
}

// fishCompleteLine formats a single FlagCompletion as a fish complete command.
func fishCompleteLine(f FlagCompletion, distanceList string) string {
	var parts []string
	parts = append(parts, "complete -c certmeter")

	if f.Short != "" {
		parts = append(parts, fmt.Sprintf("-s %s", f.Short))
	}
	if f.Long != "" {
		parts = append(parts, fmt.Sprintf("-l %s", f.Long))
	}

	parts = append(parts, fmt.Sprintf("-d '%s'", f.Help))

	if f.IsFile {
		parts = append(parts, "-rF")
	} else if f.IsDistance {
		parts = append(parts, fmt.Sprintf("-xa '%s'", distanceList))
	} else if len(f.Values) > 0 {
		parts = append(parts, fmt.Sprintf("-xa '%s'", strings.Join(f.Values, " ")))
	} else if f.ValueName != "" {
		// Takes a value but no suggestions (e.g., --prompt)
		parts = append(parts, "-x")
	}

	return strings.Join(parts, " ")
}

// generatePowerShellCompletion generates a PowerShell completion script.
func generatePowerShellCompletion(out io.Writer, distances []string) error {
	// Build $options entries from registry
	var optionEntries []string
	for _, f := range flagRegistry {
		if f.Short != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '-%s'; Description = '%s' }", f.Short, f.Help))
		}
		if f.Long != "" {
			optionEntries = append(optionEntries, fmt.Sprintf(
				"        @{Name = '--%s'; Description = '%s' }", f.Long, f.Help))
		}
	}

	// Build context-aware switch entries: the distance registry first, then
	// flags with static value lists.
	var switchEntries []string

	for _, f := range flagRegistry {
		if f.IsDistance {
			switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            $certmeterDistances | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long))
		}
	}

	for _, f := range flagRegistry {
		if f.IsDistance || f.IsFile || len(f.Values) == 0 {
			continue
		}
		var quotedVals []string
		for _, v := range f.Values {
			quotedVals = append(quotedVals, fmt.Sprintf("'%s'", v))
		}
		switchEntries = append(switchEntries, fmt.Sprintf(`        '--%s' {
            @(%s) | Where-Object { $_ -like "$wordToComplete*" } | ForEach-Object {
                [System.Management.Automation.CompletionResult]::new($_, $_, 'ParameterValue', $_)
            }
            return
        }`, f.Long, strings.Join(quotedVals, ", ")))
	}

	// Format distance list for PowerShell
	psDistanceList := ""
	for i, d := range distances {
		if i > 0 {
			psDistanceList += ", "
		}
		psDistanceList += fmt.Sprintf("'%s'", d)
	}

	script := fmt.Sprintf(`# PowerShell completion script for certmeter
# Add this to your $PROFILE

$certmeterDistances = @(%s)

Register-ArgumentCompleter -CommandName 'certmeter' -Native -ScriptBlock {
    param($wordToComplete, $commandAst, $cursorPosition)

    $options = @(
%s
    )

    $elements = $commandAst.CommandElements
    $lastElement = if ($elements.Count -gt 1) { $elements[-1].ToString() } else { '' }
    $prevElement = if ($elements.Count -gt 2) { $elements[-2].ToString() } else { '' }

    # Context-aware completions
    switch ($prevElement) {
%s
    }

    # Default: show options
    $options | Where-Object { $_.Name -like "$wordToComplete*" } | ForEach-Object {
        [System.Management.Automation.CompletionResult]::new($_.Name, $_.Name, 'ParameterName', $_.Description)
    }
}
`, psDistanceList, strings.Join(optionEntries, "\n"), strings.Join(switchEntries, "\n"))

	_, err := fmt.Fprint(out, script)
	return err
}
