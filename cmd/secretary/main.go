package main

import (
	"os"
	"strconv"
	"strings"

	"secretary-cli/internal/cli"
)

// isMeetingCode matches the MTG-<id> codes shown in the dashboard and the
// handoff record.
func isMeetingCode(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) <= len("MTG-") || !strings.EqualFold(s[:len("MTG-")], "MTG-") {
		return false
	}
	id, err := strconv.ParseInt(s[len("MTG-"):], 10, 64)
	return err == nil && id > 0
}

func rewriteDirectMeetingLookupArgs(argv []string) []string {
	// Convenience: `secretary MTG-42` works like `secretary meetings show MTG-42`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv
	// before parsing. Persistent flags may come first, so look for the first
	// positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--api-url":   true,
		"--web-url":   true,
		"--storage":   true,
		"--format":    true,
		"--log-file":  true,
		"--log-level": true,
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			return argv
		}
		if strings.HasPrefix(a, "-") {
			// Unknown and bool flags take no value; --flag=value is one token.
			if valueFlags[a] {
				i++
			}
			continue
		}

		// First positional token.
		if isMeetingCode(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "meetings", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectMeetingLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
