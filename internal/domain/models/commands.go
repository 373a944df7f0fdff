package models

import "strings"

// CommandType enumerates the operator queries accepted over chat.
type CommandType string

const (
	CommandSummary CommandType = "summary"
	CommandCompare CommandType = "compare"
	CommandReport  CommandType = "report"
	CommandHelp    CommandType = "help"
	CommandUnknown CommandType = "unknown"
)

var commandAliases = map[string]CommandType{
	"summary": CommandSummary,
	"요약":      CommandSummary,
	"compare": CommandCompare,
	"비교":      CommandCompare,
	"report":  CommandReport,
	"리포트":     CommandReport,
	"help":    CommandHelp,
	"도움말":     CommandHelp,
}

// Command represents a parsed operator instruction.
type Command struct {
	Type CommandType
	Raw  string
	Args []string
}

// ParseCommand derives a Command from free-form text such as "/summary 12".
func ParseCommand(message string) Command {
	cmd := Command{Type: CommandUnknown, Raw: message}

	tokens := strings.Fields(strings.ToLower(message))
	if len(tokens) == 0 {
		return cmd
	}

	if t, ok := commandAliases[strings.TrimPrefix(tokens[0], "/")]; ok {
		cmd.Type = t
	}
	if len(tokens) > 1 {
		cmd.Args = tokens[1:]
	}
	return cmd
}
