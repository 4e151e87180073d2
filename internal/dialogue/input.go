package dialogue

import "strings"

type State string

const (
	StateIdle          State = "IDLE"
	StateSelectingType State = "SELECTING_TYPE"
	StateEnteringValue State = "ENTERING_VALUE"
	StateEnteringMeta  State = "ENTERING_META"
)

const (
	CommandStart  = "start"
	CommandSkip   = "skip"
	CommandCancel = "cancel"
	CommandHelp   = "help"
)

// Input is one user message. Command is set (without the leading slash) for
// slash commands; otherwise Text holds the free-text message.
type Input struct {
	Command string
	Text    string
}

func TextInput(text string) Input {
	return Input{Text: text}
}

func CommandInput(command string) Input {
	return Input{Command: strings.ToLower(strings.TrimSpace(command))}
}

// ParseInput classifies a raw chat message. "/skip@tracklog_bot" and
// "/skip now" both yield the skip command.
func ParseInput(raw string) Input {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "/") || len(trimmed) == 1 {
		return TextInput(raw)
	}

	command := strings.TrimPrefix(trimmed, "/")
	if index := strings.IndexAny(command, " \t\n"); index >= 0 {
		command = command[:index]
	}
	if index := strings.Index(command, "@"); index >= 0 {
		command = command[:index]
	}
	return CommandInput(command)
}
