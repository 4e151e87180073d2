package dialogue

import (
	"fmt"

	"github.com/terraincognita07/tracklog/internal/models"
)

// Reply is one outgoing message. Choices, when present, is a closed menu the
// transport renders as a one-time keyboard. HideChoices asks the transport to
// remove a previously shown menu.
type Reply struct {
	Text        string
	Choices     [][]string
	HideChoices bool
}

const (
	textStarted        = "Event logging started. Choose the event type."
	textEnterValue     = "Type: %s. Enter the value."
	textEnterMeta      = "Value saved. Enter metadata (for example 'calories: 250, protein: 20') or send /skip to leave it empty."
	textMetaAccepted   = "Data accepted. Submitting to the event service."
	textMetaSkipped    = "Metadata skipped. Submitting to the event service."
	textCancelled      = "Operation cancelled."
	textNothingToAbort = "Nothing to cancel. Send /start to log an event."
	textIdle           = "Send /start to log an event."
	textSubmitted      = "Status: success. Record ID: %d"
	textSubmitFailed   = "Status: error. Code: %d. Response: %s"
	textUnreachable    = "Could not reach the event service. Check that it is available."
	textUnknownType    = "Unknown event type %q. Choose one of the listed types."
	textEmptyValue     = "The value cannot be empty. Enter the value."
	textSkipNotHere    = "/skip is only available when entering metadata."
	textAlreadyActive  = "An event is already being logged. Finish it or send /cancel."
	textUnknownCommand = "Unknown command. Send /cancel to abort or /help for usage."
	textHelp           = "/start to log an event, /skip to leave metadata empty, /cancel to abort."
)

// eventTypeMenu arranges the closed set as two keyboard rows.
func eventTypeMenu() [][]string {
	names := make([]string, 0, len(models.EventTypes()))
	for _, eventType := range models.EventTypes() {
		names = append(names, string(eventType))
	}
	return [][]string{names[:2], names[2:]}
}

func replyText(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func textReply(format string, args ...any) Reply {
	if len(args) == 0 {
		return Reply{Text: format}
	}
	return Reply{Text: fmt.Sprintf(format, args...)}
}
