package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smaikl/GLG-bot/internal/pkg/errs"
)

// Callback actions carried by inline buttons. Data is "action:id" or
// "action:id:arg" and stays well under the 64 byte Bot API limit.
const (
	cbAccept          = "accept"
	cbDeliver         = "deliver"
	cbConfirmDelivery = "confirm_delivery"
	cbCancelOrder     = "cancel_order"
	cbStageMenu       = "stages"
	cbStage           = "stage"
	cbView            = "view"
	cbDocuments       = "docs"
	cbAddDocument     = "add_doc"
	cbPage            = "page"
	cbFormConfirm     = "form_confirm"
	cbFormReject      = "form_reject"
	cbNoop            = "noop"
)

type callback struct {
	Action string
	ID     int64
	Arg    string
}

func encodeCallback(action string, id int64, arg ...string) string {
	data := action + ":" + strconv.FormatInt(id, 10)
	if len(arg) > 0 && arg[0] != "" {
		data += ":" + arg[0]
	}
	return data
}

func parseCallback(data string) (callback, error) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) < 2 || parts[0] == "" {
		return callback{}, errs.NewValueIsInvalidErrorWithCause("callback data", fmt.Errorf("malformed %q", data))
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || id < 0 {
		return callback{}, errs.NewValueIsInvalidErrorWithCause("callback data", fmt.Errorf("bad id in %q", data))
	}

	cb := callback{Action: parts[0], ID: id}
	if len(parts) == 3 {
		cb.Arg = parts[2]
	}
	return cb, nil
}
