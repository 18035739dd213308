package conversation

import "github.com/smaikl/GLG-bot/internal/core/application/usecases/commands"

// InputKind classifies what the user sent.
type InputKind int

const (
	InputText InputKind = iota + 1
	InputSkip
	InputCancel
	InputConfirm
	InputReject
	InputFile
	InputContact
)

// Input is one user action already decoded by the transport.
type Input struct {
	Kind InputKind
	// Text is the typed text, a pressed choice or the number of a shared contact.
	Text string
	// DisplayName is the chat display name, used when the name step is skipped.
	DisplayName string
	Username    string
	File        *commands.FileUpload
}

func Text(s string) Input {
	return Input{Kind: InputText, Text: s}
}

func Skip() Input {
	return Input{Kind: InputSkip}
}

func Cancel() Input {
	return Input{Kind: InputCancel}
}

func Confirm() Input {
	return Input{Kind: InputConfirm}
}

func Reject() Input {
	return Input{Kind: InputReject}
}

func Contact(phone string) Input {
	return Input{Kind: InputContact, Text: phone}
}

func File(upload commands.FileUpload) Input {
	return Input{Kind: InputFile, File: &upload}
}

// Keyboard tells the transport which controls to offer with a reply.
type Keyboard int

const (
	// KeyboardMain is the regular menu shown outside of a form.
	KeyboardMain Keyboard = iota
	KeyboardRoles
	KeyboardCancel
	KeyboardSkip
	KeyboardPhone
	KeyboardCargoTypes
	KeyboardConfirm
	KeyboardDocuments
	KeyboardProfileFields
)

// Reply is what the engine answers to a start or an input.
type Reply struct {
	Text     string
	Keyboard Keyboard
	// Finished is set when the input ended the flow and the session is gone.
	Finished bool
}
