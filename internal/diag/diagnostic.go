package diag

import "go/token"

type Note struct {
	Pos token.Position
	Msg string
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  token.Position
	Notes    []Note
}
