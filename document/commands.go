// Package document provides the LaTeX-side context a completion request
// needs: which commands take file-reference arguments, where the root
// document (and so the base directory) lives, and which auxiliary search
// paths the document declares.
package document

import "strings"

// Command describes one LaTeX command whose argument references files.
type Command struct {
	Name string

	// CommaSeparated marks commands whose argument is a comma-separated
	// file list (\bibliography{a,b,c}).
	CommaSeparated bool

	// RegisterReference marks commands whose accepted files become
	// cross-reference targets for the including document.
	RegisterReference bool

	// SearchGraphicsPaths marks commands whose arguments also resolve
	// through the document's declared \graphicspath roots.
	SearchGraphicsPaths bool
}

// fileCommands is the table of commands offered path completion.
var fileCommands = map[string]Command{
	"input":            {Name: "input", RegisterReference: true},
	"include":          {Name: "include", RegisterReference: true},
	"includeonly":      {Name: "includeonly", CommaSeparated: true, RegisterReference: true},
	"includegraphics":  {Name: "includegraphics", SearchGraphicsPaths: true},
	"bibliography":     {Name: "bibliography", CommaSeparated: true, RegisterReference: true},
	"addbibresource":   {Name: "addbibresource", RegisterReference: true},
	"subfile":          {Name: "subfile", RegisterReference: true},
	"subfileinclude":   {Name: "subfileinclude", RegisterReference: true},
	"lstinputlisting":  {Name: "lstinputlisting"},
	"verbatiminput":    {Name: "verbatiminput"},
	"externaldocument": {Name: "externaldocument"},
	"graphicspath":     {Name: "graphicspath"},
}

// FileCommand looks up a command by its name without the backslash.
func FileCommand(name string) (Command, bool) {
	cmd, ok := fileCommands[name]
	return cmd, ok
}

// RegisterFileCommands adds user-configured commands to the file-reference
// set. Registered commands behave like \input. Built-in entries win over
// registrations with the same name. Called once at startup, before any
// completion request is served.
func RegisterFileCommands(names []string) {
	for _, name := range names {
		name = strings.TrimPrefix(name, `\`)
		if name == "" {
			continue
		}
		if _, exists := fileCommands[name]; exists {
			continue
		}
		fileCommands[name] = Command{Name: name, RegisterReference: true}
	}
}
