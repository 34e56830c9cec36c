// Package layouts embeds the built-in maze layouts, to avoid external dependencies.
package layouts

import (
	_ "embed"
	"github.com/janpfeifer/pacmanGo/internal/generics"
	"github.com/janpfeifer/pacmanGo/internal/state"
	"github.com/pkg/errors"
	"os"
)

//go:embed testClassic.lay
var TestClassic string

//go:embed minimaxClassic.lay
var MinimaxClassic string

//go:embed trappedClassic.lay
var TrappedClassic string

//go:embed smallClassic.lay
var SmallClassic string

//go:embed openClassic.lay
var OpenClassic string

// NameToText maps the name of the built-in layouts to their text.
var NameToText map[string]string

func init() {
	NameToText = map[string]string{
		"testClassic":    TestClassic,
		"minimaxClassic": MinimaxClassic,
		"trappedClassic": TrappedClassic,
		"smallClassic":   SmallClassic,
		"openClassic":    OpenClassic,
	}
}

// Names of the built-in layouts, sorted.
func Names() []string {
	return generics.KeysSlice(NameToText)
}

// Load returns the initial state of the maze with the given built-in layout name, or, if there
// is no built-in layout with that name, of the layout in the file at nameOrPath.
func Load(nameOrPath string) (*state.Maze, error) {
	text, found := NameToText[nameOrPath]
	if !found {
		contents, err := os.ReadFile(nameOrPath)
		if err != nil {
			return nil, errors.Wrapf(err, "layout %q is not one of the built-in layouts %q, and failed to read it as a file",
				nameOrPath, Names())
		}
		text = string(contents)
	}
	maze, err := state.NewMazeFromLayout(text)
	if err != nil {
		return nil, errors.WithMessagef(err, "parsing layout %q", nameOrPath)
	}
	return maze, nil
}
