package wq

import (
	"fmt"

	"github.com/gorgonia/tsumego/game"
)

type moveError game.PlayerMove

func (err moveError) Error() string {
	return fmt.Sprintf("Unable to make %v", game.PlayerMove(err))
}

// SetupError reports an initial position that is not a valid problem:
// mismatched dimensions, stones on outside cells, groups without liberties.
type SetupError struct {
	msg string
}

func (err SetupError) Error() string { return "invalid setup: " + err.msg }
