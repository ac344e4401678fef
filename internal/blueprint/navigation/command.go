package navigation

import (
	"fmt"
	"strings"
)

// Command is a typed navigation request delivered straight to the controller.
type Command int

const (
	Forward Command = iota
	Backward
	Left
	Right
	Up
	Down
	ZoomIn
	ZoomOut
	RotateLeft
	RotateRight
)

var commandNames = [...]string{
	"forward",
	"backward",
	"left",
	"right",
	"up",
	"down",
	"zoom-in",
	"zoom-out",
	"rotate-left",
	"rotate-right",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return commandNames[c]
}

func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Command) UnmarshalText(text []byte) error {
	cmd, err := ParseCommand(string(text))
	if err != nil {
		return err
	}
	*c = cmd
	return nil
}

// ParseCommand is case-insensitive and accepts the names produced by String.
func ParseCommand(s string) (Command, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range commandNames {
		if name == s {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("unknown navigation command %q", s)
}
