package editor

import (
	"fmt"
	"sort"

	"example.com/ink/pkg/config"
	"example.com/ink/pkg/keys"
)

// Mode represents the current editor mode.
type Mode int

const (
	ModeCommand Mode = iota
	ModeInsert
	ModeVisual
)

func (m Mode) String() string {
	switch m {
	case ModeCommand:
		return "COMMAND"
	case ModeInsert:
		return "INSERT"
	case ModeVisual:
		return "VISUAL"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Command is an action a key can be bound to in command and visual mode.
type Command int

const (
	CmdNone Command = iota
	CmdInsert
	CmdVisual
	CmdLeft
	CmdDown
	CmdUp
	CmdRight
	CmdWordNext
	CmdWordBack
	CmdWordEnd
	CmdUndo
	CmdRedo
	CmdCopy
	CmdPaste
	CmdSave
	CmdQuit
)

var commandNames = map[string]Command{
	"insert":    CmdInsert,
	"visual":    CmdVisual,
	"left":      CmdLeft,
	"down":      CmdDown,
	"up":        CmdUp,
	"right":     CmdRight,
	"word-next": CmdWordNext,
	"word-back": CmdWordBack,
	"word-end":  CmdWordEnd,
	"undo":      CmdUndo,
	"redo":      CmdRedo,
	"copy":      CmdCopy,
	"paste":     CmdPaste,
	"save":      CmdSave,
	"quit":      CmdQuit,
}

func (c Command) String() string {
	for name, cmd := range commandNames {
		if cmd == c {
			return name
		}
	}
	return "none"
}

// Keymap resolves keys to commands.
type Keymap map[keys.Key]Command

// Binding pairs a key with the command it triggers.
type Binding struct {
	Key     keys.Key
	Command Command
}

// Bindings lists the keymap ordered by command.
func (km Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(km))
	for k, c := range km {
		out = append(out, Binding{Key: k, Command: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Command != out[j].Command {
			return out[i].Command < out[j].Command
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// NewKeymap builds a Keymap from command-name bindings such as
// config.Config.Keymap.
func NewKeymap(bindings map[string]keys.Key) (Keymap, error) {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	km := make(Keymap, len(bindings))
	owner := make(map[keys.Key]string, len(bindings))
	for _, name := range names {
		cmd, ok := commandNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown command %q", name)
		}
		k := bindings[name]
		if prev, dup := owner[k]; dup {
			return nil, fmt.Errorf("key %v bound to %q and %q", k, prev, name)
		}
		km[k] = cmd
		owner[k] = name
	}
	return km, nil
}

// DefaultKeymap returns the builtin bindings.
func DefaultKeymap() Keymap {
	km, err := NewKeymap(config.DefaultKeymap())
	if err != nil {
		panic(err)
	}
	return km
}

// Motion is a cursor movement.
type Motion int

const (
	MoveLeft Motion = iota
	MoveDown
	MoveUp
	MoveRight
	MoveWordNext
	MoveWordBack
	MoveWordEnd
)

// EffectKind names a state change requested by a key.
type EffectKind int

const (
	EffInsert EffectKind = iota
	EffDeleteBefore
	EffMove
	EffBeginSelection
	EffExtendSelection
	EffResetSelection
	EffUndo
	EffRedo
	EffCopy
	EffPaste
	EffSave
	EffQuit
)

// Effect is one state change. Byte is set for EffInsert, Motion for EffMove.
type Effect struct {
	Kind   EffectKind
	Byte   byte
	Motion Motion
}

var arrowMotions = map[keys.Key]Motion{
	keys.KeyLeft:  MoveLeft,
	keys.KeyDown:  MoveDown,
	keys.KeyUp:    MoveUp,
	keys.KeyRight: MoveRight,
}

var commandMotions = map[Command]Motion{
	CmdLeft:     MoveLeft,
	CmdDown:     MoveDown,
	CmdUp:       MoveUp,
	CmdRight:    MoveRight,
	CmdWordNext: MoveWordNext,
	CmdWordBack: MoveWordBack,
	CmdWordEnd:  MoveWordEnd,
}

// Transition interprets key in mode and returns the next mode together with
// the effects to apply, in order. Keys with no meaning in mode return mode
// unchanged and no effects.
func Transition(mode Mode, key keys.Key, km Keymap) (Mode, []Effect) {
	switch mode {
	case ModeInsert:
		return insertTransition(key)
	case ModeVisual:
		return visualTransition(key, km)
	default:
		return commandTransition(key, km)
	}
}

func move(m Motion) []Effect {
	return []Effect{{Kind: EffMove, Motion: m}, {Kind: EffExtendSelection}}
}

func commandTransition(key keys.Key, km Keymap) (Mode, []Effect) {
	if m, ok := arrowMotions[key]; ok {
		return ModeCommand, move(m)
	}
	cmd := km[key]
	if m, ok := commandMotions[cmd]; ok {
		return ModeCommand, move(m)
	}
	switch cmd {
	case CmdInsert:
		return ModeInsert, nil
	case CmdVisual:
		return ModeVisual, []Effect{{Kind: EffBeginSelection}}
	case CmdUndo:
		return ModeCommand, []Effect{{Kind: EffUndo}}
	case CmdRedo:
		return ModeCommand, []Effect{{Kind: EffRedo}}
	case CmdCopy:
		return ModeCommand, []Effect{{Kind: EffCopy}, {Kind: EffResetSelection}}
	case CmdPaste:
		return ModeCommand, []Effect{{Kind: EffPaste}}
	case CmdSave:
		return ModeCommand, []Effect{{Kind: EffSave}}
	case CmdQuit:
		return ModeCommand, []Effect{{Kind: EffQuit}}
	}
	return ModeCommand, nil
}

func insertTransition(key keys.Key) (Mode, []Effect) {
	switch {
	case key == keys.KeyEscape:
		return ModeCommand, nil
	case keys.IsBackspace(key):
		return ModeInsert, []Effect{{Kind: EffDeleteBefore}}
	case keys.IsEnter(key):
		return ModeInsert, []Effect{{Kind: EffInsert, Byte: '\n'}}
	case keys.IsPrintable(key):
		return ModeInsert, []Effect{{Kind: EffInsert, Byte: key.Byte()}}
	}
	if m, ok := arrowMotions[key]; ok {
		return ModeInsert, []Effect{{Kind: EffMove, Motion: m}}
	}
	return ModeInsert, nil
}

func visualTransition(key keys.Key, km Keymap) (Mode, []Effect) {
	if key == keys.KeyEscape {
		return ModeCommand, []Effect{{Kind: EffResetSelection}}
	}
	if m, ok := arrowMotions[key]; ok {
		return ModeVisual, move(m)
	}
	cmd := km[key]
	if m, ok := commandMotions[cmd]; ok {
		return ModeVisual, move(m)
	}
	if cmd == CmdCopy {
		return ModeCommand, []Effect{{Kind: EffCopy}, {Kind: EffResetSelection}}
	}
	return ModeVisual, nil
}
