package host

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/vimkit/internal/input/key"
)

// namedKeys maps tcell special keys to their symbol names. Enter and
// Tab shadow their control-key aliases on purpose.
var namedKeys = map[tcell.Key]key.Named{
	tcell.KeyEscape:     key.NamedEscape,
	tcell.KeyEnter:      key.NamedEnter,
	tcell.KeyTab:        key.NamedTab,
	tcell.KeyBackspace:  key.NamedBackspace,
	tcell.KeyBackspace2: key.NamedBackspace,
	tcell.KeyDelete:     key.NamedDelete,
	tcell.KeyInsert:     key.NamedInsert,
	tcell.KeyHome:       key.NamedHome,
	tcell.KeyEnd:        key.NamedEnd,
	tcell.KeyPgUp:       key.NamedPageUp,
	tcell.KeyPgDn:       key.NamedPageDown,
	tcell.KeyUp:         key.NamedUp,
	tcell.KeyDown:       key.NamedDown,
	tcell.KeyLeft:       key.NamedLeft,
	tcell.KeyRight:      key.NamedRight,
	tcell.KeyF1:         key.NamedF1,
	tcell.KeyF2:         key.NamedF2,
	tcell.KeyF3:         key.NamedF3,
	tcell.KeyF4:         key.NamedF4,
	tcell.KeyF5:         key.NamedF5,
	tcell.KeyF6:         key.NamedF6,
	tcell.KeyF7:         key.NamedF7,
	tcell.KeyF8:         key.NamedF8,
	tcell.KeyF9:         key.NamedF9,
	tcell.KeyF10:        key.NamedF10,
	tcell.KeyF11:        key.NamedF11,
	tcell.KeyF12:        key.NamedF12,
}

// TranslateKey converts a tcell key event into a key symbol. It
// reports false for events the interpreter has no symbol for.
func TranslateKey(ev *tcell.EventKey) (key.Symbol, bool) {
	mods := translateMods(ev.Modifiers())

	if ev.Key() == tcell.KeyRune {
		return key.NewRuneMod(ev.Rune(), mods), true
	}
	if named, ok := namedKeys[ev.Key()]; ok {
		return key.NewNamed(named, mods), true
	}
	// tcell folds Ctrl chords into dedicated key codes.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune('a' + ev.Key() - tcell.KeyCtrlA)
		return key.NewRuneMod(r, mods.With(key.ModCtrl)), true
	}
	return key.Symbol{}, false
}

func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods = mods.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		mods = mods.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		mods = mods.With(key.ModAlt)
	}
	return mods
}
