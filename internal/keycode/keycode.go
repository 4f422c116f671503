// Package keycode resolves the closed set of key names accepted in
// configuration files to the uinput key constants used to synthesize
// keyboard events.
package keycode

import "github.com/bendahl/uinput"

// names mirrors the KEYS_TABLE lookup a config parser needs: every string a
// trigger action may name, mapped to the code uinput expects on KeyDown,
// KeyUp and KeyPress.
var names = map[string]int{
	"Esc":       uinput.KeyEsc,
	"1":         uinput.Key1,
	"2":         uinput.Key2,
	"3":         uinput.Key3,
	"4":         uinput.Key4,
	"5":         uinput.Key5,
	"6":         uinput.Key6,
	"7":         uinput.Key7,
	"8":         uinput.Key8,
	"9":         uinput.Key9,
	"0":         uinput.Key0,
	"Minus":     uinput.KeyMinus,
	"Equal":     uinput.KeyEqual,
	"BackSpace": uinput.KeyBackspace,
	"Tab":       uinput.KeyTab,

	"Q": uinput.KeyQ,
	"W": uinput.KeyW,
	"E": uinput.KeyE,
	"R": uinput.KeyR,
	"T": uinput.KeyT,
	"Y": uinput.KeyY,
	"U": uinput.KeyU,
	"I": uinput.KeyI,
	"O": uinput.KeyO,
	"P": uinput.KeyP,

	"LeftBrace":  uinput.KeyLeftbrace,
	"RightBrace": uinput.KeyRightbrace,
	"Enter":      uinput.KeyEnter,
	"LeftControl": uinput.KeyLeftctrl,

	"A": uinput.KeyA,
	"S": uinput.KeyS,
	"D": uinput.KeyD,
	"F": uinput.KeyF,
	"G": uinput.KeyG,
	"H": uinput.KeyH,
	"J": uinput.KeyJ,
	"K": uinput.KeyK,
	"L": uinput.KeyL,

	"SemiColon":  uinput.KeySemicolon,
	"Apostrophe": uinput.KeyApostrophe,
	"Grave":      uinput.KeyGrave,
	"LeftShift":  uinput.KeyLeftshift,
	"BackSlash":  uinput.KeyBackslash,

	"Z": uinput.KeyZ,
	"X": uinput.KeyX,
	"C": uinput.KeyC,
	"V": uinput.KeyV,
	"B": uinput.KeyB,
	"N": uinput.KeyN,
	"M": uinput.KeyM,

	"Comma": uinput.KeyComma,
	"Dot":   uinput.KeyDot,
	"Slash": uinput.KeySlash,

	"RightShift": uinput.KeyRightshift,
	"LeftAlt":    uinput.KeyLeftalt,
	"Space":      uinput.KeySpace,
	"CapsLock":   uinput.KeyCapslock,

	"F1":  uinput.KeyF1,
	"F2":  uinput.KeyF2,
	"F3":  uinput.KeyF3,
	"F4":  uinput.KeyF4,
	"F5":  uinput.KeyF5,
	"F6":  uinput.KeyF6,
	"F7":  uinput.KeyF7,
	"F8":  uinput.KeyF8,
	"F9":  uinput.KeyF9,
	"F10": uinput.KeyF10,

	"NumLock":      uinput.KeyNumlock,
	"ScrollLock":   uinput.KeyScrolllock,
	"RightControl": uinput.KeyRightctrl,
	"SysRq":        uinput.KeySysrq,
	"RightAlt":     uinput.KeyRightalt,
	"LineFeed":     uinput.KeyLinefeed,

	"Home":     uinput.KeyHome,
	"Up":       uinput.KeyUp,
	"PageUp":   uinput.KeyPageup,
	"Left":     uinput.KeyLeft,
	"Right":    uinput.KeyRight,
	"End":      uinput.KeyEnd,
	"Down":     uinput.KeyDown,
	"PageDown": uinput.KeyPagedown,
	"Insert":   uinput.KeyInsert,
	"Delete":   uinput.KeyDelete,

	"LeftMeta":  uinput.KeyLeftmeta,
	"RightMeta": uinput.KeyRightmeta,

	"ScrollUp":   uinput.KeyScrollup,
	"ScrollDown": uinput.KeyScrolldown,

	"F11": uinput.KeyF11,
	"F12": uinput.KeyF12,
	"F13": uinput.KeyF13,
	"F14": uinput.KeyF14,
	"F15": uinput.KeyF15,
	"F16": uinput.KeyF16,
	"F17": uinput.KeyF17,
	"F18": uinput.KeyF18,
	"F19": uinput.KeyF19,
	"F20": uinput.KeyF20,
	"F21": uinput.KeyF21,
	"F22": uinput.KeyF22,
	"F23": uinput.KeyF23,
	"F24": uinput.KeyF24,
}

// Lookup resolves a configuration key name to its uinput key code. ok is
// false for any name outside the closed set above.
func Lookup(name string) (code int, ok bool) {
	code, ok = names[name]
	return code, ok
}

// Names returns the full closed set of accepted key names. They come in Go's
// map iteration order: not sorted, and not stable between calls.
func Names() []string {
	known := make([]string, 0, len(names))
	for n := range names {
		known = append(known, n)
	}
	return known
}
