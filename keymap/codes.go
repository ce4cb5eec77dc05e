package keymap

import "strings"

// Code identifies a physical key position independent of the active layout.
// Values follow the W3C UI Events KeyboardEvent.code naming.
type Code string

// Physical key codes used by the layout tables.
const (
	// Digit row
	Digit1 Code = "Digit1"
	Digit2 Code = "Digit2"
	Digit3 Code = "Digit3"
	Digit4 Code = "Digit4"
	Digit5 Code = "Digit5"
	Digit6 Code = "Digit6"
	Digit7 Code = "Digit7"
	Digit8 Code = "Digit8"
	Digit9 Code = "Digit9"
	Digit0 Code = "Digit0"

	// Letters
	KeyA Code = "KeyA"
	KeyB Code = "KeyB"
	KeyC Code = "KeyC"
	KeyD Code = "KeyD"
	KeyE Code = "KeyE"
	KeyF Code = "KeyF"
	KeyG Code = "KeyG"
	KeyH Code = "KeyH"
	KeyI Code = "KeyI"
	KeyJ Code = "KeyJ"
	KeyK Code = "KeyK"
	KeyL Code = "KeyL"
	KeyM Code = "KeyM"
	KeyN Code = "KeyN"
	KeyO Code = "KeyO"
	KeyP Code = "KeyP"
	KeyQ Code = "KeyQ"
	KeyR Code = "KeyR"
	KeyS Code = "KeyS"
	KeyT Code = "KeyT"
	KeyU Code = "KeyU"
	KeyV Code = "KeyV"
	KeyW Code = "KeyW"
	KeyX Code = "KeyX"
	KeyY Code = "KeyY"
	KeyZ Code = "KeyZ"

	// Punctuation and whitespace
	Space        Code = "Space"
	Backquote    Code = "Backquote"    // ` and ~
	Minus        Code = "Minus"        // - and _
	Equal        Code = "Equal"        // = and +
	BracketLeft  Code = "BracketLeft"  // [ and {
	BracketRight Code = "BracketRight" // ] and }
	Backslash    Code = "Backslash"    // \ and |
	Semicolon    Code = "Semicolon"    // ; and :
	Quote        Code = "Quote"        // ' and "
	Comma        Code = "Comma"        // , and <
	Period       Code = "Period"       // . and >
	Slash        Code = "Slash"        // / and ?
)

// keyInfo carries the secondary hardware identifiers of a physical key.
type keyInfo struct {
	keyCode int   // legacy KeyboardEvent.keyCode
	hid     uint8 // USB HID usage (Keyboard/Keypad page)
}

var catalogue = map[Code]keyInfo{
	Digit1: {49, 0x1E}, Digit2: {50, 0x1F}, Digit3: {51, 0x20}, Digit4: {52, 0x21}, Digit5: {53, 0x22},
	Digit6: {54, 0x23}, Digit7: {55, 0x24}, Digit8: {56, 0x25}, Digit9: {57, 0x26}, Digit0: {48, 0x27},

	KeyA: {65, 0x04}, KeyB: {66, 0x05}, KeyC: {67, 0x06}, KeyD: {68, 0x07}, KeyE: {69, 0x08},
	KeyF: {70, 0x09}, KeyG: {71, 0x0A}, KeyH: {72, 0x0B}, KeyI: {73, 0x0C}, KeyJ: {74, 0x0D},
	KeyK: {75, 0x0E}, KeyL: {76, 0x0F}, KeyM: {77, 0x10}, KeyN: {78, 0x11}, KeyO: {79, 0x12},
	KeyP: {80, 0x13}, KeyQ: {81, 0x14}, KeyR: {82, 0x15}, KeyS: {83, 0x16}, KeyT: {84, 0x17},
	KeyU: {85, 0x18}, KeyV: {86, 0x19}, KeyW: {87, 0x1A}, KeyX: {88, 0x1B}, KeyY: {89, 0x1C},
	KeyZ: {90, 0x1D},

	Space:        {32, 0x2C},
	Minus:        {189, 0x2D},
	Equal:        {187, 0x2E},
	BracketLeft:  {219, 0x2F},
	BracketRight: {221, 0x30},
	Backslash:    {220, 0x31},
	Semicolon:    {186, 0x33},
	Quote:        {222, 0x34},
	Backquote:    {192, 0x35},
	Comma:        {188, 0x36},
	Period:       {190, 0x37},
	Slash:        {191, 0x38},
}

var (
	codeByHID     = map[uint8]Code{}
	codeByKeyCode = map[int]Code{}
	codeByName    = map[string]Code{}
)

func init() {
	for code, info := range catalogue {
		codeByHID[info.hid] = code
		codeByKeyCode[info.keyCode] = code
		codeByName[strings.ToLower(string(code))] = code
	}
}

// ParseCode looks up a physical key code ignoring case, so "keyq" and "KeyQ"
// both resolve to KeyQ.
func ParseCode(s string) (Code, bool) {
	code, ok := codeByName[strings.ToLower(strings.TrimSpace(s))]
	return code, ok
}

// Known reports whether code is part of the physical key catalogue.
func Known(code Code) bool {
	_, ok := catalogue[code]
	return ok
}

// LegacyKeyCode returns the legacy numeric key code for a physical key.
func LegacyKeyCode(code Code) (int, bool) {
	info, ok := catalogue[code]
	return info.keyCode, ok
}

// HIDUsage returns the USB HID usage id for a physical key.
func HIDUsage(code Code) (uint8, bool) {
	info, ok := catalogue[code]
	return info.hid, ok
}

// CodeForHID maps a USB HID usage id back to its physical key code.
func CodeForHID(usage uint8) (Code, bool) {
	code, ok := codeByHID[usage]
	return code, ok
}

// CodeForKeyCode maps a legacy numeric key code back to its physical key code.
func CodeForKeyCode(keyCode int) (Code, bool) {
	code, ok := codeByKeyCode[keyCode]
	return code, ok
}
