package keymap

// French (AZERTY) layout.
var french = Layout{
	'1': {Key: '1', Code: Digit1, KeyCode: 49},
	'2': {Key: '2', Code: Digit2, KeyCode: 50},
	'3': {Key: '3', Code: Digit3, KeyCode: 51},
	'4': {Key: '4', Code: Digit4, KeyCode: 52},
	'5': {Key: '5', Code: Digit5, KeyCode: 53},
	'6': {Key: '6', Code: Digit6, KeyCode: 54},
	'7': {Key: '7', Code: Digit7, KeyCode: 55},
	'8': {Key: '8', Code: Digit8, KeyCode: 56},
	'9': {Key: '9', Code: Digit9, KeyCode: 57},
	'0': {Key: '0', Code: Digit0, KeyCode: 48},
	'a': {Key: 'a', Code: KeyQ, KeyCode: 81},
	'z': {Key: 'z', Code: KeyW, KeyCode: 87},
	'e': {Key: 'e', Code: KeyE, KeyCode: 69},
	'r': {Key: 'r', Code: KeyR, KeyCode: 82},
	't': {Key: 't', Code: KeyT, KeyCode: 84},
	'y': {Key: 'y', Code: KeyY, KeyCode: 89},
	'u': {Key: 'u', Code: KeyU, KeyCode: 85},
	'i': {Key: 'i', Code: KeyI, KeyCode: 73},
	'o': {Key: 'o', Code: KeyO, KeyCode: 79},
	'p': {Key: 'p', Code: KeyP, KeyCode: 80},
	'q': {Key: 'q', Code: KeyA, KeyCode: 65},
	's': {Key: 's', Code: KeyS, KeyCode: 83},
	'd': {Key: 'd', Code: KeyD, KeyCode: 68},
	'f': {Key: 'f', Code: KeyF, KeyCode: 70},
	'g': {Key: 'g', Code: KeyG, KeyCode: 71},
	'h': {Key: 'h', Code: KeyH, KeyCode: 72},
	'j': {Key: 'j', Code: KeyJ, KeyCode: 74},
	'k': {Key: 'k', Code: KeyK, KeyCode: 75},
	'l': {Key: 'l', Code: KeyL, KeyCode: 76},
	'm': {Key: 'm', Code: Semicolon, KeyCode: 186},
	'w': {Key: 'w', Code: KeyZ, KeyCode: 90},
	'x': {Key: 'x', Code: KeyX, KeyCode: 88},
	'c': {Key: 'c', Code: KeyC, KeyCode: 67},
	'v': {Key: 'v', Code: KeyV, KeyCode: 86},
	'b': {Key: 'b', Code: KeyB, KeyCode: 66},
	'n': {Key: 'n', Code: KeyN, KeyCode: 78},
	',': {Key: ',', Code: KeyM, KeyCode: 77},
	';': {Key: ';', Code: Comma, KeyCode: 188},
	':': {Key: ':', Code: Period, KeyCode: 190},
	'!': {Key: '!', Code: Slash, KeyCode: 191},
	' ': {Key: ' ', Code: Space, KeyCode: 32},

	// Shift layer
	'é': {Key: 'é', Code: Digit2, KeyCode: 50, ShiftKey: true},
	'è': {Key: 'è', Code: Digit7, KeyCode: 55, ShiftKey: true},
	'ç': {Key: 'ç', Code: Digit9, KeyCode: 57, ShiftKey: true},
	'à': {Key: 'à', Code: Digit0, KeyCode: 48, ShiftKey: true},
}
