package keymap

// Hebrew (SI-1452) layout.
var hebrew = Layout{
	'1':  {Key: '1', Code: Digit1, KeyCode: 49},
	'2':  {Key: '2', Code: Digit2, KeyCode: 50},
	'3':  {Key: '3', Code: Digit3, KeyCode: 51},
	'4':  {Key: '4', Code: Digit4, KeyCode: 52},
	'5':  {Key: '5', Code: Digit5, KeyCode: 53},
	'6':  {Key: '6', Code: Digit6, KeyCode: 54},
	'7':  {Key: '7', Code: Digit7, KeyCode: 55},
	'8':  {Key: '8', Code: Digit8, KeyCode: 56},
	'9':  {Key: '9', Code: Digit9, KeyCode: 57},
	'0':  {Key: '0', Code: Digit0, KeyCode: 48},
	'-':  {Key: '-', Code: Minus, KeyCode: 189},
	'=':  {Key: '=', Code: Equal, KeyCode: 187},
	'/':  {Key: '/', Code: KeyQ, KeyCode: 81},
	'\'': {Key: '\'', Code: KeyW, KeyCode: 87},
	'ק':  {Key: 'ק', Code: KeyE, KeyCode: 69},
	'ר':  {Key: 'ר', Code: KeyR, KeyCode: 82},
	'א':  {Key: 'א', Code: KeyT, KeyCode: 84},
	'ט':  {Key: 'ט', Code: KeyY, KeyCode: 89},
	'ו':  {Key: 'ו', Code: KeyU, KeyCode: 85},
	'ן':  {Key: 'ן', Code: KeyI, KeyCode: 73},
	'ם':  {Key: 'ם', Code: KeyO, KeyCode: 79},
	'פ':  {Key: 'פ', Code: KeyP, KeyCode: 80},
	']':  {Key: ']', Code: BracketLeft, KeyCode: 219},
	'[':  {Key: '[', Code: BracketRight, KeyCode: 221},
	'ש':  {Key: 'ש', Code: KeyA, KeyCode: 65},
	'ד':  {Key: 'ד', Code: KeyS, KeyCode: 83},
	'ג':  {Key: 'ג', Code: KeyD, KeyCode: 68},
	'כ':  {Key: 'כ', Code: KeyF, KeyCode: 70},
	'ע':  {Key: 'ע', Code: KeyG, KeyCode: 71},
	'י':  {Key: 'י', Code: KeyH, KeyCode: 72},
	'ח':  {Key: 'ח', Code: KeyJ, KeyCode: 74},
	'ל':  {Key: 'ל', Code: KeyK, KeyCode: 75},
	'ך':  {Key: 'ך', Code: KeyL, KeyCode: 76},
	'ף':  {Key: 'ף', Code: Semicolon, KeyCode: 186},
	',':  {Key: ',', Code: Quote, KeyCode: 222},
	'\\': {Key: '\\', Code: Backslash, KeyCode: 220},
	'ז':  {Key: 'ז', Code: KeyZ, KeyCode: 90},
	'ס':  {Key: 'ס', Code: KeyX, KeyCode: 88},
	'ב':  {Key: 'ב', Code: KeyC, KeyCode: 67},
	'ה':  {Key: 'ה', Code: KeyV, KeyCode: 86},
	'נ':  {Key: 'נ', Code: KeyB, KeyCode: 66},
	'מ':  {Key: 'מ', Code: KeyN, KeyCode: 78},
	'צ':  {Key: 'צ', Code: KeyM, KeyCode: 77},
	'ת':  {Key: 'ת', Code: Comma, KeyCode: 188},
	'ץ':  {Key: 'ץ', Code: Period, KeyCode: 190},
	'.':  {Key: '.', Code: Slash, KeyCode: 191},
	' ':  {Key: ' ', Code: Space, KeyCode: 32},
	';':  {Key: ';', Code: Backquote, KeyCode: 192},

	// Shift layer
	'!':  {Key: '!', Code: Digit1, KeyCode: 49, ShiftKey: true},
	'@':  {Key: '@', Code: Digit2, KeyCode: 50, ShiftKey: true},
	'#':  {Key: '#', Code: Digit3, KeyCode: 51, ShiftKey: true},
	'$':  {Key: '$', Code: Digit4, KeyCode: 52, ShiftKey: true},
	'%':  {Key: '%', Code: Digit5, KeyCode: 53, ShiftKey: true},
	'^':  {Key: '^', Code: Digit6, KeyCode: 54, ShiftKey: true},
	'&':  {Key: '&', Code: Digit7, KeyCode: 55, ShiftKey: true},
	'*':  {Key: '*', Code: Digit8, KeyCode: 56, ShiftKey: true},
	')':  {Key: ')', Code: Digit9, KeyCode: 57, ShiftKey: true},
	'(':  {Key: '(', Code: Digit0, KeyCode: 48, ShiftKey: true},
	'_':  {Key: '_', Code: Minus, KeyCode: 189, ShiftKey: true},
	'+':  {Key: '+', Code: Equal, KeyCode: 187, ShiftKey: true},
	'}':  {Key: '}', Code: BracketLeft, KeyCode: 219, ShiftKey: true},
	'{':  {Key: '{', Code: BracketRight, KeyCode: 221, ShiftKey: true},
	'|':  {Key: '|', Code: Backslash, KeyCode: 220, ShiftKey: true},
	':':  {Key: ':', Code: Semicolon, KeyCode: 186, ShiftKey: true},
	'"':  {Key: '"', Code: Quote, KeyCode: 222, ShiftKey: true},
	'~':  {Key: '~', Code: Backquote, KeyCode: 192, ShiftKey: true},
	'>':  {Key: '>', Code: Comma, KeyCode: 188, ShiftKey: true},
	'<':  {Key: '<', Code: Period, KeyCode: 190, ShiftKey: true},
	'?':  {Key: '?', Code: Slash, KeyCode: 191, ShiftKey: true},
}
