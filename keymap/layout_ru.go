package keymap

// Russian (ЙЦУКЕН) layout.
var russian = Layout{
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
	'й':  {Key: 'й', Code: KeyQ, KeyCode: 81},
	'ц':  {Key: 'ц', Code: KeyW, KeyCode: 87},
	'у':  {Key: 'у', Code: KeyE, KeyCode: 69},
	'к':  {Key: 'к', Code: KeyR, KeyCode: 82},
	'е':  {Key: 'е', Code: KeyT, KeyCode: 84},
	'н':  {Key: 'н', Code: KeyY, KeyCode: 89},
	'г':  {Key: 'г', Code: KeyU, KeyCode: 85},
	'ш':  {Key: 'ш', Code: KeyI, KeyCode: 73},
	'щ':  {Key: 'щ', Code: KeyO, KeyCode: 79},
	'з':  {Key: 'з', Code: KeyP, KeyCode: 80},
	'ф':  {Key: 'ф', Code: KeyA, KeyCode: 65},
	'ы':  {Key: 'ы', Code: KeyS, KeyCode: 83},
	'в':  {Key: 'в', Code: KeyD, KeyCode: 68},
	'а':  {Key: 'а', Code: KeyF, KeyCode: 70},
	'п':  {Key: 'п', Code: KeyG, KeyCode: 71},
	'р':  {Key: 'р', Code: KeyH, KeyCode: 72},
	'о':  {Key: 'о', Code: KeyJ, KeyCode: 74},
	'л':  {Key: 'л', Code: KeyK, KeyCode: 75},
	'д':  {Key: 'д', Code: KeyL, KeyCode: 76},
	'я':  {Key: 'я', Code: KeyZ, KeyCode: 90},
	'ч':  {Key: 'ч', Code: KeyX, KeyCode: 88},
	'с':  {Key: 'с', Code: KeyC, KeyCode: 67},
	'м':  {Key: 'м', Code: KeyV, KeyCode: 86},
	'и':  {Key: 'и', Code: KeyB, KeyCode: 66},
	'т':  {Key: 'т', Code: KeyN, KeyCode: 78},
	'ь':  {Key: 'ь', Code: KeyM, KeyCode: 77},
	'б':  {Key: 'б', Code: Comma, KeyCode: 188},
	'ю':  {Key: 'ю', Code: Period, KeyCode: 190},
	'.':  {Key: '.', Code: Slash, KeyCode: 191},
	' ':  {Key: ' ', Code: Space, KeyCode: 32},
	'-':  {Key: '-', Code: Minus, KeyCode: 189},
	'=':  {Key: '=', Code: Equal, KeyCode: 187},
	'х':  {Key: 'х', Code: BracketLeft, KeyCode: 219},
	'ъ':  {Key: 'ъ', Code: BracketRight, KeyCode: 221},
	'\\': {Key: '\\', Code: Backslash, KeyCode: 220},
	'ж':  {Key: 'ж', Code: Semicolon, KeyCode: 186},
	'э':  {Key: 'э', Code: Quote, KeyCode: 222},
	'ё':  {Key: 'ё', Code: Backquote, KeyCode: 192},

	// Shift layer
	'!':  {Key: '!', Code: Digit1, KeyCode: 49, ShiftKey: true},
	'"':  {Key: '"', Code: Digit2, KeyCode: 50, ShiftKey: true},
	'№':  {Key: '№', Code: Digit3, KeyCode: 51, ShiftKey: true},
	';':  {Key: ';', Code: Digit4, KeyCode: 52, ShiftKey: true},
	'%':  {Key: '%', Code: Digit5, KeyCode: 53, ShiftKey: true},
	':':  {Key: ':', Code: Digit6, KeyCode: 54, ShiftKey: true},
	'?':  {Key: '?', Code: Digit7, KeyCode: 55, ShiftKey: true},
	'*':  {Key: '*', Code: Digit8, KeyCode: 56, ShiftKey: true},
	'(':  {Key: '(', Code: Digit9, KeyCode: 57, ShiftKey: true},
	')':  {Key: ')', Code: Digit0, KeyCode: 48, ShiftKey: true},
	'_':  {Key: '_', Code: Minus, KeyCode: 189, ShiftKey: true},
	'+':  {Key: '+', Code: Equal, KeyCode: 187, ShiftKey: true},
	'/':  {Key: '/', Code: Backslash, KeyCode: 220, ShiftKey: true},
	',':  {Key: ',', Code: Slash, KeyCode: 191, ShiftKey: true},
}
