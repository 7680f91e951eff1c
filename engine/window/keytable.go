package window

import "github.com/go-gl/glfw/v3.3/glfw"

// KeyCount is the fixed length of the host block's keys array (§6.3 of the
// dialect contract). The generated WGSL header emits one named constant per
// index below; the host's key-event mapping must agree on the ordering
// exactly or KEY_* constants in shader code will read the wrong bit.
const KeyCount = 194

// Key indices, in the fixed order the dialect contract requires: writing
// system keys (backtick through slash), letters A-Z starting at 19,
// functional keys (modifiers, backspace, enter, space, tab), arrow keys,
// then a block of numpad/reserved slots, then F1-F12 at 159-170, then a
// trailing reserved block sized to round the table out to 194 entries.
const (
	KeyBackquote = iota
	KeyBacklash
	KeyBracketLeft
	KeyBracketRight
	KeyComma
	KeyDigit0
	KeyDigit1
	KeyDigit2
	KeyDigit3
	KeyDigit4
	KeyDigit5
	KeyDigit6
	KeyDigit7
	KeyDigit8
	KeyDigit9
	KeyEqual
	KeyIntlBackslash
	KeyIntlRo
	KeyIntlYen
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyMinus
	KeyPeriod
	KeyQuote
	KeySemicolon
	KeySlash
	KeyAltLeft
	KeyAltRight
	KeyBackspace
	KeyCapsLock
	KeyContextMenu
	KeyControlLeft
	KeyControlRight
	KeyEnter
	KeyMetaLeft
	KeyMetaRight
	KeyShiftLeft
	KeyShiftRight
	KeySpace
	KeyTab
	KeyDelete
	KeyEnd
	KeyHelp
	KeyHome
	KeyInsert
	KeyPageDown
	KeyPageUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
	KeyArrowUp
	KeyEscape
	KeyNumLock
	KeyScrollLock
	KeyPause
	KeyPrintScreen
	KeyLang1
	KeyLang2
	KeyConvert
)

// Numpad keys begin the reserved block between the writing-system/functional
// keys above and the function-key block fixed at 159-170.
const (
	KeyNumpad0 = 83 + iota
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9
	KeyNumpadAdd
	KeyNumpadDecimal
	KeyNumpadDivide
	KeyNumpadEnter
	KeyNumpadEqual
	KeyNumpadMultiply
	KeyNumpadSubtract
)

// Indices 100-158 are reserved (unmapped to any physical key on this
// platform) so the array stays 194 entries wide regardless of how many
// writing-system/numpad keys a given build wires up.

// Function keys F1-F12 occupy the fixed range the dialect contract requires.
const (
	KeyF1 = 159 + iota
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

// Indices 171-193 are reserved, rounding the table out to KeyCount entries.

// glfwKeyIndex maps a GLFW key code to its fixed index in the keys[194]
// array. Keys with no GLFW equivalent (the reserved numpad/media slots) are
// simply never looked up; unknown GLFW codes return ok=false and the caller
// ignores the event.
var glfwKeyIndex = map[glfw.Key]int{
	glfw.KeyGraveAccent: KeyBackquote,
	glfw.KeyBackslash:   KeyBacklash,
	glfw.KeyLeftBracket: KeyBracketLeft,
	glfw.KeyRightBracket: KeyBracketRight,
	glfw.KeyComma:  KeyComma,
	glfw.Key0:      KeyDigit0,
	glfw.Key1:      KeyDigit1,
	glfw.Key2:      KeyDigit2,
	glfw.Key3:      KeyDigit3,
	glfw.Key4:      KeyDigit4,
	glfw.Key5:      KeyDigit5,
	glfw.Key6:      KeyDigit6,
	glfw.Key7:      KeyDigit7,
	glfw.Key8:      KeyDigit8,
	glfw.Key9:      KeyDigit9,
	glfw.KeyEqual:  KeyEqual,
	glfw.KeyA: KeyA, glfw.KeyB: KeyB, glfw.KeyC: KeyC, glfw.KeyD: KeyD,
	glfw.KeyE: KeyE, glfw.KeyF: KeyF, glfw.KeyG: KeyG, glfw.KeyH: KeyH,
	glfw.KeyI: KeyI, glfw.KeyJ: KeyJ, glfw.KeyK: KeyK, glfw.KeyL: KeyL,
	glfw.KeyM: KeyM, glfw.KeyN: KeyN, glfw.KeyO: KeyO, glfw.KeyP: KeyP,
	glfw.KeyQ: KeyQ, glfw.KeyR: KeyR, glfw.KeyS: KeyS, glfw.KeyT: KeyT,
	glfw.KeyU: KeyU, glfw.KeyV: KeyV, glfw.KeyW: KeyW, glfw.KeyX: KeyX,
	glfw.KeyY: KeyY, glfw.KeyZ: KeyZ,
	glfw.KeyMinus:        KeyMinus,
	glfw.KeyPeriod:       KeyPeriod,
	glfw.KeyApostrophe:   KeyQuote,
	glfw.KeySemicolon:    KeySemicolon,
	glfw.KeySlash:        KeySlash,
	glfw.KeyLeftAlt:      KeyAltLeft,
	glfw.KeyRightAlt:     KeyAltRight,
	glfw.KeyBackspace:    KeyBackspace,
	glfw.KeyCapsLock:     KeyCapsLock,
	glfw.KeyMenu:         KeyContextMenu,
	glfw.KeyLeftControl:  KeyControlLeft,
	glfw.KeyRightControl: KeyControlRight,
	glfw.KeyEnter:        KeyEnter,
	glfw.KeyLeftSuper:    KeyMetaLeft,
	glfw.KeyRightSuper:   KeyMetaRight,
	glfw.KeyLeftShift:    KeyShiftLeft,
	glfw.KeyRightShift:   KeyShiftRight,
	glfw.KeySpace:        KeySpace,
	glfw.KeyTab:          KeyTab,
	glfw.KeyDelete:       KeyDelete,
	glfw.KeyEnd:          KeyEnd,
	glfw.KeyHome:         KeyHome,
	glfw.KeyInsert:       KeyInsert,
	glfw.KeyPageDown:     KeyPageDown,
	glfw.KeyPageUp:       KeyPageUp,
	glfw.KeyDown:         KeyArrowDown,
	glfw.KeyLeft:         KeyArrowLeft,
	glfw.KeyRight:        KeyArrowRight,
	glfw.KeyUp:           KeyArrowUp,
	glfw.KeyEscape:       KeyEscape,
	glfw.KeyNumLock:      KeyNumLock,
	glfw.KeyScrollLock:   KeyScrollLock,
	glfw.KeyPause:        KeyPause,
	glfw.KeyPrintScreen:  KeyPrintScreen,
	glfw.KeyKP0: KeyNumpad0, glfw.KeyKP1: KeyNumpad1, glfw.KeyKP2: KeyNumpad2,
	glfw.KeyKP3: KeyNumpad3, glfw.KeyKP4: KeyNumpad4, glfw.KeyKP5: KeyNumpad5,
	glfw.KeyKP6: KeyNumpad6, glfw.KeyKP7: KeyNumpad7, glfw.KeyKP8: KeyNumpad8,
	glfw.KeyKP9:         KeyNumpad9,
	glfw.KeyKPAdd:       KeyNumpadAdd,
	glfw.KeyKPDecimal:   KeyNumpadDecimal,
	glfw.KeyKPDivide:    KeyNumpadDivide,
	glfw.KeyKPEnter:     KeyNumpadEnter,
	glfw.KeyKPEqual:     KeyNumpadEqual,
	glfw.KeyKPMultiply:  KeyNumpadMultiply,
	glfw.KeyKPSubtract:  KeyNumpadSubtract,
	glfw.KeyF1: KeyF1, glfw.KeyF2: KeyF2, glfw.KeyF3: KeyF3, glfw.KeyF4: KeyF4,
	glfw.KeyF5: KeyF5, glfw.KeyF6: KeyF6, glfw.KeyF7: KeyF7, glfw.KeyF8: KeyF8,
	glfw.KeyF9: KeyF9, glfw.KeyF10: KeyF10, glfw.KeyF11: KeyF11, glfw.KeyF12: KeyF12,
}

// KeyIndex maps a GLFW key code to the fixed index used by the keys[194]
// host-block array. ok is false for GLFW key codes with no slot in the
// table (rare/platform-specific keys); the caller should drop the event.
func KeyIndex(key glfw.Key) (int, bool) {
	idx, ok := glfwKeyIndex[key]
	return idx, ok
}

// keyNames maps a fixed keys[194] index to the bare name used to build its
// KEY_* constant in generated WGSL (see writeKeyConstants). Indices with no
// entry are reserved filler slots and have no named constant.
var keyNames = map[int]string{
	KeyBackquote:     "BACKQUOTE",
	KeyBacklash:      "BACKSLASH",
	KeyBracketLeft:   "BRACKET_LEFT",
	KeyBracketRight:  "BRACKET_RIGHT",
	KeyComma:         "COMMA",
	KeyDigit0:        "DIGIT_0",
	KeyDigit1:        "DIGIT_1",
	KeyDigit2:        "DIGIT_2",
	KeyDigit3:        "DIGIT_3",
	KeyDigit4:        "DIGIT_4",
	KeyDigit5:        "DIGIT_5",
	KeyDigit6:        "DIGIT_6",
	KeyDigit7:        "DIGIT_7",
	KeyDigit8:        "DIGIT_8",
	KeyDigit9:        "DIGIT_9",
	KeyEqual:         "EQUAL",
	KeyIntlBackslash: "INTL_BACKSLASH",
	KeyIntlRo:        "INTL_RO",
	KeyIntlYen:       "INTL_YEN",
	KeyA: "A", KeyB: "B", KeyC: "C", KeyD: "D", KeyE: "E", KeyF: "F",
	KeyG: "G", KeyH: "H", KeyI: "I", KeyJ: "J", KeyK: "K", KeyL: "L",
	KeyM: "M", KeyN: "N", KeyO: "O", KeyP: "P", KeyQ: "Q", KeyR: "R",
	KeyS: "S", KeyT: "T", KeyU: "U", KeyV: "V", KeyW: "W", KeyX: "X",
	KeyY: "Y", KeyZ: "Z",
	KeyMinus:        "MINUS",
	KeyPeriod:       "PERIOD",
	KeyQuote:        "QUOTE",
	KeySemicolon:    "SEMICOLON",
	KeySlash:        "SLASH",
	KeyAltLeft:      "ALT_LEFT",
	KeyAltRight:     "ALT_RIGHT",
	KeyBackspace:    "BACKSPACE",
	KeyCapsLock:     "CAPS_LOCK",
	KeyContextMenu:  "CONTEXT_MENU",
	KeyControlLeft:  "CONTROL_LEFT",
	KeyControlRight: "CONTROL_RIGHT",
	KeyEnter:        "ENTER",
	KeyMetaLeft:     "META_LEFT",
	KeyMetaRight:    "META_RIGHT",
	KeyShiftLeft:    "SHIFT_LEFT",
	KeyShiftRight:   "SHIFT_RIGHT",
	KeySpace:        "SPACE",
	KeyTab:          "TAB",
	KeyDelete:       "DELETE",
	KeyEnd:          "END",
	KeyHelp:         "HELP",
	KeyHome:         "HOME",
	KeyInsert:       "INSERT",
	KeyPageDown:     "PAGE_DOWN",
	KeyPageUp:       "PAGE_UP",
	KeyArrowDown:    "ARROW_DOWN",
	KeyArrowLeft:    "ARROW_LEFT",
	KeyArrowRight:   "ARROW_RIGHT",
	KeyArrowUp:      "ARROW_UP",
	KeyEscape:       "ESCAPE",
	KeyNumLock:      "NUM_LOCK",
	KeyScrollLock:   "SCROLL_LOCK",
	KeyPause:        "PAUSE",
	KeyPrintScreen:  "PRINT_SCREEN",
	KeyLang1:        "LANG1",
	KeyLang2:        "LANG2",
	KeyConvert:      "CONVERT",
	KeyNumpad0: "NUMPAD_0", KeyNumpad1: "NUMPAD_1", KeyNumpad2: "NUMPAD_2",
	KeyNumpad3: "NUMPAD_3", KeyNumpad4: "NUMPAD_4", KeyNumpad5: "NUMPAD_5",
	KeyNumpad6: "NUMPAD_6", KeyNumpad7: "NUMPAD_7", KeyNumpad8: "NUMPAD_8",
	KeyNumpad9:        "NUMPAD_9",
	KeyNumpadAdd:      "NUMPAD_ADD",
	KeyNumpadDecimal:  "NUMPAD_DECIMAL",
	KeyNumpadDivide:   "NUMPAD_DIVIDE",
	KeyNumpadEnter:    "NUMPAD_ENTER",
	KeyNumpadEqual:    "NUMPAD_EQUAL",
	KeyNumpadMultiply: "NUMPAD_MULTIPLY",
	KeyNumpadSubtract: "NUMPAD_SUBTRACT",
	KeyF1: "F1", KeyF2: "F2", KeyF3: "F3", KeyF4: "F4",
	KeyF5: "F5", KeyF6: "F6", KeyF7: "F7", KeyF8: "F8",
	KeyF9: "F9", KeyF10: "F10", KeyF11: "F11", KeyF12: "F12",
}

// KeyNameByIndex returns the bare name for a fixed keys[194] index, used by
// the WGSL preprocessor to emit KEY_<name> constants. Returns "" for
// reserved filler slots that have no assigned key.
func KeyNameByIndex(index int) string {
	return keyNames[index]
}
