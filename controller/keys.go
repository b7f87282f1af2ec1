// Package controller implements the controller event model: key
// identifiers, the modifier bitmap, the application-instruction
// namespace, and the ControllerStatus event-transfer contract.
package controller

// KeyIdentifier names a key other than an ordinary Unicode character --
// modifiers, editing keys, media keys -- by the Unicode symbol
// conventionally used to depict it on a keycap, matching the reference
// KeyIdentifiers() table.
type KeyIdentifier rune

const (
	KeyCapsLock   KeyIdentifier = 0x21EA
	KeyNumLock    KeyIdentifier = 0x21ED
	KeyScrollLock KeyIdentifier = 0x21F3

	KeyImaginary KeyIdentifier = 0x2148
	KeyShift     KeyIdentifier = 0x21E7
	KeyControl   KeyIdentifier = 0x2303
	KeySystem    KeyIdentifier = 0x2318
	KeyMeta      KeyIdentifier = 0x2325
	KeyHyper     KeyIdentifier = 0x2726

	KeySpace  KeyIdentifier = 0x2423
	KeyReturn KeyIdentifier = 0x23CE
	KeyEnter  KeyIdentifier = 0x2324
	KeyTab    KeyIdentifier = 0x21E5

	KeyDeleteBackwards KeyIdentifier = 0x232B
	KeyDeleteForwards  KeyIdentifier = 0x2326
	KeyClear           KeyIdentifier = 0x2327

	KeyEscape             KeyIdentifier = 0x238B
	KeyEject              KeyIdentifier = 0x23CF
	KeyPower              KeyIdentifier = 0x23FB
	KeySleep              KeyIdentifier = 0x23FE
	KeyBrightnessIncrease KeyIdentifier = 0x1F506
	KeyBrightnessDecrease KeyIdentifier = 0x1F505

	KeyPreviousPage KeyIdentifier = 0x2397
	KeyNextPage     KeyIdentifier = 0x2398
	KeyInsert       KeyIdentifier = 0x2380
	KeyHome         KeyIdentifier = 0x21F1
	KeyEnd          KeyIdentifier = 0x21F2
	KeyPageUp       KeyIdentifier = 0x21DE
	KeyPageDown     KeyIdentifier = 0x21DF
	KeyUpArrow      KeyIdentifier = 0x2191
	KeyDownArrow    KeyIdentifier = 0x2193
	KeyLeftArrow    KeyIdentifier = 0x2190
	KeyRightArrow   KeyIdentifier = 0x2192

	KeyPrintScreen  KeyIdentifier = 0x2399
	KeyClearScreen  KeyIdentifier = 0x239A
	KeyPause        KeyIdentifier = 0x2389
	KeyBreak        KeyIdentifier = 0x238A

	KeyMediaVolumeDecrease   KeyIdentifier = 0x1F509
	KeyMediaVolumeIncrease   KeyIdentifier = 0x1F50A
	KeyMediaVolumeMute       KeyIdentifier = 0x1F507
	KeyMediaFastForward      KeyIdentifier = 0x23E9
	KeyMediaRewind           KeyIdentifier = 0x23EA
	KeyMediaSkipForward      KeyIdentifier = 0x23ED
	KeyMediaSkipBackward     KeyIdentifier = 0x23EE
	KeyMediaPlay             KeyIdentifier = 0x23F5
	KeyMediaPause            KeyIdentifier = 0x23F8
	KeyMediaPlayToggle       KeyIdentifier = 0x23EF
	KeyMediaReverse          KeyIdentifier = 0x23F4
	KeyMediaStop             KeyIdentifier = 0x23F9
	KeyMediaRecord           KeyIdentifier = 0x23FA
	KeyMediaShuffle          KeyIdentifier = 0x1F500
	KeyMediaRepeatContinuous KeyIdentifier = 0x1F501
	KeyMediaRepeatOnce       KeyIdentifier = 0x1F502

	KeyScreenCursorMotion KeyIdentifier = 0x1F5B1
)

var keyNames = map[KeyIdentifier]string{
	KeyCapsLock: "CapsLock", KeyNumLock: "NumLock", KeyScrollLock: "ScrollLock",

	KeyImaginary: "Imaginary", KeyShift: "Shift", KeyControl: "Control",
	KeySystem: "System", KeyMeta: "Meta", KeyHyper: "Hyper",

	KeySpace: "Space", KeyReturn: "Return", KeyEnter: "Enter", KeyTab: "Tab",

	KeyDeleteBackwards: "DeleteBackwards", KeyDeleteForwards: "DeleteForwards", KeyClear: "Clear",

	KeyEscape: "Escape", KeyEject: "Eject", KeyPower: "Power", KeySleep: "Sleep",
	KeyBrightnessIncrease: "BrightnessIncrease", KeyBrightnessDecrease: "BrightnessDecrease",

	KeyPreviousPage: "PreviousPage", KeyNextPage: "NextPage", KeyInsert: "Insert",
	KeyHome: "Home", KeyEnd: "End", KeyPageUp: "PageUp", KeyPageDown: "PageDown",
	KeyUpArrow: "UpArrow", KeyDownArrow: "DownArrow", KeyLeftArrow: "LeftArrow", KeyRightArrow: "RightArrow",

	KeyPrintScreen: "PrintScreen", KeyClearScreen: "ClearScreen", KeyPause: "Pause", KeyBreak: "Break",

	KeyMediaVolumeDecrease: "MediaVolumeDecrease", KeyMediaVolumeIncrease: "MediaVolumeIncrease",
	KeyMediaVolumeMute: "MediaVolumeMute", KeyMediaFastForward: "MediaFastForward", KeyMediaRewind: "MediaRewind",
	KeyMediaSkipForward: "MediaSkipForward", KeyMediaSkipBackward: "MediaSkipBackward", KeyMediaPlay: "MediaPlay",
	KeyMediaPause: "MediaPause", KeyMediaPlayToggle: "MediaPlayToggle", KeyMediaReverse: "MediaReverse",
	KeyMediaStop: "MediaStop", KeyMediaRecord: "MediaRecord", KeyMediaShuffle: "MediaShuffle",
	KeyMediaRepeatContinuous: "MediaRepeatContinuous", KeyMediaRepeatOnce: "MediaRepeatOnce",

	KeyScreenCursorMotion: "ScreenCursorMotion",
}

// Name returns the unqualified key name for ki, or "" if unknown.
func (ki KeyIdentifier) Name() string {
	return keyNames[ki]
}
