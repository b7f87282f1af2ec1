package controller

// Instruction is a semantic editor operation a device backend can request
// of the hosted application (e.g. "save the current resource"), encoded
// as a negative Status.Dispatch value via the InstructionKey range.
//
// This is the union of the instruction names used by the two historical
// generations of the reference controller.h/device.h headers: the older
// header's singular "element" class and the newer header's "elements"
// class (plus a handful of names -- session/clone, session/create,
// frame/clone, resource/clone -- the newer header adds) are both carried
// here under the newer "elements" naming.
type Instruction int

const (
	InstructionVoid Instruction = iota

	InstructionSessionStatus
	InstructionSessionClone
	InstructionSessionCreate
	InstructionSessionClose
	InstructionSessionSave
	InstructionSessionSynchronize
	InstructionSessionInterrupt
	InstructionSessionQuit
	InstructionSessionSwitch
	InstructionSessionRestore

	InstructionFrameStatus
	InstructionFrameClone
	InstructionFrameCreate
	InstructionFrameClose
	InstructionFrameSelect
	InstructionFrameNext
	InstructionFramePrevious
	InstructionFrameTranspose

	InstructionResourceStatus
	InstructionResourceClone
	InstructionResourceCreate
	InstructionResourceClose
	InstructionResourceRelocate
	InstructionResourceCycle
	InstructionResourceOpen
	InstructionResourceSave
	InstructionResourceReload

	InstructionElementsStatus
	InstructionElementsClone
	InstructionElementsSeek
	InstructionElementsFind
	InstructionElementsNext
	InstructionElementsPrevious
	InstructionElementsUndo
	InstructionElementsRedo
	InstructionElementsSelect
	InstructionElementsInsert
	InstructionElementsDelete
	InstructionElementsSelectAll
	InstructionElementsHover

	InstructionScreenRefresh
	InstructionScreenResize

	InstructionViewScroll
	InstructionViewPan

	InstructionTimeElapsed

	instructionSentinel
)

var instructionNames = map[Instruction]string{
	InstructionSessionStatus:      "session/status",
	InstructionSessionClone:       "session/clone",
	InstructionSessionCreate:      "session/create",
	InstructionSessionClose:       "session/close",
	InstructionSessionSave:        "session/save",
	InstructionSessionSynchronize: "session/synchronize",
	InstructionSessionInterrupt:   "session/interrupt",
	InstructionSessionQuit:        "session/quit",
	InstructionSessionSwitch:      "session/switch",
	InstructionSessionRestore:     "session/restore",

	InstructionFrameStatus:    "frame/status",
	InstructionFrameClone:     "frame/clone",
	InstructionFrameCreate:    "frame/create",
	InstructionFrameClose:     "frame/close",
	InstructionFrameSelect:    "frame/select",
	InstructionFrameNext:      "frame/next",
	InstructionFramePrevious:  "frame/previous",
	InstructionFrameTranspose: "frame/transpose",

	InstructionResourceStatus:   "resource/status",
	InstructionResourceClone:    "resource/clone",
	InstructionResourceCreate:   "resource/create",
	InstructionResourceClose:    "resource/close",
	InstructionResourceRelocate: "resource/relocate",
	InstructionResourceCycle:    "resource/cycle",
	InstructionResourceOpen:     "resource/open",
	InstructionResourceSave:     "resource/save",
	InstructionResourceReload:   "resource/reload",

	InstructionElementsStatus:    "elements/status",
	InstructionElementsClone:     "elements/clone",
	InstructionElementsSeek:      "elements/seek",
	InstructionElementsFind:      "elements/find",
	InstructionElementsNext:      "elements/next",
	InstructionElementsPrevious:  "elements/previous",
	InstructionElementsUndo:      "elements/undo",
	InstructionElementsRedo:      "elements/redo",
	InstructionElementsSelect:    "elements/select",
	InstructionElementsInsert:    "elements/insert",
	InstructionElementsDelete:    "elements/delete",
	InstructionElementsSelectAll: "elements/selectall",
	InstructionElementsHover:     "elements/hover",

	InstructionScreenRefresh: "screen/refresh",
	InstructionScreenResize:  "screen/resize",

	InstructionViewScroll: "view/scroll",
	InstructionViewPan:    "view/pan",

	InstructionTimeElapsed: "time/elapsed",
}

// String names the instruction in "class/verb" form.
func (ai Instruction) String() string {
	if name, ok := instructionNames[ai]; ok {
		return name
	}
	return "void"
}

// Valid reports whether ai is a real, in-range instruction.
func (ai Instruction) Valid() bool {
	return ai > InstructionVoid && ai < instructionSentinel
}
