package gui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/flycam/internal/input"
)

// keyTable maps raylib keys to DOM-numbered codes. Both shift keys report
// as the one shift code.
var keyTable = map[int32]input.Code{
	rl.KeyBackspace:    input.KeyBackspace,
	rl.KeyTab:          input.KeyTab,
	rl.KeyEnter:        input.KeyEnter,
	rl.KeyLeftShift:    input.KeyShift,
	rl.KeyRightShift:   input.KeyShift,
	rl.KeyLeftControl:  input.KeyCtrl,
	rl.KeyRightControl: input.KeyCtrl,
	rl.KeySpace:        input.KeySpace,
	rl.KeyLeft:         input.KeyArrowLeft,
	rl.KeyUp:           input.KeyArrowUp,
	rl.KeyRight:        input.KeyArrowRight,
	rl.KeyDown:         input.KeyArrowDown,
}

func init() {
	for i := int32(0); i < 26; i++ {
		keyTable[rl.KeyA+i] = input.KeyA + input.Code(i)
	}
	for i := int32(0); i < 10; i++ {
		keyTable[rl.KeyZero+i] = input.Key0 + input.Code(i)
	}
	for i := int32(0); i < 12; i++ {
		keyTable[rl.KeyF1+i] = input.KeyF1 + input.Code(i)
	}
}

var buttonTable = map[int32]input.Button{
	int32(rl.MouseButtonLeft):   input.ButtonPrimary,
	int32(rl.MouseButtonMiddle): input.ButtonMiddle,
	int32(rl.MouseButtonRight):  input.ButtonSecondary,
}

var altKeys = []int32{rl.KeyLeftAlt, rl.KeyRightAlt}
