package main

import (
	"flag"
	"fmt"

	"github.com/splace/joysticks"
)

type JoystickAxis struct {
	AxisNumber int

	// Positions between these values are bound to zero
	ZeroFrom, ZeroTo float64

	InvertX, InvertY bool

	// If true, scale the value range to adjust for zeroFrom/zeroTo and make the entire value range -1..1 available
	ScaleZeroFromTo bool
}

func (a *JoystickAxis) RegisterFlags(prefix string, desc string) {
	flag.IntVar(&a.AxisNumber, prefix, a.AxisNumber, "Index for joystick axis for "+desc)
	flag.BoolVar(&a.InvertX, prefix+"InvertX", a.InvertX, "Invert X axis direction of "+desc)
	flag.BoolVar(&a.InvertY, prefix+"InvertY", a.InvertY, "Invert Y axis direction of "+desc)
	flag.Float64Var(&a.ZeroFrom, prefix+"ZeroFrom", a.ZeroFrom, "Start of the zero interval of "+desc)
	flag.Float64Var(&a.ZeroTo, prefix+"ZeroTo", a.ZeroTo, "End of the zero interval of "+desc)
	flag.BoolVar(&a.ScaleZeroFromTo, prefix+"ScaleZeroFromTo", a.ScaleZeroFromTo, "Can be used to disable the value range adjustment after filtering based on zeroFrom/zeroTo for "+desc)
}

func (a *JoystickAxis) Notify(js *joysticks.HID, hook func(x, y float32)) {
	if !js.HatExists(uint8(a.AxisNumber)) {
		panic(fmt.Sprintf("Joystick axis (%v) does not exist on device %v", a.AxisNumber, js))
	}
	moved := js.OnMove(uint8(a.AxisNumber))
	go func() {
		for event := range moved {
			coords := event.(joysticks.CoordsEvent)
			x, y := coords.X, coords.Y
			if a.InvertX {
				x = -x
			}
			if a.InvertY {
				y = -y
			}
			hook(a.convert(x), a.convert(y))
		}
	}()
}

func (a *JoystickAxis) convert(val float32) float32 {
	zeroFrom := float32(a.ZeroFrom)
	zeroTo := float32(a.ZeroTo)
	if val >= zeroFrom && val <= zeroTo {
		val = 0
	} else if a.ScaleZeroFromTo {
		// Scale the value range from [-1..zeroFrom] and [zeroTo..0] to [-1..0] and [0..1]
		if val > 0 {
			val = (val - zeroTo) / (1 - zeroTo)
		} else if val < 0 {
			val = (zeroFrom - val) / (-1 - zeroFrom)
		}
	}
	// Guard against coordinate wobble outside the unit range, the actuators
	// reject out-of-range commands instead of clamping them
	if val > 1 {
		val = 1
	} else if val < -1 {
		val = -1
	}
	return val
}
