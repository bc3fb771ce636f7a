package pca9685

import (
	"fmt"
	"math"
)

const (
	MODE1 = byte(iota)
	MODE2

	// The I2C addresses are stored in the 7 MSBs. Addresses must be left-shifted once.
	SUBADR1
	SUBADR2
	SUBADR3
	ALLCALLADR

	// First register of the first PWM output. Every output occupies 4
	// consecutive registers (ON_L, ON_H, OFF_L, OFF_H).
	LED0
)

const (
	ALL_ON_L = byte(0xFA + iota)
	ALL_ON_H
	ALL_OFF_L
	ALL_OFF_H
	PRE_SCALE // Only settable in SLEEP mode. Default value: 0x30
	TEST_MODE

	ALL_LEDS = ALL_ON_L
)

// Default values all zero, except ALLCALL and SLEEP
const (
	MODE1_ALLCALL = byte(1 << iota) // 1: Respond to ALLCALL address
	MODE1_SUB3                      // 1: Respond to SUB3 address
	MODE1_SUB2                      // 1: Respond to SUB2 address
	MODE1_SUB1                      // 1: Respond to SUB1 address
	MODE1_SLEEP                     // 0: normal mode 1: oscillator off, low power mode
	MODE1_AI                        // 1: Register auto increment
	MODE1_EXTCLK                    // 1: use EXTCLK pin as clock source
	MODE1_RESTART                   // Write 1: wake up from SLEEP (write 0 no effect)
)

const (
	ADDRESS     = byte(0x40) // 0100 0000
	ADDRESS_MAX = byte(0x7F) // 0111 1111

	NUM_OUTPUTS     = 16
	BYTE_PER_OUTPUT = 4

	TIMER_MAX        = 4095
	TIMER_RESOLUTION = TIMER_MAX + 1

	FULL_ON_BIT  = 0x10 // bit 4 of LEDn_ON_H.
	FULL_OFF_BIT = 0x10 // bit 4 of LEDn_OFF_H. Takes precedence over the FULL_ON_BIT.

	FREQ_MIN          = 23.84185791
	FREQ_MAX          = 1525.87890625
	FREQ_MIN_PRESALE  = byte(0xFF)
	FREQ_MAX_PRESCALE = byte(0x03) // Minimum value asserted by hardware
	DEFAULT_PRESCALE  = byte(0x30) // Results in 200Hz with the internal oscillator

	INTERNAL_OSCILLATOR = 25000000 // 25 MHz
)

// LedReg returns the first register of the given PWM output.
func LedReg(output byte) byte {
	if output >= NUM_OUTPUTS {
		panic(fmt.Sprintf("Invalid PWM output %v (have %v)", output, NUM_OUTPUTS))
	}
	return LED0 + output*BYTE_PER_OUTPUT
}

// Pulse encodes a raw pulse width in timer ticks into the 4 register values of
// a PWM output. The on-edge is fixed at the start of the cycle, the off-edge
// fires after pulse ticks. pulse must be in [0; TIMER_RESOLUTION].
func Pulse(pulse int) (onL, onH, offL, offH byte) {
	if pulse < 0 || pulse > TIMER_RESOLUTION {
		panic(fmt.Sprintf("Invalid pulse width %v (must be 0..%v)", pulse, TIMER_RESOLUTION))
	}
	return 0, 0, byte(pulse), byte(pulse >> 8)
}

// PulseInto writes the register values of Pulse into target, which must be
// suitable to send to an LEDn or ALL_LEDS address.
func PulseInto(pulse int, target []byte) {
	target[0], target[1], target[2], target[3] = Pulse(pulse)
}

func FullOffValues() (byte, byte, byte, byte) {
	return 0, 0, 0, FULL_OFF_BIT
}

func PrescalerExternalClock(externalOscillator float64, frequency float64) byte {
	v := externalOscillator / (float64(TIMER_RESOLUTION) * frequency)
	return byte(round(v)) - 1
}

func Prescaler(frequency float64) byte {
	return PrescalerExternalClock(INTERNAL_OSCILLATOR, frequency)
}

func round(f float64) int {
	return int(math.Floor(f + .5))
}
