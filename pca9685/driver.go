package pca9685

import (
	"time"

	"github.com/antongulenko/rover/bus"
	log "github.com/sirupsen/logrus"
)

const oscillatorStartup = time.Millisecond

// Driver controls one PCA9685 board on an I2C bus. It owns no state beyond
// the configuration: every SetPulse call is translated directly into a
// register write.
type Driver struct {
	Bus  bus.Bus
	Addr byte

	// PWM frequency in Hz. Zero keeps the prescaler at its power-on default.
	Freq float64
}

// Init programs MODE1 and the frequency prescaler. The prescaler register is
// only writable in sleep mode, so the oscillator is stopped and restarted.
func (d *Driver) Init() error {
	log.Printf("Initializing PWM driver at %#02x (%v Hz)...", d.Addr, d.Freq)
	mode := MODE1_ALLCALL | MODE1_AI
	if d.Freq != 0 {
		if err := d.Bus.I2cWrite(d.Addr, MODE1, mode|MODE1_SLEEP); err != nil {
			return err
		}
		if err := d.Bus.I2cWrite(d.Addr, PRE_SCALE, Prescaler(d.Freq)); err != nil {
			return err
		}
	}
	if err := d.Bus.I2cWrite(d.Addr, MODE1, mode); err != nil {
		return err
	}
	time.Sleep(oscillatorStartup)
	return d.Bus.I2cWrite(d.Addr, MODE1, mode|MODE1_RESTART)
}

// SetPulse sets the pulse width of one PWM output in timer ticks.
func (d *Driver) SetPulse(channel byte, pulse int) error {
	onL, onH, offL, offH := Pulse(pulse)
	return d.Bus.I2cWrite(d.Addr, LedReg(channel), onL, onH, offL, offH)
}

// Shutdown forces all outputs off.
func (d *Driver) Shutdown() error {
	onL, onH, offL, offH := FullOffValues()
	return d.Bus.I2cWrite(d.Addr, ALL_LEDS, onL, onH, offL, offH)
}
