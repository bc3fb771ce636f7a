package rover

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePulse struct {
	channels []byte
	pulses   []int
	err      error
}

func (f *fakePulse) SetPulse(channel byte, pulse int) error {
	if f.err != nil {
		return f.err
	}
	f.channels = append(f.channels, channel)
	f.pulses = append(f.pulses, pulse)
	return nil
}

func (f *fakePulse) lastPulse() int {
	return f.pulses[len(f.pulses)-1]
}

func TestSteeringPulses(t *testing.T) {
	a := assert.New(t)
	driver := new(fakePulse)
	steering, err := NewPWMSteering(driver, 0, 290, 490)
	a.NoError(err)

	a.NoError(steering.Run(-1))
	a.Equal(290, driver.lastPulse())
	a.NoError(steering.Run(1))
	a.Equal(490, driver.lastPulse())
	a.NoError(steering.Run(0))
	a.Equal(390, driver.lastPulse())
	a.Equal([]byte{0, 0, 0}, driver.channels)
}

func TestSteeringReversedEndpoints(t *testing.T) {
	a := assert.New(t)
	driver := new(fakePulse)
	steering, err := NewPWMSteering(driver, 2, 490, 290)
	a.NoError(err)

	a.NoError(steering.Run(-1))
	a.Equal(490, driver.lastPulse())
	a.NoError(steering.Run(1))
	a.Equal(290, driver.lastPulse())
	a.NoError(steering.Run(0))
	a.Equal(390, driver.lastPulse())
}

func TestSteeringRejectsEqualEndpoints(t *testing.T) {
	_, err := NewPWMSteering(new(fakePulse), 0, 350, 350)
	assert.Error(t, err)
}

func TestSteeringRejectsInvalidAngle(t *testing.T) {
	a := assert.New(t)
	driver := new(fakePulse)
	steering, err := NewPWMSteering(driver, 0, 290, 490)
	a.NoError(err)

	var invalid *InvalidCommandError
	a.True(errors.As(steering.Run(1.5), &invalid))
	a.True(errors.As(steering.Run(-1.01), &invalid))
	a.Empty(driver.pulses)
}

func TestSteeringShutdownCenters(t *testing.T) {
	a := assert.New(t)
	driver := new(fakePulse)
	steering, err := NewPWMSteering(driver, 0, 290, 490)
	a.NoError(err)

	a.NoError(steering.Shutdown())
	a.Equal(390, driver.lastPulse())
}

func TestSteeringDegradesOnBusError(t *testing.T) {
	a := assert.New(t)
	driver := new(fakePulse)
	steering, err := NewPWMSteering(driver, 0, 290, 490)
	a.NoError(err)

	driver.err = fmt.Errorf("bus glitch")
	a.NoError(steering.Run(0.5), "transport failure must not escape Run")
	a.Empty(driver.pulses)
}
