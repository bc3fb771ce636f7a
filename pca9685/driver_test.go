package pca9685

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeBus struct {
	addrs  []byte
	writes [][]byte
	err    error
}

func (f *fakeBus) I2cWrite(addr byte, data ...byte) error {
	if f.err != nil {
		return f.err
	}
	f.addrs = append(f.addrs, addr)
	f.writes = append(f.writes, data)
	return nil
}

func (f *fakeBus) Close() error {
	return nil
}

func TestDriverSetPulse(t *testing.T) {
	a := assert.New(t)
	b := new(fakeBus)
	driver := &Driver{Bus: b, Addr: ADDRESS}

	a.NoError(driver.SetPulse(0, 350))
	a.NoError(driver.SetPulse(1, 0x4cc))
	a.Equal([]byte{ADDRESS, ADDRESS}, b.addrs)
	a.Equal([]byte{LED0, 0x00, 0x00, 0x5e, 0x01}, b.writes[0])
	a.Equal([]byte{LED0 + 4, 0x00, 0x00, 0xcc, 0x04}, b.writes[1])
}

func TestDriverInitProgramsFrequency(t *testing.T) {
	a := assert.New(t)
	b := new(fakeBus)
	driver := &Driver{Bus: b, Addr: ADDRESS, Freq: 200}

	a.NoError(driver.Init())
	mode := MODE1_ALLCALL | MODE1_AI
	a.Equal([][]byte{
		{MODE1, mode | MODE1_SLEEP},
		{PRE_SCALE, 0x1e},
		{MODE1, mode},
		{MODE1, mode | MODE1_RESTART},
	}, b.writes)
}

func TestDriverInitDefaultFrequency(t *testing.T) {
	a := assert.New(t)
	b := new(fakeBus)
	driver := &Driver{Bus: b, Addr: ADDRESS}

	a.NoError(driver.Init())
	a.Len(b.writes, 2, "no prescaler writes without a configured frequency")
}

func TestDriverShutdown(t *testing.T) {
	a := assert.New(t)
	b := new(fakeBus)
	driver := &Driver{Bus: b, Addr: ADDRESS}

	a.NoError(driver.Shutdown())
	a.Equal([]byte{ALL_LEDS, 0x00, 0x00, 0x00, FULL_OFF_BIT}, b.writes[0])
}

func TestDriverPropagatesBusErrors(t *testing.T) {
	a := assert.New(t)
	b := &fakeBus{err: fmt.Errorf("bus glitch")}
	driver := &Driver{Bus: b, Addr: ADDRESS}

	a.Error(driver.Init())
	a.Error(driver.SetPulse(0, 100))
}
