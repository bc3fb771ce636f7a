package dcmotor

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

func TestRunMotorEncoding(t *testing.T) {
	a := assert.New(t)
	b := new(fakeBus)
	driver := &Driver{Bus: b, Addr: DefaultAddress}

	a.NoError(driver.Run(MotorA, 100, true))
	a.NoError(driver.Run(MotorB, 50, false))
	a.NoError(driver.Run(MotorA, 0, true))
	a.Equal([][]byte{
		{Command_SetMotorA, DirClockwise, 255},
		{Command_SetMotorB, DirAntiClockwise, 128},
		{Command_SetMotorA, DirStop, 0},
	}, b.writes)
	a.Equal([]byte{DefaultAddress, DefaultAddress, DefaultAddress}, b.addrs)
}

func TestRunMotorRejectsInvalidSpeed(t *testing.T) {
	a := assert.New(t)
	driver := &Driver{Bus: new(fakeBus), Addr: DefaultAddress}
	a.Error(driver.Run(MotorA, -1, true))
	a.Error(driver.Run(MotorA, 100.5, true))
}

func TestInitCoercesInvalidFrequency(t *testing.T) {
	a := assert.New(t)
	b := new(fakeBus)
	driver := &Driver{Bus: b, Addr: DefaultAddress}

	a.NoError(driver.Init(0x42))
	a.Equal([]byte{Command_SetPWMFrequency, PWM_490Hz, emptyParameter}, b.writes[0])

	a.NoError(driver.Init(PWM_3921Hz))
	a.Equal([]byte{Command_SetPWMFrequency, PWM_3921Hz, emptyParameter}, b.writes[1])
}

func TestStop(t *testing.T) {
	a := assert.New(t)
	b := new(fakeBus)
	driver := &Driver{Bus: b, Addr: DefaultAddress}

	a.NoError(driver.Stop())
	a.Equal([][]byte{
		{Command_SetMotorSpeed, 0, 0},
		{Command_SetMotorDir, DirStop, emptyParameter},
	}, b.writes)
}

func TestBusErrorPropagates(t *testing.T) {
	driver := &Driver{Bus: &fakeBus{err: fmt.Errorf("bus glitch")}, Addr: DefaultAddress}
	assert.Error(t, driver.Run(MotorA, 10, true))
}
