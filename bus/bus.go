package bus

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/host"
)

// Bus is the write-only I2C capability required by the motor drivers. The
// underlying bus is a shared, non-reentrant resource: callers must serialize
// access themselves (one control loop per vehicle).
type Bus interface {
	I2cWrite(addr byte, data ...byte) error
	Close() error
}

// IOError wraps a transport failure during a bus write. The PWM actuators
// treat it as a degradable condition (log and drop the tick), everything else
// propagates it.
type IOError struct {
	Addr byte
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("I2C write to %#02x failed: %v", e.Addr, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Open initializes the periph.io host drivers and opens the named I2C bus.
// An empty name selects the first available bus.
func Open(name string) (Bus, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	log.Printf("Opened I2C bus %v", b)
	return &periphBus{bus: b}, nil
}

type periphBus struct {
	bus i2c.BusCloser
}

func (b *periphBus) I2cWrite(addr byte, data ...byte) error {
	if err := b.bus.Tx(uint16(addr), data, nil); err != nil {
		return &IOError{Addr: addr, Err: err}
	}
	return nil
}

func (b *periphBus) Close() error {
	return b.bus.Close()
}

// Dummy logs all writes instead of touching hardware. FailWrites makes every
// write return an IOError, for exercising the degraded path without a flaky
// bus at hand.
type Dummy struct {
	FailWrites bool
}

func (d *Dummy) I2cWrite(addr byte, data ...byte) error {
	if d.FailWrites {
		return &IOError{Addr: addr, Err: fmt.Errorf("dummy bus failure")}
	}
	log.Debugf("Dummy I2C write to %#02x: %#02x", addr, data)
	return nil
}

func (d *Dummy) Close() error {
	return nil
}
