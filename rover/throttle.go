package rover

import (
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	MinThrottle = -1
	MaxThrottle = 1
)

// ThrottleConfig holds the pulse calibration of one ESC. MinPulse and
// MaxPulse may be on either side of ZeroPulse depending on the ESC wiring.
type ThrottleConfig struct {
	MinPulse  int
	MaxPulse  int
	ZeroPulse int

	// Time to wait after the arming pulse before the ESC accepts commands.
	Settle time.Duration
}

// PWMThrottle converts a normalized throttle into an ESC pulse width. The
// mapping is piecewise linear: forward throttle maps [0; 1] to
// [ZeroPulse; MaxPulse], everything else maps [-1; 0] to [MinPulse; ZeroPulse].
// The two segments meet at ZeroPulse.
type PWMThrottle struct {
	Driver  PulseSetter
	Channel byte
	Config  ThrottleConfig
}

// NewPWMThrottle arms the ESC by sending the zero pulse and blocking for the
// configured settle time. A failed arming pulse is a construction failure and
// is returned, the vehicle must not drive with an unarmed ESC.
func NewPWMThrottle(driver PulseSetter, channel byte, config ThrottleConfig) (*PWMThrottle, error) {
	t := &PWMThrottle{
		Driver:  driver,
		Channel: channel,
		Config:  config,
	}
	log.Printf("Calibrating ESC on channel %v (zero pulse %v, settling %v)...", channel, config.ZeroPulse, config.Settle)
	if err := driver.SetPulse(channel, config.ZeroPulse); err != nil {
		return nil, err
	}
	time.Sleep(config.Settle)
	return t, nil
}

// Run drives at the given throttle (-1 full reverse, 1 full forward). A
// transport failure drops the pulse for this tick, only validation errors are
// returned.
func (t *PWMThrottle) Run(throttle float64) error {
	if err := validateCommand("throttle", throttle); err != nil {
		return err
	}
	var pulse int
	if throttle > 0 {
		pulse = round(MapRange(throttle, 0, MaxThrottle, float64(t.Config.ZeroPulse), float64(t.Config.MaxPulse)))
	} else {
		pulse = round(MapRange(throttle, MinThrottle, 0, float64(t.Config.MinPulse), float64(t.Config.ZeroPulse)))
	}
	if err := t.Driver.SetPulse(t.Channel, pulse); err != nil {
		log.Errorf("Dropping throttle pulse %v (check wires to motor board): %v", pulse, err)
	}
	return nil
}

// Shutdown stops the vehicle.
func (t *PWMThrottle) Shutdown() error {
	return t.Run(0)
}
