package rover

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"
)

// PulseSetter is the PWM driver capability used by the pulse-based actuators.
// The actuators hold a reference to the driver but do not own its lifecycle.
type PulseSetter interface {
	SetPulse(channel byte, pulse int) error
}

const (
	LeftAngle  = -1
	RightAngle = 1
)

// PWMSteering converts a normalized steering angle into a servo pulse width.
// LeftPulse and RightPulse depend on the servo wiring and may be in either
// order, the linear mapping handles both. Stateless apart from the held
// configuration, not safe for concurrent use.
type PWMSteering struct {
	Driver  PulseSetter
	Channel byte

	LeftPulse  int
	RightPulse int
}

func NewPWMSteering(driver PulseSetter, channel byte, leftPulse, rightPulse int) (*PWMSteering, error) {
	if leftPulse == rightPulse {
		return nil, fmt.Errorf("Steering pulse endpoints must be distinct (both are %v)", leftPulse)
	}
	return &PWMSteering{
		Driver:     driver,
		Channel:    channel,
		LeftPulse:  leftPulse,
		RightPulse: rightPulse,
	}, nil
}

// Run steers to the given angle (-1 full left, 1 full right). A transport
// failure drops the pulse for this tick and keeps the servo at its last
// physical position, only validation errors are returned.
func (s *PWMSteering) Run(angle float64) error {
	if err := validateCommand("steering", angle); err != nil {
		return err
	}
	pulse := round(MapRange(angle, LeftAngle, RightAngle, float64(s.LeftPulse), float64(s.RightPulse)))
	if err := s.Driver.SetPulse(s.Channel, pulse); err != nil {
		log.Errorf("Dropping steering pulse %v (check wires to motor board): %v", pulse, err)
	}
	return nil
}

// Shutdown returns the steering to center.
func (s *PWMSteering) Shutdown() error {
	return s.Run(0)
}

func round(f float64) int {
	return int(math.Floor(f + .5))
}
