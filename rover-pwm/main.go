// Calibration tool: applies single raw actuation values (PWM pulses or motor
// speeds), holds them for a while and shuts the outputs down again.
package main

import (
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/antongulenko/golib"
	"github.com/antongulenko/rover/bus"
	"github.com/antongulenko/rover/dcmotor"
	"github.com/antongulenko/rover/pca9685"
	log "github.com/sirupsen/logrus"
)

type commandFunc func(b bus.Bus) error

var (
	busName = ""
	dummy   = false
	command = "pulse"
	hold    = 3 * time.Second

	pwmAddr = uint(pca9685.ADDRESS)
	pwmFreq = float64(60)
	channel = uint(0)
	pulse   = 0

	motorAddr = uint(dcmotor.DefaultAddress)
	motor     = 0
	speed     = float64(50)
	ccw       = false

	commands = map[string]commandFunc{
		"none":  func(bus.Bus) error { return nil },
		"pulse": setPulse,
		"motor": runMotor,
	}
)

func main() {
	flag.StringVar(&busName, "bus", busName, "I2C bus to open (empty for the first available bus)")
	flag.BoolVar(&dummy, "dummy", dummy, "Do not open real I2C peripherals, only log commands")
	flag.StringVar(&command, "c", command, fmt.Sprintf("Command to execute, one of: %v", commandNames()))
	flag.DurationVar(&hold, "hold", hold, "How long to hold the values before shutting the outputs down")
	flag.UintVar(&pwmAddr, "pwm-addr", pwmAddr, "I2C address of the PWM board")
	flag.Float64Var(&pwmFreq, "pwm-freq", pwmFreq, "PWM frequency (Hz) of the PWM board")
	flag.UintVar(&channel, "channel", channel, "PWM channel for the pulse command")
	flag.IntVar(&pulse, "pulse", pulse, "Raw pulse width in timer ticks for the pulse command")
	flag.UintVar(&motorAddr, "motor-addr", motorAddr, "I2C address of the motor board")
	flag.IntVar(&motor, "motor", motor, "Motor output (0 or 1) for the motor command")
	flag.Float64Var(&speed, "speed", speed, "Motor speed percent (0..100) for the motor command")
	flag.BoolVar(&ccw, "ccw", ccw, "Run the motor counter-clockwise")
	golib.RegisterLogFlags()
	flag.Parse()
	golib.ConfigureLogging()
	golib.Checkerr(doMain())
}

func doMain() error {
	commandFunc, ok := commands[command]
	if !ok {
		return fmt.Errorf("Unknown command %v, available commands: %v", command, commandNames())
	}

	var b bus.Bus
	if dummy {
		log.Println("Dummy mode: not opening I2C peripherals")
		b = new(bus.Dummy)
	} else {
		opened, err := bus.Open(busName)
		if err != nil {
			return err
		}
		b = opened
	}
	err := commandFunc(b)
	golib.Printerr(b.Close())
	return err
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func setPulse(b bus.Bus) error {
	driver := &pca9685.Driver{Bus: b, Addr: byte(pwmAddr), Freq: pwmFreq}
	if err := driver.Init(); err != nil {
		return err
	}
	log.Printf("Setting channel %v to pulse %v for %v...", channel, pulse, hold)
	if err := driver.SetPulse(byte(channel), pulse); err != nil {
		return err
	}
	time.Sleep(hold)
	return driver.Shutdown()
}

func runMotor(b bus.Bus) error {
	driver := &dcmotor.Driver{Bus: b, Addr: byte(motorAddr)}
	if err := driver.Init(dcmotor.PWM_3921Hz); err != nil {
		return err
	}
	log.Printf("Running motor %v at %v%% (ccw: %v) for %v...", motor, speed, ccw, hold)
	if err := driver.Run(dcmotor.Motor(motor), speed, !ccw); err != nil {
		return err
	}
	time.Sleep(hold)
	return driver.Stop()
}
