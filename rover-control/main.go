package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/antongulenko/golib"
	"github.com/antongulenko/rover/rover"
	log "github.com/sirupsen/logrus"
	"github.com/splace/joysticks"
)

var (
	r = rover.DefaultRover

	// One stick drives the vehicle: X is steering, Y is throttle
	driveAxis = JoystickAxis{
		AxisNumber:      1,
		ZeroFrom:        -0.1,
		ZeroTo:          0.1,
		ScaleZeroFromTo: true,
		InvertY:         true, // Pushing the stick forward drives forward
	}
)

func main() {
	var index int
	flag.IntVar(&index, "js", 1, "Joystick device index")
	driveAxis.RegisterFlags("drive", "steering (X) and throttle (Y)")
	r.RegisterFlags()
	golib.RegisterFlags(golib.FlagsAll)
	flag.Parse()
	golib.ConfigureLogging()

	// "Clean" shutdown with Ctrl-C signal
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	var cleanupOnce sync.Once
	cleanup := func() {
		cleanupOnce.Do(r.Cleanup)
	}
	defer cleanup()
	go func() {
		fmt.Println("Received signal", <-c)
		cleanup()
		os.Exit(0)
	}()

	golib.Checkerr(r.Setup())
	vehicle := r.Vehicle()

	js := joysticks.Connect(index)
	if js == nil {
		log.Fatalln("Failed to open joystick with index", index)
	}
	log.Printf("Opened device index %v (%v buttons, %v axes, %v events)",
		index, len(js.Buttons), len(js.HatAxes), len(js.Events))

	driveAxis.Notify(js, func(x, y float32) {
		if err := vehicle.Run(float64(x), float64(y)); err != nil {
			log.Errorln("Dropping drive command:", err)
		}
	})
	js.ParcelOutEvents() // Does not return
}
