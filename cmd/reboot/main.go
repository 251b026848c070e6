// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// reboot writes to the GhostLab42 Reboot 4 and 6 digit displays.
//
// The sim transport runs against emulated chips and draws the displays on
// the terminal, and optionally to a PNG file.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/GermanBionicSystems/reboot/d2r2i2c"
	"github.com/GermanBionicSystems/reboot/is31fl3730/is31fl3730sim"
	"github.com/GermanBionicSystems/reboot/reboot"
	"github.com/jonboulle/clockwork"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/natefinch/lumberjack.v2"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var (
	app        = kingpin.New("reboot", "Drives the Reboot 4 and 6 digit displays.")
	configFile = app.Flag("config", "Path to yaml config file.").Short('c').String()
	transport  = app.Flag("transport", "Bus transport: periph, d2r2 or sim.").Short('t').String()
	busName    = app.Flag("bus", "periph I²C bus name.").String()
	busNumber  = app.Flag("bus-number", "N in /dev/i2c-N for the d2r2 transport.").Int()
	logFile    = app.Flag("log-file", "Log to this file instead of stderr.").String()
	pngFile    = app.Flag("png", "With the sim transport, also draw the displays to this PNG file.").String()

	writeCmd    = app.Command("write", "Show text on a display.")
	writeDigits = writeCmd.Arg("digits", "4 for the 4 digit display, anything else for the 6 digit one.").Required().Int()
	writeText   = writeCmd.Arg("text", "Text to show. Only digits have a glyph.").Required().String()

	randomCmd    = app.Command("random", "Show a random number on a display.")
	randomDigits = randomCmd.Arg("digits", "4 for the 4 digit display, anything else for the 6 digit one.").Required().Int()

	resetCmd    = app.Command("reset", "Reset a display.")
	resetDigits = resetCmd.Arg("digits", "4 for the 4 digit display, anything else for the 6 digit one.").Required().Int()

	brightnessCmd     = app.Command("brightness", "Set the brightness of a display.")
	brightnessDigits  = brightnessCmd.Arg("digits", "4 for the 4 digit display, anything else for the 6 digit one.").Required().Int()
	brightnessPercent = brightnessCmd.Arg("percent", "Brightness, 0 to 100.").Required().Int()

	demoCmd      = app.Command("demo", "Show random numbers on both displays.")
	demoInterval = demoCmd.Flag("interval", "Time between numbers.").Default("1s").Duration()
	demoCount    = demoCmd.Flag("count", "Numbers to show, 0 to run until interrupted.").Default("0").Int()

	serveCmd    = app.Command("serve", "Serve the HTTP control API.")
	serveListen = serveCmd.Flag("listen", "Address to listen on.").String()
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "reboot: %s.\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so the log file is closed.
func run(args []string) error {
	cmd, err := app.Parse(args)
	if err != nil {
		return err
	}
	config, err := NewConfig(*configFile)
	if err != nil {
		return fmt.Errorf("error parsing config file: %w", err)
	}
	applyFlags(config)
	if err = config.validate(); err != nil {
		return err
	}
	if config.LogFile != "" {
		l := &lumberjack.Logger{Filename: config.LogFile, MaxSize: 10, MaxBackups: 3, MaxAge: 28}
		defer l.Close()
		log.SetOutput(l)
		defer log.SetOutput(os.Stderr)
	}
	if err = mainImpl(cmd, config); err != nil {
		log.Print(err)
		return err
	}
	return nil
}

// applyFlags overrides config with the flags given on the command line.
func applyFlags(config *Config) {
	if *transport != "" {
		config.Transport = *transport
	}
	if *busName != "" {
		config.Bus = *busName
	}
	if *busNumber != 0 {
		config.BusNumber = *busNumber
	}
	if *logFile != "" {
		config.LogFile = *logFile
	}
	if *serveListen != "" {
		config.Listen = *serveListen
	}
}

// openBus returns the bus selected by config. sim is set for the sim
// transport.
func openBus(config *Config) (bus i2c.BusCloser, sim *is31fl3730sim.Bus, err error) {
	switch config.Transport {
	case transportSim:
		sim = is31fl3730sim.NewBus()
		for _, id := range []reboot.Identity{reboot.FourDigit, reboot.SixDigit} {
			sim.Add(id.Addr(), id.Digits())
		}
		return sim, sim, nil
	case transportD2R2:
		return d2r2i2c.New(config.BusNumber), nil, nil
	case transportPeriph:
		if _, err = host.Init(); err != nil {
			return nil, nil, err
		}
		bus, err = i2creg.Open(config.Bus)
		return bus, nil, err
	default:
		return nil, nil, fmt.Errorf("unknown transport %q", config.Transport)
	}
}

func mainImpl(cmd string, config *Config) error {
	bus, sim, err := openBus(config)
	if err != nil {
		return err
	}
	defer bus.Close()
	log.Printf("using %s", bus)

	opts := reboot.Opts{SafetyRetries: config.SafetyRetries}
	if sim != nil {
		// Draw every demo round, not only the last one.
		opts.DemoRound = func(int) {
			if err := show(sim); err != nil {
				log.Print(err)
			}
		}
	}
	board, err := reboot.New(bus, &opts)
	if err != nil {
		return err
	}
	if config.Brightness != nil {
		if err = errors.Join(board.SetBrightness(4, *config.Brightness), board.SetBrightness(6, *config.Brightness)); err != nil {
			return err
		}
	}

	switch cmd {
	case writeCmd.FullCommand():
		err = board.WriteText(*writeDigits, *writeText)
	case randomCmd.FullCommand():
		err = board.WriteRandom(*randomDigits)
	case resetCmd.FullCommand():
		err = board.ResetDisplay(*resetDigits)
	case brightnessCmd.FullCommand():
		err = board.SetBrightness(*brightnessDigits, *brightnessPercent)
	case demoCmd.FullCommand():
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return board.Demo(ctx, clockwork.NewRealClock(), *demoInterval, *demoCount)
	case serveCmd.FullCommand():
		return serve(board, sim, config.Listen)
	}
	if err != nil {
		return err
	}
	return show(sim)
}

// serve runs the HTTP API until interrupted.
func serve(board *reboot.Board, sim *is31fl3730sim.Bus, addr string) error {
	s := &server{board: board}
	if sim != nil {
		s.updated = func() {
			if err := show(sim); err != nil {
				log.Print(err)
			}
		}
	}
	srv := &http.Server{Addr: addr, Handler: newRouter(s)}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()
	log.Printf("listening on %s", addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// show draws the emulated displays. It does nothing for real hardware.
func show(sim *is31fl3730sim.Bus) error {
	if sim == nil {
		return nil
	}
	chips := sim.Chips()
	term := is31fl3730sim.NewTerminal(&is31fl3730sim.DefaultTerminalOpts)
	if err := term.Render(chips...); err != nil {
		return err
	}
	if *pngFile != "" {
		return is31fl3730sim.SavePNG(*pngFile, 2, chips...)
	}
	return nil
}
