// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ezrec/ls8/emulator"
)

// console returns a log writer for out, colored only on a terminal.
func console(out *os.File) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:          out,
		NoColor:      !isatty.IsTerminal(out.Fd()),
		PartsExclude: []string{zerolog.TimestampFieldName},
	}
}

func main() {
	log.Logger = zerolog.New(console(os.Stderr)).Level(zerolog.InfoLevel)

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %v <program.ls8>\n", os.Args[0])
	}

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatal().Msgf("usage: %v <program.ls8>", os.Args[0])
	}

	path := flag.Arg(0)

	emu := emulator.NewEmulator()
	emu.Logger = log.Logger

	err := emu.LoadFile(path)
	if err != nil {
		log.Fatal().Err(err).Msgf("%v: load", path)
	}

	err = emu.Run()
	if err != nil {
		log.Fatal().Err(err).Msgf("%v: run", path)
	}
}
