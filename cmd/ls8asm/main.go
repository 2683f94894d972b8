// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ezrec/ls8/cpu"
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
	var output string
	var verbose bool

	flag.StringVar(&output, "o", "-", "Output .ls8 file")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	log.Logger = zerolog.New(console(os.Stderr)).Level(level)

	if flag.NArg() != 1 {
		log.Fatal().Msgf("usage: %v [-o out.ls8] [-v] <source.asm>", os.Args[0])
	}

	source := flag.Arg(0)

	inf, err := os.Open(source)
	if err != nil {
		log.Fatal().Err(err).Msg(source)
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatal().Err(err).Msg(source)
	}

	text := prog.Text()

	if output == "-" {
		_, err = os.Stdout.WriteString(text)
	} else {
		err = os.WriteFile(output, []byte(text), 0o644)
	}
	if err != nil {
		log.Fatal().Err(err).Msg(output)
	}
}
