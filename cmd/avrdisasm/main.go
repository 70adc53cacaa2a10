package main

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"avrdisasm"
	"avrdisasm/sources"

	"github.com/urfave/cli/v2"
)

func openInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(path)
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "" || path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func resolveFormat(fileType string, data []byte) (string, error) {
	switch fileType {
	case "":
		return sources.Detect(data)
	case "generic", "ihex", "srec", "binary", "ascii":
		if fileType == "srec" {
			return "srecord", nil
		}
		if fileType == "ascii" {
			return "asciihex", nil
		}
		return fileType, nil
	default:
		return "", fmt.Errorf("unknown file type %q", fileType)
	}
}

func disasmCmd(c *cli.Context) error {
	args := c.Args()
	path := args.First()

	data, err := openInput(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("byte source: could not read input: %v", err), 1)
	}

	format, err := resolveFormat(c.String("file-type"), data)
	if err != nil {
		return cli.Exit(fmt.Sprintf("byte source: %v", err), 1)
	}

	src, err := sources.Open(format, bytes.NewReader(data))
	if err != nil {
		return cli.Exit(fmt.Sprintf("byte source: %v", err), 1)
	}
	if err := src.Init(); err != nil {
		return cli.Exit(fmt.Sprintf("byte source: %v", err), 1)
	}
	defer src.Close()

	out, err := openOutput(c.String("out-file"))
	if err != nil {
		return cli.Exit(fmt.Sprintf("output sink: could not open %q: %v", c.String("out-file"), err), 1)
	}
	defer out.Close()

	flags := buildFlags(c)
	prefixes := avrdisasm.AVRASMPrefixes
	if c.Bool("objdump-operands") {
		prefixes = avrdisasm.ObjdumpPrefixes
	}

	labelPrefix := "A_"
	if c.IsSet("address-label") {
		flags |= avrdisasm.FlagAssembly
		if p := c.String("address-label"); p != "" {
			labelPrefix = p
		}
	}

	dec := avrdisasm.NewDecoder(src)
	printer := avrdisasm.NewPrinter(dec, out, flags, prefixes, labelPrefix, c.Bool("vector-comments"))

	if err := printer.Run(); err != nil {
		return cli.Exit(fmt.Sprintf("disassembly failed: %v", err), 1)
	}
	return nil
}

func buildFlags(c *cli.Context) avrdisasm.Flags {
	flags := avrdisasm.FlagAddresses | avrdisasm.FlagOpcodes | avrdisasm.FlagDestinationComment

	if c.Bool("no-addresses") {
		flags &^= avrdisasm.FlagAddresses
	}
	if c.Bool("no-opcodes") {
		flags &^= avrdisasm.FlagOpcodes
	}
	if c.Bool("no-destination-comments") {
		flags &^= avrdisasm.FlagDestinationComment
	}

	switch {
	case c.Bool("data-base-bin"):
		flags |= avrdisasm.FlagDataBin
	case c.Bool("data-base-dec"):
		flags |= avrdisasm.FlagDataDec
	default:
		flags |= avrdisasm.FlagDataHex
	}

	return flags
}

func main() {
	app := cli.NewApp()
	app.Name = "avrdisasm"
	app.Usage = "Disassembler for 8-bit AVR flash images"
	app.Version = "1.0.0"
	app.Action = disasmCmd
	app.ArgsUsage = "[path|-]"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "out-file",
			Aliases: []string{"o"},
			Value:   "-",
			Usage:   "output file, or - for stdout",
		},
		&cli.StringFlag{
			Name:    "file-type",
			Aliases: []string{"t"},
			Usage:   "generic|ihex|srec|binary|ascii (default: auto-detect)",
		},
		&cli.StringFlag{
			Name:    "address-label",
			Aliases: []string{"l"},
			Usage:   "enable assembly mode, with the given label prefix (default A_)",
		},
		&cli.BoolFlag{Name: "data-base-hex", Usage: "render immediate data operands in hex (default)"},
		&cli.BoolFlag{Name: "data-base-bin", Usage: "render immediate data operands in binary"},
		&cli.BoolFlag{Name: "data-base-dec", Usage: "render immediate data operands in decimal"},
		&cli.BoolFlag{Name: "no-addresses", Usage: "suppress the address column"},
		&cli.BoolFlag{Name: "no-opcodes", Usage: "suppress the opcode column"},
		&cli.BoolFlag{Name: "no-destination-comments", Usage: "suppress branch/call destination comments"},
		&cli.BoolFlag{Name: "vector-comments", Usage: "annotate jmp/call/rjmp/rcall targets with their interrupt vector name"},
		&cli.BoolFlag{Name: "objdump-operands", Usage: "use objdump's register/operand prefix conventions instead of AVRASM's"},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
