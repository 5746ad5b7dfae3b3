package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/elfwire/elfwire/elf"
	"github.com/elfwire/elfwire/loader"
	"github.com/elfwire/elfwire/render"
)

type target struct {
	file    *elf.File
	content []byte
}

type command struct {
	name string
	run  func(*target, []string) error
}

var (
	commands = []command{
		{
			name: "header",
			run: func(t *target, args []string) error {
				return render.WriteFileHeader(os.Stdout, t.file)
			},
		},
		{
			name: "segments",
			run: func(t *target, args []string) error {
				return render.WriteProgramHeaders(os.Stdout, t.file)
			},
		},
		{
			name: "sections",
			run: func(t *target, args []string) error {
				return render.WriteSectionHeaders(os.Stdout, t.file)
			},
		},
		{
			name: "disasm",
			run:  disasm,
		},
	}
)

func disasm(t *target, args []string) error {
	numInstructions := 10
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid instruction count %q: %w", args[0], err)
		}
		numInstructions = parsed
	}

	instructions, err := render.DisassembleEntry(
		t.file,
		t.content,
		numInstructions)
	if err != nil {
		return err
	}

	for _, inst := range instructions {
		fmt.Println(inst)
	}

	return nil
}

func main() {
	format := flag.String("format", "text", "output format (text or yaml)")
	numDisasm := flag.Int(
		"disasm",
		0,
		"disassemble up to n instructions at the entry point")
	interactive := flag.Bool("i", false, "interactive inspect loop")

	flag.Parse()
	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: readelf [options] [file]")
		flag.PrintDefaults()
		os.Exit(64)
	}

	content, release, err := loader.Load(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() {
		err := release()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	file, err := elf.Decode(content)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	t := &target{
		file:    file,
		content: content,
	}

	if *interactive {
		err = runInteractive(t)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	switch *format {
	case "text":
		err = render.WriteAll(os.Stdout, file)
	case "yaml":
		err = render.WriteYAML(os.Stdout, file)
	default:
		err = fmt.Errorf("unsupported output format: %s", *format)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if *numDisasm > 0 {
		instructions, err := render.DisassembleEntry(
			file,
			content,
			*numDisasm)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Println("\nEntry point disassembly:")
		for _, inst := range instructions {
			fmt.Println(inst)
		}
	}
}

func runInteractive(t *target) error {
	rl, err := readline.New("readelf > ")
	if err != nil {
		return err
	}
	defer rl.Close()

	lastLine := ""
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == io.EOF || err == readline.ErrInterrupt {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			line = lastLine
		}
		lastLine = line

		if line == "" {
			continue
		}

		args := strings.Split(line, " ")
		if args[0] == "quit" || args[0] == "exit" {
			return nil
		}

		found := false
		for _, cmd := range commands {
			if strings.HasPrefix(cmd.name, args[0]) {
				found = true
				err := cmd.run(t, args[1:])
				if err != nil {
					fmt.Println(err)
				}
			}
		}

		if !found {
			fmt.Println("invalid command:", args[0])
		}
	}
}
