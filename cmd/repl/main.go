package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/chzyer/readline"
)

const (
	Version = "1.0.0"
	Build   = "headless"
)

func main() {
	var (
		help    = flag.Bool("help", false, "Show help information")
		version = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *version {
		fmt.Printf("strategy-repl v%s (build %s)\n", Version, Build)
		return
	}

	if *help || len(flag.Args()) == 0 {
		showHelp()
		return
	}

	fixturePath := flag.Args()[0]

	cli, err := NewCLI(fixturePath)
	if err != nil {
		log.Fatalf("failed to load fixture: %v", err)
	}
	defer cli.Close()

	fmt.Printf("strategy-repl - fixture %s loaded\n", fixturePath)
	fmt.Println("Type 'help' for available commands, 'quit' to exit")

	if len(flag.Args()) > 1 {
		for _, cmd := range flag.Args()[1:] {
			fmt.Printf("> %s\n", cmd)
			result := cli.ExecuteCommand(cmd)
			if result == "quit" {
				return
			}
			fmt.Println(result)
		}
	}

	startREPL(cli)
}

func showHelp() {
	fmt.Printf("strategy-repl v%s - step a fixture through the decision engine\n\n", Version)

	fmt.Println("USAGE:")
	fmt.Println("  strategy-repl <fixture.json> [commands...]")
	fmt.Println()

	fmt.Println("ARGUMENTS:")
	fmt.Println("  fixture.json         Path to a captured fixture")
	fmt.Println("  commands             Optional commands to execute before entering the REPL")
	fmt.Println()

	fmt.Println("OPTIONS:")
	fmt.Println("  -help                Show this help")
	fmt.Println("  -version             Show version information")
	fmt.Println()

	fmt.Println(helpText())
	fmt.Println()

	fmt.Println("EXAMPLES:")
	fmt.Println("  strategy-repl match.json")
	fmt.Println("  strategy-repl match.json step step status")
}

func startREPL(cli *CLI) {
	for {
		line, err := cli.readline.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			} else if err == io.EOF {
				fmt.Println("\nGoodbye!")
				break
			}
			log.Printf("error reading input: %v", err)
			break
		}

		command := strings.TrimSpace(line)
		if command == "" {
			continue
		}

		result := cli.ExecuteCommand(command)
		if result == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		fmt.Println(result)
		fmt.Println()
	}
}
