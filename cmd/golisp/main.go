package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clarete/golisp"
)

type args struct {
	inputPath   *string
	interactive *bool
	gcEvery     *int
}

func readArgs() *args {
	a := &args{
		inputPath:   flag.String("input", "", "Path to a source file to load and evaluate"),
		interactive: flag.Bool("interactive", false, "Drops into a REPL shell"),
		gcEvery:     flag.Int("gc-every", 0, "Collect garbage after every N lines of REPL input (0 disables)"),
	}
	flag.Parse()
	return a
}

func main() {
	a := readArgs()
	rt := golisp.NewRuntime()

	if *a.inputPath != "" {
		if _, err := rt.LoadFile(*a.inputPath); err != nil {
			log.Fatalf("can't evaluate %s: %s", *a.inputPath, err.Error())
		}
		if !*a.interactive {
			return
		}
	}

	if *a.interactive || *a.inputPath == "" {
		repl(rt, *a.gcEvery)
		return
	}
}

func repl(rt *golisp.Runtime, gcEvery int) {
	reader := bufio.NewReader(os.Stdin)
	forms := 0

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			fmt.Println("")
			return
		}

		result, err := rt.LoadSource([]byte(line))
		if err != nil {
			fmt.Println("ERROR: " + err.Error())
		} else if result != nil {
			fmt.Println(golisp.Sprint(result))
		}

		forms++
		if gcEvery > 0 && forms%gcEvery == 0 {
			rt.Collect()
		}
	}
}
