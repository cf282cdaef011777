// Command jackc compiles Jack source files into Nand2Tetris VM code.
package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/libklein/jackc/internal/cli"
)

func main() {
	c := cli.Cmd{}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
