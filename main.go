package main

import (
	"github.com/cgddrd/curator/internal/cmd"
)

func main() {
	cmd.Execute()
}
