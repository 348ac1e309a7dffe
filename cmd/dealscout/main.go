// The main package for the dealscout executable.
package main

import (
	"github.com/dealscout/alcopa-crawler/cmd"
)

func main() {
	cmd.Execute()
}
