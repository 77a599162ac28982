package main

import (
	"github.com/vinyl-library/vinyl-library-api/cmd"
	_ "github.com/vinyl-library/vinyl-library-api/cmd/cli"
	_ "github.com/vinyl-library/vinyl-library-api/cmd/server"
)

func main() {
	cmd.Execute()
}
