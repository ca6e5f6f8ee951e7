package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	todocli "github.com/idilsaglam/wyw/internal/cli"
	"github.com/idilsaglam/wyw/internal/ui"
)

var version = "dev"

func main() {
	ctx := context.Background()

	err := todocli.New(version).Run(ctx, os.Args)
	if err == nil {
		return
	}

	code := 1
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		code = ec.ExitCode()
	}
	ui.Fail(os.Stderr, err.Error())
	fmt.Fprintln(os.Stderr)
	os.Exit(code)
}
