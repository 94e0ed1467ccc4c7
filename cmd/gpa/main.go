package main

import (
	"context"
	"gpacalc/cmd/gpa/commands"
	"gpacalc/lib/serviceutil"
)

func main() {
	ctx, cancel := serviceutil.SignalContext(context.Background())
	defer cancel()

	commands.ExecuteContext(ctx)
}
