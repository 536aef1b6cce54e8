package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/qxform/qxform/internal/cliutil"
	"github.com/qxform/qxform/internal/pipeline"
)

// runFlags aliases cliutil.RunFlags so both qcirc subcommands share the
// same flag set and loading logic as the standalone qcirc-inspect binary.
type runFlags = cliutil.RunFlags

func addRunFlags(flags *pflag.FlagSet, f *runFlags) {
	cliutil.AddRunFlags(flags, f)
}

func runTranspile(ctx context.Context, f *runFlags) (pipeline.Result, error) {
	return cliutil.Run(ctx, f)
}
