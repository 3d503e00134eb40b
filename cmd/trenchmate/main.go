package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	trenchmatecmd "github.com/trench-tools/trenchmate/internal/cmd/trenchmate"
	apperrors "github.com/trench-tools/trenchmate/internal/errors"
)

func main() {
	cfg, err := trenchmatecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[TRENCHMATE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := trenchmatecmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("run [%s]: %v", apperrors.CodeOf(err), err)
	}
}
