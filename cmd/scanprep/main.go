// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"sync/atomic"
	"syscall"

	"github.com/google/uuid"

	"github.com/probelab/scanprep/cmd/scanprep/commands"
	"github.com/probelab/scanprep/internal/doctor"
	"github.com/probelab/scanprep/pkg/erx"
	osx "github.com/probelab/scanprep/pkg/os"
	"github.com/probelab/scanprep/pkg/runlog"
)

func main() {
	traceId := uuid.NewString()
	ctx := context.WithValue(context.Background(), "traceId", traceId)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	handler, shutdown := osx.NewSignalHandler()
	defer shutdown()

	// a termination signal cancels the run context; the run winds down and
	// finalization maps the interruption to exit code 130
	var interrupted atomic.Bool
	onSignal := func(sig os.Signal) {
		runlog.As().Warn("Received %s, shutting down", sig)
		interrupted.Store(true)
		cancel()
	}
	_ = handler.Register(syscall.SIGINT, onSignal)
	_ = handler.Register(syscall.SIGTERM, onSignal)

	// SIGQUIT dumps goroutines without terminating the run
	_ = handler.Register(syscall.SIGQUIT, func(os.Signal) {
		osx.GoDump()
	})

	err := commands.Execute(ctx)
	if interrupted.Load() {
		err = erx.NewInterruptedError(err)
	}

	code := erx.ExitCode(err)
	if err != nil {
		doctor.Explain(ctx, err)
		runlog.As().Error("Provisioning failed, exiting with code %d", code.Int())
	} else {
		runlog.As().Success("Provisioning finished, exiting with code %d", code.Int())
	}

	_ = runlog.As().Close()
	code.TerminateProcess()
}
