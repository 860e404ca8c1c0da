// netbench-sender generates UDP traffic paced to a ramp of target rates
// against a netbench-receiver. It is fire-and-forget: it never learns about
// loss or the receiver's state, and exits once the last ramp step completes.
package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"

	"github.com/hostbench/netbench/internal/netx"
	"github.com/hostbench/netbench/internal/sender"
	"github.com/hostbench/netbench/pkg/emitter"
	"github.com/hostbench/netbench/pkg/ramp/spec"
)

var (
	flagServer = flag.String("server", "",
		"Receiver address (host or host:port)")
	flagMaxRate = flag.Int("max-rate", spec.DefaultMaxRateMB,
		"Last step of the ramp, in MB/s")
	flagStepDuration = flag.Duration("step-duration", spec.DefaultStepDuration,
		"Time spent at each 1 MB/s ramp step")
	flagDebug = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "failed to read args from env")

	log.SetReportTimestamp(true)
	if *flagDebug {
		log.SetLevel(log.DebugLevel)
	}

	if *flagServer == "" {
		log.Fatal("sender mode requires -server <receiver address>")
	}
	target := *flagServer
	if _, _, err := net.SplitHostPort(target); err != nil {
		target = fmt.Sprintf("%s:%d", target, spec.DataPort)
	}

	promSrv := prometheusx.MustServeMetrics()
	defer promSrv.Close()

	conn, err := netx.DialUDP(target)
	rtx.Must(err, "failed to create UDP socket")
	defer conn.Close()

	runID := uuid.NewString()
	log.Info("Starting sender", "target", target, "maxRate", *flagMaxRate,
		"stepDuration", *flagStepDuration, "runID", runID)

	s := sender.New(conn, sender.Config{
		MaxRateMB:    *flagMaxRate,
		StepDuration: *flagStepDuration,
	}, emitter.HumanReadable{})

	start := time.Now()
	rtx.Must(s.Run(context.Background()), "sender failed")
	log.Info("Ramp finished", "elapsed", time.Since(start), "runID", runID)
}
