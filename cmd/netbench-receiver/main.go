// netbench-receiver binds a UDP socket, measures the traffic generated by a
// netbench-sender and prints one CSV record per one-second window to stdout.
// The session ends normally when either the startup or the idle timeout
// fires; the full run is then archived as gzipped JSON under -datadir.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/m-lab/go/flagx"
	"github.com/m-lab/go/prometheusx"
	"github.com/m-lab/go/rtx"

	"github.com/hostbench/netbench/internal/netx"
	"github.com/hostbench/netbench/internal/persistence"
	"github.com/hostbench/netbench/internal/receiver"
	"github.com/hostbench/netbench/pkg/emitter"
	"github.com/hostbench/netbench/pkg/ramp/spec"
)

var (
	flagListen = flag.String("listen", fmt.Sprintf(":%d", spec.DataPort),
		"Address to bind the UDP data socket to")
	flagStartupTimeout = flag.Duration("startup-timeout", spec.DefaultStartupTimeout,
		"How long to wait for the first packet before giving up")
	flagIdleTimeout = flag.Duration("idle-timeout", spec.DefaultIdleTimeout,
		"Exit once no packet has arrived for this long")
	flagDataDir = flag.String("datadir", "./data",
		"Directory to archive results in")
	flagDebug = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()
	rtx.Must(flagx.ArgsFromEnv(flag.CommandLine), "failed to read args from env")

	log.SetReportTimestamp(true)
	if *flagDebug {
		log.SetLevel(log.DebugLevel)
	}

	promSrv := prometheusx.MustServeMetrics()
	defer promSrv.Close()

	conn, err := netx.ListenUDP(*flagListen)
	rtx.Must(err, "failed to bind UDP socket")
	defer conn.Close()

	mid := uuid.NewString()
	log.Info("Receiver listening", "addr", conn.LocalAddr().String(), "mid", mid,
		"startupTimeout", *flagStartupTimeout, "idleTimeout", *flagIdleTimeout)

	r := receiver.New(conn, receiver.Config{
		StartupTimeout: *flagStartupTimeout,
		IdleTimeout:    *flagIdleTimeout,
		MeasurementID:  mid,
	}, emitter.NewCSV(os.Stdout))

	archive := r.Run(context.Background())

	df, err := persistence.WriteDataFile(*flagDataDir, "netbench", mid, archive)
	if err != nil {
		// The CSV stream already went to stdout; a failed archive should
		// not turn a completed run into a failure.
		log.Error("failed to archive results", "error", err)
		return
	}
	log.Info("Results archived", "path", df.Path, "bytes", df.Size,
		"windows", len(archive.Windows), "packets", archive.TotalPackets,
		"lost", archive.TotalLost)
}
