package cmd

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sarchlab/memsim/mem"
	"github.com/sarchlab/memsim/mem/subsystem"
	"github.com/sarchlab/memsim/monitoring"
	"github.com/sarchlab/memsim/tracing"
)

var (
	memorySize   uint32
	numAccesses  int
	tickInterval int
	seed         int64
	tracePath    string
	monitorPort  int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a synthetic word-access workload through the hierarchy",
	Run: func(cmd *cobra.Command, args []string) {
		runWorkload()
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Uint32Var(&memorySize, "memory-size", 16*mem.MB,
		"main memory size in bytes, must be a multiple of 32")
	runCmd.Flags().IntVar(&numAccesses, "num-accesses", 1000000,
		"number of word accesses to perform")
	runCmd.Flags().IntVar(&tickInterval, "tick-interval", 1024,
		"accesses between reference-bit aging ticks")
	runCmd.Flags().Int64Var(&seed, "seed", 1,
		"random seed for the workload")
	runCmd.Flags().StringVar(&tracePath, "trace", "",
		"write an access trace to this SQLite database")
	runCmd.Flags().IntVar(&monitorPort, "monitor", 0,
		"serve monitoring APIs on this port")
}

func runWorkload() {
	_ = godotenv.Load()
	if tracePath == "" {
		tracePath = os.Getenv("MEMSIM_TRACE")
	}

	builder := subsystem.MakeBuilder().WithMemorySize(memorySize)

	var writer *tracing.SQLiteTraceWriter
	if tracePath != "" {
		writer = tracing.NewSQLiteTraceWriter(tracePath)
		writer.Init()
		builder = builder.WithTracer(writer)
	}

	s, err := builder.Build()
	if err != nil {
		log.Fatal(err)
	}

	if monitorPort > 0 {
		monitor := monitoring.NewMonitor().WithPortNumber(monitorPort)
		monitor.RegisterSubsystem(s)
		monitor.StartServer()
	}

	rng := rand.New(rand.NewSource(seed))

	// A small hot region plus a uniform tail, so the caches see a
	// mixture of reuse and conflict traffic.
	hotLines := memorySize / mem.LineBytes / 64
	if hotLines == 0 {
		hotLines = 1
	}

	for i := 0; i < numAccesses; i++ {
		var lineIndex uint32
		if rng.Intn(4) > 0 {
			lineIndex = uint32(rng.Intn(int(hotLines)))
		} else {
			lineIndex = uint32(rng.Intn(int(memorySize / mem.LineBytes)))
		}
		address := lineIndex*mem.LineBytes +
			uint32(rng.Intn(mem.LineWords))*mem.WordBytes

		if rng.Intn(2) == 0 {
			err = s.Access(address, rng.Uint32(), mem.WriteEnable, nil)
		} else {
			var readData uint32
			err = s.Access(address, 0, mem.ReadEnable, &readData)
		}
		if err != nil {
			log.Fatal(err)
		}

		if (i+1)%tickInterval == 0 {
			s.HandleClockInterrupt()
		}
	}

	if writer != nil {
		writer.Flush()
	}

	fmt.Printf("accesses:   %d\n", numAccesses)
	fmt.Printf("l1 misses:  %d (%.2f%%)\n", s.L1MissCount(),
		100*float64(s.L1MissCount())/float64(numAccesses))
	fmt.Printf("l2 misses:  %d (%.2f%%)\n", s.L2MissCount(),
		100*float64(s.L2MissCount())/float64(numAccesses))
}
