// Package monitoring turns a running simulation into an HTTP server so the
// memory hierarchy can be inspected from outside.
package monitoring

import (
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/memsim/mem/subsystem"
)

// Monitor exposes the miss statistics of a memory subsystem and the
// resource usage of the simulator process over HTTP.
type Monitor struct {
	subsystem  *subsystem.Comp
	portNumber int
}

// NewMonitor creates a new Monitor.
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n",
			portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterSubsystem registers the memory subsystem to monitor.
func (m *Monitor) RegisterSubsystem(s *subsystem.Comp) {
	m.subsystem = s
}

// StartServer starts the monitor server in a new goroutine.
func (m *Monitor) StartServer() {
	r := m.router()

	listener, err := net.Listen("tcp",
		fmt.Sprintf(":%d", m.portNumber))
	if err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "Monitoring simulation with http://localhost:%d\n",
		listener.Addr().(*net.TCPAddr).Port)

	go func() {
		err := http.Serve(listener, r)
		if err != nil {
			log.Panic(err)
		}
	}()
}

func (m *Monitor) router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/stats", m.serveStats)
	r.HandleFunc("/api/resources", m.serveResources)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return r
}

type missStats struct {
	L1MissCount uint64 `json:"l1_miss_count"`
	L2MissCount uint64 `json:"l2_miss_count"`
}

func (m *Monitor) serveStats(w http.ResponseWriter, _ *http.Request) {
	stats := missStats{
		L1MissCount: m.subsystem.L1MissCount(),
		L2MissCount: m.subsystem.L2MissCount(),
	}

	writeJSON(w, stats)
}

type resourceUsage struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemoryRSS  uint64  `json:"memory_rss"`
}

func (m *Monitor) serveResources(w http.ResponseWriter, _ *http.Request) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	memInfo, err := p.MemoryInfo()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, resourceUsage{
		CPUPercent: cpuPercent,
		MemoryRSS:  memInfo.RSS,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
