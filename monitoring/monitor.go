// Package monitoring turns a running simulation into a small web server so
// that the clock, the scheduler, and the memory manager can be inspected and
// controlled from outside the process.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"strings"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/oslab-sim/ossim/mem/paging"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/sim"
	"github.com/pkg/browser"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

// Monitor can turn a simulation into a server and allows external monitoring
// and controlling of the simulation.
type Monitor struct {
	engine        sim.Engine
	ctrl          *sim.Controller
	scheduler     *sched.Comp
	memory        *paging.Comp
	components    []sim.Component
	portNumber    int
	launchBrowser bool
	idGen         sim.IDGenerator

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		idGen: sim.NewXIDGenerator(),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithBrowserLaunch makes StartServer open the monitoring page in the default
// browser.
func (m *Monitor) WithBrowserLaunch() *Monitor {
	m.launchBrowser = true
	return m
}

// RegisterEngine registers the engine that is used in the simulation.
func (m *Monitor) RegisterEngine(e sim.Engine) {
	m.engine = e
}

// RegisterController registers the run-control channel of the engine,
// enabling the step endpoint.
func (m *Monitor) RegisterController(c *sim.Controller) {
	m.ctrl = c
}

// RegisterScheduler sets the scheduler whose state backs the summary
// endpoint.
func (m *Monitor) RegisterScheduler(s *sched.Comp) {
	m.scheduler = s
}

// RegisterMemory sets the memory manager whose state backs the summary and
// frame-table endpoints.
func (m *Monitor) RegisterMemory(p *paging.Comp) {
	m.memory = p
}

// RegisterComponent register a component to be monitored.
func (m *Monitor) RegisterComponent(c sim.Component) {
	m.components = append(m.components, c)
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        m.idGen.Generate(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars)-1)
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	r := mux.NewRouter()

	r.HandleFunc("/", m.index)
	r.HandleFunc("/api/pause", m.pauseEngine)
	r.HandleFunc("/api/continue", m.continueEngine)
	r.HandleFunc("/api/step", m.stepEngine)
	r.HandleFunc("/api/now", m.now)
	r.HandleFunc("/api/run", m.run)
	r.HandleFunc("/api/components", m.listComponents)
	r.HandleFunc("/api/component/{name}", m.listComponentDetails)
	r.HandleFunc("/api/field/{json}", m.listFieldValue)
	r.HandleFunc("/api/summary", m.reportSummary)
	r.HandleFunc("/api/frames", m.reportFrames)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	http.Handle("/", r)

	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", url)

	if m.launchBrowser {
		if err := browser.OpenURL(url); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open browser: %s\n", err)
		}
	}

	go func() {
		err = http.Serve(listener, nil)
		dieOnErr(err)
	}()
}

func (m *Monitor) index(w http.ResponseWriter, _ *http.Request) {
	endpoints := []string{
		"/api/pause",
		"/api/continue",
		"/api/step",
		"/api/now",
		"/api/run",
		"/api/components",
		"/api/component/{name}",
		"/api/field/{json}",
		"/api/summary",
		"/api/frames",
		"/api/progress",
		"/api/resource",
		"/api/profile",
	}

	bytes, err := json.Marshal(endpoints)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) pauseEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Pause()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) continueEngine(w http.ResponseWriter, _ *http.Request) {
	m.engine.Continue()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) stepEngine(w http.ResponseWriter, _ *http.Request) {
	if m.ctrl == nil {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	m.ctrl.Step()
	_, err := w.Write(nil)
	dieOnErr(err)
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	now := m.engine.CurrentTime()
	fmt.Fprintf(w, "{\"now\":%d}", now)
}

func (m *Monitor) run(_ http.ResponseWriter, _ *http.Request) {
	go func() {
		err := m.engine.Run()
		if err != nil {
			panic(err)
		}
	}()
}

func (m *Monitor) listComponents(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "[")
	for i, c := range m.components {
		if i > 0 {
			fmt.Fprint(w, ",")
		}

		fmt.Fprintf(w, "\"%s\"", c.Name())
	}
	fmt.Fprint(w, "]")
}

func (m *Monitor) listComponentDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type fieldReq struct {
	CompName  string `json:"comp_name,omitempty"`
	FieldName string `json:"field_name,omitempty"`
}

func (m *Monitor) listFieldValue(w http.ResponseWriter, r *http.Request) {
	jsonString := mux.Vars(r)["json"]
	req := fieldReq{}

	err := json.Unmarshal([]byte(jsonString), &req)
	if err != nil {
		dieOnErr(err)
	}

	name := req.CompName
	fields := strings.Split(req.FieldName, ".")

	component := m.findComponentOr404(w, name)
	if component == nil {
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(component)
	serializer.SetMaxDepth(1)

	err = serializer.SetEntryPoint(fields)
	dieOnErr(err)

	err = serializer.Serialize(w)
	dieOnErr(err)
}

type memoryRsp struct {
	TotalFrames int     `json:"total_frames"`
	UsedFrames  int     `json:"used_frames"`
	FreeFrames  int     `json:"free_frames"`
	Utilization float64 `json:"utilization"`
	Accesses    uint64  `json:"accesses"`
	Hits        uint64  `json:"hits"`
	Faults      uint64  `json:"faults"`
	HitRatio    float64 `json:"hit_ratio"`
}

type summaryRsp struct {
	Now             sim.VTime  `json:"now"`
	Algorithm       string     `json:"algorithm"`
	TimeQuantum     int        `json:"time_quantum"`
	Done            bool       `json:"done"`
	RunningPID      string     `json:"running_pid,omitempty"`
	ReadyCount      int        `json:"ready_count"`
	Completed       int        `json:"completed"`
	AvgTurnaround   float64    `json:"avg_turnaround"`
	AvgWaiting      float64    `json:"avg_waiting"`
	ContextSwitches int        `json:"context_switches"`
	Memory          *memoryRsp `json:"memory,omitempty"`
}

// reportSummary samples live scheduler and memory state. Pause the run loop
// first when exact numbers matter.
func (m *Monitor) reportSummary(w http.ResponseWriter, _ *http.Request) {
	if m.scheduler == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Scheduler not registered"))
		dieOnErr(err)
		return
	}

	runStats := m.scheduler.Statistics()
	rsp := summaryRsp{
		Now:             m.scheduler.CurrentTime(),
		Algorithm:       m.scheduler.Algorithm().String(),
		TimeQuantum:     m.scheduler.TimeQuantum(),
		Done:            m.scheduler.Done(),
		ReadyCount:      len(m.scheduler.ReadyProcesses()),
		Completed:       runStats.Completed(),
		AvgTurnaround:   runStats.AverageTurnaround(),
		AvgWaiting:      runStats.AverageWaiting(),
		ContextSwitches: runStats.ContextSwitches(),
	}

	if running := m.scheduler.Current(); running != nil {
		rsp.RunningPID = string(running.ID())
	}

	if m.memory != nil {
		usage := m.memory.Usage()
		accessStats := m.memory.Stats()
		rsp.Memory = &memoryRsp{
			TotalFrames: usage.TotalFrames,
			UsedFrames:  usage.UsedFrames,
			FreeFrames:  usage.FreeFrames,
			Utilization: usage.Utilization,
			Accesses:    accessStats.Accesses,
			Hits:        accessStats.Hits,
			Faults:      accessStats.Faults,
			HitRatio:    accessStats.HitRatio,
		}
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type frameRsp struct {
	Frame int    `json:"frame"`
	Free  bool   `json:"free"`
	PID   string `json:"pid,omitempty"`
	Page  uint64 `json:"page"`
}

func (m *Monitor) reportFrames(w http.ResponseWriter, _ *http.Request) {
	if m.memory == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Memory manager not registered"))
		dieOnErr(err)
		return
	}

	frames := m.memory.FrameTable()
	rsp := make([]frameRsp, 0, len(frames))
	for _, f := range frames {
		rsp = append(rsp, frameRsp{
			Frame: int(f.Frame),
			Free:  f.Free,
			PID:   string(f.Owner),
			Page:  f.PageNum,
		})
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) findComponentOr404(
	w http.ResponseWriter,
	name string,
) sim.Component {
	var component sim.Component
	for _, c := range m.components {
		if c.Name() == name {
			component = c
		}
	}

	if component == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Component not found"))
		dieOnErr(err)
	}

	return component
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	bytes, err := json.Marshal(m.progressBars)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	bytes, err := json.Marshal(rsp)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	bytes, err := json.Marshal(prof)
	dieOnErr(err)

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
