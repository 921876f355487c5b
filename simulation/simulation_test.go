package simulation

import (
	"path/filepath"

	"github.com/oslab-sim/ossim/datarecording"
	"github.com/oslab-sim/ossim/mem/replacement"
	"github.com/oslab-sim/ossim/proc"
	"github.com/oslab-sim/ossim/sched"
	"github.com/oslab-sim/ossim/sim"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type dummyComp struct {
	*sim.ComponentBase
}

var _ = Describe("Simulation", func() {
	var (
		outputPath string
		s          *Simulation
	)

	BeforeEach(func() {
		outputPath = filepath.Join(GinkgoT().TempDir(), "sim_rec")
		s = MakeBuilder().
			WithoutMonitoring().
			WithOutputFileName(outputPath).
			Build()
	})

	AfterEach(func() {
		s.Terminate()
	})

	It("should wire the scheduler and the memory manager", func() {
		Expect(s.ID()).NotTo(BeEmpty())
		Expect(s.GetScheduler()).NotTo(BeNil())
		Expect(s.GetMemory()).NotTo(BeNil())
		Expect(s.GetEngine()).To(BeIdenticalTo(s.GetScheduler()))
		Expect(s.GetDataRecorder()).NotTo(BeNil())
		Expect(s.GetDBTracer()).NotTo(BeNil())
		Expect(s.GetMonitor()).To(BeNil())
	})

	It("should register the components by name", func() {
		Expect(s.Components()).To(HaveLen(2))
		Expect(s.GetComponentByName("Scheduler")).
			To(BeIdenticalTo(s.GetScheduler()))
		Expect(s.GetComponentByName("MemoryManager")).
			To(BeIdenticalTo(s.GetMemory()))
	})

	It("should accept additional components", func() {
		c := &dummyComp{ComponentBase: sim.NewComponentBase("Extra")}

		s.RegisterComponent(c)

		Expect(s.Components()).To(HaveLen(3))
		Expect(s.GetComponentByName("Extra")).To(BeIdenticalTo(c))
	})

	It("should reject duplicated component names", func() {
		Expect(func() {
			s.RegisterComponent(s.GetScheduler())
		}).To(Panic())
	})

	It("should carry the builder parameters into the components", func() {
		p := filepath.Join(GinkgoT().TempDir(), "rr_rec")
		rrSim := MakeBuilder().
			WithoutMonitoring().
			WithAlgorithm(sched.RoundRobin).
			WithTimeQuantum(5).
			WithTotalFrames(8).
			WithReplacementPolicy(replacement.LRU).
			WithOutputFileName(p).
			Build()
		defer rrSim.Terminate()

		Expect(rrSim.GetScheduler().Algorithm()).To(Equal(sched.RoundRobin))
		Expect(rrSim.GetScheduler().TimeQuantum()).To(Equal(5))
		Expect(rrSim.GetMemory().Usage().TotalFrames).To(Equal(8))
		Expect(rrSim.GetMemory().ReplacementPolicy()).To(Equal(replacement.LRU))
	})

	It("should record a run into the database", func() {
		factory := proc.MakeFactory()
		p, err := factory.New("Proc", 3, 4)
		Expect(err).To(BeNil())

		s.GetScheduler().Add(p)
		Expect(s.GetScheduler().Run()).To(Succeed())
		s.Terminate()

		reader := datarecording.NewReader(outputPath + ".sqlite3")
		defer reader.Close()

		Expect(reader.ListTables()).To(ContainElements(
			"ticks", "completions", "evictions", "deallocations",
			"exec_log"))
	})

	It("should survive a second Terminate", func() {
		s.Terminate()

		Expect(func() { s.Terminate() }).NotTo(Panic())
	})

	It("should gate the run loop through the shared controller", func() {
		factory := proc.MakeFactory()
		p, err := factory.New("Proc", 2, 4)
		Expect(err).To(BeNil())

		s.GetScheduler().Add(p)
		s.GetScheduler().Controller().Stop()

		Expect(s.GetScheduler().Run()).To(Succeed())
		Expect(s.GetScheduler().CurrentTime()).To(Equal(sim.VTime(0)))
	})

	It("should reject a monitor port when monitoring is disabled", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithMonitorPort(8080).
				Build()
		}).To(Panic())
	})

	It("should reject browser launch when monitoring is disabled", func() {
		Expect(func() {
			MakeBuilder().
				WithoutMonitoring().
				WithBrowserLaunch().
				Build()
		}).To(Panic())
	})
})
