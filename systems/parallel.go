package systems

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum particle count to use parallel processing.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// phase identifies one barrier-separated stage of a solver step.
type phase uint8

const (
	phasePredict phase = iota
	phaseDensity
	phaseForces
	phaseCorrect
)

// workChunk represents a range of particles for a worker to process.
type workChunk struct {
	phase      phase
	start, end int
}

// workerPool runs the per-particle work of one phase across goroutines.
// Each worker writes only the output fields of its own index range; the
// caller waits for every chunk before starting the next phase.
type workerPool struct {
	numWorkers int

	workChan chan workChunk // sends work to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool
}

func newWorkerPool(numWorkers int) *workerPool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}
	return &workerPool{numWorkers: numWorkers}
}

// start launches persistent worker goroutines.
func (p *workerPool) start(s *Solver) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(s)
	}
}

// stop signals all workers to exit and waits for them.
func (p *workerPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *workerPool) worker(s *Solver) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			s.runChunk(chunk.phase, chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		}
	}
}

// dispatch splits n particles into one chunk per worker and blocks until all
// chunks are done. This is the phase barrier.
func (p *workerPool) dispatch(s *Solver, ph phase, n int) {
	if !p.running {
		p.start(s)
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	chunksDispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}

		p.workChan <- workChunk{phase: ph, start: start, end: end}
		chunksDispatched++
	}

	for i := 0; i < chunksDispatched; i++ {
		<-p.doneChan
	}
}
