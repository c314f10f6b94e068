// Command hand-synth emits synthetic hand landmark frames the way a webcam
// detector would, streaming them to a running viewer and/or recording them
// to a trace file for later replay.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/lixenwraith/orbital-swarm/feed"
	"github.com/lixenwraith/orbital-swarm/parameter"
)

// countingSink counts samples on their way to the next sink.
type countingSink struct {
	n    atomic.Int64
	next feed.Sink
}

func (c *countingSink) Put(s feed.Sample) {
	c.n.Add(1)
	if c.next != nil {
		c.next.Put(s)
	}
}

func main() {
	connect := flag.String("connect", parameter.FeedListenAddr, "viewer address to stream to, empty disables streaming")
	record := flag.String("record", "", "trace file to record to")
	seed := flag.Int64("seed", 1, "gesture pattern seed")
	rate := flag.Int("rate", parameter.SynthSampleRate, "sample rate in Hz")
	dropout := flag.Float64("dropout", 0, "fraction of samples reported as no-hand [0,1]")
	duration := flag.Duration("duration", 0, "stop after this long, 0 runs until interrupted")
	flag.Parse()

	if *connect == "" && *record == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -connect and/or -record")
		os.Exit(1)
	}

	var sink feed.Sink
	var producer *feed.StreamProducer
	if *connect != "" {
		p, err := feed.DialProducer(*connect)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		producer = p
		sink = p
	}

	var recorder *feed.Recorder
	if *record != "" {
		r, err := feed.CreateTrace(*record, sink)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		recorder = r
		sink = r
	}

	counter := &countingSink{next: sink}
	hand := feed.NewSyntheticHand(counter, *seed, *rate, *dropout)
	if err := hand.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	fmt.Printf("emitting at %d Hz (seed %d, dropout %.2f), interrupt to stop\n", *rate, *seed, *dropout)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	var deadline <-chan time.Time
	if *duration > 0 {
		deadline = time.After(*duration)
	}
	select {
	case <-sig:
	case <-deadline:
	}

	hand.Stop()

	failed := false
	if recorder != nil {
		if err := recorder.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "record: %v\n", err)
			failed = true
		}
	}
	if producer != nil {
		if err := producer.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "stream: %v\n", err)
			failed = true
		}
		if err := producer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close: %v\n", err)
			failed = true
		}
	}

	fmt.Printf("emitted %d samples\n", counter.n.Load())
	if failed {
		os.Exit(1)
	}
}
