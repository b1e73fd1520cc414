package hmm_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/crnstat/hmm"
)

func BenchmarkBaumWelchMultiple(b *testing.B) {
	set := make([][]int, 32)
	for i := range set {
		set[i] = randomSequence(int64(i+1), 200, 6)
	}
	for _, workers := range []int{1, 4} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				b.StopTimer()
				h, _ := hmm.New(4, 6, hmm.WithScaling(), hmm.WithWorkers(workers))
				_ = h.SetTransition(0, 0, 0.4)
				_ = h.SetTransition(0, 1, 0.1)
				b.StartTimer()
				if _, err := h.BaumWelchMultiple(set, 5); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkViterbi(b *testing.B) {
	h, _ := hmm.New(8, 4, hmm.WithScaling())
	obs := randomSequence(1, 1000, 4)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := h.MakeViterbi(obs); err != nil {
			b.Fatal(err)
		}
	}
}
