package elist_test

import (
	"cmp"
	"testing"

	"github.com/idelchi/da/internal/elist"
)

func BenchmarkAppend(b *testing.B) {
	for b.Loop() {
		l, _ := elist.New[record](0)
		for i := range 1024 {
			_ = l.Append(record{size: uint64(i)}) //nolint:gosec // i is never negative
		}
	}
}

func BenchmarkAppendNew(b *testing.B) {
	for b.Loop() {
		l, _ := elist.New[record](0)
		for i := range 1024 {
			slot, _ := l.AppendNew()
			slot.size = uint64(i) //nolint:gosec // i is never negative
		}
	}
}

func BenchmarkSort(b *testing.B) {
	l, _ := elist.New[int](4096)

	for b.Loop() {
		b.StopTimer()
		l.Clear()

		for i := range 4096 {
			_ = l.Append((i * 7919) % 4096)
		}
		b.StartTimer()

		l.Sort(cmp.Compare[int])
	}
}
