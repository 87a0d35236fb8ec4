//go:build bench

package md2apa

import (
	"context"
	"fmt"
	"strings"
	"testing"
)

func BenchmarkResolvePoolSize(b *testing.B) {
	for _, w := range []int{0, 1, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", w), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = ResolvePoolSize(w)
			}
		})
	}
}

// BenchmarkConverterPoolAcquireRelease measures the idle-channel round
// trip once every converter exists.
func BenchmarkConverterPoolAcquireRelease(b *testing.B) {
	for _, size := range []int{1, 4} {
		b.Run(fmt.Sprintf("size=%d", size), func(b *testing.B) {
			pool := NewConverterPool(size)
			defer func() { _ = pool.Close() }()

			warm := make([]*Converter, size)
			for i := range warm {
				conv, err := pool.Acquire()
				if err != nil {
					b.Fatal(err)
				}
				warm[i] = conv
			}
			for _, conv := range warm {
				pool.Release(conv)
			}

			b.ReportAllocs()
			for b.Loop() {
				conv, err := pool.Acquire()
				if err != nil {
					b.Fatal(err)
				}
				pool.Release(conv)
			}
		})
	}
}

func benchMarkdown(sections int) string {
	var sb strings.Builder
	sb.WriteString("# Benchmark Paper\n\n")
	for i := range sections {
		fmt.Fprintf(&sb, "## Section %d\n\n", i+1)
		sb.WriteString("Sleep **consolidates** memory and *attention* recovers `overnight`.\n\n")
		sb.WriteString("- first point\n- second point\n\n1. step one\n2. step two\n\n")
		sb.WriteString("```go\nfunc main() {}\n```\n\n")
	}
	return sb.String()
}

func BenchmarkConverterConvert(b *testing.B) {
	conv, err := NewConverter(withPDFConverter(&mockPDFConverter{}))
	if err != nil {
		b.Fatal(err)
	}
	defer func() { _ = conv.Close() }()

	for _, sections := range []int{5, 50} {
		md := benchMarkdown(sections)
		for _, format := range []Format{FormatDOCX, FormatHTML, FormatText} {
			b.Run(fmt.Sprintf("%s/sections=%d", format, sections), func(b *testing.B) {
				input := Input{
					Markdown: md,
					Metadata: Metadata{Title: "Benchmark Paper", Author: "Ada Lovelace"},
					Format:   format,
				}
				b.ReportAllocs()
				b.SetBytes(int64(len(md)))
				for b.Loop() {
					if _, err := conv.Convert(context.Background(), input); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
