package md2apa_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/alnah/go-md2apa"
)

// Example converts markdown to a DOCX document. DOCX needs no browser.
func Example() {
	conv, err := md2apa.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2apa.Input{
		Markdown: "# Sleep and Memory\n\n## Method\n\nParticipants slept.",
		Metadata: md2apa.Metadata{
			Title:       "Sleep and Memory",
			Author:      "Ada Lovelace",
			Institution: "University of London",
		},
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(result.Format, bytes.HasPrefix(result.Data, []byte("PK")))
	// Output: docx true
}

// ExampleConverter_Convert_text renders a plain text preview. The lines
// after the page rule are the body.
func ExampleConverter_Convert_text() {
	conv, err := md2apa.NewConverter(
		md2apa.WithTextWidth(30),
		md2apa.WithNow(func() time.Time { return time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC) }),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2apa.Input{
		Markdown: "## Method\n- recall test\n- sleep log",
		Metadata: md2apa.Metadata{Title: "Sleep", Author: "Ada"},
		Format:   md2apa.FormatText,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	_, body, _ := strings.Cut(string(result.Data), strings.Repeat("─", 30)+"\n")
	fmt.Print(body)
	// Output:
	// Method
	// • recall test
	// • sleep log
}

// ExampleConverter_Convert_lint reports markdown the converter renders as
// plain text.
func ExampleConverter_Convert_lint() {
	conv, err := md2apa.NewConverter()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer conv.Close()

	result, err := conv.Convert(context.Background(), md2apa.Input{
		Markdown: "## Results\n\n> quoted\n",
		Metadata: md2apa.Metadata{Title: "T", Author: "A"},
		Format:   md2apa.FormatText,
		Lint:     true,
	})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	for _, f := range result.Findings {
		fmt.Println(f)
	}
	// Output: 3: blockquote marker renders as text [blockquote]
}

// ExampleConverterPool converts several documents in parallel.
func ExampleConverterPool() {
	pool := md2apa.NewConverterPool(2)
	defer pool.Close()

	titles := []string{"First", "Second", "Third"}
	sizes := make([]int, len(titles))

	var wg sync.WaitGroup
	for i, title := range titles {
		wg.Add(1)
		go func() {
			defer wg.Done()

			conv, err := pool.Acquire()
			if err != nil {
				fmt.Fprintln(os.Stderr, "acquire:", err)
				return
			}
			defer pool.Release(conv)

			result, err := conv.Convert(context.Background(), md2apa.Input{
				Markdown: "Body of " + title,
				Metadata: md2apa.Metadata{Title: title, Author: "Ada"},
				Format:   md2apa.FormatHTML,
			})
			if err != nil {
				fmt.Fprintln(os.Stderr, "convert:", err)
				return
			}
			sizes[i] = len(result.Data)
		}()
	}
	wg.Wait()

	for i, title := range titles {
		fmt.Println(title, sizes[i] > 0)
	}
	// Output:
	// First true
	// Second true
	// Third true
}
