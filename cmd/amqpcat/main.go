// amqpcat decodes AMQP 1.0 binary-encoded values and prints them as
// text, one value per top-level input value. Adapted from ccat's
// flag-driven, stdin-or-files binary-to-text shape, retargeted at AMQP
// wire bytes instead of ADE AtomContainers; there is no text-to-binary
// direction (see DESIGN.md for why).
package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"github.com/gongfarmer/amqptype/encoding/amqp"
)

var (
	flagFilename = flag.String("o", "", "write output to file")
	flagVerbose  = flag.Bool("v", false, "enable verbose logging")
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: amqpcat [options] [<file> ...]")
	fmt.Fprintln(os.Stderr, "       cat <file> | amqpcat [options]")
	fmt.Fprintln(os.Stderr, "Purpose:")
	fmt.Fprintln(os.Stderr, "       Read AMQP 1.0 binary-encoded values, write them as text.")
	fmt.Fprintln(os.Stderr, "       Reads input from STDIN if no filenames given.")
	fmt.Fprintln(os.Stderr, "Options:")
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("amqpcat: ")

	files := filter(flag.Args(), func(s string) bool { return s != *flagFilename })
	if len(files) == 0 && stdinIsEmpty() {
		usage()
	}
	if *flagVerbose {
		log.SetOutput(os.Stderr)
	}

	var output io.Writer = os.Stdout
	if *flagFilename != "" {
		f, err := os.OpenFile(*flagFilename, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		output = f
	}

	trees, err := readTreesFromInput(files)
	if err != nil {
		log.Fatal(err)
	}
	for _, tr := range trees {
		fmt.Fprint(output, tr.Text())
	}
}

// readTreesFromInput decodes each file's (or stdin's) full byte stream
// into one Tree holding every top-level value it contains, in order.
func readTreesFromInput(files []string) ([]*amqp.Tree, error) {
	if len(files) == 0 {
		if stdinIsEmpty() {
			return nil, nil
		}
		buf, err := ioutil.ReadAll(os.Stdin)
		if err != nil && err != io.EOF {
			return nil, err
		}
		tr, err := decodeBuffer(buf)
		if err != nil {
			return nil, err
		}
		return []*amqp.Tree{tr}, nil
	}

	var trees []*amqp.Tree
	for _, path := range files {
		buf, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		tr, err := decodeBuffer(buf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		trees = append(trees, tr)
	}
	return trees, nil
}

// decodeBuffer decodes every top-level value in buf into a single Tree.
func decodeBuffer(buf []byte) (*amqp.Tree, error) {
	tr := amqp.NewTree(16)
	if _, err := tr.DecodeAll(buf); err != nil {
		return nil, err
	}
	return tr, nil
}

func stdinIsEmpty() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func filter(ss []string, keep func(string) bool) (out []string) {
	for _, s := range ss {
		if !strings.HasPrefix(s, "-") && keep(s) {
			out = append(out, s)
		}
	}
	return out
}
