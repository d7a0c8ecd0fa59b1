package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/textcodec/charset"
	"github.com/wippyai/textcodec/errors"
	"github.com/wippyai/textcodec/transcoder"
)

func main() {
	var (
		fromLabel   = flag.String("from", "utf-8", "Source encoding label")
		toLabel     = flag.String("to", "utf-8", "Target encoding label")
		inFile      = flag.String("in", "", "Input file (default stdin)")
		outFile     = flag.String("out", "", "Output file (default stdout)")
		bomPolicy   = flag.String("bom", "sniff", "BOM handling: sniff, remove or off")
		strict      = flag.Bool("strict", false, "Fail on malformed input instead of replacing")
		list        = flag.Bool("list", false, "List supported encodings and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		transcoder.SetLogger(logger.Named("transcoder"))
	}

	if *list {
		listEncodings()
		return
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*fromLabel, *toLabel, *inFile, *outFile, *bomPolicy, *strict); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func listEncodings() {
	names := make([]string, 0)
	for _, e := range charset.All() {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Println(n)
	}
}

func run(fromLabel, toLabel, inFile, outFile, bomPolicy string, strict bool) error {
	from := charset.ForLabel([]byte(fromLabel))
	if from == nil {
		return fmt.Errorf("unknown source encoding %q", fromLabel)
	}
	to := charset.ForLabel([]byte(toLabel))
	if to == nil {
		return fmt.Errorf("unknown target encoding %q", toLabel)
	}

	var src []byte
	var err error
	if inFile == "" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(inFile)
	}
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var text string
	switch strings.ToLower(bomPolicy) {
	case "sniff":
		if strict {
			if detected, size := charset.ForBOM(src); detected != nil {
				from, src = detected, src[size:]
			}
			text, err = transcoder.DecodeWithoutBOMHandlingAndWithoutReplacement(from, src)
		} else {
			text, _, _ = transcoder.Decode(from, src)
		}
	case "remove":
		if strict {
			text, err = decodeStrictWithBOMRemoval(from, src)
		} else {
			text, _ = transcoder.DecodeWithBOMRemoval(from, src)
		}
	case "off":
		if strict {
			text, err = transcoder.DecodeWithoutBOMHandlingAndWithoutReplacement(from, src)
		} else {
			text, _ = transcoder.DecodeWithoutBOMHandling(from, src)
		}
	default:
		return fmt.Errorf("unknown bom policy %q", bomPolicy)
	}
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	var encoded []byte
	if strict {
		encoded, err = encodeStrict(to, text)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	} else {
		encoded, _, _ = transcoder.Encode(to, text)
	}

	if outFile == "" {
		_, err = os.Stdout.Write(encoded)
	} else {
		err = os.WriteFile(outFile, encoded, 0o644)
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func decodeStrictWithBOMRemoval(e *charset.Encoding, src []byte) (string, error) {
	if detected, size := charset.ForBOM(src); detected == e {
		src = src[size:]
	}
	return transcoder.DecodeWithoutBOMHandlingAndWithoutReplacement(e, src)
}

// encodeStrict fails on the first character the target cannot represent
// instead of writing a numeric character reference.
func encodeStrict(to *charset.Encoding, text string) ([]byte, error) {
	enc := transcoder.NewEncoder(to)
	src := []byte(text)
	dst := make([]byte, enc.MaxBufferLengthFromUTF8WithoutReplacement(len(src)))
	read, written := 0, 0
	for {
		status, r, w := enc.EncodeFromUTF8WithoutReplacement(src[read:], dst[written:], true)
		read += r
		written += w
		switch status {
		case transcoder.InputEmpty:
			return dst[:written], nil
		case transcoder.Unmappable:
			return nil, errors.UnmappableChar(enc.Encoding().Name(), enc.Unmappable())
		default:
			grown := make([]byte, len(dst)*2+16)
			copy(grown, dst[:written])
			dst = grown
		}
	}
}
