// Command toon converts documents between TOON and neighboring formats.
//
// It reads one document from a file argument or stdin, converts it, and
// writes the result to stdout:
//
//	toon --from json --to toon config.json
//	cat data.toon | toon --to json
//	toon --hash data.toon
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	toon "github.com/eric-fetty/toon-go"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "toon: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		from      string
		to        string
		indent    int
		delimiter string
		hash      bool
		output    string
	)
	pflag.StringVar(&from, "from", "toon", "input format: toon, json, jsonc, yaml, cbor, packed")
	pflag.StringVar(&to, "to", "toon", "output format: toon, json, yaml, cbor, packed")
	pflag.IntVar(&indent, "indent", 2, "spaces per nesting level in TOON output")
	pflag.StringVar(&delimiter, "delimiter", "comma", "TOON value delimiter: comma, tab, pipe")
	pflag.BoolVar(&hash, "hash", false, "print the canonical document hash instead of converting")
	pflag.StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	pflag.Parse()

	input, err := readInput(pflag.Args())
	if err != nil {
		return err
	}

	v, err := parseInput(from, input)
	if err != nil {
		return err
	}

	if hash {
		sum, err := toon.CanonicalHash(v)
		if err != nil {
			return err
		}
		return writeOutput(output, []byte(sum+"\n"))
	}

	delim, err := delimiterByName(delimiter)
	if err != nil {
		return err
	}
	out, err := renderOutput(to, v, toon.EncodeOptions{Indent: indent, Delimiter: delim})
	if err != nil {
		return err
	}
	return writeOutput(output, out)
}

func readInput(args []string) ([]byte, error) {
	switch len(args) {
	case 0:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	case 1:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, err
		}
		return data, nil
	default:
		return nil, fmt.Errorf("expected at most one input file, got %d", len(args))
	}
}

func parseInput(format string, data []byte) (*toon.Value, error) {
	switch format {
	case "toon":
		return toon.Unmarshal(data)
	case "json":
		return toon.FromJSON(data)
	case "jsonc":
		return toon.FromJSONC(data)
	case "yaml":
		return toon.FromYAML(data)
	case "cbor":
		return toon.FromCBOR(data)
	case "packed":
		return toon.Unpack(data)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

func renderOutput(format string, v *toon.Value, opts toon.EncodeOptions) ([]byte, error) {
	switch format {
	case "toon":
		s, err := toon.EncodeWithOptions(v, opts)
		if err != nil {
			return nil, err
		}
		if s != "" && s[len(s)-1] != '\n' {
			s += "\n"
		}
		return []byte(s), nil
	case "json":
		out, err := toon.ToJSON(v)
		if err != nil {
			return nil, err
		}
		return append(out, '\n'), nil
	case "yaml":
		return toon.ToYAML(v)
	case "cbor":
		return toon.ToCBOR(v)
	case "packed":
		return toon.Pack(v)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func delimiterByName(name string) (toon.Delimiter, error) {
	switch name {
	case "comma":
		return toon.Comma, nil
	case "tab":
		return toon.Tab, nil
	case "pipe":
		return toon.Pipe, nil
	default:
		return 0, fmt.Errorf("unknown delimiter %q", name)
	}
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
