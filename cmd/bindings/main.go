package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"glib-shading/internal/binding"
)

func main() {
	format := flag.String("format", "yaml", "Output format: yaml or json")
	source := flag.Bool("source", false, "Print the annotated library header instead of its reflection")
	flag.Parse()

	if *source {
		fmt.Print(binding.LibrarySource())
		return
	}

	var (
		ref *binding.Reflection
		err error
	)
	if path := flag.Arg(0); path != "" {
		f, openErr := os.Open(path)
		if openErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", openErr)
			os.Exit(1)
		}
		ref, err = binding.Parse(f)
		f.Close()
	} else {
		ref, err = binding.Library()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var out []byte
	switch *format {
	case "yaml":
		out, err = ref.Marshal()
	case "json":
		out, err = json.MarshalIndent(ref, "", "  ")
		out = append(out, '\n')
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q\n", *format)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
