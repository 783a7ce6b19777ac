// Command pbjsondecode is a manual smoke-test for the decode pipeline: it
// reads a JSON document from stdin or a file, decodes it into a named
// protobuf message, and prints the protobuf text-marshaled result.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"google.golang.org/protobuf/encoding/prototext"

	"github.com/deepankarm/pbjson/pkg/pbjson"
	"github.com/deepankarm/pbjson/pkg/protoadapter"
	"github.com/deepankarm/pbjson/pkg/registry"
)

func main() {
	messageFlag := flag.String("message", "", "full protobuf message name to decode into (required)")
	inputPath := flag.String("in", "", "path to a JSON file; defaults to stdin")
	ignoreUnknown := flag.Bool("ignore-unknown", false, "skip unresolvable JSON members instead of failing")
	flag.Parse()

	if *messageFlag == "" {
		fmt.Fprintln(os.Stderr, "pbjsondecode: -message is required")
		flag.Usage()
		os.Exit(2)
	}

	reg := registry.New()
	reg.RegisterWellKnown()
	if err := reg.RegisterSamples(); err != nil {
		log.Fatalf("pbjsondecode: registering sample messages: %v", err)
	}

	desc, err := reg.Descriptor(*messageFlag)
	if err != nil {
		log.Fatalf("pbjsondecode: %v", err)
	}
	protoMsg, err := reg.NewMessage(*messageFlag)
	if err != nil {
		log.Fatalf("pbjsondecode: %v", err)
	}

	input := io.Reader(os.Stdin)
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("pbjsondecode: %v", err)
		}
		defer f.Close()
		input = f
	}

	body, err := io.ReadAll(input)
	if err != nil {
		log.Fatalf("pbjsondecode: reading input: %v", err)
	}

	sink := protoadapter.NewSink(protoMsg)
	driver, err := pbjson.Create(desc, sink, pbjson.Options{IgnoreJSONUnknown: *ignoreUnknown})
	if err != nil {
		log.Fatalf("pbjsondecode: %v", err)
	}
	if _, err := driver.Feed(body); err != nil {
		log.Fatalf("pbjsondecode: decode failed: %v", err)
	}
	if err := driver.End(); err != nil {
		log.Fatalf("pbjsondecode: decode failed: %v", err)
	}

	out, err := prototext.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(protoMsg.Interface())
	if err != nil {
		log.Fatalf("pbjsondecode: re-encoding result: %v", err)
	}
	os.Stdout.Write(out)
}
