package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vitalvas/portbounce/pkg/client"
	"github.com/vitalvas/portbounce/pkg/dictionary"
	"github.com/vitalvas/portbounce/pkg/log"
	"github.com/vitalvas/portbounce/pkg/packet"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("coaclient", flag.ContinueOnError)
	fs.SetOutput(stderr)

	server := fs.String("server", "", "NAS address (host[:port], default port 3799)")
	secret := fs.String("secret", "testing123", "Shared secret")
	timeout := fs.Duration("timeout", client.DefaultTimeout, "Response timeout")
	messageAuth := fs.Bool("message-authenticator", false, "Add a Message-Authenticator to the request")
	strict := fs.Bool("strict", false, "Exit non-zero on CoA-NAK")
	dryRun := fs.Bool("dry-run", false, "Print the encoded request instead of sending it")
	logLevel := fs.String("log-level", "warn", "Log level")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: coaclient -server <host[:port]> [-secret <secret>] [-timeout <duration>]\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nAttributes are read from stdin, one per line in format:\n")
		fmt.Fprintf(stderr, "  Attribute-Name = value\n")
		fmt.Fprintf(stderr, "\nSupported attributes:\n")
		for _, attr := range dictionary.All() {
			fmt.Fprintf(stderr, "  %s\n", attr.Name())
		}
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  printf 'NAS-IP-Address = 10.0.0.1\\nNAS-Port-Id = Gi1/0/1\\nArista-PortFlap = 1\\n' | coaclient -server 10.0.0.1\n")
		fmt.Fprintf(stderr, "  cat attrs.txt | coaclient -server 10.0.0.1:3799 -secret secret123 -dry-run\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *server == "" {
		fmt.Fprintf(stderr, "Error: -server is required\n\n")
		fs.Usage()
		return 2
	}

	logger := log.New(log.Options{Level: *logLevel, Output: stderr})

	attributes, err := parseAttributes(stdin)
	if err != nil {
		logger.Errorf("Failed to parse attributes: %v", err)
		return 1
	}

	if len(attributes) == 0 {
		logger.Error("No attributes provided")
		return 1
	}

	cl, err := client.New(client.Config{
		Timeout:                 *timeout,
		UseMessageAuthenticator: *messageAuth,
		StrictAck:               *strict,
		Logger:                  logger,
	})
	if err != nil {
		logger.Errorf("Failed to create client: %v", err)
		return 1
	}

	req := client.Request{
		NASAddress: *server,
		Secret:     []byte(*secret),
		Attributes: attributes,
	}

	if *dryRun {
		return dryRunRequest(cl, req, stdout, logger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cl.Timeout()+time.Second)
	defer cancel()

	result := cl.Send(ctx, req)
	if result.Response == nil {
		if client.IsTimeout(result.Err) {
			logger.Errorf("No reply from %s", *server)
		}
		logger.Error(result.Message)
		return 1
	}

	printPacket(stdout, "Received", result.Response)

	if result.OK() {
		return 0
	}
	logger.Error(result.Message)
	return 1
}

func dryRunRequest(cl *client.Client, req client.Request, stdout io.Writer, logger log.Logger) int {
	pkt, err := cl.BuildRequest(req, 0)
	if err != nil {
		logger.Errorf("Failed to build request: %v", err)
		return 1
	}

	data, err := pkt.Encode()
	if err != nil {
		logger.Errorf("Failed to encode request: %v", err)
		return 1
	}

	printPacket(stdout, "Request", pkt)
	fmt.Fprintf(stdout, "%s\n", hex.EncodeToString(data))
	return 0
}

func printPacket(w io.Writer, label string, pkt *packet.Packet) {
	fmt.Fprintf(w, "%s %s Id %d Length %d\n", label, pkt.Code, pkt.Identifier, pkt.Length)
	for _, line := range describeAttributes(pkt) {
		fmt.Fprintf(w, "\t%s\n", line)
	}
}
