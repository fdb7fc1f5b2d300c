// Command ncdecode validates and decodes NETCONF messages, printing one
// JSON line per message.
//
//	ncdecode [-config file] [-framing none|eom|chunked|auto] [files...]
//
// Input is read from the named files, or stdin when none are given. With
// -framing none each input holds a single document; otherwise inputs are
// RFC6242 framed streams. auto starts with end-of-message framing and
// switches to chunked framing after a <hello> advertising base:1.1.
//
// Each line is either {"index":n,"message":{...}} or
// {"index":n,"error":{...}}, the error being the <rpc-error> a server
// would reply with. The exit status is 1 if any message failed.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/yamt/enetconf/framing"
	"github.com/yamt/enetconf/message"
	"github.com/yamt/enetconf/schema"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ncdecode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file")
	framingMode := fs.String("framing", "", "framing: none|eom|chunked|auto")
	strict := fs.Bool("strict", false, "require the NETCONF base namespace")
	logLevel := fs.String("log-level", "", "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath, cfg); err != nil {
			fmt.Fprintf(stderr, "ncdecode: %v\n", err)
			return 2
		}
	}
	var flagErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "framing":
			cfg.Framing = *framingMode
		case "strict":
			cfg.StrictNamespace = *strict
		case "log-level":
			lvl, err := logrus.ParseLevel(*logLevel)
			if err != nil {
				flagErr = err
			}
			cfg.LogLevel = lvl
		}
	})
	if flagErr == nil {
		flagErr = cfg.validate()
	}
	if flagErr != nil {
		fmt.Fprintf(stderr, "ncdecode: %v\n", flagErr)
		return 2
	}

	log := cfg.logger()
	log.SetOutput(stderr)
	d := &decoder{
		cfg: cfg,
		log: log,
		validator: schema.NewValidator(
			schema.WithStrictNamespace(cfg.StrictNamespace),
			schema.WithMaxSize(cfg.MaxSize),
			schema.WithLogger(log),
		),
		out: newEncoder(stdout),
	}

	if fs.NArg() == 0 {
		d.input(ctx, "", stdin)
	}
	for _, name := range fs.Args() {
		if ctx.Err() != nil {
			break
		}
		f, err := os.Open(name)
		if err != nil {
			log.WithError(err).Error("open input")
			d.failed = true
			continue
		}
		d.input(ctx, name, f)
		f.Close()
	}
	if d.failed || ctx.Err() != nil {
		return 1
	}
	return 0
}

type decoder struct {
	cfg       config
	log       logrus.FieldLogger
	validator *schema.Validator
	out       *encoder
	index     int
	failed    bool
}

// input decodes every message read from r.
func (d *decoder) input(ctx context.Context, source string, r io.Reader) {
	log := d.log.WithField("source", source)
	if d.cfg.Framing == framingNone {
		d.decode(ctx, log, source, r)
		return
	}

	var opts []framing.ReaderOption
	if d.cfg.Framing == framingChunked {
		opts = append(opts, framing.WithChunked())
	}
	if d.cfg.MaxSize > 0 {
		opts = append(opts, framing.WithMaxMessageSize(int(d.cfg.MaxSize)))
	}
	fr := framing.NewReader(r, opts...)
	for ctx.Err() == nil {
		b, err := fr.ReadMessage()
		if err == io.EOF {
			return
		}
		if err != nil {
			// the stream cannot be resynchronised
			d.fail(log, source, errors.Wrap(err, "framing"))
			return
		}
		msg := d.decode(ctx, log, source, bytes.NewReader(b))
		if hello, ok := msg.(*message.Hello); ok && d.cfg.Framing == framingAuto &&
			hello.Capabilities.Has(message.CapBase11) && !fr.Chunked() {
			log.Debug("switching to chunked framing")
			fr.SetChunked()
		}
	}
}

func (d *decoder) decode(ctx context.Context, log logrus.FieldLogger, source string, r io.Reader) message.Message {
	msg, err := message.Read(ctx, d.validator, r)
	if err != nil {
		d.fail(log, source, err)
		return nil
	}
	log.WithFields(logrus.Fields{"index": d.index, "message": msg.Name()}).Debug("decoded")
	if err := d.out.writeMessage(d.index, source, msg); err != nil {
		log.WithError(err).Error("write output")
		d.failed = true
	}
	d.index++
	return msg
}

func (d *decoder) fail(log logrus.FieldLogger, source string, err error) {
	d.failed = true
	log.WithField("index", d.index).WithError(err).Warn("message rejected")
	if err := d.out.writeError(d.index, source, err); err != nil {
		log.WithError(err).Error("write output")
	}
	d.index++
}
