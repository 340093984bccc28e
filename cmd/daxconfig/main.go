// Command daxconfig creates, inspects and checks DAX Copilot configuration files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/LerianStudio/lib-commons/commons/log"
	"github.com/LerianStudio/lib-commons/commons/zap"
	copilot "github.com/LerianStudio/lib-dax-copilot-go"
	"github.com/LerianStudio/lib-dax-copilot-go/pkg"
	"github.com/LerianStudio/lib-dax-copilot-go/rls"
	"github.com/LerianStudio/lib-dax-copilot-go/validation"
)

const usage = `usage: daxconfig <command> [flags]

commands:
  init      write the configuration template
  show      print the configuration with secrets masked
  get       print one value: get <group> <key>
  validate  check the configuration for missing or template values
  rule      print an RLS filter with placeholders substituted
`

func main() {
	logger := zap.InitializeLogger()
	defer func() { _ = logger.Sync() }()

	if err := run(context.Background(), os.Args[1:], os.Stdout, logger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, logger log.Logger) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cmd, args := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	file := fs.String("file", copilot.DefaultPath(), "configuration file")

	switch cmd {
	case "init":
		outPath := fs.String("out", copilot.DefaultPath(), "file to create")
		force := fs.Bool("force", false, "overwrite an existing file")

		if err := fs.Parse(args); err != nil {
			return err
		}

		if err := copilot.WriteFile(*outPath, copilot.Template(), *force); err != nil {
			return err
		}

		logger.Infof("Wrote configuration template to %s", *outPath)

		return nil

	case "show":
		if err := fs.Parse(args); err != nil {
			return err
		}

		doc, err := copilot.LoadFile(ctx, *file, &logger)
		if err != nil {
			return err
		}

		return copilot.Save(out, doc.Redacted())

	case "get":
		if err := fs.Parse(args); err != nil {
			return err
		}

		if fs.NArg() < 1 || fs.NArg() > 2 {
			return errors.New("usage: daxconfig get [-file path] <group> <key>")
		}

		doc, err := copilot.LoadFile(ctx, *file, &logger)
		if err != nil {
			return err
		}

		value, err := doc.Lookup(fs.Arg(0), fs.Arg(1))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, value)

		return err

	case "validate":
		if err := fs.Parse(args); err != nil {
			return err
		}

		doc, err := copilot.LoadFile(ctx, *file, &logger)
		if err != nil {
			return err
		}

		if err := validation.Validate(doc, logger); err != nil {
			return err
		}

		_, err = fmt.Fprintf(out, "%s is valid\n", *file)

		return err

	case "rule":
		name := fs.String("name", "", "rule name")
		set := fs.String("set", "", "placeholder values, e.g. region=Pacific,country=Canada")

		if err := fs.Parse(args); err != nil {
			return err
		}

		doc, err := copilot.LoadFile(ctx, *file, &logger)
		if err != nil {
			return err
		}

		filter, err := rls.Resolve(*doc, *name, pkg.ParseSubstitutions(*set))
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(out, filter)

		return err

	default:
		return fmt.Errorf("unknown command %q\n\n%s", cmd, usage)
	}
}
