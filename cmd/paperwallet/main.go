package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AlexZinkM/paper-wallet/internal/api"
	"github.com/AlexZinkM/paper-wallet/internal/config"
	"github.com/AlexZinkM/paper-wallet/internal/crypto"
	"github.com/AlexZinkM/paper-wallet/internal/engine"
	"github.com/AlexZinkM/paper-wallet/internal/export"
	"github.com/AlexZinkM/paper-wallet/internal/metrics"
	"github.com/AlexZinkM/paper-wallet/internal/model"
	"github.com/AlexZinkM/paper-wallet/internal/wallet"
	"github.com/AlexZinkM/paper-wallet/solana"

	logging "github.com/ipfs/go-log/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/urfave/cli"
)

var log = logging.Logger("paperwallet")

const (
	formatJSON = "json"
	formatPDF  = "pdf"
	formatCWT  = "cwt"

	entropyPrompt = "Provide additional entropy for generating random numbers. Type in a string of random characters, press [ENTER]: "
)

var (
	testnetFlag = cli.BoolFlag{
		Name:  "testnet",
		Usage: "Generate testnet addresses",
	}
	zAddressesFlag = cli.IntFlag{
		Name:  "z, zaddresses",
		Usage: "Number of shielded addresses to generate (0-25); the solana engine defaults to 0",
		Value: 1,
	}
	tAddressesFlag = cli.IntFlag{
		Name:  "t, taddresses",
		Usage: "Number of transparent addresses to generate (0-25); the solana engine defaults to 1 when -z is unset",
		Value: 0,
	}
	entropyFlag = cli.StringFlag{
		Name:  "e, entropy",
		Usage: "Additional entropy; prompted for when omitted",
	}
	formatFlag = cli.StringFlag{
		Name:  "f, format",
		Usage: "Output format: json, pdf or cwt (encrypted)",
		Value: formatJSON,
	}
	outputFlag = cli.StringFlag{
		Name:  "o, output",
		Usage: "Output file; json without it is printed to stdout",
	}
	engineFlag = cli.StringFlag{
		Name:  "engine",
		Usage: "Wallet engine (native, solana); defaults to PAPERWALLET_ENGINE",
	}
	vanityFlag = cli.StringFlag{
		Name:  "vanity",
		Usage: "Address prefix to search for (solana engine, up to 5 base58 characters)",
	}
	threadsFlag = cli.IntFlag{
		Name:  "threads",
		Usage: "Vanity search workers; defaults to PAPERWALLET_VANITY_WORKERS",
	}
	showFlag = cli.BoolFlag{
		Name:  "show",
		Usage: "Print every wallet with QR codes to the terminal",
	}
	encryptFlag = cli.BoolFlag{
		Name:  "encrypt",
		Usage: "Prompt for the password used by /wallet/export/encrypted",
	}
	inputFlag = cli.StringFlag{
		Name:  "i, in",
		Usage: "Encrypted .cwt file to read",
	}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "paperwallet"
	app.Version = "v0.1.0"
	app.Usage = "Generate paper wallets offline and export them as PDF, JSON or an encrypted container"
	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr
	app.Before = func(c *cli.Context) error {
		if err := config.Init(); err != nil {
			return err
		}
		lvl, err := logging.LevelFromString(config.Get().LogLevel)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logging.SetAllLoggers(lvl)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:   "generate",
			Usage:  "Generate a batch of wallets",
			Flags:  []cli.Flag{testnetFlag, zAddressesFlag, tAddressesFlag, entropyFlag, formatFlag, outputFlag, engineFlag, vanityFlag, threadsFlag, showFlag},
			Action: generate,
		},
		{
			Name:   "serve",
			Usage:  "Serve the local HTTP API",
			Flags:  []cli.Flag{engineFlag, encryptFlag},
			Action: serve,
		},
		{
			Name:   "decrypt",
			Usage:  "Decrypt a .cwt container and export or show its wallets",
			Flags:  []cli.Flag{inputFlag, formatFlag, outputFlag, engineFlag, showFlag},
			Action: decrypt,
		},
	}
	return app
}

func generate(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := newEngine(ctx, c)
	if err != nil {
		return err
	}

	format := c.String("format")
	if err := checkOutput(format, c.String("output")); err != nil {
		return err
	}

	entropy := []byte(c.String("entropy"))
	if len(entropy) == 0 {
		entropy, err = config.ReadSecret(entropyPrompt)
		if err != nil {
			return err
		}
	}
	defer clear(entropy)

	o := wallet.NewOrchestrator(e, nil)
	defer o.Close()

	zCount, tCount := addressCounts(c, e)
	batch, err := o.Populate(model.GenerationRequest{
		Testnet: c.Bool("testnet"),
		ZCount:  zCount,
		TCount:  tCount,
		Entropy: entropy,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.ErrWriter, "Generated %d addresses on %s\n", batch.Len(), model.NetworkName(batch.Testnet()))

	if c.Bool("show") {
		if err := show(c.App.Writer, batch); err != nil {
			return err
		}
	}
	return write(c, export.NewPipeline(e, nil), batch)
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e, err := newEngine(ctx, c)
	if err != nil {
		return err
	}

	if c.Bool("encrypt") {
		if err := config.PromptForPassword(); err != nil {
			return err
		}
		defer config.ForgetPassword()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)

	o := wallet.NewOrchestrator(e, m)
	defer o.Close()

	srv := &http.Server{
		Addr:              config.ListenAddr(),
		Handler:           api.SetupRouter(o, export.NewPipeline(e, m), reg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on http://%s (swagger at /swagger/index.html)", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func decrypt(c *cli.Context) error {
	in := c.String("in")
	if in == "" {
		return errors.New("input file is required (--in)")
	}
	format := c.String("format")
	if format == formatCWT {
		return errors.New("decrypt exports json or pdf")
	}
	if err := checkOutput(format, c.String("output")); err != nil {
		return err
	}

	password, err := config.ReadSecret("Enter password: ")
	if err != nil {
		return err
	}
	defer clear(password)

	hdr, payload, err := crypto.DecryptBatch(in, password)
	if err != nil {
		return err
	}
	batch, err := wallet.FromPayload(payload, hdr.Network == model.NetworkName(true), hdr.Records)
	if err != nil {
		return err
	}
	defer batch.Destroy()

	if c.Bool("show") {
		if err := show(c.App.Writer, batch); err != nil {
			return err
		}
	}
	if format == formatJSON && c.String("output") == "" {
		return write(c, nil, batch)
	}

	e, err := newEngine(context.Background(), c)
	if err != nil {
		return err
	}
	return write(c, export.NewPipeline(e, nil), batch)
}

// newEngine picks the engine from --engine or the configuration. A vanity
// prefix selects the local engine. A configured native engine that is not
// built in falls back to solana; an explicit --engine native does not.
func newEngine(ctx context.Context, c *cli.Context) (engine.Engine, error) {
	if prefix := c.String("vanity"); prefix != "" {
		if err := solana.ValidatePrefix(prefix); err != nil {
			return nil, err
		}
		workers := c.Int("threads")
		if workers < 1 {
			workers = config.Get().VanityWorkers
		}
		return solana.New(solana.WithVanity(ctx, prefix, workers)), nil
	}

	if name := c.String("engine"); name != "" {
		return engine.New(name)
	}
	e, err := engine.New(config.GetEngine())
	if errors.Is(err, engine.ErrNativeUnavailable) {
		log.Warnf("%v; using the %s engine", err, engine.NameSolana)
		return solana.New(), nil
	}
	return e, err
}

// addressCounts returns the requested -z/-t counts. Engines without
// shielded support default to one transparent address instead of one
// shielded address.
func addressCounts(c *cli.Context, e engine.Engine) (zCount, tCount int) {
	zCount, tCount = c.Int("z"), c.Int("t")
	if e.Name() != engine.NameSolana || isSet(c, "z", "zaddresses") {
		return zCount, tCount
	}
	if !isSet(c, "t", "taddresses") {
		tCount = 1
	}
	return 0, tCount
}

func isSet(c *cli.Context, names ...string) bool {
	for _, name := range names {
		if c.IsSet(name) {
			return true
		}
	}
	return false
}

func checkOutput(format, output string) error {
	switch format {
	case formatJSON:
		return nil
	case formatPDF, formatCWT:
		if output == "" {
			return fmt.Errorf("output file is required when exporting to %s", format)
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (json, pdf, cwt)", format)
	}
}

func write(c *cli.Context, p *export.Pipeline, batch *wallet.Batch) error {
	if batch.Empty() {
		fmt.Fprintln(c.App.ErrWriter, "Batch is empty, nothing written")
		return nil
	}
	output := c.String("output")

	switch c.String("format") {
	case formatPDF:
		if err := p.ExportPDF(batch, output); err != nil {
			return err
		}
	case formatCWT:
		password, err := config.ReadSecret("Enter export password: ")
		if err != nil {
			return err
		}
		defer clear(password)
		if err := p.ExportEncrypted(batch, output, password); err != nil {
			return err
		}
	default:
		if output == "" {
			if _, err := c.App.Writer.Write(batch.Raw().Bytes()); err != nil {
				return err
			}
			_, err := fmt.Fprintln(c.App.Writer)
			return err
		}
		if err := p.ExportJSON(batch, output); err != nil {
			return err
		}
	}

	fmt.Fprintf(c.App.ErrWriter, "Wrote %s\n", output)
	return nil
}
