package runner

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/avholst/htty/internal/config"
	"github.com/avholst/htty/internal/logger"
	"github.com/avholst/htty/pkg/format"
	"github.com/avholst/htty/pkg/progress"
	"github.com/avholst/htty/pkg/request"
)

type CLI struct {
	Verbose bool `short:"v" help:"Log request handling details"`
	NoColor bool `help:"Disable colors and syntax highlighting"`
	Trace   bool `help:"Dump the outgoing request on stderr"`

	Get  GetCmd  `cmd:"" help:"Issue a GET request to a URL"`
	Post PostCmd `cmd:"" help:"Issue a POST request, sending key=value fields as a JSON body"`
}

type GetCmd struct {
	URL string `arg:"" help:"URL to request"`
}

type PostCmd struct {
	URL  string   `arg:"" help:"URL to request"`
	Body []string `arg:"" optional:"" help:"Body fields as key=value pairs"`
}

// Env carries the shared pieces a command needs to run.
type Env struct {
	Ctx      context.Context
	Client   *request.Client
	Printer  *format.Printer
	Reporter progress.Reporter
	Log      *zap.SugaredLogger
}

func Run() {
	cli := &CLI{}
	cliCtx := kong.Parse(cli,
		kong.Name("htty"),
		kong.Description("A small command-line HTTP client that pretty-prints responses."),
		kong.UsageOnError())

	cfg, err := config.Load()
	cliCtx.FatalIfErrorf(err)

	level := cfg.LogLevel
	if cli.Verbose {
		level = "debug"
	}
	log, err := logger.Init(level)
	cliCtx.FatalIfErrorf(err)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	color := isatty.IsTerminal(os.Stdout.Fd())
	switch cfg.Color {
	case config.ColorAlways:
		color = true
	case config.ColorNever:
		color = false
	}
	if cli.NoColor {
		color = false
	}

	var reporter progress.Reporter
	if isatty.IsTerminal(os.Stderr.Fd()) && !cli.Trace {
		reporter, err = progress.NewInteractiveReporter(os.Stderr, stop)
		cliCtx.FatalIfErrorf(err)
	} else {
		reporter = progress.NewEmptyReporter()
	}

	client := request.NewClient(
		request.WithUserAgent(cfg.UserAgent),
		request.WithTimeout(cfg.Timeout),
		request.WithTrace(cli.Trace),
		request.WithLogger(log),
	)

	env := &Env{
		Ctx:      ctx,
		Client:   client,
		Printer:  format.NewPrinter(os.Stdout, format.WithColor(color)),
		Reporter: reporter,
		Log:      log,
	}

	err = cliCtx.Run(env)
	reporter.Close()
	cliCtx.FatalIfErrorf(err)
}

func (c *GetCmd) Run(env *Env) error {
	url, err := request.ValidateURL(c.URL)
	if err != nil {
		return err
	}

	env.Log.Debugw("sending request", "method", http.MethodGet, "url", url)
	env.Reporter.Start(http.MethodGet, url)
	res, err := env.Client.Get(env.Ctx, url)
	env.Reporter.Done()
	if err != nil {
		return err
	}

	return env.Printer.Print(res)
}

func (c *PostCmd) Run(env *Env) error {
	url, err := request.ValidateURL(c.URL)
	if err != nil {
		return err
	}
	pairs, err := request.ParseKVPairs(c.Body)
	if err != nil {
		return err
	}
	body := request.BodyMap(pairs)

	env.Log.Debugw("sending request", "method", http.MethodPost, "url", url, "fields", len(body))
	env.Reporter.Start(http.MethodPost, url)
	res, err := env.Client.Post(env.Ctx, url, body)
	env.Reporter.Done()
	if err != nil {
		return err
	}

	return env.Printer.Print(res)
}
