package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dd0wney/bionet/pkg/bionet"
	"github.com/dd0wney/bionet/pkg/graphql"
	"github.com/dd0wney/bionet/pkg/health"
	"github.com/dd0wney/bionet/pkg/logging"
	"github.com/dd0wney/bionet/pkg/metrics"
	"github.com/dd0wney/bionet/pkg/netstore"
)

func (e *env) load(path string, extra ...bionet.Option) (*bionet.BioNet, error) {
	opts := append(e.cfg.NetOptions(), bionet.WithLogger(e.logger))
	return bionet.Load(path, append(opts, extra...)...)
}

// keyFormat picks a format from the key's extension, falling back to the
// configured default for keys without one
func (e *env) keyFormat(key string) bionet.Format {
	if filepath.Ext(key) == "" {
		return e.cfg.EncodingFormat()
	}
	return bionet.FormatFromPath(key)
}

type namedQuery struct {
	label string
	run   func() []uint64
}

func allQueries(net *bionet.BioNet) []namedQuery {
	return []namedQuery{
		{"with positive input", net.NodesWithPositiveInputLink},
		{"with negative input", net.NodesWithNegativeInputLink},
		{"without positive input", net.NodesWithoutPositiveInputLink},
		{"without negative input", net.NodesWithoutNegativeInputLink},
		{"without outputs", net.NodesWithoutOutputLinks},
		{"least inputs", net.NodesWithLeastNumberOfInputs},
		{"least outputs", net.NodesWithLeastNumberOfOutputs},
	}
}

func runInspect(e *env, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	net, err := e.load(args[0])
	if err != nil {
		return err
	}

	interactions := 0
	for _, n := range net.Nodes() {
		if n.IsInteraction() {
			interactions++
		}
	}

	fmt.Fprintf(e.stdout, "Network: %s\n", net.Name())
	fmt.Fprintf(e.stdout, "Nodes:   %d (%d entities, %d interactions)\n", net.NodeCount(), net.NodeCount()-interactions, interactions)
	fmt.Fprintf(e.stdout, "Edges:   %d\n", net.EdgeCount())

	params := net.Parameters()
	fmt.Fprintf(e.stdout, "\nParameters (%d):\n", len(params))
	for _, p := range params {
		fmt.Fprintf(e.stdout, "  %-12s %g\n", p.Name, p.Value)
	}

	fmt.Fprintln(e.stdout, "\nQueries:")
	for _, q := range allQueries(net) {
		fmt.Fprintf(e.stdout, "  %-24s %s\n", q.label+":", strings.Join(net.NodeNames(q.run()), ", "))
	}
	return nil
}

func runQuery(e *env, args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	vars := fs.String("vars", "", "JSON object of query variables")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() != 2 {
		return errUsage
	}

	var variables map[string]any
	if *vars != "" {
		if err := json.Unmarshal([]byte(*vars), &variables); err != nil {
			return fmt.Errorf("invalid -vars: %w", err)
		}
	}

	net, err := e.load(fs.Arg(0))
	if err != nil {
		return err
	}
	schema, err := graphql.GenerateSchema(net)
	if err != nil {
		return err
	}

	result := graphql.ExecuteWithDepthLimit(schema, fs.Arg(1), e.cfg.GraphQL.MaxDepth, variables)
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(e.stdout, string(out))
	if result.HasErrors() {
		return fmt.Errorf("query returned %d error(s)", len(result.Errors))
	}
	return nil
}

func runServe(e *env, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	addr := fs.String("addr", e.cfg.GraphQL.Addr, "listen address")
	checkStore := fs.Bool("check-store", false, "include the configured store in /healthz")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}

	reg := metrics.NewRegistry()
	net, err := e.load(fs.Arg(0), bionet.WithMetrics(reg))
	if err != nil {
		return err
	}
	checker := health.NewChecker()
	checker.RegisterCheck("network", health.NetworkCheck(net))
	checker.RegisterReadinessCheck("network", health.NetworkCheck(net))
	if *checkStore {
		store, err := openStore(context.Background(), e.cfg)
		if err != nil {
			return err
		}
		defer closeStore(store)
		checker.RegisterCheck("store", health.StoreCheck(store))
	}

	mux, err := newServeMux(e, net, reg, checker)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("server starting", logging.String("addr", *addr), logging.Network(net.Name()))
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	e.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newServeMux mounts the query endpoint, metrics and health checks
func newServeMux(e *env, net *bionet.BioNet, reg *metrics.Registry, checker *health.Checker) (*http.ServeMux, error) {
	schema, err := graphql.GenerateSchema(net)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/graphql", graphql.NewHandler(schema, e.cfg.GraphQL.MaxDepth, e.logger))
	mux.Handle("/metrics", promhttp.HandlerFor(reg.GetPrometheusRegistry(), promhttp.HandlerOpts{}))
	mux.Handle("/healthz", checker.HTTPHandler())
	mux.Handle("/readyz", checker.ReadinessHandler())
	return mux, nil
}

func runConvert(e *env, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	format := fs.String("format", "", "output format (json, yaml, snappy); default from extension")
	if err := fs.Parse(args); err != nil || fs.NArg() != 2 {
		return errUsage
	}

	out := bionet.FormatFromPath(fs.Arg(1))
	if *format != "" {
		f, err := bionet.ParseFormat(*format)
		if err != nil {
			return err
		}
		out = f
	}

	net, err := e.load(fs.Arg(0))
	if err != nil {
		return err
	}
	if err := net.SaveAs(fs.Arg(1), out); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "converted %s -> %s (%s)\n", fs.Arg(0), fs.Arg(1), out)
	return nil
}

func runPush(e *env, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	ctx := context.Background()
	store, err := openStore(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)
	net, err := e.load(args[0])
	if err != nil {
		return err
	}
	if err := netstore.SaveNet(ctx, store, args[1], net, e.keyFormat(args[1])); err != nil {
		return err
	}
	e.logger.Info("network pushed", logging.Network(net.Name()), logging.String("key", args[1]), logging.String("driver", string(store.Driver())))
	fmt.Fprintf(e.stdout, "pushed %s -> %s:%s\n", args[0], store.Driver(), args[1])
	return nil
}

func runPull(e *env, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	ctx := context.Background()
	store, err := openStore(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)
	opts := append(e.cfg.NetOptions(), bionet.WithLogger(e.logger))
	net, err := netstore.LoadNet(ctx, store, args[0], e.keyFormat(args[0]), opts...)
	if err != nil {
		return err
	}
	if err := net.Save(args[1]); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "pulled %s:%s -> %s\n", store.Driver(), args[0], args[1])
	return nil
}

func runList(e *env, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}
	ctx := context.Background()
	store, err := openStore(ctx, e.cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)
	keys, err := store.List(ctx, prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		fmt.Fprintln(e.stdout, k)
	}
	return nil
}

func runMetrics(e *env, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	reg := metrics.NewRegistry()
	net, err := e.load(args[0], bionet.WithMetrics(reg))
	if err != nil {
		return err
	}
	for _, q := range allQueries(net) {
		q.run()
	}
	return reg.WriteText(e.stdout)
}
