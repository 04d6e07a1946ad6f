// Command wayfinder prints directions, or writes an interactive map, from the
// caller's approximate location to an address.
//
//	wayfinder [-mode map|text] [-profile driving|cycling|walking] [-out route_map.html] "<address>"
//	wayfinder watch [-durable name] [-record]
//	wayfinder history [-limit n]
//
// With no address argument the destination is read from standard input.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/samirrijal/wayfinder/internal/adapters/leaflet"
	natsadapter "github.com/samirrijal/wayfinder/internal/adapters/nats"
	"github.com/samirrijal/wayfinder/internal/adapters/postgres"
	"github.com/samirrijal/wayfinder/internal/app"
	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/core/usecases"
	"github.com/samirrijal/wayfinder/internal/pkg/config"
	"github.com/samirrijal/wayfinder/internal/pkg/logging"
)

const defaultOut = "route_map.html"

func main() {
	cfg, err := config.Load("wayfinder-cli")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout carries only directions.
	logging.SetupStderr(cfg.Log.Level, "text")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], cfg, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes usage and lookup failures from upstream outages.
func exitCode(err error) int {
	switch domain.KindOf(err) {
	case domain.KindInvalid:
		return 2
	case domain.KindNotFound, domain.KindRouteNotFound:
		return 3
	default:
		return 1
	}
}

func run(ctx context.Context, args []string, cfg *config.Config, stdin io.Reader, stdout io.Writer) error {
	if len(args) > 0 {
		switch args[0] {
		case "watch":
			return watch(ctx, args[1:], cfg, stdout)
		case "history":
			return history(ctx, args[1:], cfg, stdout)
		}
	}

	fs := flag.NewFlagSet("wayfinder", flag.ContinueOnError)
	mode := fs.String("mode", string(domain.ModeMap), "output mode: map or text")
	profile := fs.String("profile", cfg.Router.DefaultProfile, "travel profile: driving, cycling or walking")
	out := fs.String("out", defaultOut, "file the map is written to in map mode")
	zoom := fs.Int("zoom", cfg.Map.Zoom, "initial map zoom")
	if err := fs.Parse(args); err != nil {
		return domain.InvalidError("parse flags", err)
	}

	address := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if address == "" {
		fmt.Fprint(stdout, "Enter destination address: ")
		line, err := bufio.NewReader(stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read address: %w", err)
		}
		address = strings.TrimSpace(line)
	}

	outputMode, err := domain.ParseMode(*mode)
	if err != nil {
		return err
	}
	prof, err := domain.ParseProfile(*profile)
	if err != nil {
		return err
	}

	svc, err := app.NewDirectionsService(cfg, nil)
	if err != nil {
		return err
	}

	res, err := svc.Process(ctx, domain.DirectionsRequest{
		Address: address,
		Mode:    outputMode,
		Profile: prof,
		Zoom:    *zoom,
	})
	if err != nil {
		return err
	}

	if res.Mode == domain.ModeText {
		_, err := fmt.Fprintln(stdout, res.Text)
		return err
	}
	return writeMap(*out, res.Map, stdout)
}

func writeMap(path string, m *domain.RenderedMap, stdout io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create map file: %w", err)
	}
	if err := leaflet.Write(f, m); err != nil {
		f.Close()
		return fmt.Errorf("write map: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close map file: %w", err)
	}
	fmt.Fprintf(stdout, "Map saved to %s\n", path)
	return nil
}

// watch prints route events published by API instances until ctx is done.
// With -record each event is also stored in the history database.
func watch(ctx context.Context, args []string, cfg *config.Config, stdout io.Writer) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	durable := fs.String("durable", "", "durable consumer name; empty delivers only new events")
	record := fs.Bool("record", false, "store events in the history database")
	if err := fs.Parse(args); err != nil {
		return domain.InvalidError("parse flags", err)
	}
	if cfg.NATS.URL == "" {
		return domain.InvalidError("watch", errors.New("nats.url is not configured (set WAYFINDER_NATS_URL)"))
	}

	var store ports.RouteHistory
	if *record {
		db, err := openHistory(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()
		store = postgres.NewHistoryRepo(db)
	}

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		return err
	}
	defer sub.Close()

	err = sub.SubscribeRouteComputed(ctx, *durable, func(ctx context.Context, e *domain.RouteComputed) error {
		if store != nil {
			// A failed insert is redelivered by the broker.
			if err := store.Record(ctx, e); err != nil {
				slog.Error("record route event", "error", err)
				return err
			}
		}
		_, err := fmt.Fprintln(stdout, formatEvent(e))
		return err
	})
	if err != nil {
		return err
	}

	slog.Info("watching route events", "subject", natsadapter.SubjectRouteComputed+".>", "record", *record)
	<-ctx.Done()
	return nil
}

// history prints the most recent recorded route events.
func history(ctx context.Context, args []string, cfg *config.Config, stdout io.Writer) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "number of events to show")
	if err := fs.Parse(args); err != nil {
		return domain.InvalidError("parse flags", err)
	}

	db, err := openHistory(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	return printHistory(ctx, postgres.NewHistoryRepo(db), *limit, stdout)
}

func printHistory(ctx context.Context, store ports.RouteHistory, limit int, stdout io.Writer) error {
	events, err := store.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		_, err := fmt.Fprintln(stdout, "No routes recorded.")
		return err
	}
	for i := range events {
		if _, err := fmt.Fprintln(stdout, formatEvent(&events[i])); err != nil {
			return err
		}
	}
	return nil
}

func openHistory(ctx context.Context, cfg *config.Config) (*postgres.DB, error) {
	if cfg.Database.URL == "" {
		return nil, domain.InvalidError("history", errors.New("database.url is not configured (set WAYFINDER_DATABASE_URL)"))
	}
	db, err := postgres.New(ctx, cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("history database: %w", err)
	}
	return db, nil
}

func formatEvent(e *domain.RouteComputed) string {
	return fmt.Sprintf("%s  %-8s %-4s  %.2f km in %s  (straight line %.2f km)",
		e.Time.Format("2006-01-02 15:04:05"),
		e.Profile,
		e.Mode,
		e.DistanceMeters/1000,
		strings.TrimPrefix(usecases.FormatDuration(e.DurationSeconds), "Duration: "),
		e.StraightLineMeters/1000,
	)
}
