// Command bondctl inspects persisted bond series state: the stored
// snapshots, the append-only event log, and reputation scores.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lmittmann/tint"
	flag "github.com/spf13/pflag"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/config"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/reputation"
	"github.com/bitfsorg/libbond-go/store"
)

const usage = `usage: bondctl [flags] <command>

commands:
  init                 write a default config file
  series               list stored series snapshots
  series <id>          show one series snapshot
  escrows              list stored escrow snapshots
  events               dump the event log
  score <address>      reputation score for a protocol address

flags:
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configFlag := flag.String("config", "", "config file path (default {data-dir}/config.toml)")
	verboseFlag := flag.Bool("verbose", false, "enable verbose (debug) logging")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	log := newLogger(*verboseFlag)
	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return fmt.Errorf("missing command")
	}

	path := *configFlag
	if path == "" {
		path = filepath.Join(config.DefaultConfig().DataDir, "config.toml")
	}

	if args[0] == "init" {
		cfg := config.DefaultConfig()
		if err := config.SaveConfig(path, cfg); err != nil {
			return err
		}
		log.Info("wrote config", "path", path, "data_dir", cfg.DataDir)
		return nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return err
	}
	setLevel(cfg.LogLevel, *verboseFlag)

	switch args[0] {
	case "series":
		if len(args) > 1 {
			return showSeries(cfg, args[1])
		}
		return listSeries(cfg)
	case "escrows":
		return listEscrows(cfg)
	case "events":
		return dumpEvents(cfg)
	case "score":
		if len(args) < 2 {
			return fmt.Errorf("score: missing protocol address")
		}
		return showScore(cfg, args[1])
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
}

// setLevel is a no-op today; the config log level only matters once
// bondctl grows commands that construct live series.
func setLevel(string, bool) {}

func openStore(cfg config.Config) (*store.BoltStore, error) {
	return store.OpenBoltStore(filepath.Join(cfg.DataDir, "state.db"))
}

func listSeries(cfg config.Config) error {
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	snaps, err := s.ListSeries()
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		fmt.Printf("%s  supply=%d received=%d matured=%v\n",
			snap.ID, snap.Supply, snap.TotalReceived, snap.Matured)
	}
	fmt.Printf("%d series\n", len(snaps))
	return nil
}

func showSeries(cfg config.Config, idStr string) error {
	id, err := bond.ParseSeriesID(idStr)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := s.GetSeries(id)
	if err != nil {
		return err
	}
	fmt.Printf("series    %s\n", snap.ID)
	fmt.Printf("issuer    %s\n", snap.Terms.Issuer)
	fmt.Printf("share     %d bps\n", snap.Terms.ShareBps)
	fmt.Printf("maturity  %s\n", snap.Terms.Maturity.UTC().Format("2006-01-02T15:04:05Z"))
	fmt.Printf("supply    %d\n", snap.Supply)
	fmt.Printf("received  %d\n", snap.TotalReceived)
	fmt.Printf("matured   %v\n", snap.Matured)
	fmt.Printf("holders   %d\n", len(snap.Balances))
	return nil
}

func listEscrows(cfg config.Config) error {
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	snaps, err := s.ListEscrows()
	if err != nil {
		return err
	}
	for _, snap := range snaps {
		fmt.Printf("%s  state=%s principal=%d claimed=%d\n",
			snap.Series.ID, snap.State, snap.Principal, snap.TotalPrincipalClaimed)
	}
	fmt.Printf("%d escrows\n", len(snaps))
	return nil
}

func dumpEvents(cfg config.Config) error {
	log, err := events.OpenBoltLog(filepath.Join(cfg.DataDir, "events.db"))
	if err != nil {
		return err
	}
	defer log.Close()

	evs, err := log.Events()
	if err != nil {
		return err
	}
	for _, ev := range evs {
		line := fmt.Sprintf("%6d  %s  %-20s series=%s actor=%s amount=%d",
			ev.Seq, ev.Time.UTC().Format("2006-01-02T15:04:05Z"), ev.Type, ev.Series, ev.Actor, ev.Amount)
		if ev.Reason != "" {
			line += "  reason=" + ev.Reason
		}
		fmt.Println(line)
	}
	return nil
}

func showScore(cfg config.Config, addrStr string) error {
	addr, err := bond.ParseAddress(addrStr)
	if err != nil {
		return err
	}
	s, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	snap, err := s.GetReputation()
	if err != nil {
		return err
	}
	engine, err := reputation.NewFromSnapshot(reputation.Config{}, snap)
	if err != nil {
		return err
	}

	fmt.Printf("score  %d\n", engine.Score(addr))
	if stats, ok := engine.Protocol(addr); ok {
		fmt.Printf("series        %d\n", stats.SeriesCount)
		fmt.Printf("payments      %d\n", stats.OnTimePayments+stats.LatePayments)
		fmt.Printf("on time       %d\n", stats.OnTimePayments)
		fmt.Printf("delivered     %d\n", stats.TotalDelivered)
		fmt.Printf("promised      %d\n", stats.TotalPromised)
		fmt.Printf("blacklisted   %v\n", stats.Blacklisted)
	}
	return nil
}
