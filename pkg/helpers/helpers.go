package helpers

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/go-mclib/hud/pkg/assets"
	"github.com/go-mclib/hud/pkg/bridge"
	"github.com/go-mclib/hud/pkg/hud"
	"github.com/go-mclib/hud/pkg/inventory"
	"github.com/go-mclib/hud/tui"
)

// Flags holds the CLI flags of the HUD binary.
type Flags struct {
	HostURL              string
	Capacity             int
	PageSize             int
	QuickSlots           int
	AccessorySlots       int
	UnitWeight           float64
	MaxWeight            float64
	NoWarningTier        bool
	Assets               string
	AssetSource          string
	MaxReconnectAttempts int
	MaxLogLines          int
	Demo                 bool
	Schema               bool
}

// RegisterFlags registers the standard CLI flags on the default flag set.
func RegisterFlags(f *Flags) {
	flag.StringVar(&f.HostURL, "host", "ws://localhost:8787/hud", "host websocket url (env HUD_HOST_URL)")
	flag.IntVar(&f.Capacity, "slots", inventory.DefaultCapacity, "total inventory slots")
	flag.IntVar(&f.PageSize, "page", inventory.DefaultPageSize, "slots per page")
	flag.IntVar(&f.QuickSlots, "quick", 5, "quick slots (mirror the first slots)")
	flag.IntVar(&f.AccessorySlots, "accessories", inventory.DefaultAccessorySlots, "accessory slots")
	flag.Float64Var(&f.UnitWeight, "unit-weight", 2, "weight of one occupied slot")
	flag.Float64Var(&f.MaxWeight, "max-weight", 64, "carry capacity")
	flag.BoolVar(&f.NoWarningTier, "no-warning", false, "disable the warning color tier")
	flag.StringVar(&f.Assets, "assets", "assets", "directory holding items/<model>.png")
	flag.StringVar(&f.AssetSource, "asset-source", "", "fetch the icon pack from this source into -assets first")
	flag.IntVar(&f.MaxReconnectAttempts, "reconnects", 5, "max reconnect attempts (-1 = infinite, 0 = none)")
	flag.IntVar(&f.MaxLogLines, "log-lines", 200, "lines kept in the log pane")
	flag.BoolVar(&f.Demo, "demo", false, "run against a built-in demo host")
	flag.BoolVar(&f.Schema, "schema", false, "print the JSON schema of host payloads and exit")
}

// ApplyEnv fills unset flags from the environment.
func ApplyEnv(f *Flags) {
	if v := os.Getenv("HUD_HOST_URL"); v != "" && !isFlagSet("host") {
		f.HostURL = v
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			set = true
		}
	})
	return set
}

// Config turns the flags into a HUD config.
func (f Flags) Config() hud.Config {
	cfg := hud.DefaultConfig()
	if f.Capacity > 0 {
		cfg.Capacity = f.Capacity
	}
	cfg.PageSize = f.PageSize
	if cfg.PageSize <= 0 || cfg.PageSize > cfg.Capacity {
		cfg.PageSize = cfg.Capacity
	}
	cfg.QuickSlots = max(min(f.QuickSlots, cfg.Capacity), 1)
	cfg.AccessorySlots = max(f.AccessorySlots, 1)
	cfg.Weight.WarningTier = !f.NoWarningTier
	if f.UnitWeight >= 0 {
		cfg.Weight.UnitWeight = f.UnitWeight
	}
	if f.MaxWeight > 0 {
		cfg.Weight.MaxCapacity = f.MaxWeight
	}
	return cfg
}

// Run starts the TUI and the host bridge and blocks until the TUI exits.
func Run(ctx context.Context, f Flags) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if f.AssetSource != "" {
		if err := assets.Fetch(ctx, f.AssetSource, f.Assets); err != nil {
			return err
		}
	}
	icons := assets.NewLoader(os.DirFS(f.Assets))

	var (
		emitter bridge.Emitter
		client  *bridge.Client
		demo    *DemoHost
	)
	if f.Demo {
		demo = NewDemoHost()
		emitter = demo
	} else {
		client = bridge.NewClient(f.HostURL)
		client.MaxReconnectAttempts = f.MaxReconnectAttempts
		emitter = client
	}

	program, _, writer := tui.Start(f.Config(), tui.Options{
		Emitter:     emitter,
		Icons:       icons,
		MaxLogLines: f.MaxLogLines,
	})
	deliver := func(fr bridge.Frame) { tui.Deliver(program, fr) }

	if demo != nil {
		demo.Attach(deliver, log.New(writer, "", log.LstdFlags))
		defer demo.Close()
		demo.Start()
	} else {
		client.Logger = log.New(writer, "", log.LstdFlags)
		go func() {
			if err := client.Run(ctx, deliver); err != nil && ctx.Err() == nil {
				client.Logger.Printf("bridge: stopped: %v", err)
			}
		}()
	}

	_, err := program.Run()
	return err
}

// PrintSchema writes the JSON schema of the item payload and the wire frame.
func PrintSchema(w io.Writer) error {
	schemas := map[string]*jsonschema.Schema{
		"item":  jsonschema.Reflect(&inventory.Item{}),
		"frame": jsonschema.Reflect(&bridge.Frame{}),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(schemas); err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return nil
}
