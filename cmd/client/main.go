// Package main is the interactive shop shell: a command-line stand-in for
// the marketing site's pages that drives the commerce store, the access
// gate, the minigame and the leaderboard sync.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/atelier-filial/filial/internal/assets"
	"github.com/atelier-filial/filial/internal/client/leaderboard"
	"github.com/atelier-filial/filial/internal/commerce"
	"github.com/atelier-filial/filial/internal/game"
	"github.com/atelier-filial/filial/internal/gate"
	"github.com/atelier-filial/filial/internal/logger"
	"github.com/atelier-filial/filial/internal/storage"
	"github.com/atelier-filial/filial/internal/viewer"
	"github.com/atelier-filial/filial/internal/widgets"
)

var (
	version   string
	buildDate string
)

// shell bundles everything a REPL command can touch.
type shell struct {
	store    *commerce.Store
	catalog  []commerce.Product
	gallery  *widgets.Gallery
	resolver *assets.Resolver
	board    *leaderboard.Client
	eventID  string
	assetURL string
	log      *zap.Logger
}

// repl runs the interactive loop, accepting commands to browse, shop and
// play the gate minigame.
func repl(s *shell) {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("filial> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Commands: help, open <page>, play, signup <email> <pass>,")
			fmt.Println("  login <email> <pass>, logout, whoami, shop, images <key>,")
			fmt.Println("  sizes [in], add <key> [qty], cart, qty <key> <n>, remove <key>,")
			fmt.Println("  checkout, orders, wish <id>, wishlist, best, top, home, exit")
		case "open":
			if len(args) < 2 {
				fmt.Println("Usage: open <page>")
				continue
			}
			s.openPage(args[1])
		case "play":
			s.playGate()
		case "signup":
			if len(args) < 3 {
				fmt.Println("Usage: signup <email> <password>")
				continue
			}
			if _, err := s.store.SignUp(args[1], args[2]); err != nil {
				fmt.Println("Sign up failed:", err)
			} else {
				fmt.Println("Welcome,", args[1])
			}
		case "login":
			if len(args) < 3 {
				fmt.Println("Usage: login <email> <password>")
				continue
			}
			if _, err := s.store.LogIn(args[1], args[2]); err != nil {
				fmt.Println("Log in failed:", err)
			} else {
				fmt.Println("Logged in")
			}
		case "logout":
			s.store.LogOut()
			fmt.Println("Logged out")
		case "whoami":
			if sess, ok := s.store.Session(); ok {
				fmt.Println(sess.Email)
			} else {
				fmt.Println("Not logged in")
			}
		case "shop":
			for _, p := range s.catalog {
				fmt.Printf("%-10s %-20s %.0f USD\n", p.Key, p.Name, p.Price)
			}
		case "images":
			if len(args) < 2 {
				fmt.Println("Usage: images <key>")
				continue
			}
			s.showImages(args[1])
		case "sizes":
			unit := widgets.UnitCm
			if len(args) > 1 && args[1] == "in" {
				unit = widgets.UnitInch
			}
			for _, row := range widgets.DefaultSizeGuide().Table(unit) {
				fmt.Println(strings.Join(row, "  "))
			}
		case "add":
			if len(args) < 2 {
				fmt.Println("Usage: add <key> [qty]")
				continue
			}
			qty := 1
			if len(args) > 2 {
				qty, _ = strconv.Atoi(args[2])
			}
			s.addToCart(args[1], qty)
		case "cart":
			s.showCart()
		case "qty":
			if len(args) < 3 {
				fmt.Println("Usage: qty <key> <n>")
				continue
			}
			n, _ := strconv.Atoi(args[2])
			s.store.SetCartItemQuantity(args[1], n)
			s.showCart()
		case "remove":
			if len(args) < 2 {
				fmt.Println("Usage: remove <key>")
				continue
			}
			s.store.RemoveCartItem(args[1])
			s.showCart()
		case "checkout":
			order, err := s.store.Checkout()
			if err != nil {
				fmt.Println("Checkout failed:", err)
			} else {
				fmt.Printf("Order %s placed, total %.0f USD\n", order.ID, order.Total)
			}
		case "orders":
			for _, o := range s.store.Orders() {
				fmt.Printf("%s  %.0f USD  %d items\n", o.ID, o.Total, len(o.Items))
			}
		case "wish":
			if len(args) < 2 {
				fmt.Println("Usage: wish <product-id>")
				continue
			}
			added, err := s.store.ToggleWishlist(args[1])
			switch {
			case err != nil:
				fmt.Println("Wishlist failed:", err)
			case added:
				fmt.Println("Added to wishlist")
			default:
				fmt.Println("Removed from wishlist")
			}
		case "wishlist":
			for _, id := range s.store.Wishlist() {
				fmt.Println(id)
			}
		case "best":
			fmt.Println("Local best:", s.store.BestScore(s.eventID))
		case "top":
			s.showTop()
		case "home":
			s.runHomeViewer()
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// openPage evaluates the gate rules the way a page load would.
func (s *shell) openPage(raw string) {
	page := raw
	query := url.Values{}
	if i := strings.Index(raw, "?"); i >= 0 {
		page = raw[:i]
		query, _ = url.ParseQuery(raw[i+1:])
	}

	d := gate.Decide(page, query, s.store.GatePassed())
	if d.SetGatePassed {
		s.store.SetGatePassed()
	}
	if d.RedirectTo != "" {
		fmt.Println("→ redirect to", d.RedirectTo)
		if strings.HasPrefix(d.RedirectTo, gate.Page) {
			fmt.Println("The gate is locked. Type 'play' to unlock it.")
		}
		return
	}
	fmt.Println("Showing", page)
}

// playGate runs one simulated minigame round and records the result. A
// collision ends the run; surviving the round passes the gate.
func (s *shell) playGate() {
	g := game.New(game.Config{})
	g.Start()

	const dt = 1.0 / 60
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for g.Phase() == game.PhaseRunning && g.Elapsed() < 60 {
		x, _, _ := g.Player()
		g.MovePlayer(x + (rng.Float64()-0.5)*8)
		g.Step(dt)
	}

	score := g.Score()
	if g.Phase() == game.PhaseRunning {
		// Survived the whole round.
		score = int64(g.Elapsed() * 10)
	}
	fmt.Printf("Run over: survived %.1fs, score %d\n", g.Elapsed(), score)

	s.store.JoinEvent(s.eventID)
	if s.store.RecordScore(s.eventID, score) {
		fmt.Println("New local best!")
	}
	s.store.SetGatePassed()
	fmt.Println("Access granted")

	if s.board.Configured() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		resp, err := s.board.SubmitBest(ctx, s.eventID, s.store.BestScore(s.eventID), g.RunID())
		if err != nil {
			s.log.Warn("leaderboard submit failed", zap.Error(err))
		} else if resp.Accepted {
			fmt.Println("Leaderboard best updated")
		}
	}
}

func (s *shell) addToCart(key string, qty int) {
	product, ok := commerce.FindProduct(s.catalog, key)
	if !ok {
		fmt.Println("Unknown product:", key)
		return
	}

	err := s.store.AddCartItem(commerce.CartItem{
		Key:      product.Key,
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Quantity: qty,
	})
	if err != nil {
		// The pages route to the login form here.
		fmt.Println("Please log in first (login <email> <password>)")
		return
	}
	fmt.Printf("Added. Cart: %d items, %.0f USD\n", s.store.CartCount(), s.store.CartTotal())
}

func (s *shell) showCart() {
	items := s.store.Cart()
	if len(items) == 0 {
		fmt.Println("Cart is empty")
		return
	}
	for _, item := range items {
		fmt.Printf("%-10s x%d  %.0f USD\n", item.Key, item.Quantity, item.Price*float64(item.Quantity))
	}
	fmt.Printf("Total: %.0f USD\n", s.store.CartTotal())
}

func (s *shell) showImages(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	images := s.gallery.Resolve(ctx, key)
	if len(images) == 0 {
		fmt.Println("No images found")
		return
	}
	for _, src := range images {
		fmt.Println(src)
	}
}

func (s *shell) showTop() {
	if !s.board.Configured() {
		fmt.Println("No leaderboard configured; local best:", s.store.BestScore(s.eventID))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	entries, err := s.board.Top(ctx, s.eventID, 10)
	if err != nil {
		fmt.Println("Leaderboard unavailable:", err)
		return
	}
	for i, e := range entries {
		fmt.Printf("%2d. %-28s %d\n", i+1, e.Email, e.Score)
	}
}

// runHomeViewer drives a short headless session of the home 3D viewer:
// resolve the model assets, tap into the gallery, focus a model and let the
// camera settle.
func (s *shell) runHomeViewer() {
	v := viewer.New(viewer.Options{
		HeroKey: "sweater",
		// The shell has no ray caster; map the horizontal thirds of a
		// 300px-wide mount onto the models in load order.
		Picker: viewer.PickerFunc(func(x, y float64) (string, bool) {
			keys := []string{"mw1", "sweater", "button1"}
			idx := int(x / 100)
			if idx < 0 || idx >= len(keys) {
				return "", false
			}
			return keys[idx], true
		}),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, p := range s.catalog {
		sources := p.ModelSources
		if s.assetURL != "" {
			src, err := s.resolver.First(ctx, prefixAll(s.assetURL, sources))
			if err != nil {
				s.log.Warn("model unavailable", zap.String("model", p.Key), zap.Error(err))
				continue
			}
			sources = []string{src}
		}
		v.AddModel(p.Key, viewer.ModelInfo{Height: 1})
		fmt.Printf("Loaded %s (%s)\n", p.Key, sources[0])
	}
	if len(v.Keys()) == 0 {
		fmt.Println(viewer.StatusUnavailable)
		return
	}

	step := func(frames int) {
		for range frames {
			v.Advance(1.0 / 60)
		}
	}

	step(30)
	v.PointerDown(150, 100)
	v.PointerUp(150, 100) // tap the hero: enter the gallery
	step(60)
	fmt.Printf("Gallery open, camera z %.2f fov %.1f\n", v.CameraZ(), v.Fov())

	v.PointerDown(50, 100)
	v.PointerUp(50, 100) // focus the left model
	step(90)
	if key, ok := v.ActiveModel(); ok {
		m, _ := v.Model(key)
		fmt.Printf("Focused %s, scale %.2f, camera z %.2f\n", key, m.RenderScale, v.CameraZ())
	}
}

func prefixAll(base string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = strings.TrimSuffix(base, "/") + "/" + strings.TrimLeft(p, "/")
	}
	return out
}

// main parses command-line flags and starts the shop shell.
func main() {
	var (
		boardURL  string
		assetURL  string
		storePath string
		eventID   string
		email     string
		showVer   bool
	)

	flag.StringVar(&boardURL, "url", "", "leaderboard server base URL (empty = local-only)")
	flag.StringVar(&assetURL, "assets", "", "static asset host base URL")
	flag.StringVar(&storePath, "store", "filial.json", "path to the local store file")
	flag.StringVar(&eventID, "event", "gate-2026", "active event id")
	flag.StringVar(&email, "email", "", "email for leaderboard submissions")
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	flag.Parse()

	if showVer {
		fmt.Printf("Filial Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Warn"); err != nil {
		fmt.Fprintln(os.Stderr, "failed to init logger:", err)
		os.Exit(1)
	}

	kv := storage.New(storePath, log.Log)
	store := commerce.NewStore(kv)
	store.Indicator = func(count int) {
		// The pages re-render their cart badges here; the shell updates
		// the prompt lazily instead.
	}

	catalog := commerce.DefaultCatalog()
	resolver := assets.NewResolver(&http.Client{Timeout: 10 * time.Second}, log.Log)
	gallery := widgets.NewGallery(resolver, catalog)

	if email == "" {
		if sess, ok := store.Session(); ok {
			email = sess.Email
		}
	}
	board := leaderboard.New(&http.Client{Timeout: 10 * time.Second}, boardURL, email)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	leaderboard.StartAutoSync(ctx, board, store, 30*time.Second, log.Log)

	repl(&shell{
		store:    store,
		catalog:  catalog,
		gallery:  gallery,
		resolver: resolver,
		board:    board,
		eventID:  eventID,
		assetURL: assetURL,
		log:      log.Log,
	})
}
