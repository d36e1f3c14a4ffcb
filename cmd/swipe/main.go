package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ratemyrep/internal/apiclient"
	"ratemyrep/internal/domain"
	"ratemyrep/internal/swipe"
)

// cliConfig es la configuracion de la terminal de swipe.
type cliConfig struct {
	APIBaseURL string `env:"RATEMYREP_API_URL" envDefault:"http://localhost:8080"`
	ZIP        string `env:"SWIPE_ZIP"`
	State      string `env:"SWIPE_STATE"`
	Limit      int    `env:"SWIPE_LIMIT" envDefault:"20"`
}

func main() {
	ctx := context.Background()
	reader := bufio.NewReader(os.Stdin)

	_ = godotenv.Load()

	var cfg cliConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := apiclient.New(cfg.APIBaseURL)

	loc, err := client.Location(ctx, apiclient.LocationParams{ZIP: cfg.ZIP, State: cfg.State})
	if err != nil {
		log.Fatalf("resolve location: %v", err)
	}
	fmt.Printf("Ubicacion: %s, %s (%s)\n", loc.City, loc.StateCode, loc.Source)

	page, err := client.Officials(ctx, apiclient.OfficialsParams{ZIP: cfg.ZIP, State: loc.StateCode, Limit: cfg.Limit})
	if err != nil {
		log.Fatalf("list officials: %v", err)
	}
	if page.Fallback {
		fmt.Println("Aviso: el servidor respondio con datos de ejemplo.")
	}
	if len(page.Representatives) == 0 {
		fmt.Println("No hay funcionarios para esta ubicacion.")
		return
	}

	ctrl := swipe.NewController(logger, page.Representatives, client,
		swipe.WithLocation(&domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}),
	)

	for {
		printCard(ctrl.Snapshot())
		fmt.Print("[l] like  [d] dislike  [n] arrastrar n px  [s] stats  [q] salir: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		cmd := strings.ToLower(strings.TrimSpace(line))

		switch cmd {
		case "q":
			ctrl.Wait()
			printStats(ctrl.Snapshot().Stats)
			return
		case "s":
			printStats(ctrl.Snapshot().Stats)
			continue
		case "l":
			if !ctrl.Vote(swipe.LikeScore, domain.DirectionLike) {
				fmt.Println("Espera a que termine la animacion.")
			}
		case "d":
			if !ctrl.Vote(swipe.DislikeScore, domain.DirectionDislike) {
				fmt.Println("Espera a que termine la animacion.")
			}
		default:
			dx, err := strconv.ParseFloat(cmd, 64)
			if err != nil {
				fmt.Println("Comando invalido.")
				continue
			}
			drag(ctrl, dx)
		}
		waitIdle(ctrl)
	}
}

// drag simula un gesto horizontal completo de dx pixeles.
func drag(ctrl *swipe.Controller, dx float64) {
	if !ctrl.PointerDown(0, 0) {
		fmt.Println("La tarjeta esta ocupada.")
		return
	}
	ctrl.PointerMove(dx/2, 0)
	if hint := ctrl.Snapshot().Hint; hint != swipe.HintNone {
		fmt.Printf("  ... %s\n", strings.ToUpper(string(hint)))
	}
	ctrl.PointerMove(dx, 0)
	ctrl.PointerUp()
}

func waitIdle(ctrl *swipe.Controller) {
	deadline := time.Now().Add(2 * time.Second)
	for ctrl.State() != swipe.StateIdle && time.Now().Before(deadline) {
		time.Sleep(25 * time.Millisecond)
	}
}

func printCard(s swipe.Snapshot) {
	if s.Official == nil {
		return
	}
	o := s.Official
	fmt.Println()
	fmt.Printf("=== %s (%s) ===\n", o.Name, o.Party)
	fmt.Printf("%s %s  |  rating %.1f (%d)\n", o.State, o.District, o.Rating, o.TotalRatings)
	if len(o.KeyIssues) > 0 {
		fmt.Printf("Temas: %s\n", strings.Join(o.KeyIssues, ", "))
	}
	if s.LastVote != nil {
		fmt.Printf("Ultimo voto: %d (%s)\n", s.LastVote.Rating, s.LastVote.Direction)
	}
}

func printStats(st swipe.Stats) {
	fmt.Printf("Calificados: %d  |  Aprobacion: %d%%\n", st.RatedCount, st.Approval)
}
