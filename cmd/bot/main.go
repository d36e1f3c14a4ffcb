package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/caarlos0/env/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"ratemyrep/internal/apiclient"
	"ratemyrep/internal/domain"
	"ratemyrep/internal/swipe"
)

const (
	callbackLike = "VOTE_like"
	callbackNope = "VOTE_nope"
)

type botConfig struct {
	Token      string `env:"BOT_TOKEN,required"`
	APIBaseURL string `env:"RATEMYREP_API_URL" envDefault:"http://localhost:8080"`
	Limit      int    `env:"SWIPE_LIMIT" envDefault:"20"`
}

// chatDeck es la tarjeta activa de un chat.
type chatDeck struct {
	ctrl *swipe.Controller
	// answered es la cantidad de votos para los que ya se mando la tarjeta siguiente.
	answered int
}

type bot struct {
	api    *tgbotapi.BotAPI
	client *apiclient.Client
	logger *zap.Logger
	limit  int

	mu    sync.Mutex
	decks map[int64]*chatDeck
}

func main() {
	_ = godotenv.Load()

	var cfg botConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	api, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		logger.Fatal("telegram bot init", zap.Error(err))
	}
	logger.Info("bot started", zap.String("username", api.Self.UserName))

	b := &bot{
		api:    api,
		client: apiclient.New(cfg.APIBaseURL),
		logger: logger,
		limit:  cfg.Limit,
		decks:  make(map[int64]*chatDeck),
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	for update := range api.GetUpdatesChan(u) {
		switch {
		case update.CallbackQuery != nil:
			b.handleCallback(update.CallbackQuery)
		case update.Message != nil && update.Message.IsCommand():
			b.handleCommand(update.Message)
		}
	}
}

func (b *bot) handleCommand(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start", "zip":
		zip := strings.TrimSpace(msg.CommandArguments())
		if zip == "" {
			b.send(tgbotapi.NewMessage(chatID, "Enviame tu ZIP: /zip 27713"))
			return
		}
		b.startDeck(chatID, zip)
	case "stats":
		deck := b.deck(chatID)
		if deck == nil {
			b.send(tgbotapi.NewMessage(chatID, "Primero elegi una ubicacion con /zip."))
			return
		}
		st := deck.ctrl.Snapshot().Stats
		b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Calificados: %d\nAprobacion: %d%%", st.RatedCount, st.Approval)))
	default:
		b.send(tgbotapi.NewMessage(chatID, "Comandos: /zip <codigo>, /stats"))
	}
}

func (b *bot) startDeck(chatID int64, zip string) {
	ctx := context.Background()
	loc, err := b.client.Location(ctx, apiclient.LocationParams{ZIP: zip})
	if err != nil {
		b.logger.Warn("resolve location failed", zap.Int64("chat_id", chatID), zap.Error(err))
		b.send(tgbotapi.NewMessage(chatID, "No pude resolver ese ZIP."))
		return
	}
	page, err := b.client.Officials(ctx, apiclient.OfficialsParams{ZIP: zip, Limit: b.limit})
	if err != nil || len(page.Representatives) == 0 {
		b.send(tgbotapi.NewMessage(chatID, "No hay funcionarios para esa ubicacion."))
		return
	}

	deck := &chatDeck{}
	deck.ctrl = swipe.NewController(b.logger, page.Representatives, b.client,
		swipe.WithLocation(&domain.Coordinates{Lat: loc.Lat, Lng: loc.Lng}),
		swipe.WithOnChange(func(s swipe.Snapshot) { b.onChange(chatID, deck, s) }),
	)
	b.mu.Lock()
	b.decks[chatID] = deck
	b.mu.Unlock()

	b.send(tgbotapi.NewMessage(chatID, fmt.Sprintf("%s, %s: %d funcionarios.", loc.City, loc.StateCode, len(page.Representatives))))
	b.sendCard(chatID, deck.ctrl.Snapshot())
}

// onChange manda la siguiente tarjeta cuando termina la animacion del voto.
func (b *bot) onChange(chatID int64, deck *chatDeck, s swipe.Snapshot) {
	if s.State != swipe.StateIdle || s.LastVote == nil {
		return
	}
	b.mu.Lock()
	advanced := s.Stats.RatedCount > deck.answered
	deck.answered = s.Stats.RatedCount
	b.mu.Unlock()
	if advanced {
		b.sendCard(chatID, s)
	}
}

// callbackChatID devuelve el chat del mensaje con botones. Los callbacks de
// mensajes inline llegan sin Message y no tienen mazo asociado.
func callbackChatID(cq *tgbotapi.CallbackQuery) (int64, bool) {
	if cq == nil || cq.Message == nil || cq.Message.Chat == nil {
		return 0, false
	}
	return cq.Message.Chat.ID, true
}

func (b *bot) handleCallback(cq *tgbotapi.CallbackQuery) {
	chatID, ok := callbackChatID(cq)
	if !ok {
		b.request(tgbotapi.NewCallback(cq.ID, "Abri el bot en un chat para votar"))
		return
	}
	deck := b.deck(chatID)
	if deck == nil {
		b.request(tgbotapi.NewCallback(cq.ID, "Elegi una ubicacion con /zip"))
		return
	}

	ok = false
	switch cq.Data {
	case callbackLike:
		ok = deck.ctrl.Vote(swipe.LikeScore, domain.DirectionLike)
	case callbackNope:
		ok = deck.ctrl.Vote(swipe.DislikeScore, domain.DirectionDislike)
	}
	if !ok {
		b.request(tgbotapi.NewCallback(cq.ID, "Un momento..."))
		return
	}
	b.request(tgbotapi.NewCallback(cq.ID, ""))
}

func (b *bot) deck(chatID int64) *chatDeck {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.decks[chatID]
}

func (b *bot) sendCard(chatID int64, s swipe.Snapshot) {
	if s.Official == nil {
		return
	}
	o := s.Official
	text := fmt.Sprintf("*%s*\n%s · %s %s\nRating %.1f (%d votos)",
		o.Name, o.Party, o.State, o.District, o.Rating, o.TotalRatings)
	if len(o.KeyIssues) > 0 {
		text += "\n" + strings.Join(o.KeyIssues, ", ")
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👎 Nope", callbackNope),
		tgbotapi.NewInlineKeyboardButtonData("👍 Like", callbackLike),
	))
	b.send(msg)
}

func (b *bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.logger.Warn("telegram send failed", zap.Error(err))
	}
}

func (b *bot) request(c tgbotapi.Chattable) {
	if _, err := b.api.Request(c); err != nil {
		b.logger.Warn("telegram request failed", zap.Error(err))
	}
}
