package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/obmenapp/obmen-client/internal/api"
	"github.com/obmenapp/obmen-client/internal/config"
	"github.com/obmenapp/obmen-client/internal/models"
	"github.com/obmenapp/obmen-client/internal/services/exchange"
	"github.com/obmenapp/obmen-client/internal/services/notification"
	"github.com/obmenapp/obmen-client/internal/services/review"
	"github.com/obmenapp/obmen-client/internal/utils"
)

func main() {
	// Загружаем конфигурацию
	cfg := config.LoadConfig()

	// Создаём клиент удалённого сервиса
	apiClient := api.NewClient(cfg)

	if len(os.Args) < 2 {
		usage()
	}
	command := os.Args[1]
	args := os.Args[2:]

	// Вход не требует действующей сессии
	if command == "login" {
		runLogin(apiClient, args)
		return
	}

	if cfg.AuthToken == "" {
		log.Fatal("❌ Не задан OBMEN_AUTH_TOKEN: выполните `exchange-cli login` и сохраните токен")
	}

	session, err := utils.NewSession(cfg.AuthToken)
	if err != nil {
		log.Fatalf("❌ Неверный токен сессии: %v", err)
	}
	if session.Expired() {
		log.Fatal("❌ Срок действия токена истёк, войдите заново")
	}

	// Создаём сервисы
	exchanges := exchange.NewExchangeService(apiClient, session.UserID())
	counter := notification.NewCounter(apiClient)
	notifications := notification.NewNotificationService(apiClient, counter)
	reviews := review.NewReviewService(apiClient)

	switch command {
	case "exchanges":
		runExchanges(exchanges)
	case "show":
		runShow(exchanges, args)
	case "accept", "refuse", "complete", "cancel":
		runTransition(exchanges, models.ExchangeAction(command), args)
	case "review":
		runReview(exchanges, reviews, args)
	case "notifications":
		runNotifications(notifications)
	case "read-all":
		runReadAll(notifications)
	case "watch":
		runWatch(counter, cfg.PollInterval)
	default:
		usage()
	}
}

func usage() {
	fmt.Println(`Использование: exchange-cli <команда> [аргументы]

Команды:
  login <email> <пароль>     вход, печатает токен сессии
  exchanges                  списки полученных и отправленных заявок
  show <id>                  заявка и доступные по ней действия
  accept|refuse <id>         принять или отклонить заявку (владелец)
  complete <id>              пометить обмен состоявшимся (любая сторона)
  cancel <id>                отменить заявку (инициатор)
  review <id> <оценка> [текст]  оставить отзыв о завершённом обмене
  notifications              список уведомлений
  read-all                   пометить все уведомления прочитанными
  watch                      следить за счётчиком непрочитанных (Ctrl+C — выход)`)
	os.Exit(2)
}

// requestContext возвращает контекст с таймаутом для одной команды
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

func runLogin(apiClient *api.Client, args []string) {
	if len(args) != 2 {
		usage()
	}

	ctx, cancel := requestContext()
	defer cancel()

	token, err := apiClient.Login(ctx, args[0], args[1])
	if err != nil {
		log.Fatalf("❌ Ошибка входа: %v", err)
	}

	log.Println("✅ Вход выполнен")
	fmt.Printf("OBMEN_AUTH_TOKEN=%s\n", token)
}

func runExchanges(exchanges *exchange.ExchangeService) {
	ctx, cancel := requestContext()
	defer cancel()

	received, sent, err := exchanges.Reload(ctx)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки обменов: %v", err)
	}

	fmt.Printf("Полученные заявки (%d):\n", len(received))
	printExchanges(exchanges, received)
	fmt.Printf("\nОтправленные заявки (%d):\n", len(sent))
	printExchanges(exchanges, sent)
}

func printExchanges(exchanges *exchange.ExchangeService, list []models.ExchangeRequest) {
	for i := range list {
		ex := &list[i]
		actions := exchange.AllowedActions(ex, exchanges.UserID())
		fmt.Printf("  %s  [%s]  %s — %s  (доступно: %v)\n",
			ex.ID, ex.Status, ex.ListingTitle(), ex.OfferInReturn, actions)
	}
	if len(list) == 0 {
		fmt.Println("  нет заявок")
	}
}

func runShow(exchanges *exchange.ExchangeService, args []string) {
	id := parseID(args)

	ctx, cancel := requestContext()
	defer cancel()

	ex, err := exchanges.Get(ctx, id)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки заявки: %v", err)
	}

	fmt.Printf("Заявка %s\n", ex.ID)
	fmt.Printf("  Статус:       %s\n", ex.Status)
	fmt.Printf("  Объявление:   %s\n", ex.ListingTitle())
	fmt.Printf("  Инициатор:    %s\n", ex.Initiator.Name)
	fmt.Printf("  Получатель:   %s\n", ex.Recipient.Name)
	fmt.Printf("  В ответ:      %s\n", ex.OfferInReturn)
	fmt.Printf("  Дата обмена:  %s\n", ex.ProposedDate.Format(time.DateOnly))
	if ex.InitialMessage != "" {
		fmt.Printf("  Сообщение:    %s\n", ex.InitialMessage)
	}
	fmt.Printf("  Действия:     %v\n", exchange.AllowedActions(ex, exchanges.UserID()))
	if exchange.ReviewEligible(ex) {
		fmt.Println("  Можно оставить отзыв: exchange-cli review", ex.ID, "<оценка>")
	}
}

func runTransition(exchanges *exchange.ExchangeService, action models.ExchangeAction, args []string) {
	id := parseID(args)

	ctx, cancel := requestContext()
	defer cancel()

	ex, err := exchanges.Get(ctx, id)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки заявки: %v", err)
	}

	var result *exchange.TransitionResult
	switch action {
	case models.ActionAccept:
		result, err = exchanges.Accept(ctx, ex)
	case models.ActionRefuse:
		result, err = exchanges.Refuse(ctx, ex)
	case models.ActionComplete:
		result, err = exchanges.Complete(ctx, ex)
	case models.ActionCancel:
		result, err = exchanges.Cancel(ctx, ex)
	}
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	log.Printf("✅ %s", result.Message)
	fmt.Printf("Заявка %s теперь в статусе %s\n", result.Exchange.ID, result.Exchange.Status)
}

func runReview(exchanges *exchange.ExchangeService, reviews *review.ReviewService, args []string) {
	if len(args) < 2 {
		usage()
	}
	id := parseID(args[:1])

	rating, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatalf("❌ Неверная оценка %q", args[1])
	}
	comment := ""
	if len(args) > 2 {
		comment = args[2]
	}

	ctx, cancel := requestContext()
	defer cancel()

	ex, err := exchanges.Get(ctx, id)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки заявки: %v", err)
	}

	created, err := reviews.Create(ctx, ex, &models.ReviewCreatePayload{Rating: rating, Comment: comment})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Printf("✅ Отзыв %s сохранён", created.ID)
}

func runNotifications(notifications *notification.NotificationService) {
	ctx, cancel := requestContext()
	defer cancel()

	list, err := notifications.List(ctx)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	fmt.Printf("Уведомления (%d, непрочитанных %d):\n", len(list), notification.CountUnread(list))
	for i := range list {
		n := &list[i]
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Printf("  %s %s  %-17s %s\n", marker, n.CreatedAt.Format("02.01.2006 15:04"), n.Type, n.Message)
	}
}

func runReadAll(notifications *notification.NotificationService) {
	ctx, cancel := requestContext()
	defer cancel()

	list, err := notifications.List(ctx)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	if err := notifications.MarkAllRead(ctx, notification.CountUnread(list)); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✅ Все уведомления помечены прочитанными")
}

// runWatch следит за счётчиком непрочитанных до Ctrl+C
func runWatch(counter *notification.Counter, interval time.Duration) {
	poller := notification.StartPoller(counter, interval)
	defer poller.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("✅ Опрос каждые %s, Ctrl+C — выход", interval)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fmt.Printf("Непрочитанных уведомлений: %d\n", counter.Value())
		}
	}
}

func parseID(args []string) uuid.UUID {
	if len(args) < 1 {
		usage()
	}
	id, err := uuid.Parse(args[0])
	if err != nil {
		log.Fatalf("❌ Неверный формат идентификатора %q", args[0])
	}
	return id
}
