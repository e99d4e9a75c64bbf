package api

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/client"
	"github.com/google/uuid"

	"github.com/obmenapp/obmen-client/internal/config"
	"github.com/obmenapp/obmen-client/internal/models"
)

// Client клиент удалённого сервиса обменов. Сервис владеет всем
// долговременным состоянием; клиент только читает его и отправляет
// мутации, ничего не сохраняя локально.
type Client struct {
	cc    *client.Client
	token string
}

// NewClient создаёт новый экземпляр клиента
func NewClient(cfg *config.Config) *Client {
	cc := client.New()
	cc.SetBaseURL(cfg.APIBaseURL)
	cc.SetTimeout(cfg.HTTPTimeout)
	cc.SetHeader("Accept", "application/json")

	c := &Client{cc: cc}
	if cfg.AuthToken != "" {
		c.SetToken(cfg.AuthToken)
	}
	return c
}

// SetToken устанавливает токен сессии для последующих запросов
func (c *Client) SetToken(token string) {
	c.token = token
	c.cc.SetHeader("Authorization", "Bearer "+token)
}

// Token возвращает текущий токен сессии
func (c *Client) Token() string {
	return c.token
}

// Login выполняет вход и сохраняет токен сессии
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := fiber.Map{"email": email, "password": password}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/auth/login", payload, &out); err != nil {
		return "", err
	}

	c.SetToken(out.Token)
	return out.Token, nil
}

// CreateExchange создаёт новую заявку на обмен
func (c *Client) CreateExchange(ctx context.Context, payload *models.ExchangeCreatePayload) (*models.ExchangeRequest, error) {
	var out models.ExchangeRequest
	if err := c.do(ctx, fiber.MethodPost, "/exchanges", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReceivedExchanges возвращает заявки, полученные текущим пользователем
func (c *Client) ReceivedExchanges(ctx context.Context) ([]models.ExchangeRequest, error) {
	var out []models.ExchangeRequest
	if err := c.do(ctx, fiber.MethodGet, "/exchanges/received", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SentExchanges возвращает заявки, отправленные текущим пользователем
func (c *Client) SentExchanges(ctx context.Context) ([]models.ExchangeRequest, error) {
	var out []models.ExchangeRequest
	if err := c.do(ctx, fiber.MethodGet, "/exchanges/sent", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetExchange возвращает заявку по идентификатору
func (c *Client) GetExchange(ctx context.Context, id uuid.UUID) (*models.ExchangeRequest, error) {
	var out models.ExchangeRequest
	if err := c.do(ctx, fiber.MethodGet, "/exchanges/"+id.String(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TransitionExchange запрашивает переход заявки в новый статус.
// Допустимость перехода окончательно решает удалённый сервис.
func (c *Client) TransitionExchange(ctx context.Context, id uuid.UUID, action models.ExchangeAction) (*models.ExchangeRequest, error) {
	path := fmt.Sprintf("/exchanges/%s/%s", id, action)

	var out models.ExchangeRequest
	if err := c.do(ctx, fiber.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Notifications возвращает уведомления текущего пользователя
func (c *Client) Notifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.do(ctx, fiber.MethodGet, "/notifications", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UnreadCount возвращает число непрочитанных уведомлений
func (c *Client) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(ctx, fiber.MethodGet, "/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// MarkNotificationRead помечает уведомление прочитанным
func (c *Client) MarkNotificationRead(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, fiber.MethodPut, fmt.Sprintf("/notifications/%s/read", id), nil, nil)
}

// MarkAllNotificationsRead помечает все уведомления прочитанными
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, fiber.MethodPut, "/notifications/read-all", nil, nil)
}

// CreateReview оставляет отзыв о завершённом обмене
func (c *Client) CreateReview(ctx context.Context, payload *models.ReviewCreatePayload) (*models.Review, error) {
	var out models.Review
	if err := c.do(ctx, fiber.MethodPost, "/reviews", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserReviews возвращает отзывы о пользователе
func (c *Client) UserReviews(ctx context.Context, userID uuid.UUID) ([]models.Review, error) {
	var out []models.Review
	if err := c.do(ctx, fiber.MethodGet, fmt.Sprintf("/users/%s/reviews", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Items возвращает список объявлений-вещей
func (c *Client) Items(ctx context.Context) ([]models.Listing, error) {
	return c.listings(ctx, "/items")
}

// Skills возвращает список объявлений-услуг
func (c *Client) Skills(ctx context.Context) ([]models.Listing, error) {
	return c.listings(ctx, "/skills")
}

// GetItem возвращает объявление-вещь по идентификатору
func (c *Client) GetItem(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return c.listing(ctx, "/items/"+id.String())
}

// GetSkill возвращает объявление-услугу по идентификатору
func (c *Client) GetSkill(ctx context.Context, id uuid.UUID) (*models.Listing, error) {
	return c.listing(ctx, "/skills/"+id.String())
}

func (c *Client) listings(ctx context.Context, path string) ([]models.Listing, error) {
	var out []models.Listing
	if err := c.do(ctx, fiber.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) listing(ctx context.Context, path string) (*models.Listing, error) {
	var out models.Listing
	if err := c.do(ctx, fiber.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// do выполняет запрос и декодирует успешный ответ в out.
// Любая транспортная ошибка превращается в ErrNetwork, ответы с кодом
// от 400 — в APIError соответствующей категории.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	reqConfig := client.Config{Ctx: ctx}
	if body != nil {
		reqConfig.Body = body
	}

	var (
		resp *client.Response
		err  error
	)
	switch method {
	case fiber.MethodGet:
		resp, err = c.cc.Get(path, reqConfig)
	case fiber.MethodPost:
		resp, err = c.cc.Post(path, reqConfig)
	case fiber.MethodPut:
		resp, err = c.cc.Put(path, reqConfig)
	case fiber.MethodDelete:
		resp, err = c.cc.Delete(path, reqConfig)
	default:
		return fmt.Errorf("неподдерживаемый метод %s", method)
	}

	if err != nil {
		return &APIError{Message: err.Error(), Kind: ErrNetwork}
	}
	defer resp.Close()

	if resp.StatusCode() >= fiber.StatusBadRequest {
		return responseError(resp)
	}

	if out != nil {
		if err := resp.JSON(out); err != nil {
			return fmt.Errorf("ошибка декодирования ответа: %w", err)
		}
	}
	return nil
}

// responseError строит APIError из ответа сервиса
func responseError(resp *client.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	_ = resp.JSON(&body) // Тело может быть пустым или не-JSON

	return &APIError{
		StatusCode: resp.StatusCode(),
		Message:    body.Error,
		Kind:       classify(resp.StatusCode()),
	}
}
