package models

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListingKind вид объявления
type ListingKind string

const (
	KindItem  ListingKind = "item"  // Вещь
	KindSkill ListingKind = "skill" // Услуга / навык
)

// Listing представляет объявление в системе. Вещи и услуги отличаются
// только дополнительными полями: у вещи есть категория, у услуги —
// текст с расписанием доступности.
type Listing struct {
	ID           uuid.UUID   `json:"id"`
	Kind         ListingKind `json:"kind"`
	OwnerID      uuid.UUID   `json:"owner_id"`
	OwnerName    string      `json:"owner_name,omitempty"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Active       bool        `json:"active"`
	Images       ImageList   `json:"images"`
	Category     string      `json:"category,omitempty"`     // Только для вещей
	Availability string      `json:"availability,omitempty"` // Только для услуг
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// MainImage возвращает первое изображение объявления или пустую строку
func (l *Listing) MainImage() string {
	if len(l.Images) == 0 {
		return ""
	}
	return l.Images[0]
}

// ListingDraft данные для создания или обновления объявления
type ListingDraft struct {
	Kind         ListingKind `json:"kind"`
	Title        string      `json:"title"`
	Description  string      `json:"description"`
	Images       ImageList   `json:"images,omitempty"`
	Category     string      `json:"category,omitempty"`
	Availability string      `json:"availability,omitempty"`
}

// ImageList список URL изображений объявления.
//
// Бэкенд сохраняет поле images неконсистентно: иногда это нативный
// JSON-массив, иногда массив, сериализованный в строку, иногда просто
// строка с URL через запятую. Разбор пробует варианты в этом порядке и
// никогда не возвращает ошибку: непригодное значение деградирует в
// "нет изображений", а не ломает страницу.
type ImageList []string

// UnmarshalJSON разбирает поле images в любой из известных форм
func (l *ImageList) UnmarshalJSON(data []byte) error {
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*l = arr
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*l = NormalizeImages(raw)
		return nil
	}

	*l = nil
	return nil
}

// NormalizeImages приводит строковое значение поля images к списку URL.
// Сначала строка разбирается как JSON-массив; если JSON разобрался, но
// это не массив, откатываемся к разбору исходной строки через запятую —
// так же ведёт себя веб-клиент.
func NormalizeImages(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err == nil {
		if arr, ok := parsed.([]any); ok {
			out := make([]string, 0, len(arr))
			for _, v := range arr {
				if s, ok := v.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}

	return splitImageCSV(raw)
}

// splitImageCSV разбивает строку по запятым, отбрасывая пустые элементы
func splitImageCSV(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
