package book_appointment

import (
	"time"

	"github.com/spotbook/appointment-service/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	AccountID string // ID аккаунта, отправившего заявку

	ServiceID     string    // ID выбранной услуги
	CustomerName  string    // Имя клиента
	CustomerEmail string    // Email клиента (для уведомлений)
	CustomerPhone string    // Телефон клиента
	Date          time.Time // Дата записи (без времени)
	TimeSlot      string    // Один из фиксированных слотов
	Address       string    // Адрес клиента (выездная услуга)
	Notes         *string   // Дополнительные заметки (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID            string    // ID созданной записи
	ServiceID     string    // ID услуги
	ServiceName   string    // Название услуги
	CustomerName  string    // Имя клиента
	CustomerEmail string    // Email клиента
	CustomerPhone string    // Телефон клиента
	Date          time.Time // Дата записи
	TimeSlot      string    // Слот времени
	Status        string    // Статус записи (pending)

	// Снимок расчета стоимости на момент создания
	Address    string  // Нормализованный адрес
	Latitude   float64 // Широта
	Longitude  float64 // Долгота
	DistanceKm float64 // Расстояние от точки выезда, км
	Price      float64 // Итоговая стоимость

	Notes *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

func toResponse(appt *domain.Appointment, serviceName string) *Response {
	return &Response{
		ID:            appt.ID,
		ServiceID:     appt.ServiceID,
		ServiceName:   serviceName,
		CustomerName:  appt.CustomerName,
		CustomerEmail: appt.CustomerEmail,
		CustomerPhone: appt.CustomerPhone,
		Date:          appt.Date,
		TimeSlot:      appt.TimeSlot,
		Status:        string(appt.Status),
		Address:       appt.Location.Address,
		Latitude:      appt.Location.Latitude,
		Longitude:     appt.Location.Longitude,
		DistanceKm:    appt.DistanceKm,
		Price:         appt.Price,
		Notes:         appt.Notes,
		CreatedAt:     appt.CreatedAt,
		UpdatedAt:     appt.UpdatedAt,
	}
}
