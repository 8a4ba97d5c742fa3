package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docslot/internal/domain"
)

// @Summary Записаться на слот
// @Description Занимает одно место в слоте. Слот должен совпадать со слотом текущих правил специалиста
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.CreateBookingDTO true "Данные записи"
// @Success 201 {object} domain.Booking "Созданная запись"
// @Failure 400 {object} errorResponseBody "Неверный слот или формат данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Специалист не найден"
// @Failure 409 {object} errorResponseBody "Повторная запись или нет мест"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	clientID, ok := h.currentClientID(c)
	if !ok {
		return
	}

	var req domain.CreateBookingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных записи", zap.Error(err))
		badRequestResponse(c, bindingErrorMessage(err))
		return
	}

	booking, err := h.services.Booking.Book(c.Request.Context(), req.PractitionerID, clientID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка создания записи")
		return
	}

	createdResponse(c, booking)
}

// @Summary Получить запись
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Booking "Запись"
// @Failure 403 {object} errorResponseBody "Чужая запись"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /bookings/{id} [get]
func (h *Handler) getBookingByID(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	booking, ok := h.ownedBooking(c, bookingID)
	if !ok {
		return
	}

	successResponse(c, http.StatusOK, booking)
}

// @Summary Отменить запись
// @Description Отмена доступна клиенту и специалисту записи. Место в слоте освобождается
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} messageResponseType "Запись отменена"
// @Failure 403 {object} errorResponseBody "Чужая запись"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Security ApiKeyAuth
// @Router /bookings/{id} [delete]
func (h *Handler) cancelBooking(c *gin.Context) {
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, ok := h.ownedBooking(c, bookingID); !ok {
		return
	}

	if err := h.services.Booking.Cancel(c.Request.Context(), bookingID); err != nil {
		h.serviceErrorResponse(c, err, "ошибка отмены записи")
		return
	}

	messageResponse(c, http.StatusOK, "запись отменена")
}

// @Summary Мои записи
// @Tags Записи
// @Produce json
// @Success 200 {array} domain.Booking "Записи клиента"
// @Security ApiKeyAuth
// @Router /bookings/me [get]
func (h *Handler) getMyBookings(c *gin.Context) {
	clientID, ok := h.currentClientID(c)
	if !ok {
		return
	}

	bookings, err := h.services.Booking.ListForClient(c.Request.Context(), clientID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения записей")
		return
	}

	successResponse(c, http.StatusOK, bookings)
}

// @Summary Записи к специалисту
// @Tags Записи
// @Produce json
// @Success 200 {array} domain.Booking "Записи специалиста"
// @Security ApiKeyAuth
// @Router /bookings/practitioner [get]
func (h *Handler) getPractitionerBookings(c *gin.Context) {
	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	bookings, err := h.services.Booking.ListForPractitioner(c.Request.Context(), practitionerID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения записей")
		return
	}

	successResponse(c, http.StatusOK, bookings)
}

// @Summary Выгрузить записи в Excel
// @Description Формирует .xlsx со всеми записями специалиста и возвращает временную ссылку на скачивание
// @Tags Записи
// @Produce json
// @Success 200 {object} domain.ExportResult "Ссылка на файл"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Failure 500 {object} errorResponseBody "Ошибка формирования файла"
// @Security ApiKeyAuth
// @Router /bookings/export [post]
func (h *Handler) exportBookings(c *gin.Context) {
	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	result, err := h.services.Export.ExportForPractitioner(c.Request.Context(), practitionerID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка выгрузки записей")
		return
	}

	successResponse(c, http.StatusOK, result)
}

// ownedBooking loads the booking and checks that the caller is its client
// or practitioner.
func (h *Handler) ownedBooking(c *gin.Context, bookingID int64) (*domain.Booking, bool) {
	role, err := getUserRole(c)
	if err != nil {
		unauthorizedResponse(c)
		return nil, false
	}

	booking, err := h.services.Booking.GetByID(c.Request.Context(), bookingID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения записи")
		return nil, false
	}

	switch role {
	case domain.UserRoleClient:
		clientID, ok := h.currentClientID(c)
		if !ok {
			return nil, false
		}
		if booking.ClientID == clientID {
			return booking, true
		}
	case domain.UserRolePractitioner:
		practitionerID, ok := h.currentPractitionerID(c)
		if !ok {
			return nil, false
		}
		if booking.PractitionerID == practitionerID {
			return booking, true
		}
	}

	forbiddenResponse(c, "запись принадлежит другому пользователю")
	return nil, false
}
