package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"docslot/internal/domain"
)

// @Summary Мои слоты по дню недели
// @Description Слоты типовой недели: только еженедельные правила
// @Tags Слоты
// @Produce json
// @Param day path string true "День недели" Enums(Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday)
// @Success 200 {array} domain.Slot "Слоты"
// @Failure 400 {object} errorResponseBody "Неверный день недели"
// @Security ApiKeyAuth
// @Router /availability/slots/day/{day} [get]
func (h *Handler) getMySlotsByDay(c *gin.Context) {
	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	h.respondSlotsByDay(c, practitionerID)
}

// @Summary Мои слоты на дату
// @Description Разовые правила на дату полностью заменяют еженедельные
// @Tags Слоты
// @Produce json
// @Param date query string true "Дата YYYY-MM-DD"
// @Success 200 {array} domain.Slot "Слоты"
// @Failure 400 {object} errorResponseBody "Неверная дата"
// @Security ApiKeyAuth
// @Router /availability/slots/date [get]
func (h *Handler) getMySlotsByDate(c *gin.Context) {
	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	h.respondSlotsByDate(c, practitionerID)
}

// @Summary Слоты специалиста на дату
// @Tags Слоты
// @Produce json
// @Param id path int true "ID специалиста"
// @Param date query string true "Дата YYYY-MM-DD"
// @Success 200 {array} domain.Slot "Слоты"
// @Failure 400 {object} errorResponseBody "Неверная дата"
// @Router /practitioners/{id}/slots [get]
func (h *Handler) getPractitionerSlots(c *gin.Context) {
	practitionerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h.respondSlotsByDate(c, practitionerID)
}

// @Summary Слоты специалиста по дню недели
// @Tags Слоты
// @Produce json
// @Param id path int true "ID специалиста"
// @Param day path string true "День недели"
// @Success 200 {array} domain.Slot "Слоты"
// @Failure 400 {object} errorResponseBody "Неверный день недели"
// @Router /practitioners/{id}/slots/day/{day} [get]
func (h *Handler) getPractitionerSlotsByDay(c *gin.Context) {
	practitionerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	h.respondSlotsByDay(c, practitionerID)
}

// @Summary Свободные места специалиста на дату
// @Description Слоты на дату с числом записей и оставшихся мест
// @Tags Слоты
// @Produce json
// @Param id path int true "ID специалиста"
// @Param date query string true "Дата YYYY-MM-DD"
// @Success 200 {array} domain.SlotAvailability "Слоты с занятостью"
// @Failure 400 {object} errorResponseBody "Неверная дата"
// @Router /practitioners/{id}/free-slots [get]
func (h *Handler) getPractitionerFreeSlots(c *gin.Context) {
	practitionerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "параметр date обязателен")
		return
	}

	slots, err := h.services.Availability.FreeSlots(c.Request.Context(), practitionerID, date)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения свободных слотов")
		return
	}

	successResponse(c, http.StatusOK, slots)
}

func (h *Handler) respondSlotsByDate(c *gin.Context, practitionerID int64) {
	date := c.Query("date")
	if date == "" {
		badRequestResponse(c, "параметр date обязателен")
		return
	}

	slots, err := h.services.Availability.ResolveSlots(c.Request.Context(), practitionerID, date)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения слотов")
		return
	}

	successResponse(c, http.StatusOK, slots)
}

func (h *Handler) respondSlotsByDay(c *gin.Context, practitionerID int64) {
	day := domain.Weekday(c.Param("day"))

	slots, err := h.services.Availability.ResolveSlotsByWeekday(c.Request.Context(), practitionerID, day)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения слотов")
		return
	}

	successResponse(c, http.StatusOK, slots)
}
