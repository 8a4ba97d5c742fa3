package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docslot/internal/domain"
)

// @Summary Создать правило доступности
// @Description Создает еженедельное (RECURRING) или разовое (CUSTOM) правило в режиме WAVE или STREAM
// @Tags Правила доступности
// @Accept json
// @Produce json
// @Param input body domain.RuleSpec true "Описание правила"
// @Success 201 {object} domain.AvailabilityRule "Созданное правило"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 409 {object} errorResponseBody "Пересечение с существующим правилом"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/rules [post]
func (h *Handler) createRule(c *gin.Context) {
	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	var req domain.RuleSpec
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных правила", zap.Error(err))
		badRequestResponse(c, bindingErrorMessage(err))
		return
	}

	rule, err := h.services.Rule.Create(c.Request.Context(), practitionerID, req)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка создания правила")
		return
	}

	createdResponse(c, rule)
}

// @Summary Заменить правило доступности
// @Description Полностью заменяет правило. Пересечение с прежней версией правила не считается конфликтом
// @Tags Правила доступности
// @Accept json
// @Produce json
// @Param id path int true "ID правила"
// @Param input body domain.RuleSpec true "Новое описание правила"
// @Success 200 {object} domain.AvailabilityRule "Обновленное правило"
// @Failure 400 {object} errorResponseBody "Ошибка валидации данных"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Правило не найдено"
// @Failure 409 {object} errorResponseBody "Пересечение с существующим правилом"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/rules/{id} [put]
func (h *Handler) updateRule(c *gin.Context) {
	ruleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	var req domain.RuleSpec
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("неверный формат данных правила", zap.Error(err))
		badRequestResponse(c, bindingErrorMessage(err))
		return
	}

	rule, err := h.services.Rule.Update(c.Request.Context(), ruleID, practitionerID, req)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка обновления правила")
		return
	}

	successResponse(c, http.StatusOK, rule)
}

// @Summary Удалить правило доступности
// @Description Удаляет правило. Существующие записи на его слоты сохраняются
// @Tags Правила доступности
// @Produce json
// @Param id path int true "ID правила"
// @Success 200 {object} messageResponseType "Правило удалено"
// @Failure 400 {object} errorResponseBody "Неверный ID"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 404 {object} errorResponseBody "Правило не найдено"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/rules/{id} [delete]
func (h *Handler) deleteRule(c *gin.Context) {
	ruleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	if err := h.services.Rule.Delete(c.Request.Context(), ruleID, practitionerID); err != nil {
		h.serviceErrorResponse(c, err, "ошибка удаления правила")
		return
	}

	messageResponse(c, http.StatusOK, "правило удалено")
}

// @Summary Получить правило доступности
// @Tags Правила доступности
// @Produce json
// @Param id path int true "ID правила"
// @Success 200 {object} domain.AvailabilityRule "Правило"
// @Failure 404 {object} errorResponseBody "Правило не найдено"
// @Security ApiKeyAuth
// @Router /availability/rules/{id} [get]
func (h *Handler) getRuleByID(c *gin.Context) {
	ruleID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	rule, err := h.services.Rule.GetByID(c.Request.Context(), ruleID, practitionerID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения правила")
		return
	}

	successResponse(c, http.StatusOK, rule)
}

// @Summary Список правил доступности
// @Description Еженедельные правила в порядке дней недели, затем разовые правила по дате
// @Tags Правила доступности
// @Produce json
// @Success 200 {array} domain.AvailabilityRule "Правила"
// @Failure 401 {object} errorResponseBody "Не авторизован"
// @Failure 500 {object} errorResponseBody "Внутренняя ошибка сервера"
// @Security ApiKeyAuth
// @Router /availability/rules [get]
func (h *Handler) listRules(c *gin.Context) {
	practitionerID, ok := h.currentPractitionerID(c)
	if !ok {
		return
	}

	rules, err := h.services.Rule.List(c.Request.Context(), practitionerID)
	if err != nil {
		h.serviceErrorResponse(c, err, "ошибка получения списка правил")
		return
	}

	successResponse(c, http.StatusOK, rules)
}
