package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"docslot/internal/domain"
	"docslot/internal/repository"
	"docslot/internal/storage"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var ErrExportGenerateFail = errors.New("ошибка формирования файла выгрузки")

type ExportServiceImpl struct {
	bookingRepo repository.BookingRepository
	storage     storage.FileStorage
	presignTTL  time.Duration
	logger      *zap.Logger
}

func NewExportService(
	bookingRepo repository.BookingRepository,
	fileStorage storage.FileStorage,
	presignTTL time.Duration,
	logger *zap.Logger,
) *ExportServiceImpl {
	return &ExportServiceImpl{
		bookingRepo: bookingRepo,
		storage:     fileStorage,
		presignTTL:  presignTTL,
		logger:      logger,
	}
}

// ExportForPractitioner writes the practitioner's bookings to an .xlsx
// workbook, stores it and returns a time-limited download link.
func (s *ExportServiceImpl) ExportForPractitioner(ctx context.Context, practitionerID int64) (*domain.ExportResult, error) {
	bookings, err := s.bookingRepo.ListForPractitioner(ctx, practitionerID)
	if err != nil {
		s.logger.Error("ошибка получения записей для выгрузки", zap.Int64("practitionerID", practitionerID), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения записей для выгрузки: %w", err)
	}

	buf, err := BuildBookingsWorkbook(bookings)
	if err != nil {
		s.logger.Error("ошибка формирования xlsx", zap.Int64("practitionerID", practitionerID), zap.Error(err))
		return nil, ErrExportGenerateFail
	}

	objectKey := fmt.Sprintf("exports/practitioners/%d/bookings-%s.xlsx", practitionerID, uuid.New().String())
	key, err := s.storage.UploadFile(ctx, buf.Bytes(), objectKey, xlsxContentType)
	if err != nil {
		s.logger.Error("ошибка загрузки выгрузки", zap.String("key", objectKey), zap.Error(err))
		return nil, fmt.Errorf("ошибка загрузки выгрузки: %w", err)
	}

	url, err := s.storage.GetPresignedURL(ctx, key, s.presignTTL)
	if err != nil {
		s.logger.Error("ошибка получения ссылки на выгрузку", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("ошибка получения ссылки на выгрузку: %w", err)
	}

	s.logger.Info("выгрузка записей сформирована",
		zap.Int64("practitionerID", practitionerID),
		zap.Int("bookings", len(bookings)),
		zap.String("key", key),
	)

	return &domain.ExportResult{
		URL:       url,
		ObjectKey: key,
		Bookings:  len(bookings),
	}, nil
}

// BuildBookingsWorkbook renders bookings, already ordered by date and start,
// as a single-sheet workbook.
func BuildBookingsWorkbook(bookings []domain.Booking) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Записи"
	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, err
	}

	headers := []string{"ID", "Клиент", "Дата", "Начало", "Окончание", "Создана"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", headerStyle); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "F", 16); err != nil {
		return nil, err
	}

	for i, b := range bookings {
		row := i + 2
		values := []interface{}{b.ID, b.ClientID, b.Date, b.StartTime, b.EndTime, b.CreatedAt.Format(time.RFC3339)}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
