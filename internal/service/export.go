package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/andescode/event-registration-api/internal/repository"
)

const exportSheet = "Registrations"

var exportHeaders = []string{
	"ID",
	"Submitted At",
	"First Name",
	"Last Name",
	"Email",
	"Phone",
	"Health Entity",
	"Region",
	"Role",
	"Lodging",
	"Agreed Price",
	"Amount Paid",
	"Status",
}

type ExportService struct {
	regs *RegistrationService
}

func NewExportService(regs *RegistrationService) *ExportService {
	return &ExportService{
		regs: regs,
	}
}

// Registrations renders the filtered registration list as an xlsx
// workbook ready to stream to the admin console.
func (s *ExportService) Registrations(ctx context.Context, filter repository.RegistrationFilter) (*bytes.Buffer, error) {
	rows, err := s.regs.ExportRows(ctx, filter)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet, err := f.NewSheet(exportSheet)
	if err != nil {
		return nil, fmt.Errorf("f.NewSheet -> %w", err)
	}
	f.SetActiveSheet(sheet)
	if err = f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("f.DeleteSheet -> %w", err)
	}

	for col, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err = f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, fmt.Errorf("f.SetCellValue -> %w", err)
		}
	}

	for i, row := range rows {
		lodging := "no"
		if row.Lodging {
			lodging = "si"
		}

		values := []any{
			row.ID,
			row.SubmittedAt.Format("2006-01-02 15:04"),
			row.FirstName,
			row.LastName,
			row.Email,
			row.Phone,
			row.HealthEntity,
			row.Region,
			row.Role,
			lodging,
			row.AgreedPrice,
			row.AmountPaid,
			row.Status,
		}

		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err = f.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, fmt.Errorf("f.SetCellValue -> %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("f.WriteToBuffer -> %w", err)
	}

	return buf, nil
}
