package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/andescode/event-registration-api/internal/repository"
)

func TestExportService_Registrations(t *testing.T) {
	_, _, _, regSvc, _ := testFixtures()
	created, err := regSvc.Submit(context.Background(), validSubmitInput())
	require.NoError(t, err)

	svc := NewExportService(regSvc)

	buf, err := svc.Registrations(context.Background(), repository.RegistrationFilter{EventID: 1})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, created.ID, rows[1][0])
	assert.Equal(t, "María", rows[1][2])
	assert.Equal(t, "si", rows[1][9])
	assert.Equal(t, "pending", rows[1][12])
}

func TestExportService_EmptyList(t *testing.T) {
	_, _, _, regSvc, _ := testFixtures()
	svc := NewExportService(regSvc)

	buf, err := svc.Registrations(context.Background(), repository.RegistrationFilter{EventID: 1})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, exportHeaders, rows[0])
}
