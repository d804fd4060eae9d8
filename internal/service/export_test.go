package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fascinar/eventos-api/internal/model"
)

func TestBuildAvailabilityCSV(t *testing.T) {
	onze := "11:00"
	entries := []model.StaffAvailabilityEntry{
		{
			Name: "Ana", Email: "ana@x.com",
			Status:    statusPtr(model.StatusAvailable),
			StartTime: strptr("08:00"), EndTime: strptr("12:00"),
		},
		{
			Name: "Bruno", Email: "bruno@x.com",
			Status: statusPtr(model.StatusAvailable), // no times: whole day
			Notes:  "chega cedo",
		},
		{
			Name: "Carla", Email: "carla@x.com",
			Status: statusPtr(model.StatusUnavailable),
			Notes:  "viagem, volta sexta", // embedded comma must survive
		},
		{
			Name: "Davi", Email: "davi@x.com",
			Status: statusPtr(model.StatusMaybe), StartTime: &onze, // start without end shows nothing
		},
		{
			Name: "Eva", Email: "eva@x.com", Scheduled: true,
		},
	}

	csv := BuildAvailabilityCSV(entries)
	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "Staff,Email,Status,Horario_Disponivel,Observacoes,Escalado", lines[0])
	assert.Equal(t, `"Ana","ana@x.com","Disponível","08:00-12:00","","Não"`, lines[1])
	assert.Equal(t, `"Bruno","bruno@x.com","Disponível","Dia inteiro","chega cedo","Não"`, lines[2])
	assert.Equal(t, `"Carla","carla@x.com","Indisponível","","viagem, volta sexta","Não"`, lines[3])
	assert.Equal(t, `"Davi","davi@x.com","Pendente","","","Não"`, lines[4])
	assert.Equal(t, `"Eva","eva@x.com","Pendente","","","Sim"`, lines[5])
}

func TestBuildAvailabilityCSV_Empty(t *testing.T) {
	csv := BuildAvailabilityCSV(nil)
	assert.Equal(t, "Staff,Email,Status,Horario_Disponivel,Observacoes,Escalado\n", csv)
}

func TestCSVQuote_DoublesEmbeddedQuotes(t *testing.T) {
	assert.Equal(t, `"sítio ""Bela Vista"""`, csvQuote(`sítio "Bela Vista"`))
}

func TestExportEventAvailabilities(t *testing.T) {
	svc, _, records := newAdminFixture(testEvent(1, "2026-09-05"))
	records.roster[1] = []model.StaffAvailabilityEntry{
		{ProfileID: 1, Name: "Ana", Email: "ana@x.com",
			Status: statusPtr(model.StatusAvailable), StartTime: strptr("08:00"), EndTime: strptr("12:00")},
	}

	csv, err := svc.ExportEventAvailabilities(context.Background(), 1)
	require.NoError(t, err)
	assert.Contains(t, csv, `"Ana","ana@x.com","Disponível","08:00-12:00","","Não"`)

	_, err = svc.ExportEventAvailabilities(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
