package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"orcaeletricista/models"
)

func TestQuoteDraft_AddServiceUsesAveragePrice(t *testing.T) {
	d := NewQuoteDraft()
	id := d.AddService(models.ServiceDefinition{ID: "i1", Description: "Instalação de Interruptor Simples", AvgPrice: dec("55")})

	lines := d.Services()
	require.Len(t, lines, 1)
	require.Equal(t, id, lines[0].ID)
	require.Equal(t, "i1", lines[0].ServiceID)
	require.Equal(t, 1, lines[0].Quantity)
	require.True(t, lines[0].UnitPrice.Equal(dec("55")))
	require.Len(t, id, 9)
}

func TestQuoteDraft_SetServiceQuantityClamps(t *testing.T) {
	tests := []struct {
		input int
		want  int
	}{
		{3, 3},
		{1, 1},
		{0, 1},
		{-4, 1},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.input), func(t *testing.T) {
			d := NewQuoteDraft()
			id := d.AddService(models.ServiceDefinition{ID: "i1", AvgPrice: dec("10")})
			require.NoError(t, d.SetServiceQuantity(id, tt.input))
			require.Equal(t, tt.want, d.Services()[0].Quantity)
		})
	}
}

func TestQuoteDraft_UnknownLine(t *testing.T) {
	d := NewQuoteDraft()
	require.True(t, errors.Is(d.SetServiceQuantity("missing", 2), ErrLineNotFound))
	require.True(t, errors.Is(d.SetServiceUnitPrice("missing", dec("1")), ErrLineNotFound))
	require.True(t, errors.Is(d.SetMaterialUnit("missing", "m"), ErrLineNotFound))
}

func TestQuoteDraft_FreeformMaterialDefaults(t *testing.T) {
	d := NewQuoteDraft()
	id := d.AddFreeformMaterial()

	m := d.Materials()[0]
	require.Equal(t, id, m.ID)
	require.Equal(t, "", m.Description)
	require.Equal(t, DefaultMaterialUnit, m.Unit)
	require.True(t, m.Quantity.Equal(dec("1")))
	require.True(t, m.UnitPrice.IsZero())
}

func TestQuoteDraft_EditFreeformMaterial(t *testing.T) {
	d := NewQuoteDraft()
	id := d.AddFreeformMaterial()

	require.NoError(t, d.SetMaterialDescription(id, "Conector Wago"))
	require.NoError(t, d.SetMaterialUnit(id, "cx"))
	require.NoError(t, d.SetMaterialQuantity(id, dec("2.5")))
	require.NoError(t, d.SetMaterialUnitPrice(id, dec("40")))

	m := d.Materials()[0]
	require.Equal(t, "Conector Wago", m.Description)
	require.Equal(t, "cx", m.Unit)
	require.True(t, MaterialLineTotal(m).Equal(dec("100")))
}

func TestQuoteDraft_MaterialFromCatalog(t *testing.T) {
	d := NewQuoteDraft()
	d.AddMaterialFromCatalog(models.MaterialDefinition{ID: "m16", Description: "Fita Isolante 20m - Profissional", Unit: "rolo", Price: dec("18")})

	m := d.Materials()[0]
	require.Equal(t, "Fita Isolante 20m - Profissional", m.Description)
	require.Equal(t, "rolo", m.Unit)
	require.True(t, m.UnitPrice.Equal(dec("18")))
}

func TestQuoteDraft_RemoveLines(t *testing.T) {
	d := NewQuoteDraft()
	s1 := d.AddService(models.ServiceDefinition{ID: "i1"})
	s2 := d.AddService(models.ServiceDefinition{ID: "i2"})
	m1 := d.AddFreeformMaterial()

	d.RemoveService(s1)
	d.RemoveMaterial(m1)
	d.RemoveService("missing")

	require.Len(t, d.Services(), 1)
	require.Equal(t, s2, d.Services()[0].ID)
	require.Empty(t, d.Materials())
}

func TestQuoteDraft_LineIDsUnique(t *testing.T) {
	d := NewQuoteDraft()
	seq := []string{"aaaaaaaaa", "aaaaaaaaa", "bbbbbbbbb", "aaaaaaaaa", "ccccccccc"}
	d.newID = func() string {
		id := seq[0]
		seq = seq[1:]
		return id
	}

	first := d.AddService(models.ServiceDefinition{ID: "i1"})
	second := d.AddService(models.ServiceDefinition{ID: "i1"})
	third := d.AddFreeformMaterial()

	require.Equal(t, "aaaaaaaaa", first)
	require.Equal(t, "bbbbbbbbb", second)
	require.Equal(t, "ccccccccc", third)
}

func TestQuoteDraft_Total(t *testing.T) {
	d := NewQuoteDraft()
	s := d.AddService(models.ServiceDefinition{ID: "i1", AvgPrice: dec("55")})
	require.NoError(t, d.SetServiceQuantity(s, 2))
	m := d.AddFreeformMaterial()
	require.NoError(t, d.SetMaterialQuantity(m, dec("3")))
	require.NoError(t, d.SetMaterialUnitPrice(m, dec("2.50")))
	d.TravelFee = dec("20")
	d.Discount = dec("10")

	require.True(t, d.Total().Equal(dec("127.50")), "total = %s", d.Total())
}

func TestQuoteDraft_FinalizeRequiresClientName(t *testing.T) {
	for _, name := range []string{"", "   ", "\t\n"} {
		d := NewQuoteDraft()
		d.Client.Name = name
		_, err := d.Finalize(time.Now())
		require.ErrorIs(t, err, ErrClientNameRequired)
	}
}

func TestQuoteDraft_Finalize(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	d := NewQuoteDraft()
	d.Client = ClientData{Name: "Maria", Phone: "11999990000", Address: "Rua A, 1"}
	d.Observations = "Garantia de 90 dias."
	d.AddService(models.ServiceDefinition{ID: "i1", Description: "Interruptor", AvgPrice: dec("55")})

	q, err := d.Finalize(now)
	require.NoError(t, err)
	require.Len(t, q.ID, 9)
	require.Equal(t, models.StatusPending, q.Status)
	require.Equal(t, now, q.Date)
	require.Equal(t, "Maria", q.ClientName)
	require.Equal(t, "Rua A, 1", q.Address)
	require.Len(t, q.Services, 1)
	require.NotNil(t, q.Materials)
	require.Empty(t, q.Materials)

	// later draft edits do not leak into the finalized quote
	d.AddService(models.ServiceDefinition{ID: "i2"})
	require.Len(t, q.Services, 1)
}
