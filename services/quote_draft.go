package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase/tools/security"
	"github.com/shopspring/decimal"

	"orcaeletricista/models"
)

var (
	ErrClientNameRequired = errors.New("client name is required")
	ErrUnknownService     = errors.New("unknown catalog service")
	ErrUnknownMaterial    = errors.New("unknown catalog material")
	ErrLineNotFound       = errors.New("quote line not found")
)

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// DefaultMaterialUnit is the unit given to freeform material rows.
const DefaultMaterialUnit = "un"

// MaterialUnits are the unit suggestions offered for material rows; any other
// text is accepted too.
var MaterialUnits = []string{"un", "m", "rolo", "cx", "pç", "kg"}

// NewID returns a random 9 character base-36 id.
func NewID() string {
	return security.RandomStringWithAlphabet(9, idAlphabet)
}

// ClientData is the first authoring step.
type ClientData struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// QuoteDraft accumulates an authoring session. Nothing is persisted until
// Finalize succeeds; an abandoned draft leaves no trace.
type QuoteDraft struct {
	Client       ClientData
	TravelFee    decimal.Decimal
	Discount     decimal.Decimal
	Observations string
	ValidUntil   *models.Date

	services  []models.SelectedService
	materials []models.MaterialItem
	newID     func() string
}

// NewQuoteDraft starts an empty authoring session.
func NewQuoteDraft() *QuoteDraft {
	return &QuoteDraft{newID: NewID}
}

// nextID returns an id not yet used by any line of the draft.
func (d *QuoteDraft) nextID() string {
	for {
		id := d.newID()
		if !d.hasLineID(id) {
			return id
		}
	}
}

func (d *QuoteDraft) hasLineID(id string) bool {
	for _, s := range d.services {
		if s.ID == id {
			return true
		}
	}
	for _, m := range d.materials {
		if m.ID == id {
			return true
		}
	}
	return false
}

// Services returns a copy of the selected service lines.
func (d *QuoteDraft) Services() []models.SelectedService {
	return append([]models.SelectedService(nil), d.services...)
}

// Materials returns a copy of the material lines.
func (d *QuoteDraft) Materials() []models.MaterialItem {
	return append([]models.MaterialItem(nil), d.materials...)
}

// AddService appends a line copied from def with quantity 1 and the average
// catalog price. The description is frozen from then on.
func (d *QuoteDraft) AddService(def models.ServiceDefinition) string {
	line := models.SelectedService{
		ID:          d.nextID(),
		ServiceID:   def.ID,
		Description: def.Description,
		Quantity:    1,
		UnitPrice:   def.AvgPrice,
	}
	d.services = append(d.services, line)
	return line.ID
}

func (d *QuoteDraft) RemoveService(id string) {
	kept := d.services[:0]
	for _, s := range d.services {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	d.services = kept
}

// SetServiceQuantity updates a line's quantity; values below 1 become 1.
func (d *QuoteDraft) SetServiceQuantity(id string, qty int) error {
	for i := range d.services {
		if d.services[i].ID == id {
			d.services[i].Quantity = max(1, qty)
			return nil
		}
	}
	return fmt.Errorf("service %s: %w", id, ErrLineNotFound)
}

func (d *QuoteDraft) SetServiceUnitPrice(id string, price decimal.Decimal) error {
	for i := range d.services {
		if d.services[i].ID == id {
			d.services[i].UnitPrice = price
			return nil
		}
	}
	return fmt.Errorf("service %s: %w", id, ErrLineNotFound)
}

// AddMaterialFromCatalog appends a material line copied from def.
func (d *QuoteDraft) AddMaterialFromCatalog(def models.MaterialDefinition) string {
	line := models.MaterialItem{
		ID:          d.nextID(),
		Description: def.Description,
		Quantity:    decimal.NewFromInt(1),
		Unit:        def.Unit,
		UnitPrice:   def.Price,
	}
	d.materials = append(d.materials, line)
	return line.ID
}

// AddFreeformMaterial appends an empty material row to be filled in.
func (d *QuoteDraft) AddFreeformMaterial() string {
	line := models.MaterialItem{
		ID:        d.nextID(),
		Quantity:  decimal.NewFromInt(1),
		Unit:      DefaultMaterialUnit,
		UnitPrice: decimal.Zero,
	}
	d.materials = append(d.materials, line)
	return line.ID
}

func (d *QuoteDraft) RemoveMaterial(id string) {
	kept := d.materials[:0]
	for _, m := range d.materials {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	d.materials = kept
}

func (d *QuoteDraft) material(id string) (*models.MaterialItem, error) {
	for i := range d.materials {
		if d.materials[i].ID == id {
			return &d.materials[i], nil
		}
	}
	return nil, fmt.Errorf("material %s: %w", id, ErrLineNotFound)
}

func (d *QuoteDraft) SetMaterialDescription(id, description string) error {
	m, err := d.material(id)
	if err != nil {
		return err
	}
	m.Description = description
	return nil
}

func (d *QuoteDraft) SetMaterialUnit(id, unit string) error {
	m, err := d.material(id)
	if err != nil {
		return err
	}
	m.Unit = unit
	return nil
}

func (d *QuoteDraft) SetMaterialQuantity(id string, qty decimal.Decimal) error {
	m, err := d.material(id)
	if err != nil {
		return err
	}
	m.Quantity = qty
	return nil
}

func (d *QuoteDraft) SetMaterialUnitPrice(id string, price decimal.Decimal) error {
	m, err := d.material(id)
	if err != nil {
		return err
	}
	m.UnitPrice = price
	return nil
}

// Total is the running grand total shown while authoring.
func (d *QuoteDraft) Total() decimal.Decimal {
	return GrandTotal(d.snapshot())
}

func (d *QuoteDraft) snapshot() models.Quote {
	return models.Quote{
		ClientName:   d.Client.Name,
		ClientPhone:  d.Client.Phone,
		Address:      d.Client.Address,
		ValidUntil:   d.ValidUntil,
		Services:     d.Services(),
		Materials:    d.Materials(),
		Observations: d.Observations,
		Discount:     d.Discount,
		TravelFee:    d.TravelFee,
	}
}

// Finalize validates the draft and produces a pending quote with a fresh id
// and creation date. The only validation is a non-empty client name.
func (d *QuoteDraft) Finalize(now time.Time) (models.Quote, error) {
	if strings.TrimSpace(d.Client.Name) == "" {
		return models.Quote{}, ErrClientNameRequired
	}
	q := d.snapshot()
	q.ID = d.newID()
	q.Date = now
	q.Status = models.StatusPending
	if q.Services == nil {
		q.Services = []models.SelectedService{}
	}
	if q.Materials == nil {
		q.Materials = []models.MaterialItem{}
	}
	return q, nil
}
