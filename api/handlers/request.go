package handlers

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/IDS-Mandujano/electronica-back/internal/service"

	"github.com/shopspring/decimal"
)

// FlexInt decodes a JSON number or a numeric string within the int32 range
type FlexInt int

var (
	flexIntMax = decimal.NewFromInt(math.MaxInt32)
	flexIntMin = decimal.NewFromInt(math.MinInt32)
)

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() {
		return fmt.Errorf("invalid integer %q", s)
	}
	if d.GreaterThan(flexIntMax) || d.LessThan(flexIntMin) {
		return fmt.Errorf("integer %q out of range", s)
	}
	*f = FlexInt(d.IntPart())
	return nil
}

func (f *FlexInt) ptr() *int {
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

// dateLayouts are tried in order; all but RFC 3339 are read as local time
var dateLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// FlexTime decodes RFC 3339 timestamps, local date-times and bare dates
type FlexTime struct {
	time.Time
}

func (f *FlexTime) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return err
	}
	f.Time = t
	return nil
}

func (f *FlexTime) ptr() *time.Time {
	if f == nil || f.IsZero() {
		return nil
	}
	t := f.Time
	return &t
}

// ParseDate parses the date formats the front end sends
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

type ticketBody struct {
	EquipmentID     string `json:"equipoId"`
	TechnicianID    string `json:"tecnicoId"`
	ReportedProblem string `json:"problemaReportado"`
}

type diagnosisBody struct {
	Diagnosis         *string   `json:"diagnosticoTecnico"`
	Status            *string   `json:"estado"`
	EstimatedDelivery *FlexTime `json:"fechaEstimadaEntrega"`
}

type finalizeBody struct {
	RepairCost   *decimal.Decimal `json:"costoReparacion"`
	DeliveryDate *FlexTime        `json:"fechaEntrega"`
}

type deliveryCreateBody struct {
	TicketID     string           `json:"registroTarjetaId"`
	RepairCost   *decimal.Decimal `json:"costoReparacion"`
	DeliveryDate *FlexTime        `json:"fechaEntrega"`
}

type deliveryUpdateBody struct {
	RepairCost     *decimal.Decimal `json:"costoReparacion"`
	ChangedProblem *string          `json:"problemaCambiado"`
	DeliveryDate   *FlexTime        `json:"fechaEntrega"`
}

// partBody accepts every field name the front ends have used for a part.
// When several aliases are present the first one listed wins.
type partBody struct {
	NombreProducto *string          `json:"nombreProducto"`
	NombrePieza    *string          `json:"nombrePieza"`
	Categoria      *string          `json:"categoria"`
	StockActual    *FlexInt         `json:"stockActual"`
	Cantidad       *FlexInt         `json:"cantidad"`
	CantidadPiezas *FlexInt         `json:"cantidadPiezas"`
	StockMinimo    *FlexInt         `json:"stockMinimo"`
	Unidad         *string          `json:"unidad"`
	UnidadMedida   *string          `json:"unidadMedida"`
	PrecioUnitario *decimal.Decimal `json:"precioUnitario"`
	CostoUnitario  *decimal.Decimal `json:"costoUnitario"`
}

func (b partBody) input() service.PartInput {
	in := service.PartInput{
		Name:         firstString(b.NombreProducto, b.NombrePieza),
		Category:     b.Categoria,
		MinimumStock: b.StockMinimo.ptr(),
		Unit:         firstString(b.Unidad, b.UnidadMedida),
		UnitCost:     b.PrecioUnitario,
	}
	for _, v := range []*FlexInt{b.StockActual, b.Cantidad, b.CantidadPiezas} {
		if v != nil {
			in.Stock = v.ptr()
			break
		}
	}
	if in.UnitCost == nil {
		in.UnitCost = b.CostoUnitario
	}
	return in
}

func firstString(values ...*string) *string {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

type useMaterialBody struct {
	PartID   string   `json:"productoId"`
	TicketID string   `json:"servicioId"`
	Quantity *FlexInt `json:"cantidad"`
}

type saleCardBody struct {
	BrandID     *FlexInt         `json:"marcaId"`
	Model       string           `json:"modelo"`
	Description string           `json:"descripcion"`
	SalePrice   *decimal.Decimal `json:"precioVenta"`
}
