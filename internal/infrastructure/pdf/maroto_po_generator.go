// Package pdf genera el documento de orden de compra que se envía al proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° de orden + Proveedor  │  Fecha + Llegada est.   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Cantidad | Costo unitario | Subtotal          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL DE LA ORDEN                                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/application/procurement"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ procurement.POPDFGenerator = (*MarotoPOGenerator)(nil)

// MarotoPOGenerator implementa procurement.POPDFGenerator usando Maroto v2.
type MarotoPOGenerator struct{}

// NewMarotoPOGenerator construye el generador.
func NewMarotoPOGenerator() *MarotoPOGenerator { return &MarotoPOGenerator{} }

// Generate genera el PDF de la orden y devuelve sus bytes.
func (g *MarotoPOGenerator) Generate(po *entity.PurchaseOrder) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Orden de Compra "+po.PONumber, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range lineRows(po.Lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(po.TotalCost()))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: N° de orden + proveedor (izq), fecha y llegada estimada (der).
func headerRow(po *entity.PurchaseOrder) core.Row {
	arrival := "por confirmar"
	if po.EstimatedArrival != nil {
		arrival = po.EstimatedArrival.Format("02/01/2006")
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Orden de Compra "+po.PONumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Proveedor: "+po.SupplierID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+po.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 9, Top: 1, Align: align.Right,
			}),
			text.New("Llegada estimada: "+arrival, props.Text{
				Size: 9, Top: 9, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	return row.New(7).Add(
		col.New(5).Add(text.New("SKU", header)),
		col.New(2).Add(text.New("Cantidad", mergeAlign(header, align.Right))),
		col.New(2).Add(text.New("Costo unit.", mergeAlign(header, align.Right))),
		col.New(3).Add(text.New("Subtotal", mergeAlign(header, align.Right))),
	)
}

func lineRows(lines []entity.PurchaseOrderLine) []core.Row {
	cell := props.Text{Size: 9}
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		subtotal := l.UnitCost.Mul(decimal.NewFromInt(l.Quantity))
		rows = append(rows, row.New(6).Add(
			col.New(5).Add(text.New(l.SKU, cell)),
			col.New(2).Add(text.New(fmt.Sprintf("%d", l.Quantity), mergeAlign(cell, align.Right))),
			col.New(2).Add(text.New(l.UnitCost.StringFixed(2), mergeAlign(cell, align.Right))),
			col.New(3).Add(text.New(subtotal.StringFixed(2), mergeAlign(cell, align.Right))),
		))
	}
	return rows
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(8).Add(
		col.New(9).Add(text.New("TOTAL DE LA ORDEN", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
		})),
		col.New(3).Add(text.New(total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1, Color: colorPrimary,
		})),
	)
}

func mergeAlign(p props.Text, a align.Type) props.Text {
	p.Align = a
	return p
}
