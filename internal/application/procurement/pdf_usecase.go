package procurement

import (
	"context"
	"fmt"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// PDFUseCase genera el PDF de una orden de compra para enviar al proveedor.
type PDFUseCase struct {
	poRepo    repository.PurchaseOrderRepository
	generator POPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(poRepo repository.PurchaseOrderRepository, generator POPDFGenerator) *PDFUseCase {
	return &PDFUseCase{poRepo: poRepo, generator: generator}
}

// GeneratePurchaseOrderPDF carga la orden y produce el documento.
func (uc *PDFUseCase) GeneratePurchaseOrderPDF(ctx context.Context, poID string) ([]byte, error) {
	po, err := uc.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, poID)
	}
	return uc.generator.Generate(po)
}
