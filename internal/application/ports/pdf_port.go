package ports

import (
	"context"
	"time"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

// StatementData datos del estado de cuenta de un cliente con fiado.
type StatementData struct {
	TenantID    string
	GeneratedAt time.Time
	Due         *entity.CustomerDue
	Sales       []*entity.Sale // más recientes primero, incluye abonos
}

// StatementPDFGenerator genera el PDF del estado de cuenta.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, data StatementData) ([]byte, error)
}
