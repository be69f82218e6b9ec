// Package reporting arma los documentos descargables: hoja de códigos de barras (PDF) y exportaciones XLSX.
package reporting

import (
	"context"

	"github.com/jhoicas/LabOps-api/internal/application/dto"
)

// BarcodeSheetRenderer genera el PDF de la hoja de códigos de un lote.
type BarcodeSheetRenderer interface {
	RenderBarcodeSheet(sheet *dto.BarcodeSheet) ([]byte, error)
}

// WorkbookExporter genera libros XLSX.
type WorkbookExporter interface {
	BoardWorkbook(board *dto.BoardResponse) ([]byte, error)
	OrdersWorkbook(orders []dto.OrderResponse) ([]byte, error)
}

// BatchSource lo implementa usecase.BatchUseCase.
type BatchSource interface {
	Barcodes(ctx context.Context, batchID string) (*dto.BarcodeSheet, error)
	FullBoard(ctx context.Context, batchID string) (*dto.BoardResponse, error)
}

// OrderSource lo implementa usecase.OrderUseCase.
type OrderSource interface {
	ListForExport(ctx context.Context, q dto.ListQuery) ([]dto.OrderResponse, error)
}

// ReportUseCase arma los datos y delega el formato en los generadores de infraestructura.
type ReportUseCase struct {
	batches BatchSource
	orders  OrderSource
	pdf     BarcodeSheetRenderer
	xlsx    WorkbookExporter
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(batches BatchSource, orders OrderSource, pdf BarcodeSheetRenderer, xlsx WorkbookExporter) *ReportUseCase {
	return &ReportUseCase{batches: batches, orders: orders, pdf: pdf, xlsx: xlsx}
}

// BarcodeSheetPDF PDF con el código del lote y los códigos START/STOP de cada paso.
func (uc *ReportUseCase) BarcodeSheetPDF(ctx context.Context, batchID string) ([]byte, string, error) {
	sheet, err := uc.batches.Barcodes(ctx, batchID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.pdf.RenderBarcodeSheet(sheet)
	if err != nil {
		return nil, "", err
	}
	return out, "lote-" + sheet.BatchNumber + "-codigos.pdf", nil
}

// BoardXLSX tablero completo del lote en XLSX.
func (uc *ReportUseCase) BoardXLSX(ctx context.Context, batchID string) ([]byte, string, error) {
	board, err := uc.batches.FullBoard(ctx, batchID)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.xlsx.BoardWorkbook(board)
	if err != nil {
		return nil, "", err
	}
	return out, "lote-" + board.Batch.BatchNumber + "-tablero.xlsx", nil
}

// OrdersXLSX órdenes filtradas como en el listado.
func (uc *ReportUseCase) OrdersXLSX(ctx context.Context, q dto.ListQuery) ([]byte, string, error) {
	orders, err := uc.orders.ListForExport(ctx, q)
	if err != nil {
		return nil, "", err
	}
	out, err := uc.xlsx.OrdersWorkbook(orders)
	if err != nil {
		return nil, "", err
	}
	return out, "ordenes.xlsx", nil
}
