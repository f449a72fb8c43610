// Package service provides the extraction orchestration logic.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/folhapay/payroll-extract/internal/domain/export"
	"github.com/folhapay/payroll-extract/internal/domain/extract/parser"
	"github.com/folhapay/payroll-extract/internal/domain/payroll"
	"github.com/folhapay/payroll-extract/internal/domain/payroll/repository"
)

// ErrNoRepository indicates a persistence request on a service built
// without a repository.
var ErrNoRepository = errors.New("no repository configured")

// ExtractResult contains the result of one extraction run.
type ExtractResult struct {
	JobID    uuid.UUID
	Payroll  *payroll.Payroll
	Metadata parser.Metadata
	Duration time.Duration
}

// ExtractService runs the extraction pipeline and dispatches the result to
// storage or export. The repository is optional; export-only callers pass
// nil.
type ExtractService struct {
	parser *parser.PDFParser
	repo   repository.PayrollRepository
	logger *slog.Logger
}

// NewExtractService creates a new extraction service.
func NewExtractService(p *parser.PDFParser, repo repository.PayrollRepository, logger *slog.Logger) *ExtractService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractService{
		parser: p,
		repo:   repo,
		logger: logger,
	}
}

// Extract parses the document at path into a payroll.
func (s *ExtractService) Extract(ctx context.Context, path string) (*ExtractResult, error) {
	jobID := uuid.New()
	start := time.Now()

	s.logger.Info("starting extraction", "jobID", jobID, "path", path)

	result, err := s.parser.ParseWithMetadata(path)
	if err != nil {
		s.logger.Error("extraction failed", "jobID", jobID, "path", path, "error", err)
		return nil, fmt.Errorf("extracting %s: %w", path, err)
	}

	duration := time.Since(start)
	s.logger.Info("extraction finished",
		"jobID", jobID,
		"period", result.Payroll.Period().String(),
		"periodDetected", result.Metadata.PeriodDetection.Detected,
		"employees", result.Metadata.EmployeesFound,
		"lines", result.Metadata.TotalLinesExtracted,
		"duration", duration,
	)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &ExtractResult{
		JobID:    jobID,
		Payroll:  result.Payroll,
		Metadata: result.Metadata,
		Duration: duration,
	}, nil
}

// ExtractAndSave parses the document and persists the payroll, replacing
// any previously stored payroll for the same period.
func (s *ExtractService) ExtractAndSave(ctx context.Context, path string) (*ExtractResult, error) {
	if s.repo == nil {
		return nil, ErrNoRepository
	}

	result, err := s.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	storedID, err := s.repo.Save(ctx, result.Payroll)
	if err != nil {
		s.logger.Error("failed to save payroll", "jobID", result.JobID, "error", err)
		return nil, fmt.Errorf("saving payroll for %s: %w", result.Payroll.Period(), err)
	}

	s.logger.Info("payroll saved", "jobID", result.JobID, "storedID", storedID,
		"period", result.Payroll.Period().String())
	return result, nil
}

// ExtractAndExport parses the document and writes the payroll to outPath
// using the given exporter.
func (s *ExtractService) ExtractAndExport(ctx context.Context, path string, exporter export.Exporter, outPath string) (*ExtractResult, error) {
	result, err := s.Extract(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := exporter.Export(result.Payroll, outPath); err != nil {
		s.logger.Error("failed to export payroll", "jobID", result.JobID,
			"format", exporter.FormatName(), "error", err)
		return nil, err
	}

	s.logger.Info("payroll exported", "jobID", result.JobID,
		"format", exporter.FormatName(), "out", outPath)
	return result, nil
}
