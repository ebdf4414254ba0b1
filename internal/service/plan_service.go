package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/twmlab/probenplan-go/internal/geomap"
	"github.com/twmlab/probenplan-go/internal/models"
	"github.com/twmlab/probenplan-go/internal/repository"
	"github.com/twmlab/probenplan-go/internal/spreadsheet"
	"github.com/twmlab/probenplan-go/internal/transform"
)

// ErrNoDataset is returned by read accessors before the first successful
// upload.
var ErrNoDataset = errors.New("no sampling plan uploaded yet")

// PlanService owns the current derived model. An upload fully re-derives
// both views before the new dataset replaces the old one; readers never see
// a half-built model, and a failed upload leaves the previous dataset
// untouched.
type PlanService struct {
	mu      sync.RWMutex
	current *models.Dataset

	uploads *repository.UploadRepository // nil disables the history log
}

// NewPlanService creates a new plan service. The upload repository may be
// nil; the service then keeps no history.
func NewPlanService(uploads *repository.UploadRepository) *PlanService {
	return &PlanService{uploads: uploads}
}

// Upload decodes one spreadsheet and derives a complete dataset from it.
// Structural failures (missing columns, undecodable file) abort without
// touching the published model; row-level problems are skipped and counted.
func (s *PlanService) Upload(filename string, r io.Reader) (*models.UploadSummary, error) {
	doc, err := spreadsheet.Decode(r)
	if err != nil {
		s.recordFailure(filename, err)
		return nil, err
	}

	table, err := transform.BuildTableModel(doc)
	if err != nil {
		s.recordFailure(filename, err)
		return nil, fmt.Errorf("dashboard transformation failed: %w", err)
	}

	mapModel, err := geomap.BuildMapModel(doc)
	if err != nil && !errors.Is(err, geomap.ErrNoGeoData) {
		s.recordFailure(filename, err)
		return nil, fmt.Errorf("map transformation failed: %w", err)
	}

	s.mu.Lock()
	version := 1
	if s.current != nil {
		version = s.current.Version + 1
	}
	s.current = &models.Dataset{
		Version:    version,
		Filename:   filename,
		UploadedAt: time.Now(),
		Table:      table,
		Map:        mapModel,
	}
	s.mu.Unlock()

	summary := &models.UploadSummary{
		Version:         version,
		Filename:        filename,
		Customers:       len(table.Customers),
		SkippedRows:     table.SkippedRows,
		DuplicateMonths: table.DuplicateMonths,
	}
	if mapModel != nil {
		summary.HasGeoData = true
		summary.MapPoints = len(mapModel.Points)
		summary.SkippedRows += mapModel.Skipped
		for _, p := range mapModel.Points {
			if p.ZeroSample {
				summary.ZeroSamples++
			}
		}
	}

	s.recordSuccess(summary)
	return summary, nil
}

// Dashboard returns the current table model.
func (s *PlanService) Dashboard() (*models.TableModel, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, 0, ErrNoDataset
	}
	return s.current.Table, s.current.Version, nil
}

// MapData returns the current map model. ErrNoGeoData marks datasets whose
// upload carried no coordinates.
func (s *PlanService) MapData() (*models.MapModel, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, 0, ErrNoDataset
	}
	if s.current.Map == nil {
		return nil, s.current.Version, geomap.ErrNoGeoData
	}
	return s.current.Map, s.current.Version, nil
}

// Current returns upload metadata of the published dataset.
func (s *PlanService) Current() (*models.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, ErrNoDataset
	}
	return s.current, nil
}

// History returns the newest upload-history records.
func (s *PlanService) History(limit int) ([]repository.UploadRecord, error) {
	if s.uploads == nil {
		return nil, nil
	}
	return s.uploads.ListRecent(limit)
}

func (s *PlanService) recordSuccess(summary *models.UploadSummary) {
	if s.uploads == nil {
		return
	}
	err := s.uploads.Record(&repository.UploadRecord{
		Filename:        summary.Filename,
		Status:          repository.UploadStatusOK,
		Version:         summary.Version,
		Customers:       summary.Customers,
		MapPoints:       summary.MapPoints,
		SkippedRows:     summary.SkippedRows,
		ZeroSamples:     summary.ZeroSamples,
		DuplicateMonths: summary.DuplicateMonths,
	})
	if err != nil {
		log.Printf("upload history write failed: %v", err)
	}
}

func (s *PlanService) recordFailure(filename string, cause error) {
	if s.uploads == nil {
		return
	}
	err := s.uploads.Record(&repository.UploadRecord{
		Filename: filename,
		Status:   repository.UploadStatusFailed,
		Error:    cause.Error(),
	})
	if err != nil {
		log.Printf("upload history write failed: %v", err)
	}
}
